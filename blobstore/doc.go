// Package blobstore provides the flat key/blob backends used by coldb.BlobDB.
//
// A BlobStore maps names to immutable byte blobs. coldb derives the names
// from composite column keys, so a backend never needs to know about
// columns. Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests
//   - LocalStore: one file per blob under a root directory
//   - CachingStore: read-through LRU in front of any other store
//   - s3.Store: Amazon S3 (multipart upload for large values)
//   - s3.DynamoStore: Amazon DynamoDB table with binary items
//   - minio.Store: MinIO and other S3-compatible services
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Get(ctx, name) ([]byte, error)     // ErrNotFound if absent
//	    Put(ctx, name, data) error         // atomic overwrite
//	    Delete(ctx, name) error            // absent is not an error
//	    Exists(ctx, name) (bool, error)
//	}
package blobstore
