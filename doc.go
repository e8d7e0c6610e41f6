// Package coldb provides a column-aware key-value store abstraction.
//
// A store is partitioned into named columns, in the spirit of column
// families in a persistent engine. Every column has its own key space, yet
// all entries live in one flat mapping: the column name and the caller key
// are hashed into a fixed-size composite key, so equal keys in different
// columns never collide.
//
// # Quick Start
//
//	db := coldb.OpenMemoryDB([]string{"blocks", "validators"})
//
//	_ = db.Put(ctx, "blocks", []byte("root"), []byte("block bytes"))
//	v, found, err := db.Get(ctx, "blocks", []byte("root"))
//
//	_, _, err = db.Get(ctx, "ColumnX", []byte("root"))
//	// err is *coldb.ErrUnknownColumn
//
// # Implementations
//
//   - MemoryDB: a map behind a single RWMutex. Fast and deterministic, for
//     tests of code written against ClientDB.
//   - BlobDB: the same contract over a blobstore.BlobStore (memory, local
//     files, S3, DynamoDB, MinIO). Values are framed by a codec with a
//     CRC32C checksum and optional LZ4 or ZSTD compression.
//
// # Columns
//
// The set of columns is fixed when a store is opened. Using any other
// column fails with *ErrUnknownColumn before the flat mapping is touched.
// Absence is not an error: Get reports found=false and Delete of a missing
// key succeeds.
//
// # Concurrency
//
// Get and Exists share a read lock; Put and Delete take the write lock.
// A Get that starts after a Put returned observes that Put. If a panic
// escapes while the write lock is held, the store is poisoned and every
// later call panics with ErrPoisoned.
package coldb
