// Package s3 provides AWS implementations of blobstore.BlobStore.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("coldb/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	db := coldb.OpenBlobDB(store, coldb.DefaultColumns)
//
// Store keeps one object per entry. Small values are written with a single
// PutObject carrying a CRC32C checksum; values at or above the configured
// part size go through the multipart upload manager.
//
// DynamoStore keeps one item per entry in a DynamoDB table with a string
// partition key "pk" and a binary attribute "val". Reads are strongly
// consistent. DynamoDB limits items to 400 KB, so DynamoStore suits small
// values such as validator records.
//
//	aws dynamodb create-table \
//	  --table-name coldb \
//	  --attribute-definitions AttributeName=pk,AttributeType=S \
//	  --key-schema AttributeName=pk,KeyType=HASH \
//	  --billing-mode PAY_PER_REQUEST
package s3
