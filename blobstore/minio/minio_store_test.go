package minio

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/coldb/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	assert.Equal(t, blobstore.ErrNotFound, translate(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.Equal(t, blobstore.ErrNotFound, translate(minio.ErrorResponse{Code: "NotFound"}))

	other := errors.New("connection refused")
	assert.Equal(t, other, translate(other))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-coldb"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	// Check if MinIO is reachable
	_, err = client.ListBuckets(ctx)
	if err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		err = client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
		require.NoError(t, err)
	}

	store := NewStore(client, bucket, "test-prefix/")

	_, err = store.Get(ctx, "ab/missing")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	ok, err := store.Exists(ctx, "ab/missing")
	require.NoError(t, err)
	assert.False(t, ok)

	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "ab/test", data))

	got, err := store.Get(ctx, "ab/test")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	ok, err = store.Exists(ctx, "ab/test")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Delete(ctx, "ab/test"))
	require.NoError(t, store.Delete(ctx, "ab/test"))

	_, err = store.Get(ctx, "ab/test")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
