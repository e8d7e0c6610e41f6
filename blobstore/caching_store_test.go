package blobstore

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/hupe1980/coldb/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	BlobStore
	gets    atomic.Int64
	exists  atomic.Int64
	failPut bool
}

func (s *countingStore) Get(ctx context.Context, name string) ([]byte, error) {
	s.gets.Add(1)
	return s.BlobStore.Get(ctx, name)
}

func (s *countingStore) Exists(ctx context.Context, name string) (bool, error) {
	s.exists.Add(1)
	return s.BlobStore.Exists(ctx, name)
}

func (s *countingStore) Put(ctx context.Context, name string, data []byte) error {
	if s.failPut {
		return errors.New("backend down")
	}
	return s.BlobStore.Put(ctx, name, data)
}

func TestCachingStore(t *testing.T) {
	testBlobStore(t, NewCachingStore(NewMemoryStore(), cache.NewLRU(1<<20, nil)))
}

func TestCachingStore_ReadThrough(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{BlobStore: NewMemoryStore()}
	lru := cache.NewLRU(1<<20, nil)
	store := NewCachingStore(inner, lru)

	require.NoError(t, store.Put(ctx, "ab/k", []byte("v1")))

	for i := 0; i < 3; i++ {
		data, err := store.Get(ctx, "ab/k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), data)
	}
	assert.Equal(t, int64(1), inner.gets.Load())

	ok, err := store.Exists(ctx, "ab/k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(0), inner.exists.Load())

	hits, misses := lru.Stats()
	assert.Equal(t, int64(3), hits)
	assert.Equal(t, int64(1), misses)
}

func TestCachingStore_Invalidation(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{BlobStore: NewMemoryStore()}
	store := NewCachingStore(inner, cache.NewLRU(1<<20, nil))

	require.NoError(t, store.Put(ctx, "ab/k", []byte("v1")))
	_, err := store.Get(ctx, "ab/k")
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "ab/k", []byte("v2")))
	data, err := store.Get(ctx, "ab/k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)

	require.NoError(t, store.Delete(ctx, "ab/k"))
	_, err = store.Get(ctx, "ab/k")
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err := store.Exists(ctx, "ab/k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCachingStore_FailedPutEvicts(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{BlobStore: NewMemoryStore()}
	store := NewCachingStore(inner, cache.NewLRU(1<<20, nil))

	require.NoError(t, store.Put(ctx, "ab/k", []byte("v1")))
	_, err := store.Get(ctx, "ab/k")
	require.NoError(t, err)

	inner.failPut = true
	require.Error(t, store.Put(ctx, "ab/k", []byte("v2")))

	before := inner.gets.Load()
	data, err := store.Get(ctx, "ab/k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), data)
	assert.Equal(t, before+1, inner.gets.Load(), "read after failed put must hit the backend")
}
