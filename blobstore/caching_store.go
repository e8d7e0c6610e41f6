package blobstore

import (
	"context"
)

// Cache is the contract CachingStore needs from a byte cache.
// Cached slices must be treated as read-only.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Remove(key string)
}

// CachingStore wraps a BlobStore and serves repeated reads from a Cache.
//
// Writes and deletes go to the inner store first and then evict the name,
// so a failed write never leaves a value in the cache that the backend
// does not hold.
type CachingStore struct {
	inner BlobStore
	cache Cache
}

// NewCachingStore creates a new CachingStore.
func NewCachingStore(inner BlobStore, cache Cache) *CachingStore {
	return &CachingStore{
		inner: inner,
		cache: cache,
	}
}

// Get returns the blob, consulting the cache first.
func (s *CachingStore) Get(ctx context.Context, name string) ([]byte, error) {
	if data, ok := s.cache.Get(name); ok {
		return clone(data), nil
	}

	data, err := s.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	s.cache.Set(name, clone(data))
	return data, nil
}

// Put writes through to the inner store and evicts the cached copy.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	err := s.inner.Put(ctx, name, data)
	s.cache.Remove(name)
	return err
}

// Delete removes the blob from the inner store and the cache.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	err := s.inner.Delete(ctx, name)
	s.cache.Remove(name)
	return err
}

// Exists answers from the cache when possible.
func (s *CachingStore) Exists(ctx context.Context, name string) (bool, error) {
	if _, ok := s.cache.Get(name); ok {
		return true, nil
	}
	return s.inner.Exists(ctx, name)
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
