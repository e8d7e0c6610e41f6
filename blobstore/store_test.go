package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testBlobStore runs the behaviour every BlobStore must share.
func testBlobStore(t *testing.T, store BlobStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetMissing", func(t *testing.T) {
		_, err := store.Get(ctx, "ab/missing")
		assert.ErrorIs(t, err, ErrNotFound)

		ok, err := store.Exists(ctx, "ab/missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("PutGet", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "ab/put", []byte("lol")))

		data, err := store.Get(ctx, "ab/put")
		require.NoError(t, err)
		assert.Equal(t, []byte("lol"), data)

		ok, err := store.Exists(ctx, "ab/put")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "cd/over", []byte("cat")))
		require.NoError(t, store.Put(ctx, "cd/over", []byte("dog")))

		data, err := store.Get(ctx, "cd/over")
		require.NoError(t, err)
		assert.Equal(t, []byte("dog"), data)
	})

	t.Run("EmptyBlob", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "ef/empty", nil))

		data, err := store.Get(ctx, "ef/empty")
		require.NoError(t, err)
		assert.Empty(t, data)

		ok, err := store.Exists(ctx, "ef/empty")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "ab/del", []byte("x")))
		require.NoError(t, store.Delete(ctx, "ab/del"))

		_, err := store.Get(ctx, "ab/del")
		assert.ErrorIs(t, err, ErrNotFound)

		// Deleting again is a no-op.
		require.NoError(t, store.Delete(ctx, "ab/del"))
	})

	t.Run("ReturnedSliceIsCopy", func(t *testing.T) {
		src := []byte("immutable")
		require.NoError(t, store.Put(ctx, "ab/copy", src))
		src[0] = 'X'

		data, err := store.Get(ctx, "ab/copy")
		require.NoError(t, err)
		data[1] = 'Y'

		again, err := store.Get(ctx, "ab/copy")
		require.NoError(t, err)
		assert.Equal(t, []byte("immutable"), again)
	})
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	testBlobStore(t, store)
	assert.Positive(t, store.Len())
}

func TestValidateName(t *testing.T) {
	valid := []string{"a", "ab/cdef", "ab/cd/ef"}
	for _, name := range valid {
		assert.NoError(t, ValidateName(name), name)
	}

	invalid := []string{"", "/abs", "a/../b", "..", "./a", "a//b", "a/", `a\b`}
	for _, name := range invalid {
		assert.ErrorIs(t, ValidateName(name), ErrInvalidName, name)
	}
}
