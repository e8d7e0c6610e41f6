package coldb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDB_Len(t *testing.T) {
	ctx := context.Background()
	db := OpenMemoryDB([]string{"A", "B"})

	assert.Equal(t, 0, db.Len())

	require.NoError(t, db.Put(ctx, "A", []byte("k"), []byte("v")))
	require.NoError(t, db.Put(ctx, "B", []byte("k"), []byte("v")))
	require.NoError(t, db.Put(ctx, "B", []byte("k"), []byte("w")))
	assert.Equal(t, 2, db.Len())

	require.NoError(t, db.Delete(ctx, "A", []byte("k")))
	assert.Equal(t, 1, db.Len())
}

func TestMemoryDB_UnknownColumnDoesNotTouchMap(t *testing.T) {
	ctx := context.Background()
	db := OpenMemoryDB([]string{"A"})

	require.Error(t, db.Put(ctx, "B", []byte("k"), []byte("v")))
	require.Error(t, db.Delete(ctx, "B", []byte("k")))
	assert.Equal(t, 0, db.Len())
}

func TestMemoryDB_CustomDeriver(t *testing.T) {
	ctx := context.Background()

	var calls int
	d := KeyDeriverFunc(func(column string, key []byte) []byte {
		calls++
		return Blake2bDeriver{}.Derive(column, key)
	})
	db := OpenMemoryDB([]string{"A"}, WithKeyDeriver(d))

	require.NoError(t, db.Put(ctx, "A", []byte("k"), []byte("v")))
	_, found, err := db.Get(ctx, "A", []byte("k"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, calls)

	// Rejected columns never reach the deriver.
	_, _, _ = db.Get(ctx, "B", []byte("k"))
	assert.Equal(t, 2, calls)
}

func TestMemoryDB_Poisoning(t *testing.T) {
	ctx := context.Background()
	db := OpenMemoryDB([]string{"A"})
	require.NoError(t, db.Put(ctx, "A", []byte("k"), []byte("v")))

	assert.Panics(t, func() {
		_ = db.write(func() error {
			panic("boom")
		})
	})

	assert.PanicsWithValue(t, ErrPoisoned, func() { _, _, _ = db.Get(ctx, "A", []byte("k")) })
	assert.PanicsWithValue(t, ErrPoisoned, func() { _ = db.Put(ctx, "A", []byte("k"), nil) })
	assert.PanicsWithValue(t, ErrPoisoned, func() { _, _ = db.Exists(ctx, "A", []byte("k")) })
	assert.PanicsWithValue(t, ErrPoisoned, func() { _ = db.Delete(ctx, "A", []byte("k")) })
	assert.PanicsWithValue(t, ErrPoisoned, func() { _ = db.Len() })
}

func TestMemoryDB_ReaderPanicDoesNotPoison(t *testing.T) {
	ctx := context.Background()
	db := OpenMemoryDB([]string{"A"})

	assert.Panics(t, func() {
		_ = db.read(func() error {
			panic("boom")
		})
	})

	require.NoError(t, db.Put(ctx, "A", []byte("k"), []byte("v")))
	ok, err := db.Exists(ctx, "A", []byte("k"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryDB_UnknownColumnSkipsPoisonCheck(t *testing.T) {
	db := OpenMemoryDB([]string{"A"})
	assert.Panics(t, func() {
		_ = db.write(func() error { panic("boom") })
	})

	// Column validation runs before the lock is taken.
	_, _, err := db.Get(context.Background(), "B", []byte("k"))
	assert.True(t, IsUnknownColumn(err))
}

func BenchmarkMemoryDB_Put(b *testing.B) {
	ctx := context.Background()
	db := OpenMemoryDB(DefaultColumns)
	value := make([]byte, 128)

	var i int
	for b.Loop() {
		key := []byte{byte(i), byte(i >> 8), byte(i >> 16)}
		_ = db.Put(ctx, ColumnBlocks, key, value)
		i++
	}
}

func BenchmarkMemoryDB_Get(b *testing.B) {
	ctx := context.Background()
	db := OpenMemoryDB(DefaultColumns)
	_ = db.Put(ctx, ColumnBlocks, []byte("k"), make([]byte, 128))

	for b.Loop() {
		_, _, _ = db.Get(ctx, ColumnBlocks, []byte("k"))
	}
}
