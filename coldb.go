package coldb

import (
	"context"

	"github.com/hupe1980/coldb/internal/hash"
)

// Columns used by the chain client.
const (
	ColumnBlocks     = "blocks"
	ColumnValidators = "validators"
	ColumnState      = "state"
)

// DefaultColumns is the column set of the chain client.
var DefaultColumns = []string{ColumnBlocks, ColumnValidators, ColumnState}

// ClientDB is the column-aware key-value contract shared by all stores.
//
// The only error defined by the contract is *ErrUnknownColumn. Stores that
// talk to a remote backend may also return wrapped I/O errors.
type ClientDB interface {
	// Get returns the value stored under key in column.
	// found is false if the key is absent; that is not an error.
	Get(ctx context.Context, column string, key []byte) (value []byte, found bool, err error)

	// Put stores value under key in column, replacing any previous value.
	Put(ctx context.Context, column string, key, value []byte) error

	// Exists reports whether key is present in column.
	Exists(ctx context.Context, column string, key []byte) (bool, error)

	// Delete removes key from column. Deleting an absent key succeeds.
	Delete(ctx context.Context, column string, key []byte) error
}

var (
	_ ClientDB = (*MemoryDB)(nil)
	_ ClientDB = (*BlobDB)(nil)
)

// KeyDeriver flattens a (column, key) pair into a composite key.
//
// Implementations must be deterministic and collision resistant, and must
// frame the two inputs so that no column/key split is ambiguous.
type KeyDeriver interface {
	Derive(column string, key []byte) []byte
}

// KeyDeriverFunc adapts a function to KeyDeriver.
type KeyDeriverFunc func(column string, key []byte) []byte

// Derive implements KeyDeriver.
func (f KeyDeriverFunc) Derive(column string, key []byte) []byte { return f(column, key) }

// Blake2bDeriver derives 32-byte BLAKE2b-256 composite keys. It is the default.
type Blake2bDeriver struct{}

// Derive implements KeyDeriver.
func (Blake2bDeriver) Derive(column string, key []byte) []byte {
	k := hash.ColumnKey(column, key)
	return k[:]
}

// SHA256Deriver derives 32-byte SHA-256 composite keys.
type SHA256Deriver struct{}

// Derive implements KeyDeriver.
func (SHA256Deriver) Derive(column string, key []byte) []byte {
	k := hash.ColumnKeySHA256(column, key)
	return k[:]
}
