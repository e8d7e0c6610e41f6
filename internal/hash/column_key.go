package hash

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// ColumnKeySize is the size of a composite column key in bytes.
const ColumnKeySize = 32

// ColumnKey derives the BLAKE2b-256 composite key for key within column.
func ColumnKey(column string, key []byte) [ColumnKeySize]byte {
	// New256 only fails for keys longer than 64 bytes; we pass none.
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	return sum(h, column, key)
}

// ColumnKeySHA256 derives the SHA-256 composite key for key within column.
func ColumnKeySHA256(column string, key []byte) [ColumnKeySize]byte {
	return sum(sha256.New(), column, key)
}

func sum(h hash.Hash, column string, key []byte) [ColumnKeySize]byte {
	var prefix [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(prefix[:], uint64(len(column)))

	_, _ = h.Write(prefix[:n])
	_, _ = h.Write([]byte(column))
	_, _ = h.Write(key)

	var out [ColumnKeySize]byte
	h.Sum(out[:0])
	return out
}
