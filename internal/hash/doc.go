// Package hash provides the hashing primitives used by coldb.
//
// # Column keys
//
// ColumnKey flattens a (column, key) pair into a 32-byte composite key.
// The hash input is framed as
//
//	uvarint(len(column)) || column || key
//
// so the boundary between the column name and the caller key is always
// recoverable. Plain concatenation would let ("ab", "c") and ("a", "bc")
// collide.
//
// BLAKE2b-256 is the default. ColumnKeySHA256 uses the same framing with
// SHA-256 for deployments that must stay on FIPS primitives.
//
// # Checksums
//
// CRC32C (Castagnoli) guards encoded values against corruption in blob
// backends. Go's crc32 package uses SSE4.2 / ARM CRC instructions when
// available.
package hash
