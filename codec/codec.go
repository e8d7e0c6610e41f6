// Package codec frames values written to blob-backed stores.
//
// Every encoded value is self-describing: a one-byte compression kind, the
// uncompressed length and a CRC32C of the uncompressed bytes precede the
// payload. Decode therefore reads values written by any built-in codec,
// so the codec of a store can change without rewriting existing entries.
//
// Frame layout (little endian):
//
//	[kind uint8][rawLen uint32][crc32c uint32][payload...]
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/coldb/internal/hash"
)

// Codec encodes and decodes stored values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Encode(value []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
	Name() string
}

// Kind identifies the compression applied to a frame payload.
type Kind uint8

const (
	KindNone Kind = 0
	KindLZ4  Kind = 1
	KindZSTD Kind = 2
)

const headerSize = 9

// minSavings is the ratio a compressed payload must beat to be kept.
const minSavings = 0.9

var (
	// ErrCorrupt is returned when a frame is truncated or malformed.
	ErrCorrupt = errors.New("codec: corrupt frame")
	// ErrChecksumMismatch is returned when the decoded bytes fail the CRC32C check.
	ErrChecksumMismatch = errors.New("codec: checksum mismatch")
	// ErrValueTooLarge is returned for values that do not fit a uint32 length.
	ErrValueTooLarge = errors.New("codec: value too large")
)

// Default is used when no codec is configured.
var Default Codec = None{}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "none":
		return None{}, true
	case "lz4":
		return LZ4{}, true
	case "zstd":
		return ZSTD{}, true
	default:
		return nil, false
	}
}

// None stores values uncompressed, with header and checksum.
type None struct{}

// Encode implements Codec.
func (None) Encode(value []byte) ([]byte, error) { return frame(KindNone, value, value) }

// Decode implements Codec.
func (None) Decode(data []byte) ([]byte, error) { return Decode(data) }

// Name implements Codec.
func (None) Name() string { return "none" }

// LZ4 compresses values with LZ4 block compression. Fast, modest ratio.
type LZ4 struct{}

// Encode implements Codec.
func (LZ4) Encode(value []byte) ([]byte, error) { return compress(KindLZ4, value) }

// Decode implements Codec.
func (LZ4) Decode(data []byte) ([]byte, error) { return Decode(data) }

// Name implements Codec.
func (LZ4) Name() string { return "lz4" }

// ZSTD compresses values with Zstandard. Better ratio, slower than LZ4.
type ZSTD struct{}

// Encode implements Codec.
func (ZSTD) Encode(value []byte) ([]byte, error) { return compress(KindZSTD, value) }

// Decode implements Codec.
func (ZSTD) Decode(data []byte) ([]byte, error) { return Decode(data) }

// Name implements Codec.
func (ZSTD) Name() string { return "zstd" }

// Decode decodes a frame produced by any built-in codec.
// The returned slice never aliases data.
func Decode(data []byte) ([]byte, error) {
	if len(data) < headerSize {
		return nil, ErrCorrupt
	}

	kind := Kind(data[0])
	rawLen := binary.LittleEndian.Uint32(data[1:])
	sum := binary.LittleEndian.Uint32(data[5:])
	payload := data[headerSize:]

	var (
		raw []byte
		err error
	)
	switch kind {
	case KindNone:
		if uint32(len(payload)) != rawLen {
			return nil, ErrCorrupt
		}
		raw = make([]byte, rawLen)
		copy(raw, payload)
	case KindLZ4:
		raw, err = decompressLZ4(payload, rawLen)
	case KindZSTD:
		raw, err = decompressZSTD(payload, rawLen)
	default:
		return nil, fmt.Errorf("%w: unknown kind %d", ErrCorrupt, kind)
	}
	if err != nil {
		return nil, err
	}

	if hash.CRC32C(raw) != sum {
		return nil, ErrChecksumMismatch
	}
	return raw, nil
}

func compress(kind Kind, value []byte) ([]byte, error) {
	if len(value) == 0 {
		return frame(KindNone, value, value)
	}

	var (
		compressed []byte
		err        error
	)
	switch kind {
	case KindLZ4:
		compressed, err = compressLZ4(value)
	case KindZSTD:
		compressed = compressZSTD(value)
	}
	if err != nil {
		return nil, err
	}

	// Keep the raw bytes when compression does not pay off.
	if len(compressed) == 0 || float64(len(compressed)) > float64(len(value))*minSavings {
		return frame(KindNone, value, value)
	}
	return frame(kind, value, compressed)
}

func frame(kind Kind, raw, payload []byte) ([]byte, error) {
	if uint64(len(raw)) > math.MaxUint32 {
		return nil, ErrValueTooLarge
	}

	out := make([]byte, headerSize+len(payload))
	out[0] = byte(kind)
	binary.LittleEndian.PutUint32(out[1:], uint32(len(raw)))
	binary.LittleEndian.PutUint32(out[5:], hash.CRC32C(raw))
	copy(out[headerSize:], payload)
	return out, nil
}
