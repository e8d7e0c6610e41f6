package coldb

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/coldb/blobstore"
	"github.com/hupe1980/coldb/codec"
	"github.com/hupe1980/coldb/internal/cache"
	"github.com/hupe1980/coldb/internal/resource"
)

// BlobDB is a ClientDB whose flat mapping lives in a blobstore.BlobStore.
//
// Each entry is one blob named after its composite key. Values are encoded
// with the configured codec; any supported encoding is readable regardless
// of the codec in use. BlobDB serializes access with the same reader-writer
// contract as MemoryDB, so a Get that starts after a Put returned observes
// that Put even on eventually consistent backends that offer
// read-after-write for a single client.
type BlobDB struct {
	guard
	store blobstore.BlobStore
	codec codec.Codec
	rc    *resource.Controller
	ks    keyspace
}

// OpenBlobDB opens a store over the given blob store with the given columns.
// Entries already present in the blob store are visible immediately.
func OpenBlobDB(store blobstore.BlobStore, columns []string, optFns ...Option) *BlobDB {
	o := applyOptions(optFns)

	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:   o.memoryLimitBytes,
		MaxConcurrentIO:    o.maxConcurrentIO,
		IOLimitBytesPerSec: o.ioBytesPerSec,
	})

	if o.cacheBytes > 0 {
		store = blobstore.NewCachingStore(store, cache.NewLRU(o.cacheBytes, rc))
	}

	b := &BlobDB{
		store: store,
		codec: o.codec,
		rc:    rc,
		ks:    newKeyspace(columns, o),
	}
	b.ks.logger.LogOpen(context.Background(), "blob", b.ks.columns.Names())
	return b
}

// Get returns the decoded value under key in column.
func (b *BlobDB) Get(ctx context.Context, column string, key []byte) ([]byte, bool, error) {
	start := time.Now()

	ck, err := b.ks.resolve(column, key)
	if err != nil {
		b.ks.observe(ctx, opGet, column, start, 0, false, err)
		return nil, false, err
	}

	var (
		value []byte
		found bool
	)
	err = b.read(func() error {
		data, err := b.fetch(ctx, blobName(ck))
		if err != nil {
			if errors.Is(err, blobstore.ErrNotFound) {
				return nil
			}
			return err
		}
		value, err = codec.Decode(data)
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		err = wrapOpErr(opGet, column, err)
		b.ks.observe(ctx, opGet, column, start, 0, false, err)
		return nil, false, err
	}

	b.ks.observe(ctx, opGet, column, start, 0, found, nil)
	return value, found, nil
}

// Put encodes value and stores it under key in column.
func (b *BlobDB) Put(ctx context.Context, column string, key, value []byte) error {
	start := time.Now()

	ck, err := b.ks.resolve(column, key)
	if err != nil {
		b.ks.observe(ctx, opPut, column, start, len(value), false, err)
		return err
	}

	data, err := b.codec.Encode(value)
	if err == nil {
		err = b.write(func() error {
			if err := b.acquire(ctx, len(data)); err != nil {
				return err
			}
			defer b.rc.ReleaseIO()
			return b.store.Put(ctx, blobName(ck), data)
		})
	}
	if err != nil {
		err = wrapOpErr(opPut, column, err)
	}

	b.ks.observe(ctx, opPut, column, start, len(value), false, err)
	return err
}

// Exists reports whether key is present in column.
func (b *BlobDB) Exists(ctx context.Context, column string, key []byte) (bool, error) {
	start := time.Now()

	ck, err := b.ks.resolve(column, key)
	if err != nil {
		b.ks.observe(ctx, opExists, column, start, 0, false, err)
		return false, err
	}

	var ok bool
	err = b.read(func() error {
		if err := b.acquire(ctx, 0); err != nil {
			return err
		}
		defer b.rc.ReleaseIO()

		var err error
		ok, err = b.store.Exists(ctx, blobName(ck))
		return err
	})
	if err != nil {
		err = wrapOpErr(opExists, column, err)
		b.ks.observe(ctx, opExists, column, start, 0, false, err)
		return false, err
	}

	b.ks.observe(ctx, opExists, column, start, 0, ok, nil)
	return ok, nil
}

// Delete removes key from column if present.
func (b *BlobDB) Delete(ctx context.Context, column string, key []byte) error {
	start := time.Now()

	ck, err := b.ks.resolve(column, key)
	if err != nil {
		b.ks.observe(ctx, opDelete, column, start, 0, false, err)
		return err
	}

	err = b.write(func() error {
		if err := b.acquire(ctx, 0); err != nil {
			return err
		}
		defer b.rc.ReleaseIO()

		err := b.store.Delete(ctx, blobName(ck))
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		err = wrapOpErr(opDelete, column, err)
	}

	b.ks.observe(ctx, opDelete, column, start, 0, false, err)
	return err
}

// Columns returns the declared columns in sorted order.
func (b *BlobDB) Columns() []string {
	return b.ks.columns.Names()
}

// fetch reads a blob within the IO limits. Bytes are charged after the
// read since the size is unknown up front.
func (b *BlobDB) fetch(ctx context.Context, name string) ([]byte, error) {
	if err := b.acquire(ctx, 0); err != nil {
		return nil, err
	}
	defer b.rc.ReleaseIO()

	data, err := b.store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := b.rc.WaitBytes(ctx, len(data)); err != nil {
		return nil, err
	}
	return data, nil
}

// acquire takes an IO slot and waits for n bytes of bandwidth.
// On success the caller must call ReleaseIO.
func (b *BlobDB) acquire(ctx context.Context, n int) error {
	if err := b.rc.AcquireIO(ctx); err != nil {
		return err
	}
	if err := b.rc.WaitBytes(ctx, n); err != nil {
		b.rc.ReleaseIO()
		return err
	}
	return nil
}

// blobName shards composite keys by their first byte: "ab/ab12...".
func blobName(ck []byte) string {
	h := hex.EncodeToString(ck)
	if len(h) < 2 {
		return "00/" + h
	}
	return h[:2] + "/" + h
}

func wrapOpErr(op opKind, column string, err error) error {
	return fmt.Errorf("coldb: %s %q: %w", op, column, err)
}
