package coldb

import (
	"context"
	"time"
)

// MemoryDB is an in-memory ClientDB.
//
// It is not optimized; it exists so that code written against ClientDB can
// be tested quickly without a persistent engine. Columns must all be
// declared at open time: using any other column fails with
// *ErrUnknownColumn, exactly as a column-family engine would.
type MemoryDB struct {
	guard
	entries map[string][]byte
	ks      keyspace
}

// OpenMemoryDB opens an empty in-memory store with the given columns.
// An empty column list is legal; every operation then fails column validation.
func OpenMemoryDB(columns []string, optFns ...Option) *MemoryDB {
	o := applyOptions(optFns)

	m := &MemoryDB{
		entries: make(map[string][]byte),
		ks:      newKeyspace(columns, o),
	}
	m.ks.logger.LogOpen(context.Background(), "memory", m.ks.columns.Names())
	return m
}

// Get returns a copy of the value under key in column.
// ctx is accepted for interface compatibility; the call never blocks on I/O.
func (m *MemoryDB) Get(ctx context.Context, column string, key []byte) ([]byte, bool, error) {
	start := time.Now()

	ck, err := m.ks.resolve(column, key)
	if err != nil {
		m.ks.observe(ctx, opGet, column, start, 0, false, err)
		return nil, false, err
	}

	var (
		value []byte
		found bool
	)
	_ = m.read(func() error {
		if v, ok := m.entries[string(ck)]; ok {
			value, found = cloneBytes(v), true
		}
		return nil
	})

	m.ks.observe(ctx, opGet, column, start, 0, found, nil)
	return value, found, nil
}

// Put stores a copy of value under key in column.
func (m *MemoryDB) Put(ctx context.Context, column string, key, value []byte) error {
	start := time.Now()

	ck, err := m.ks.resolve(column, key)
	if err != nil {
		m.ks.observe(ctx, opPut, column, start, len(value), false, err)
		return err
	}

	v := cloneBytes(value)
	_ = m.write(func() error {
		m.entries[string(ck)] = v
		return nil
	})

	m.ks.observe(ctx, opPut, column, start, len(value), false, nil)
	return nil
}

// Exists reports whether key is present in column.
func (m *MemoryDB) Exists(ctx context.Context, column string, key []byte) (bool, error) {
	start := time.Now()

	ck, err := m.ks.resolve(column, key)
	if err != nil {
		m.ks.observe(ctx, opExists, column, start, 0, false, err)
		return false, err
	}

	var ok bool
	_ = m.read(func() error {
		_, ok = m.entries[string(ck)]
		return nil
	})

	m.ks.observe(ctx, opExists, column, start, 0, ok, nil)
	return ok, nil
}

// Delete removes key from column if present.
func (m *MemoryDB) Delete(ctx context.Context, column string, key []byte) error {
	start := time.Now()

	ck, err := m.ks.resolve(column, key)
	if err != nil {
		m.ks.observe(ctx, opDelete, column, start, 0, false, err)
		return err
	}

	_ = m.write(func() error {
		delete(m.entries, string(ck))
		return nil
	})

	m.ks.observe(ctx, opDelete, column, start, 0, false, nil)
	return nil
}

// Columns returns the declared columns in sorted order.
func (m *MemoryDB) Columns() []string {
	return m.ks.columns.Names()
}

// Len returns the number of entries across all columns.
func (m *MemoryDB) Len() int {
	var n int
	_ = m.read(func() error {
		n = len(m.entries)
		return nil
	})
	return n
}
