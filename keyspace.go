package coldb

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hupe1980/coldb/internal/column"
)

type opKind uint8

const (
	opGet opKind = iota
	opPut
	opExists
	opDelete
)

func (k opKind) String() string {
	switch k {
	case opGet:
		return "get"
	case opPut:
		return "put"
	case opExists:
		return "exists"
	case opDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// keyspace resolves (column, key) pairs and reports every operation.
type keyspace struct {
	columns *column.Registry
	deriver KeyDeriver
	metrics MetricsCollector
	logger  *Logger
}

func newKeyspace(columns []string, o options) keyspace {
	return keyspace{
		columns: column.New(columns...),
		deriver: o.keyDeriver,
		metrics: o.metricsCollector,
		logger:  o.logger,
	}
}

// resolve checks the column and derives the composite key.
func (ks *keyspace) resolve(col string, key []byte) ([]byte, error) {
	if !ks.columns.Contains(col) {
		return nil, &ErrUnknownColumn{Column: col}
	}
	return ks.deriver.Derive(col, key), nil
}

// observe reports a finished operation. n is the value size for puts;
// ok is found for gets and the result for exists.
func (ks *keyspace) observe(ctx context.Context, op opKind, col string, start time.Time, n int, ok bool, err error) {
	d := time.Since(start)
	switch op {
	case opGet:
		ks.metrics.RecordGet(col, ok, d, err)
		ks.logger.LogGet(ctx, col, ok, err)
	case opPut:
		ks.metrics.RecordPut(col, n, d, err)
		ks.logger.LogPut(ctx, col, n, err)
	case opExists:
		ks.metrics.RecordExists(col, d, err)
		ks.logger.LogExists(ctx, col, ok, err)
	case opDelete:
		ks.metrics.RecordDelete(col, d, err)
		ks.logger.LogDelete(ctx, col, err)
	}
}

// guard is the single reader-writer lock of a store. A panic that escapes
// while the write lock is held poisons the guard; from then on every
// acquisition panics with ErrPoisoned.
type guard struct {
	mu       sync.RWMutex
	poisoned atomic.Bool
}

func (g *guard) read(fn func() error) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	g.checkPoisoned()
	return fn()
}

func (g *guard) write(fn func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.checkPoisoned()

	completed := false
	defer func() {
		if !completed {
			g.poisoned.Store(true)
		}
	}()

	err := fn()
	completed = true
	return err
}

func (g *guard) checkPoisoned() {
	if g.poisoned.Load() {
		panic(ErrPoisoned)
	}
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
