package coldb

import (
	"log/slog"

	"github.com/hupe1980/coldb/codec"
)

type options struct {
	keyDeriver       KeyDeriver
	codec            codec.Codec
	metricsCollector MetricsCollector
	logger           *Logger
	maxConcurrentIO  int64
	ioBytesPerSec    int64
	cacheBytes       int64
	memoryLimitBytes int64
}

// Option configures OpenMemoryDB and OpenBlobDB.
type Option func(*options)

// WithKeyDeriver replaces the composite key derivation.
//
// A custom deriver must be deterministic and must never map two distinct
// (column, key) pairs to the same output, or values leak across columns.
// If nil is passed, Blake2bDeriver is used.
func WithKeyDeriver(d KeyDeriver) Option {
	return func(o *options) {
		if d == nil {
			d = Blake2bDeriver{}
		}
		o.keyDeriver = d
	}
}

// WithCodec sets the codec BlobDB uses to encode values.
// Existing entries stay readable after a codec change.
// If nil is passed, codec.Default is used. MemoryDB ignores this option.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithMaxConcurrentIO bounds the number of in-flight blob store calls
// issued by a BlobDB. n <= 0 means unlimited.
func WithMaxConcurrentIO(n int64) Option {
	return func(o *options) {
		o.maxConcurrentIO = n
	}
}

// WithIORateLimit throttles the encoded bytes a BlobDB moves to and from
// its blob store. bytesPerSec <= 0 means unlimited.
func WithIORateLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.ioBytesPerSec = bytesPerSec
	}
}

// WithCache puts a read-through LRU of capacityBytes in front of a
// BlobDB's blob store.
//
// Example:
//
//	db := coldb.OpenBlobDB(s3Store, coldb.DefaultColumns,
//	    coldb.WithCache(64<<20),
//	    coldb.WithMemoryLimit(256<<20),
//	)
func WithCache(capacityBytes int64) Option {
	return func(o *options) {
		o.cacheBytes = capacityBytes
	}
}

// WithMemoryLimit caps the memory the BlobDB cache may hold.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimitBytes = bytes
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &coldb.BasicMetricsCollector{}
//	db := coldb.OpenMemoryDB(coldb.DefaultColumns, coldb.WithMetricsCollector(metrics))
//	// ... use db ...
//	stats := metrics.GetStats()
//	fmt.Printf("Puts: %d, Avg latency: %dns\n", stats.PutCount, stats.PutAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := coldb.NewJSONLogger(slog.LevelInfo)
//	db := coldb.OpenMemoryDB(coldb.DefaultColumns, coldb.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		keyDeriver:       Blake2bDeriver{},
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
