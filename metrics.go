package coldb

import (
	"errors"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    putCounter *prometheus.CounterVec
//	}
//
//	func (p *PrometheusCollector) RecordPut(column string, size int, duration time.Duration, err error) {
//	    p.putCounter.WithLabelValues(column).Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordGet is called after each get. found reports whether a value
	// was returned.
	RecordGet(column string, found bool, duration time.Duration, err error)

	// RecordPut is called after each put. size is the caller's value length.
	RecordPut(column string, size int, duration time.Duration, err error)

	// RecordExists is called after each exists check.
	RecordExists(column string, duration time.Duration, err error)

	// RecordDelete is called after each delete.
	RecordDelete(column string, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordGet(string, bool, time.Duration, error) {}
func (NoopMetricsCollector) RecordPut(string, int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordExists(string, time.Duration, error)    {}
func (NoopMetricsCollector) RecordDelete(string, time.Duration, error)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	GetCount       atomic.Int64
	GetHits        atomic.Int64
	GetErrors      atomic.Int64
	GetTotalNanos  atomic.Int64
	PutCount       atomic.Int64
	PutBytes       atomic.Int64
	PutErrors      atomic.Int64
	PutTotalNanos  atomic.Int64
	ExistsCount    atomic.Int64
	ExistsErrors   atomic.Int64
	DeleteCount    atomic.Int64
	DeleteErrors   atomic.Int64
	UnknownColumns atomic.Int64
}

// RecordGet implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGet(_ string, found bool, duration time.Duration, err error) {
	b.GetCount.Add(1)
	b.GetTotalNanos.Add(duration.Nanoseconds())
	if found {
		b.GetHits.Add(1)
	}
	b.recordErr(&b.GetErrors, err)
}

// RecordPut implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPut(_ string, size int, duration time.Duration, err error) {
	b.PutCount.Add(1)
	b.PutTotalNanos.Add(duration.Nanoseconds())
	if err == nil {
		b.PutBytes.Add(int64(size))
	}
	b.recordErr(&b.PutErrors, err)
}

// RecordExists implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExists(_ string, _ time.Duration, err error) {
	b.ExistsCount.Add(1)
	b.recordErr(&b.ExistsErrors, err)
}

// RecordDelete implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDelete(_ string, _ time.Duration, err error) {
	b.DeleteCount.Add(1)
	b.recordErr(&b.DeleteErrors, err)
}

func (b *BasicMetricsCollector) recordErr(counter *atomic.Int64, err error) {
	if err == nil {
		return
	}
	counter.Add(1)
	if errors.Is(err, ErrColumnNotFound) {
		b.UnknownColumns.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		GetCount:       b.GetCount.Load(),
		GetHits:        b.GetHits.Load(),
		GetErrors:      b.GetErrors.Load(),
		GetAvgNanos:    avg(b.GetTotalNanos.Load(), b.GetCount.Load()),
		PutCount:       b.PutCount.Load(),
		PutBytes:       b.PutBytes.Load(),
		PutErrors:      b.PutErrors.Load(),
		PutAvgNanos:    avg(b.PutTotalNanos.Load(), b.PutCount.Load()),
		ExistsCount:    b.ExistsCount.Load(),
		ExistsErrors:   b.ExistsErrors.Load(),
		DeleteCount:    b.DeleteCount.Load(),
		DeleteErrors:   b.DeleteErrors.Load(),
		UnknownColumns: b.UnknownColumns.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	GetCount       int64
	GetHits        int64
	GetErrors      int64
	GetAvgNanos    int64
	PutCount       int64
	PutBytes       int64
	PutErrors      int64
	PutAvgNanos    int64
	ExistsCount    int64
	ExistsErrors   int64
	DeleteCount    int64
	DeleteErrors   int64
	UnknownColumns int64
}
