package resource

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimitExceeded is returned when memory limit would be exceeded.
var ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

// Config holds resource limits. Zero values mean unlimited.
type Config struct {
	// MemoryLimitBytes is the hard limit for cache memory.
	MemoryLimitBytes int64

	// MaxConcurrentIO bounds in-flight backend calls.
	MaxConcurrentIO int64

	// IOLimitBytesPerSec bounds value throughput to and from the backend.
	IOLimitBytesPerSec int64
}

// Controller enforces a Config.
type Controller struct {
	cfg Config

	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	ioSem      *semaphore.Weighted // nil if unlimited
	ioInFlight atomic.Int64

	ioLimiter *rate.Limiter // nil if unlimited
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}
	if cfg.MaxConcurrentIO > 0 {
		c.ioSem = semaphore.NewWeighted(cfg.MaxConcurrentIO)
	}
	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// TryAcquireMemory reserves memory without blocking.
func (c *Controller) TryAcquireMemory(bytes int64) bool {
	return c.AcquireMemory(bytes) == nil
}

// AcquireMemory reserves memory.
// Returns ErrMemoryLimitExceeded if limit would be exceeded.
func (c *Controller) AcquireMemory(bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.memSem != nil && !c.memSem.TryAcquire(bytes) {
		return ErrMemoryLimitExceeded
	}

	c.memUsed.Add(bytes)
	return nil
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// AcquireIO reserves a backend call slot, blocking until one is free
// or ctx is done.
func (c *Controller) AcquireIO(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if c.ioSem != nil {
		if err := c.ioSem.Acquire(ctx, 1); err != nil {
			return err
		}
	}
	c.ioInFlight.Add(1)
	return nil
}

// TryAcquireIO reserves a backend call slot without blocking.
func (c *Controller) TryAcquireIO() bool {
	if c == nil {
		return true
	}
	if c.ioSem != nil && !c.ioSem.TryAcquire(1) {
		return false
	}
	c.ioInFlight.Add(1)
	return true
}

// ReleaseIO releases a slot obtained from AcquireIO or TryAcquireIO.
func (c *Controller) ReleaseIO() {
	if c == nil {
		return
	}
	c.ioInFlight.Add(-1)
	if c.ioSem != nil {
		c.ioSem.Release(1)
	}
}

// IOInFlight returns the number of held IO slots.
func (c *Controller) IOInFlight() int64 {
	if c == nil {
		return 0
	}
	return c.ioInFlight.Load()
}

// WaitBytes blocks until the bandwidth limit admits n bytes.
// Requests larger than the bucket are admitted in burst-sized chunks.
func (c *Controller) WaitBytes(ctx context.Context, n int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}

	burst := c.ioLimiter.Burst()
	for n > 0 {
		chunk := min(n, burst)
		if err := c.ioLimiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}
