package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	require.NoError(t, c.AcquireMemory(50))
	require.NoError(t, c.AcquireMemory(40))
	assert.Equal(t, int64(90), c.MemoryUsage())

	err := c.AcquireMemory(20)
	assert.ErrorIs(t, err, ErrMemoryLimitExceeded)
	assert.Equal(t, int64(90), c.MemoryUsage())

	c.ReleaseMemory(50)
	assert.Equal(t, int64(40), c.MemoryUsage())

	assert.True(t, c.TryAcquireMemory(20))
	assert.Equal(t, int64(60), c.MemoryUsage())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{})

	require.NoError(t, c.AcquireMemory(1000))
	assert.Equal(t, int64(1000), c.MemoryUsage())

	c.ReleaseMemory(500)
	assert.Equal(t, int64(500), c.MemoryUsage())
}

func TestController_IOSlots(t *testing.T) {
	c := NewController(Config{MaxConcurrentIO: 2})

	require.NoError(t, c.AcquireIO(t.Context()))
	require.NoError(t, c.AcquireIO(t.Context()))
	assert.Equal(t, int64(2), c.IOInFlight())

	assert.False(t, c.TryAcquireIO())

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.AcquireIO(ctx), context.DeadlineExceeded)

	c.ReleaseIO()
	assert.True(t, c.TryAcquireIO())
	assert.Equal(t, int64(2), c.IOInFlight())
}

func TestController_WaitBytes(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1024})

	// The bucket starts full, so one burst is admitted immediately.
	require.NoError(t, c.WaitBytes(t.Context(), 1024))

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, c.WaitBytes(ctx, 4096))
}

func TestController_Nil(t *testing.T) {
	var c *Controller

	assert.NoError(t, c.AcquireMemory(1<<40))
	assert.True(t, c.TryAcquireMemory(1))
	c.ReleaseMemory(1)
	assert.Equal(t, int64(0), c.MemoryUsage())

	assert.NoError(t, c.AcquireIO(t.Context()))
	assert.True(t, c.TryAcquireIO())
	c.ReleaseIO()
	assert.Equal(t, int64(0), c.IOInFlight())

	assert.NoError(t, c.WaitBytes(t.Context(), 1<<30))
}
