package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetSet(t *testing.T) {
	c := New[string](Config{Capacity: 4})

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", "alpha")
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "alpha", got)

	// Overwriting keeps a single entry.
	c.Set("a", "alpha2")
	got, ok = c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "alpha2", got)
	assert.Equal(t, 1, c.Len())
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int](Config{Capacity: 3})

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	// Touch "a" so "b" becomes the eviction victim.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Set("d", 4)

	_, ok = c.Get("b")
	assert.False(t, ok, "least recently used entry should be evicted")
	for _, key := range []string{"a", "c", "d"} {
		_, ok := c.Get(key)
		assert.True(t, ok, "key %q should survive eviction", key)
	}
	assert.Equal(t, uint64(1), c.Stats().Evictions)
}

func TestCacheTTLExpiry(t *testing.T) {
	c := New[string](Config{Capacity: 4})

	c.SetTTL("short", "gone soon", 10*time.Millisecond)
	c.SetTTL("forever", "stays", 0)

	got, ok := c.Get("short")
	require.True(t, ok)
	assert.Equal(t, "gone soon", got)

	time.Sleep(20 * time.Millisecond)

	_, ok = c.Get("short")
	assert.False(t, ok, "expired entry should read as a miss")
	_, ok = c.Get("forever")
	assert.True(t, ok, "zero TTL means no expiry")

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Expired)
}

func TestCacheCleanup(t *testing.T) {
	c := New[int](Config{Capacity: 8})

	c.SetTTL("a", 1, 5*time.Millisecond)
	c.SetTTL("b", 2, 5*time.Millisecond)
	c.SetTTL("c", 3, time.Hour)

	time.Sleep(15 * time.Millisecond)

	removed := c.Cleanup()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Len())
}

func TestCacheStats(t *testing.T) {
	c := New[string](Config{Capacity: 4})

	stats := c.Stats()
	assert.Zero(t, stats.HitRate, "no gets means no hit rate")

	c.Set("a", "alpha")
	c.Get("a")
	c.Get("a")
	c.Get("nope")
	c.Get("nada")

	stats = c.Stats()
	assert.Equal(t, uint64(2), stats.Hits)
	assert.Equal(t, uint64(2), stats.Misses)
	assert.InDelta(t, 0.5, stats.HitRate, 0.001)
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, 4, stats.Capacity)
}

func TestCacheOptimize(t *testing.T) {
	t.Run("grows when thrashing", func(t *testing.T) {
		c := New[int](Config{Capacity: 4, MaxCapacity: 16})

		// All misses, well past the sample window.
		for i := 0; i < minSampleGets+5; i++ {
			c.Get(fmt.Sprintf("miss-%d", i))
		}
		c.Optimize()
		assert.Equal(t, 8, c.Stats().Capacity)
	})

	t.Run("shrinks when oversized", func(t *testing.T) {
		c := New[int](Config{Capacity: 8, MinCapacity: 2})

		c.Set("hot", 1)
		for i := 0; i < minSampleGets+5; i++ {
			c.Get("hot")
		}
		c.Optimize()
		assert.Equal(t, 4, c.Stats().Capacity)
	})

	t.Run("respects max bound", func(t *testing.T) {
		c := New[int](Config{Capacity: 4, MaxCapacity: 4})

		for i := 0; i < minSampleGets; i++ {
			c.Get("miss")
		}
		c.Optimize()
		assert.Equal(t, 4, c.Stats().Capacity)
	})

	t.Run("needs a sample window", func(t *testing.T) {
		c := New[int](Config{Capacity: 4, MaxCapacity: 16})

		for i := 0; i < minSampleGets-1; i++ {
			c.Get("miss")
		}
		c.Optimize()
		assert.Equal(t, 4, c.Stats().Capacity, "too few gets should not resize")
	})

	t.Run("shrink evicts overflow", func(t *testing.T) {
		c := New[int](Config{Capacity: 8, MinCapacity: 2})

		for i := 0; i < 8; i++ {
			c.Set(fmt.Sprintf("k-%d", i), i)
		}
		for i := 0; i < minSampleGets+5; i++ {
			c.Get("k-7")
		}
		c.Optimize()
		assert.LessOrEqual(t, c.Len(), 4)
	})
}

func TestCacheDelete(t *testing.T) {
	c := New[string](Config{Capacity: 4})

	c.Set("a", "alpha")
	c.Delete("a")
	c.Delete("a") // absent delete is a no-op

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}
