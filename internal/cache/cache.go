// Package cache provides the tiered in-memory caches backing classification
// lookups: generic LRU eviction with per-entry TTL expiry.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// Stats is a point-in-time snapshot of one cache's counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Expired   uint64
	Size      int
	Capacity  int
	HitRate   float64
}

// Adaptive resize thresholds used by Optimize.
const (
	lowHitRate     = 0.70
	highHitRate    = 0.90
	minSampleGets  = 20
	resizeGrowStep = 2
)

// Config configures a cache instance.
type Config struct {
	Capacity    int
	MinCapacity int
	MaxCapacity int
	DefaultTTL  time.Duration
}

type entry[V any] struct {
	value          V
	key            string
	insertedAt     time.Time
	lastAccessedAt time.Time
	expiresAt      time.Time
	hitCount       int
}

// Cache is a thread-safe LRU cache with lazy TTL expiry. Each classification
// resource type gets its own instance with its own capacity and TTL.
type Cache[V any] struct {
	items       map[string]*list.Element
	order       *list.List // front = most recently used
	capacity    int
	minCapacity int
	maxCapacity int
	defaultTTL  time.Duration

	hits      uint64
	misses    uint64
	evictions uint64
	expired   uint64

	// window counters feed Optimize's rolling hit rate
	windowHits   uint64
	windowMisses uint64

	mu sync.Mutex
}

// New creates a cache with the given configuration. Zero or negative
// capacities fall back to sane defaults.
func New[V any](cfg Config) *Cache[V] {
	if cfg.Capacity <= 0 {
		cfg.Capacity = 256
	}
	if cfg.MinCapacity <= 0 {
		cfg.MinCapacity = cfg.Capacity / 4
		if cfg.MinCapacity == 0 {
			cfg.MinCapacity = 1
		}
	}
	if cfg.MaxCapacity < cfg.Capacity {
		cfg.MaxCapacity = cfg.Capacity * 4
	}

	return &Cache[V]{
		items:       make(map[string]*list.Element),
		order:       list.New(),
		capacity:    cfg.Capacity,
		minCapacity: cfg.MinCapacity,
		maxCapacity: cfg.MaxCapacity,
		defaultTTL:  cfg.DefaultTTL,
	}
}

// Get retrieves a value if present and unexpired. An expired entry is
// evicted immediately and reported as a miss.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V

	elem, ok := c.items[key]
	if !ok {
		c.misses++
		c.windowMisses++
		return zero, false
	}

	ent := elem.Value.(*entry[V])
	if !ent.expiresAt.IsZero() && time.Now().After(ent.expiresAt) {
		c.removeElement(elem)
		c.expired++
		c.misses++
		c.windowMisses++
		return zero, false
	}

	ent.lastAccessedAt = time.Now()
	ent.hitCount++
	c.order.MoveToFront(elem)
	c.hits++
	c.windowHits++
	return ent.value, true
}

// Set stores a value with the cache's default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.SetTTL(key, value, c.defaultTTL)
}

// SetTTL stores a value with a per-entry TTL override. A zero TTL means the
// entry never expires.
func (c *Cache[V]) SetTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = now.Add(ttl)
	}

	if elem, ok := c.items[key]; ok {
		ent := elem.Value.(*entry[V])
		ent.value = value
		ent.lastAccessedAt = now
		ent.expiresAt = expiresAt
		c.order.MoveToFront(elem)
		return
	}

	ent := &entry[V]{
		key:            key,
		value:          value,
		insertedAt:     now,
		lastAccessedAt: now,
		expiresAt:      expiresAt,
	}
	c.items[key] = c.order.PushFront(ent)

	for len(c.items) > c.capacity {
		c.evictOldest()
	}
}

// Delete removes a key if present.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.removeElement(elem)
	}
}

// Len returns the number of live entries, including any not yet lazily
// expired.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.hits + c.misses
	rate := 0.0
	if total > 0 {
		rate = float64(c.hits) / float64(total)
	}

	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Expired:   c.expired,
		Size:      len(c.items),
		Capacity:  c.capacity,
		HitRate:   rate,
	}
}

// Cleanup purges every currently-expired entry and returns how many were
// removed. Run periodically by the manager.
func (c *Cache[V]) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for elem := c.order.Back(); elem != nil; {
		prev := elem.Prev()
		ent := elem.Value.(*entry[V])
		if !ent.expiresAt.IsZero() && now.After(ent.expiresAt) {
			c.removeElement(elem)
			c.expired++
			removed++
		}
		elem = prev
	}
	return removed
}

// Optimize adapts capacity to the hit rate observed since the previous
// call: grows when the cache is thrashing, shrinks when it is oversized.
// Capacity stays within the configured min/max bounds.
func (c *Cache[V]) Optimize() {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.windowHits + c.windowMisses
	if total < minSampleGets {
		return
	}
	rate := float64(c.windowHits) / float64(total)
	c.windowHits = 0
	c.windowMisses = 0

	switch {
	case rate < lowHitRate:
		grown := c.capacity * resizeGrowStep
		if grown > c.maxCapacity {
			grown = c.maxCapacity
		}
		c.capacity = grown
	case rate > highHitRate:
		shrunk := c.capacity / resizeGrowStep
		if shrunk < c.minCapacity {
			shrunk = c.minCapacity
		}
		c.capacity = shrunk
		for len(c.items) > c.capacity {
			c.evictOldest()
		}
	}
}

func (c *Cache[V]) evictOldest() {
	if elem := c.order.Back(); elem != nil {
		c.removeElement(elem)
		c.evictions++
	}
}

func (c *Cache[V]) removeElement(elem *list.Element) {
	ent := elem.Value.(*entry[V])
	delete(c.items, ent.key)
	c.order.Remove(elem)
}
