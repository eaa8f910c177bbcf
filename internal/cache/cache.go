// Package cache provides a small in-memory cache with TTL support.
package cache

import (
	"sync"
	"time"
)

// Stats holds cache performance counters.
type Stats struct {
	Hits        int64 `json:"hits"`
	Misses      int64 `json:"misses"`
	Sets        int64 `json:"sets"`
	Evictions   int64 `json:"evictions"`
	CurrentSize int   `json:"current_size"`
}

type entry[V any] struct {
	value      V
	expiration time.Time
}

func (e *entry[V]) expired(now time.Time) bool {
	return now.After(e.expiration)
}

// Memory is a thread-safe TTL cache. The zero value is not usable; use New.
type Memory[V any] struct {
	mu      sync.Mutex
	entries map[string]*entry[V]
	stats   Stats
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a cache. A positive cleanupInterval starts a janitor
// goroutine that evicts expired entries until Close is called.
func New[V any](cleanupInterval time.Duration) *Memory[V] {
	c := &Memory[V]{
		entries: make(map[string]*entry[V]),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go c.janitor(cleanupInterval)
	}
	return c
}

// Get returns the value for key if present and not expired.
func (c *Memory[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || e.expired(c.now()) {
		c.stats.Misses++
		var zero V
		return zero, false
	}
	c.stats.Hits++
	return e.value, true
}

// Set stores value under key for ttl.
func (c *Memory[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &entry[V]{value: value, expiration: c.now().Add(ttl)}
	c.stats.Sets++
}

// Clear removes all entries.
func (c *Memory[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry[V])
}

// Stats returns a snapshot of the counters.
func (c *Memory[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.CurrentSize = len(c.entries)
	return s
}

// DeleteExpired removes expired entries and returns how many were removed.
func (c *Memory[V]) DeleteExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
			n++
		}
	}
	c.stats.Evictions += int64(n)
	return n
}

// Close stops the janitor. It is safe to call more than once.
func (c *Memory[V]) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Memory[V]) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.DeleteExpired()
		case <-c.stop:
			return
		}
	}
}
