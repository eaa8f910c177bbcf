package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestCache(t *testing.T) (*Memory[string], *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[string](0)
	c.now = clock.Now
	t.Cleanup(c.Close)
	return c, clock
}

func TestMemory_GetSet(t *testing.T) {
	c, _ := newTestCache(t)

	c.Set("key1", "value1", time.Minute)
	v, ok := c.Get("key1")
	require.True(t, ok)
	assert.Equal(t, "value1", v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestMemory_Expiration(t *testing.T) {
	c, clock := newTestCache(t)

	c.Set("k", "v", time.Minute)
	clock.Advance(59 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	clock.Advance(2 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)

	assert.Equal(t, 1, c.DeleteExpired())
	assert.Equal(t, 0, c.Stats().CurrentSize)
}

func TestMemory_Clear(t *testing.T) {
	c, _ := newTestCache(t)
	c.Set("a", "1", time.Minute)
	c.Set("b", "2", time.Minute)

	c.Clear()
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Stats().CurrentSize)
}

func TestMemory_Stats(t *testing.T) {
	c, _ := newTestCache(t)
	c.Set("a", "1", time.Minute)
	c.Get("a")
	c.Get("a")
	c.Get("nope")

	s := c.Stats()
	assert.Equal(t, int64(2), s.Hits)
	assert.Equal(t, int64(1), s.Misses)
	assert.Equal(t, int64(1), s.Sets)
	assert.Equal(t, 1, s.CurrentSize)
}

func TestMemory_CloseTwice(t *testing.T) {
	c := New[int](time.Millisecond)
	c.Close()
	c.Close()
}

func TestMemory_JanitorStopsOnClose(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	c := New[string](5 * time.Millisecond)
	c.Set("k", "v", time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	c.Close()
}
