package cache

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func TestCache_GetSet(t *testing.T) {
	c := New[string](time.Hour, 10)

	// Miss
	_, ok := c.Get("550")
	assert.False(t, ok, "empty cache should miss")

	// Set and hit
	c.Set("550", "Fight Club")
	got, ok := c.Get("550")
	require.True(t, ok, "should hit after set")
	assert.Equal(t, "Fight Club", got)

	// Different key should miss
	_, ok = c.Get("603")
	assert.False(t, ok, "different key should miss")

	c.Set("603", "The Matrix")
	got, ok = c.Get("603")
	require.True(t, ok)
	assert.Equal(t, "The Matrix", got)

	// First entry should still be there
	got, ok = c.Get("550")
	require.True(t, ok, "first entry should still exist")
	assert.Equal(t, "Fight Club", got)
	assert.Equal(t, 2, c.Len())
}

func TestCache_Expiry(t *testing.T) {
	clock := newFakeClock()
	var evicted []EvictReason
	c := New[int](10*time.Minute, 0,
		WithClock(clock.Now),
		WithEvictHook(func(_ string, reason EvictReason) { evicted = append(evicted, reason) }),
	)

	c.Set("popular", 1)

	clock.Advance(10*time.Minute - time.Nanosecond)
	_, ok := c.Get("popular")
	require.True(t, ok, "should hit just before TTL")

	// Exactly at the TTL boundary counts as stale.
	clock.Advance(time.Nanosecond)
	_, ok = c.Get("popular")
	assert.False(t, ok, "should miss at TTL")
	assert.Equal(t, 0, c.Len(), "stale entry should be removed on read")
	assert.Equal(t, []EvictReason{EvictExpired}, evicted)
}

func TestCache_ReadDoesNotExtendTTL(t *testing.T) {
	clock := newFakeClock()
	c := New[int](time.Hour, 0, WithClock(clock.Now))

	c.Set("550", 1)
	for range 5 {
		clock.Advance(10 * time.Minute)
		_, ok := c.Get("550")
		require.True(t, ok)
	}

	clock.Advance(10 * time.Minute)
	_, ok := c.Get("550")
	assert.False(t, ok, "frequent reads must not keep an entry alive past its TTL")
}

func TestCache_SetRefreshesTimestamp(t *testing.T) {
	clock := newFakeClock()
	c := New[string](time.Hour, 0, WithClock(clock.Now))

	c.Set("550", "old")
	clock.Advance(50 * time.Minute)
	c.Set("550", "new")
	clock.Advance(50 * time.Minute)

	got, ok := c.Get("550")
	require.True(t, ok, "re-set should restart the TTL")
	assert.Equal(t, "new", got)
	assert.Equal(t, 1, c.Len())
}

func TestCache_CapacityEvictsOldest(t *testing.T) {
	var evicted []string
	c := New[int](time.Hour, 3,
		WithEvictHook(func(key string, reason EvictReason) {
			assert.Equal(t, EvictCapacity, reason)
			evicted = append(evicted, key)
		}),
	)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)
	c.Set("d", 4)

	assert.Equal(t, []string{"a"}, evicted)
	assert.Equal(t, []string{"b", "c", "d"}, c.Keys())

	_, ok := c.Get("a")
	assert.False(t, ok, "oldest key should have been evicted")
	for _, k := range []string{"b", "c", "d"} {
		_, ok := c.Get(k)
		assert.True(t, ok, "key %q should remain", k)
	}
}

func TestCache_ReadProtectsFromEviction(t *testing.T) {
	c := New[int](time.Hour, 3)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	// Touch the oldest key so "b" becomes the eviction candidate.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Set("d", 4)

	_, ok = c.Get("a")
	assert.True(t, ok, "touched key should survive")
	_, ok = c.Get("b")
	assert.False(t, ok, "least recently touched key should be evicted")
}

func TestCache_UpdateExistingKeyAtCapacity(t *testing.T) {
	c := New[int](time.Hour, 2)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 10)

	assert.Equal(t, 2, c.Len(), "updating a key must not evict")
	assert.Equal(t, []string{"b", "a"}, c.Keys(), "update should bump recency")

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, got)
}

func TestCache_EmptyValueIsCached(t *testing.T) {
	c := New[[]string](time.Hour, 0)

	c.Set("discover", []string{})
	got, ok := c.Get("discover")
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestCache_DeleteClear(t *testing.T) {
	c := New[int](time.Hour, 0)

	c.Set("a", 1)
	c.Set("b", 2)

	assert.True(t, c.Delete("a"))
	assert.False(t, c.Delete("a"), "second delete should report absence")
	assert.Equal(t, []string{"b"}, c.Keys())

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Keys())

	c.Set("c", 3)
	_, ok := c.Get("c")
	assert.True(t, ok, "cache should be usable after Clear")
}

func TestCache_Unbounded(t *testing.T) {
	c := New[int](time.Hour, 0)
	for i := range 1000 {
		c.Set(strconv.Itoa(i), i)
	}
	assert.Equal(t, 1000, c.Len())
	assert.Equal(t, 0, c.Capacity())
	assert.Equal(t, time.Hour, c.TTL())
}
