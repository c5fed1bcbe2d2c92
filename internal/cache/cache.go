// Package cache provides a bounded in-memory cache with lazy expiry and
// least-recently-touched eviction.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// EvictReason says why an entry left the cache.
type EvictReason string

const (
	EvictExpired  EvictReason = "expired"
	EvictCapacity EvictReason = "capacity"
)

type entry[V any] struct {
	key      string
	value    V
	storedAt time.Time
}

// Cache maps string keys to values that expire a fixed duration after they
// were stored. The front of the recency list is always the key least
// recently inserted or read; it is the one evicted when the cache is full.
//
// Reads move a fresh key to the back of the list without touching its
// storedAt, so a hot entry still expires on schedule.
type Cache[V any] struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	order    *list.List
	items    map[string]*list.Element
	now      func() time.Time
	onEvict  func(key string, reason EvictReason)
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	now     func() time.Time
	onEvict func(key string, reason EvictReason)
}

// WithClock sets the time source (for testing).
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithEvictHook registers a callback invoked for every expired or
// capacity-evicted entry. It runs with the cache lock held and must not
// call back into the cache.
func WithEvictHook(fn func(key string, reason EvictReason)) Option {
	return func(o *options) {
		o.onEvict = fn
	}
}

// New creates a cache. A capacity of zero or less means unbounded.
func New[V any](ttl time.Duration, capacity int, opts ...Option) *Cache[V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[V]{
		ttl:      ttl,
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element),
		now:      o.now,
		onEvict:  o.onEvict,
	}
}

// Get returns the value stored under key. A stale entry is removed and
// reported as a miss.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.items[key]
	if !ok {
		return zero, false
	}
	e := el.Value.(*entry[V])
	if c.now().Sub(e.storedAt) >= c.ttl {
		c.remove(el, EvictExpired)
		return zero, false
	}
	c.order.MoveToBack(el)
	return e.value, true
}

// Set stores value under key, stamped with the current time.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.order.Remove(el)
		delete(c.items, key)
	} else if c.capacity > 0 && len(c.items) >= c.capacity {
		if oldest := c.order.Front(); oldest != nil {
			c.remove(oldest, EvictCapacity)
		}
	}

	c.items[key] = c.order.PushBack(&entry[V]{
		key:      key,
		value:    value,
		storedAt: c.now(),
	})
}

// Delete removes key. Returns false if it was not present.
func (c *Cache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return false
	}
	c.order.Remove(el)
	delete(c.items, key)
	return true
}

// Clear removes every entry.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	c.items = make(map[string]*list.Element)
}

// Len returns the number of stored entries, including stale ones that
// have not been read since they expired.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Keys returns the stored keys, least recently touched first.
func (c *Cache[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.items))
	for el := c.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*entry[V]).key)
	}
	return keys
}

// TTL returns the expiry window.
func (c *Cache[V]) TTL() time.Duration { return c.ttl }

// Capacity returns the key limit, or zero when unbounded.
func (c *Cache[V]) Capacity() int {
	if c.capacity < 0 {
		return 0
	}
	return c.capacity
}

// remove must be called with c.mu held.
func (c *Cache[V]) remove(el *list.Element, reason EvictReason) {
	e := el.Value.(*entry[V])
	c.order.Remove(el)
	delete(c.items, e.key)
	if c.onEvict != nil {
		c.onEvict(e.key, reason)
	}
}
