// Package cache provides a small bounded TTL cache for values that are
// expensive to rebuild, such as reference-sheet tables and the merchant
// sell list.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value   V
	expires time.Time
}

// TTL is a concurrency-safe cache whose entries expire after a fixed
// duration. When full, inserting evicts the entry closest to expiry.
type TTL[K comparable, V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	max     int
	entries map[K]entry[V]

	now func() time.Time
}

// NewTTL returns a cache holding at most max entries for ttl each.
func NewTTL[K comparable, V any](ttl time.Duration, max int) *TTL[K, V] {
	return &TTL[K, V]{
		ttl:     ttl,
		max:     max,
		entries: make(map[K]entry[V]),
		now:     time.Now,
	}
}

// Get returns the cached value and whether it is present and fresh.
func (c *TTL[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.now().After(e.expires) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores a value, evicting expired entries first and then the entry
// closest to expiry if the cache is still full.
func (c *TTL[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, k)
		}
	}
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.max {
		var (
			oldest   K
			oldestAt time.Time
			found    bool
		)
		for k, e := range c.entries {
			if !found || e.expires.Before(oldestAt) {
				oldest, oldestAt, found = k, e.expires, true
			}
		}
		if found {
			delete(c.entries, oldest)
		}
	}
	c.entries[key] = entry[V]{value: value, expires: now.Add(c.ttl)}
}

// Invalidate drops one entry.
func (c *TTL[K, V]) Invalidate(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len reports the number of stored entries, expired ones included.
func (c *TTL[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
