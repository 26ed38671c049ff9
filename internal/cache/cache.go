// Package cache provides a time-boxed memo for values that are expensive to
// rebuild, such as the master table of one fetch depth.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Cache maps keys to values with a freshness window. Values are replaced
// whole, never modified in place.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]entry[V]
	group   singleflight.Group
	now     func() time.Time
}

// New creates an empty cache using the wall clock.
func New[K comparable, V any]() *Cache[K, V] {
	return NewWithClock[K, V](time.Now)
}

// NewWithClock creates an empty cache that reads time from now.
func NewWithClock[K comparable, V any](now func() time.Time) *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]entry[V]),
		now:     now,
	}
}

// Get returns the value for key if it was stored less than ttl ago.
// Expired entries are removed.
func (c *Cache[K, V]) Get(key K, ttl time.Duration) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().Sub(e.storedAt) >= ttl {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, replacing any previous entry.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, storedAt: c.now()}
}

// GetOrCompute returns the fresh value for key or computes and stores a new
// one. Concurrent callers for the same key share a single computation.
// Errors are returned to every waiting caller and nothing is stored.
//
// The computation runs detached from ctx: a caller whose ctx ends stops
// waiting and gets ctx.Err(), but the shared computation runs to completion
// for the remaining callers.
func (c *Cache[K, V]) GetOrCompute(ctx context.Context, key K, ttl time.Duration, compute func(context.Context) (V, error)) (V, error) {
	var zero V
	if v, ok := c.Get(key, ttl); ok {
		return v, nil
	}

	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(fmt.Sprint(key), func() (interface{}, error) {
		// Another caller may have finished while we waited for the group
		if v, ok := c.Get(key, ttl); ok {
			return v, nil
		}
		v, err := compute(detached)
		if err != nil {
			return v, err
		}
		c.Set(key, v)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(V), nil
	}
}

// Invalidate drops every entry.
func (c *Cache[K, V]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]entry[V])
}

// CleanExpired removes entries older than ttl and returns how many were removed.
func (c *Cache[K, V]) CleanExpired(ttl time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	now := c.now()
	for key, e := range c.entries {
		if now.Sub(e.storedAt) >= ttl {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Size returns the number of cached entries, fresh or not.
func (c *Cache[K, V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
