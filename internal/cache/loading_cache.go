package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// LoadFunc fetches the value for a key from the backing source (DB, RPC,
// upstream API). A LoadFunc error is returned to the caller and the result
// is NOT cached; there is no negative caching.
type LoadFunc[V any] func(ctx context.Context, key string) (V, error)

// LoadingCache is a read-through wrapper around TTLCache. On a miss it
// invokes the configured LoadFunc and caches the result. Concurrent misses
// for the same key are coalesced into a single in-flight load via
// singleflight, so a thundering herd on a cold key issues one fetch.
//
// The underlying TTLCache is always constructed concurrency-safe; a loading
// cache only makes sense when multiple goroutines share it.
type LoadingCache[V any] struct {
	cache *TTLCache[string, V]
	load  LoadFunc[V]
	sf    singleflight.Group
}

// NewLoading constructs a LoadingCache with the given TTL and loader.
func NewLoading[V any](ttl time.Duration, load LoadFunc[V]) *LoadingCache[V] {
	return &LoadingCache[V]{
		cache: New[string, V](ttl, Options{ConcurrencySafe: true}),
		load:  load,
	}
}

// Get returns the cached value for key, loading and caching it on a miss.
func (c *LoadingCache[V]) Get(ctx context.Context, key string) (V, error) {
	if v, ok := c.cache.Get(key); ok {
		return v, nil
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		// A concurrent caller may have populated the entry while we waited
		// on the flight group.
		if v, ok := c.cache.Get(key); ok {
			return v, nil
		}
		val, err := c.load(ctx, key)
		if err != nil {
			return nil, err
		}
		c.cache.Put(key, val)
		return val, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}

// Invalidate drops the cached entry for key, forcing the next Get to load.
func (c *LoadingCache[V]) Invalidate(key string) {
	c.cache.Delete(key)
}

// IsValid reports whether key is cached and fresh, without side effects.
func (c *LoadingCache[V]) IsValid(key string) bool {
	return c.cache.IsValid(key)
}

// PurgeExpired sweeps expired entries from the underlying cache.
func (c *LoadingCache[V]) PurgeExpired() {
	c.cache.PurgeExpired()
}
