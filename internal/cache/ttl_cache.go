package cache

import (
	"sync"
	"time"
)

// entry stores a cached value and the instant it was inserted. Validity is
// always computed at access time from insertedAt; "stale" is never a stored
// state.
type entry[V any] struct {
	value      V
	insertedAt time.Time
}

// TTLCache is a lightweight map-backed cache with a single TTL shared by all
// entries and optional concurrency safety. There is no background janitor:
// expired entries are removed when Get touches them, or in bulk via
// PurgeExpired.
type TTLCache[K comparable, V any] struct {
	// If muPtr is nil, the cache is NOT goroutine-safe.
	// If muPtr is non-nil, it guards all operations.
	muPtr *sync.RWMutex

	ttl   time.Duration
	items map[K]entry[V]
}

// Options controls construction of a TTLCache.
type Options struct {
	// ConcurrencySafe controls whether operations are guarded by a RWMutex.
	// If false, the cache is not safe for concurrent use and may be faster
	// in single-threaded contexts.
	ConcurrencySafe bool
}

// New constructs a TTLCache whose entries are valid for ttl after insertion.
// ttl must be positive.
func New[K comparable, V any](ttl time.Duration, opts Options) *TTLCache[K, V] {
	var mu *sync.RWMutex
	if opts.ConcurrencySafe {
		mu = &sync.RWMutex{}
	}
	return &TTLCache[K, V]{
		muPtr: mu,
		ttl:   ttl,
		items: make(map[K]entry[V]),
	}
}

func (c *TTLCache[K, V]) lockR() func() {
	if c.muPtr == nil {
		return func() {}
	}
	c.muPtr.RLock()
	return c.muPtr.RUnlock
}

func (c *TTLCache[K, V]) lockW() func() {
	if c.muPtr == nil {
		return func() {}
	}
	c.muPtr.Lock()
	return c.muPtr.Unlock
}

// now is a small indirection to allow test stubbing.
var now = time.Now

// fresh reports whether e is still within its TTL window. The boundary is
// exclusive: at exactly insertedAt+ttl the entry is expired.
func (c *TTLCache[K, V]) fresh(e entry[V], at time.Time) bool {
	return at.Sub(e.insertedAt) < c.ttl
}

// Get implements Cache.Get. It takes the write lock because looking up an
// expired entry evicts it.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	unlock := c.lockW()
	defer unlock()

	var zero V
	e, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if !c.fresh(e, now()) {
		// Expired: evict so a later IsValid within what would have been a
		// new window still reports false.
		delete(c.items, key)
		return zero, false
	}
	return e.value, true
}

// Put implements Cache.Put. Re-inserting a key overwrites the prior entry
// and resets its timestamp.
func (c *TTLCache[K, V]) Put(key K, value V) {
	unlock := c.lockW()
	defer unlock()

	c.items[key] = entry[V]{
		value:      value,
		insertedAt: now(),
	}
}

// IsValid implements Cache.IsValid.
func (c *TTLCache[K, V]) IsValid(key K) bool {
	unlock := c.lockR()
	defer unlock()

	e, ok := c.items[key]
	if !ok {
		return false
	}
	return c.fresh(e, now())
}

// Delete implements Cache.Delete.
func (c *TTLCache[K, V]) Delete(key K) {
	unlock := c.lockW()
	defer unlock()
	delete(c.items, key)
}

// Len implements Cache.Len. It counts only non-expired entries.
func (c *TTLCache[K, V]) Len() int {
	unlock := c.lockR()
	defer unlock()

	nowTs := now()
	count := 0
	for _, e := range c.items {
		if c.fresh(e, nowTs) {
			count++
		}
	}
	return count
}

// Clear implements Cache.Clear.
func (c *TTLCache[K, V]) Clear() {
	unlock := c.lockW()
	defer unlock()
	c.items = make(map[K]entry[V])
}

// PurgeExpired implements Cache.PurgeExpired.
func (c *TTLCache[K, V]) PurgeExpired() {
	unlock := c.lockW()
	defer unlock()
	if len(c.items) == 0 {
		return
	}
	nowTs := now()
	for k, e := range c.items {
		if !c.fresh(e, nowTs) {
			delete(c.items, k)
		}
	}
}

// Ensure TTLCache implements Cache at compile time.
var _ Cache[any, any] = (*TTLCache[any, any])(nil)
