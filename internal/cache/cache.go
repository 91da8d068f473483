package cache

// Cache defines a minimal key-value cache where every entry shares a single
// TTL fixed at construction time. An entry is valid while less than the TTL
// has elapsed since it was inserted; expired entries are evicted lazily when
// looked up. Implementations may or may not be goroutine-safe depending on
// configuration.
type Cache[K comparable, V any] interface {
	// Get returns the value and whether it was present and not expired.
	// Looking up an expired entry removes it as a side effect.
	Get(key K) (V, bool)

	// Put inserts or overwrites the entry for key, stamping it with the
	// current time. Overwriting resets the entry's freshness window.
	Put(key K, value V)

	// IsValid reports whether a key is present and not expired. Pure query;
	// unlike Get it never evicts.
	IsValid(key K) bool

	// Delete removes a key if present.
	Delete(key K)

	// Len returns the number of non-expired items currently stored.
	Len() int

	// Clear removes all entries.
	Clear()

	// PurgeExpired scans and removes expired entries.
	PurgeExpired()
}
