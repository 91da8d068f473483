package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"linkdao-marketplace-api/internal/cache"
)

// NonceStore hands out one-time login nonces per wallet address. A nonce is
// valid for the store's TTL and is consumed (removed) on a successful check,
// so a replayed login with the same nonce fails.
type NonceStore struct {
	nonces *cache.TTLCache[string, string]
}

// NewNonceStore creates a NonceStore whose nonces expire after ttl.
func NewNonceStore(ttl time.Duration) *NonceStore {
	return &NonceStore{
		nonces: cache.New[string, string](ttl, cache.Options{ConcurrencySafe: true}),
	}
}

// Issue generates and records a fresh nonce for address, replacing any
// previous one.
func (s *NonceStore) Issue(address string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	nonce := hex.EncodeToString(buf)
	s.nonces.Put(address, nonce)
	return nonce, nil
}

// Consume reports whether nonce is the current, unexpired nonce for address,
// and removes it so it cannot be used twice.
func (s *NonceStore) Consume(address, nonce string) bool {
	current, ok := s.nonces.Get(address)
	if !ok || current != nonce {
		return false
	}
	s.nonces.Delete(address)
	return true
}
