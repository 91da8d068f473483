package profiles

import (
	"context"
	"errors"
	"time"

	"linkdao-marketplace-api/internal/cache"
	"linkdao-marketplace-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when no profile exists for an address.
var ErrNotFound = errors.New("profile not found")

// Service serves seller profiles keyed by checksummed wallet address.
// Reads go through a TTL cache so repeated views of the same seller within
// the freshness window hit memory instead of the database; concurrent cold
// reads of one address share a single load. A failed load is never cached.
type Service struct {
	db    *gorm.DB
	cache *cache.LoadingCache[models.SellerProfile]
}

// NewService constructs a Service whose cached profiles stay fresh for ttl.
func NewService(db *gorm.DB, ttl time.Duration) *Service {
	s := &Service{db: db}
	s.cache = cache.NewLoading(ttl, s.load)
	return s
}

func (s *Service) load(ctx context.Context, address string) (models.SellerProfile, error) {
	var p models.SellerProfile
	err := s.db.WithContext(ctx).Where("address = ?", address).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.SellerProfile{}, ErrNotFound
		}
		return models.SellerProfile{}, err
	}
	return p, nil
}

// Get returns the profile for address, serving from cache while fresh.
// The address must already be normalized (EIP-55).
func (s *Service) Get(ctx context.Context, address string) (models.SellerProfile, error) {
	return s.cache.Get(ctx, address)
}

// IsCached reports whether address has a fresh cached profile. No side effects.
func (s *Service) IsCached(address string) bool {
	return s.cache.IsValid(address)
}

// Upsert creates or updates a profile and drops the cached copy so the next
// read observes the new data. Writes also sweep expired entries; the server
// is long-lived, so purely lazy eviction would let never-revisited sellers
// accumulate.
func (s *Service) Upsert(ctx context.Context, p *models.SellerProfile) error {
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(p).Error; err != nil {
		return err
	}
	s.cache.Invalidate(p.Address)
	s.cache.PurgeExpired()
	return nil
}
