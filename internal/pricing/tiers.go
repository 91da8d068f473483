package pricing

import (
	"context"
	"time"

	"linkdao-marketplace-api/internal/cache"
	"linkdao-marketplace-api/internal/models"

	"gorm.io/gorm"
)

// Quote is the price of a product at a given quantity with the best
// discount tier applied.
type Quote struct {
	ProductID    string `json:"productId"`
	Quantity     int    `json:"quantity"`
	UnitPriceWei int64  `json:"unitPriceWei"`
	DiscountBps  int    `json:"discountBps"`
	UnitAfterWei int64  `json:"unitAfterWei"`
	TotalWei     int64  `json:"totalWei"`
}

// Service resolves quantity discount tiers for products. Tier sets change
// rarely but are read on every product view and checkout line, so they are
// cached per product with a TTL instead of being fetched each time.
type Service struct {
	db    *gorm.DB
	tiers *cache.LoadingCache[[]models.PriceTier]
}

// NewService constructs a Service whose cached tier sets stay fresh for ttl.
func NewService(db *gorm.DB, ttl time.Duration) *Service {
	s := &Service{db: db}
	s.tiers = cache.NewLoading(ttl, s.load)
	return s
}

func (s *Service) load(ctx context.Context, productID string) ([]models.PriceTier, error) {
	var tiers []models.PriceTier
	err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("min_quantity asc").
		Find(&tiers).Error
	if err != nil {
		return nil, err
	}
	// A product with no tiers caches an empty set; that is a valid result,
	// not a failed fetch.
	return tiers, nil
}

// TiersFor returns the discount tiers of a product, cached while fresh.
func (s *Service) TiersFor(ctx context.Context, productID string) ([]models.PriceTier, error) {
	return s.tiers.Get(ctx, productID)
}

// InvalidateTiers drops the cached tier set for a product, e.g. after the
// seller edits its tiers.
func (s *Service) InvalidateTiers(productID string) {
	s.tiers.Invalidate(productID)
	s.tiers.PurgeExpired()
}

// Quote prices quantity units of product, applying the best tier whose
// MinQuantity does not exceed the quantity. Discounted prices round down.
func (s *Service) Quote(ctx context.Context, product models.Product, quantity int) (Quote, error) {
	if quantity < 1 {
		quantity = 1
	}

	tiers, err := s.TiersFor(ctx, product.ID)
	if err != nil {
		return Quote{}, err
	}

	bps := 0
	for _, t := range tiers { // ordered by min_quantity asc
		if quantity >= t.MinQuantity {
			bps = t.DiscountBps
		}
	}

	unitAfter := product.PriceWei * int64(10000-bps) / 10000
	return Quote{
		ProductID:    product.ID,
		Quantity:     quantity,
		UnitPriceWei: product.PriceWei,
		DiscountBps:  bps,
		UnitAfterWei: unitAfter,
		TotalWei:     unitAfter * int64(quantity),
	}, nil
}
