package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Cheertaboi/qr-menu-pricing-service/internal/models"
)

// Loader fetches the promotions of one business from the source of truth.
type Loader interface {
	Load(ctx context.Context, businessID uuid.UUID) (*models.PromotionSnapshot, error)
}

type entry struct {
	snapshot  *models.PromotionSnapshot
	expiresAt time.Time
}

// PromotionCache keeps snapshots in process memory for ttl.
type PromotionCache struct {
	mu     sync.RWMutex
	store  map[uuid.UUID]entry
	ttl    time.Duration
	loader Loader
	now    func() time.Time
}

func NewPromotionCache(loader Loader, ttl time.Duration) *PromotionCache {
	return &PromotionCache{
		store:  make(map[uuid.UUID]entry),
		ttl:    ttl,
		loader: loader,
		now:    time.Now,
	}
}

func (c *PromotionCache) Get(businessID uuid.UUID) (*models.PromotionSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.store[businessID]
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, false
	}
	return e.snapshot, true
}

func (c *PromotionCache) Set(businessID uuid.UUID, s *models.PromotionSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[businessID] = entry{snapshot: s, expiresAt: c.now().Add(c.ttl)}
}

// Load returns the cached snapshot or loads and stores a fresh one.
// Snapshots are shared between callers and must not be mutated.
func (c *PromotionCache) Load(ctx context.Context, businessID uuid.UUID) (*models.PromotionSnapshot, error) {
	if s, ok := c.Get(businessID); ok {
		return s, nil
	}
	s, err := c.loader.Load(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if c.ttl > 0 {
		c.Set(businessID, s)
	}
	return s, nil
}

func (c *PromotionCache) Invalidate(_ context.Context, businessID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, businessID)
	return nil
}
