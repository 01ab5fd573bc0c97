package catalog

import (
	"context"
	"sync"
	"time"

	domain "github.com/jpmardones/despensa/pkg/types"
)

const defaultTTL = 10 * time.Minute

// Cache wraps a Catalog and keeps both catalogs fully in memory.
// The reference data is small and changes only when reseeded, so a
// coarse TTL refresh of the whole snapshot is enough.
type Cache struct {
	inner Catalog
	ttl   time.Duration

	mu        sync.RWMutex
	ings      map[string]domain.CanonicalIngredient
	pfs       map[string]domain.CanonicalPreparedFood
	ingList   []domain.CanonicalIngredient
	pfList    []domain.CanonicalPreparedFood
	expiresAt time.Time
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithTTL overrides how long a snapshot is served before refresh.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// NewCache creates a caching decorator around the given Catalog.
func NewCache(inner Catalog, opts ...CacheOption) *Cache {
	c := &Cache{
		inner: inner,
		ttl:   defaultTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) Ingredient(ctx context.Context, id string) (*domain.CanonicalIngredient, error) {
	if err := c.refresh(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	ing, ok := c.ings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &ing, nil
}

func (c *Cache) PreparedFood(ctx context.Context, id string) (*domain.CanonicalPreparedFood, error) {
	if err := c.refresh(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	pf, ok := c.pfs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &pf, nil
}

func (c *Cache) Ingredients(ctx context.Context) ([]domain.CanonicalIngredient, error) {
	if err := c.refresh(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.CanonicalIngredient, len(c.ingList))
	copy(out, c.ingList)
	return out, nil
}

func (c *Cache) PreparedFoods(ctx context.Context) ([]domain.CanonicalPreparedFood, error) {
	if err := c.refresh(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.CanonicalPreparedFood, len(c.pfList))
	copy(out, c.pfList)
	return out, nil
}

// Invalidate drops the snapshot so the next read reloads. The seed
// command calls this after reseeding.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.expiresAt = time.Time{}
	c.mu.Unlock()
}

func (c *Cache) refresh(ctx context.Context) error {
	c.mu.RLock()
	fresh := time.Now().Before(c.expiresAt)
	c.mu.RUnlock()
	if fresh {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if time.Now().Before(c.expiresAt) {
		return nil
	}

	ingList, err := c.inner.Ingredients(ctx)
	if err != nil {
		return err
	}
	pfList, err := c.inner.PreparedFoods(ctx)
	if err != nil {
		return err
	}

	ings := make(map[string]domain.CanonicalIngredient, len(ingList))
	for _, ing := range ingList {
		ings[ing.ID] = ing
	}
	pfs := make(map[string]domain.CanonicalPreparedFood, len(pfList))
	for _, pf := range pfList {
		pfs[pf.ID] = pf
	}

	c.ings = ings
	c.pfs = pfs
	c.ingList = ingList
	c.pfList = pfList
	c.expiresAt = time.Now().Add(c.ttl)
	return nil
}
