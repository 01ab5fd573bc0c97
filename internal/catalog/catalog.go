// Package catalog provides read access to the canonical ingredient and
// prepared-food reference catalogs.
package catalog

import (
	"context"
	"errors"

	"github.com/jpmardones/despensa/internal/store"
	domain "github.com/jpmardones/despensa/pkg/types"
)

// ErrNotFound is returned when a canonical id has no catalog record.
var ErrNotFound = errors.New("catalog: not found")

// Catalog resolves canonical ids to reference records. Implementations
// must be safe for concurrent use.
type Catalog interface {
	Ingredient(ctx context.Context, id string) (*domain.CanonicalIngredient, error)
	PreparedFood(ctx context.Context, id string) (*domain.CanonicalPreparedFood, error)
	Ingredients(ctx context.Context) ([]domain.CanonicalIngredient, error)
	PreparedFoods(ctx context.Context) ([]domain.CanonicalPreparedFood, error)
}

// StoreCatalog serves catalog reads straight from the database.
type StoreCatalog struct {
	store store.Store
}

// NewStoreCatalog creates a Catalog backed by the given store.
func NewStoreCatalog(s store.Store) *StoreCatalog {
	return &StoreCatalog{store: s}
}

func (c *StoreCatalog) Ingredient(ctx context.Context, id string) (*domain.CanonicalIngredient, error) {
	ing, err := c.store.GetIngredient(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	return ing, err
}

func (c *StoreCatalog) PreparedFood(ctx context.Context, id string) (*domain.CanonicalPreparedFood, error) {
	pf, err := c.store.GetPreparedFood(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	return pf, err
}

func (c *StoreCatalog) Ingredients(ctx context.Context) ([]domain.CanonicalIngredient, error) {
	return c.store.ListIngredients(ctx)
}

func (c *StoreCatalog) PreparedFoods(ctx context.Context) ([]domain.CanonicalPreparedFood, error) {
	return c.store.ListPreparedFoods(ctx)
}
