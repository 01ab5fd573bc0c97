package catalog_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpmardones/despensa/internal/catalog"
	"github.com/jpmardones/despensa/internal/catalog/seed"
	domain "github.com/jpmardones/despensa/pkg/types"
)

// countingCatalog tracks how many times the backing lists are loaded.
type countingCatalog struct {
	loads atomic.Int64
	ings  []domain.CanonicalIngredient
	pfs   []domain.CanonicalPreparedFood
}

func (c *countingCatalog) Ingredient(ctx context.Context, id string) (*domain.CanonicalIngredient, error) {
	for i := range c.ings {
		if c.ings[i].ID == id {
			return &c.ings[i], nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (c *countingCatalog) PreparedFood(ctx context.Context, id string) (*domain.CanonicalPreparedFood, error) {
	for i := range c.pfs {
		if c.pfs[i].ID == id {
			return &c.pfs[i], nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (c *countingCatalog) Ingredients(ctx context.Context) ([]domain.CanonicalIngredient, error) {
	c.loads.Add(1)
	return c.ings, nil
}

func (c *countingCatalog) PreparedFoods(ctx context.Context) ([]domain.CanonicalPreparedFood, error) {
	return c.pfs, nil
}

func testInner() *countingCatalog {
	return &countingCatalog{
		ings: []domain.CanonicalIngredient{
			{ID: "tomate", Names: domain.LocalizedName{ES: "Tomate", EN: "Tomato"}, Icon: "🍅"},
		},
		pfs: []domain.CanonicalPreparedFood{
			{ID: "empanadas", Names: domain.LocalizedName{ES: "Empanadas", EN: "Empanadas"}, Cuisine: domain.CuisineChilean},
		},
	}
}

func TestCache_ServesFromSnapshot(t *testing.T) {
	t.Parallel()

	inner := testInner()
	c := catalog.NewCache(inner, catalog.WithTTL(time.Hour))
	ctx := context.Background()

	ing, err := c.Ingredient(ctx, "tomate")
	require.NoError(t, err)
	assert.Equal(t, "Tomate", ing.Names.ES)

	pf, err := c.PreparedFood(ctx, "empanadas")
	require.NoError(t, err)
	assert.Equal(t, domain.CuisineChilean, pf.Cuisine)

	_, err = c.Ingredient(ctx, "tomate")
	require.NoError(t, err)
	assert.Equal(t, int64(1), inner.loads.Load(), "second read should hit the snapshot")
}

func TestCache_MissReturnsNotFound(t *testing.T) {
	t.Parallel()

	c := catalog.NewCache(testInner(), catalog.WithTTL(time.Hour))

	_, err := c.Ingredient(context.Background(), "nope")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = c.PreparedFood(context.Background(), "nope")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestCache_InvalidateForcesReload(t *testing.T) {
	t.Parallel()

	inner := testInner()
	c := catalog.NewCache(inner, catalog.WithTTL(time.Hour))
	ctx := context.Background()

	_, err := c.Ingredients(ctx)
	require.NoError(t, err)

	c.Invalidate()

	_, err = c.Ingredients(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), inner.loads.Load())
}

func TestSeed_EmbeddedCatalogsDecode(t *testing.T) {
	t.Parallel()

	ings, err := seed.Ingredients()
	require.NoError(t, err)
	assert.NotEmpty(t, ings)
	for _, ing := range ings {
		assert.NotEmpty(t, ing.ID)
		assert.NotEmpty(t, ing.Names.ES)
		assert.Positive(t, ing.ShelfLifeDays, "ingredient %s", ing.ID)
	}

	pfs, err := seed.PreparedFoods()
	require.NoError(t, err)
	assert.NotEmpty(t, pfs)
	for _, pf := range pfs {
		assert.True(t, pf.Cuisine.Valid(), "prepared food %s", pf.ID)
	}
}
