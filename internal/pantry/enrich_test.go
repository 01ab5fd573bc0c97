package pantry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpmardones/despensa/internal/pantry"
	domain "github.com/jpmardones/despensa/pkg/types"
)

func entry(id, name string, typ domain.EntryType, expiry time.Time) domain.PantryEntry {
	return domain.PantryEntry{
		CanonicalID:     id,
		Name:            name,
		Quantity:        1,
		Status:          domain.StatusAvailable,
		Type:            typ,
		EstimatedExpiry: expiry,
	}
}

func TestEnrich(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fresh := now.AddDate(0, 0, 10)

	ings := map[string]domain.CanonicalIngredient{
		"tomate": {ID: "tomate", Icon: "🍅", Category: "Vegetable"},
	}
	pfs := map[string]domain.CanonicalPreparedFood{
		"empanadas": {ID: "empanadas", Icon: "🥟", Cuisine: domain.CuisineChilean},
	}

	t.Run("joins catalog data", func(t *testing.T) {
		t.Parallel()

		out := pantry.Enrich([]domain.PantryEntry{
			entry("tomate", "Tomate", domain.EntryIngredient, fresh),
		}, ings, pfs, now)

		require.Len(t, out, 1)
		assert.Equal(t, "🍅", out[0].Icon)
		assert.Equal(t, "Vegetable", out[0].Category)
		assert.Equal(t, domain.FreshnessFresh, out[0].Freshness)
	})

	t.Run("missing catalog records get fallbacks", func(t *testing.T) {
		t.Parallel()

		out := pantry.Enrich([]domain.PantryEntry{
			entry("unknown_quinoa_real", "Quinoa Real", domain.EntryIngredient, fresh),
			entry("prepared_pizza", "Pizza", domain.EntryPrepared, fresh),
		}, ings, pfs, now)

		require.Len(t, out, 2)
		assert.Equal(t, "🍱", out[0].Icon)
		assert.Equal(t, domain.CuisineUnclassified, out[0].Cuisine)
		assert.Equal(t, "📦", out[1].Icon)
		assert.Equal(t, "Other", out[1].Category)
	})

	t.Run("prepared entries keep their stored cuisine", func(t *testing.T) {
		t.Parallel()

		e := entry("empanadas", "Empanadas", domain.EntryPrepared, fresh)
		e.Cuisine = domain.CuisinePeruvian

		out := pantry.Enrich([]domain.PantryEntry{e}, ings, pfs, now)

		require.Len(t, out, 1)
		assert.Equal(t, domain.CuisinePeruvian, out[0].Cuisine)
		assert.Equal(t, "🥟", out[0].Icon)
	})

	t.Run("sorts expired first then by Spanish name", func(t *testing.T) {
		t.Parallel()

		out := pantry.Enrich([]domain.PantryEntry{
			entry("a", "Zapallo", domain.EntryIngredient, fresh),
			entry("b", "Ñoquis", domain.EntryIngredient, fresh),
			entry("c", "Tomate", domain.EntryIngredient, now.Add(-time.Hour)),
			entry("d", "Palta", domain.EntryIngredient, now.Add(24*time.Hour)),
		}, ings, pfs, now)

		require.Len(t, out, 4)
		assert.Equal(t, "Tomate", out[0].Name, "expired first")
		assert.Equal(t, "Palta", out[1].Name, "expiring soon second")
		assert.Equal(t, "Ñoquis", out[2].Name, "ñ sorts after n, before z")
		assert.Equal(t, "Zapallo", out[3].Name)
	})
}
