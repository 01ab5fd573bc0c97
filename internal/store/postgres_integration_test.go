//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jpmardones/despensa/internal/store"
	domain "github.com/jpmardones/despensa/pkg/types"
)

func setupPostgres(t *testing.T) *store.PostgresStore {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("despensa_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := store.NewPostgresStore(ctx, connStr)
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	require.NoError(t, s.Migrate(ctx))

	return s
}

func testEntry() *domain.PantryEntry {
	now := time.Now().Truncate(time.Microsecond)
	return &domain.PantryEntry{
		CanonicalID:         "tomate",
		Name:                "Tomate",
		Quantity:            2,
		Unit:                "kg",
		PurchasedAt:         now,
		EstimatedExpiry:     now.Add(7 * 24 * time.Hour),
		Status:              domain.StatusAvailable,
		Type:                domain.EntryIngredient,
		SourceTransactionID: "tx-1",
	}
}

func TestPostgresStore_Ping(t *testing.T) {
	s := setupPostgres(t)
	require.NoError(t, s.Ping(context.Background()))
}

func TestPostgresStore_CreateMapping(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	t.Run("create new mapping", func(t *testing.T) {
		m := &domain.Mapping{
			NormalizedSource: "tomate cherry",
			CanonicalID:      "tomate",
			Source:           "Tomate Cherry",
			Kind:             domain.KindIngredient,
			CreatedBy:        "user-1",
		}
		created, existing, err := s.CreateMapping(ctx, m)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Nil(t, existing)
		assert.False(t, m.CreatedAt.IsZero())
	})

	t.Run("conflicting create returns winner", func(t *testing.T) {
		first := &domain.Mapping{
			NormalizedSource: "palta hass",
			CanonicalID:      "palta",
			Source:           "Palta Hass",
			Kind:             domain.KindIngredient,
			CreatedBy:        "user-1",
		}
		created, _, err := s.CreateMapping(ctx, first)
		require.NoError(t, err)
		require.True(t, created)

		second := &domain.Mapping{
			NormalizedSource: "palta hass",
			CanonicalID:      "aguacate",
			Source:           "PALTA HASS",
			Kind:             domain.KindIngredient,
			CreatedBy:        "user-2",
		}
		created, existing, err := s.CreateMapping(ctx, second)
		require.NoError(t, err)
		assert.False(t, created)
		require.NotNil(t, existing)
		assert.Equal(t, "palta", existing.CanonicalID)
		assert.Equal(t, "user-1", existing.CreatedBy)
	})

	t.Run("get all mappings keyed by normalized name", func(t *testing.T) {
		all, err := s.GetAllMappings(ctx)
		require.NoError(t, err)
		assert.Contains(t, all, "tomate cherry")
		assert.Contains(t, all, "palta hass")
	})
}

func TestPostgresStore_UpsertPantryEntry(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	t.Run("insert then list", func(t *testing.T) {
		require.NoError(t, s.UpsertPantryEntry(ctx, "user-1", testEntry()))

		entries, err := s.ListPantry(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "tomate", entries[0].CanonicalID)
		assert.Equal(t, "tx-1", entries[0].SourceTransactionID)
	})

	t.Run("repeat purchase overwrites but keeps cuisine", func(t *testing.T) {
		first := testEntry()
		first.CanonicalID = "prepared_sushi"
		first.Type = domain.EntryPrepared
		first.Cuisine = domain.CuisineChinese
		require.NoError(t, s.UpsertPantryEntry(ctx, "user-1", first))

		// Second write omits cuisine; the stored one must survive.
		second := testEntry()
		second.CanonicalID = "prepared_sushi"
		second.Type = domain.EntryPrepared
		second.Quantity = 3
		second.SourceTransactionID = ""
		require.NoError(t, s.UpsertPantryEntry(ctx, "user-1", second))

		entries, err := s.ListPantry(ctx, "user-1")
		require.NoError(t, err)

		var got *domain.PantryEntry
		for i := range entries {
			if entries[i].CanonicalID == "prepared_sushi" {
				got = &entries[i]
			}
		}
		require.NotNil(t, got)
		assert.Equal(t, 3, got.Quantity)
		assert.Equal(t, domain.CuisineChinese, got.Cuisine)
		assert.Equal(t, "tx-1", got.SourceTransactionID)
	})

	t.Run("pantries are isolated per user", func(t *testing.T) {
		entries, err := s.ListPantry(ctx, "user-2")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestPostgresStore_RemoveAndCuisine(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	e := testEntry()
	e.CanonicalID = "prepared_empanadas"
	e.Type = domain.EntryPrepared
	require.NoError(t, s.UpsertPantryEntry(ctx, "user-1", e))

	t.Run("set cuisine", func(t *testing.T) {
		err := s.SetPantryCuisine(ctx, "user-1", "prepared_empanadas", domain.CuisineChilean)
		require.NoError(t, err)

		entries, err := s.ListPantry(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, domain.CuisineChilean, entries[0].Cuisine)
	})

	t.Run("set cuisine on missing entry", func(t *testing.T) {
		err := s.SetPantryCuisine(ctx, "user-1", "nope", domain.CuisineOther)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("remove entry", func(t *testing.T) {
		require.NoError(t, s.RemovePantryEntry(ctx, "user-1", "prepared_empanadas"))

		entries, err := s.ListPantry(ctx, "user-1")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestPostgresStore_UnknownReports(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	require.NoError(t, s.ReportUnknownItem(ctx, store.UnknownIngredient, "Quinoa Real", "quinoa real", "user-1"))
	require.NoError(t, s.ReportUnknownItem(ctx, store.UnknownIngredient, "Quinoa Real", "quinoa real", "user-2"))
	require.NoError(t, s.ReportUnknownItem(ctx, store.UnknownPreparedFood, "Ceviche Mixto", "ceviche mixto", "user-1"))

	t.Run("repeat reports increment the counter", func(t *testing.T) {
		reports, err := s.ListUnknownReports(ctx, store.UnknownIngredient, 10)
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, 2, reports[0].Count)
		assert.Equal(t, "user-1", reports[0].ReportedBy)
	})

	t.Run("kinds are separate backlogs", func(t *testing.T) {
		reports, err := s.ListUnknownReports(ctx, store.UnknownPreparedFood, 10)
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, "ceviche mixto", reports[0].NormalizedName)
	})
}

func TestPostgresStore_Catalog(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	ings := []domain.CanonicalIngredient{{
		ID:            "tomate",
		Names:         domain.LocalizedName{ES: "Tomate", EN: "Tomato"},
		Category:      "verduras",
		Icon:          "🍅",
		DefaultUnit:   "kg",
		ShelfLifeDays: 7,
		Substitutions: []string{"tomate cherry"},
	}}
	pfs := []domain.CanonicalPreparedFood{{
		ID:            "sushi",
		Names:         domain.LocalizedName{ES: "Sushi", EN: "Sushi"},
		Cuisine:       domain.CuisineChinese,
		Icon:          "🍣",
		ShelfLifeDays: 2,
	}}
	require.NoError(t, s.SeedCatalog(ctx, ings, pfs))

	t.Run("get ingredient", func(t *testing.T) {
		got, err := s.GetIngredient(ctx, "tomate")
		require.NoError(t, err)
		assert.Equal(t, "Tomate", got.Names.ES)
		assert.Equal(t, []string{"tomate cherry"}, got.Substitutions)
	})

	t.Run("missing ingredient", func(t *testing.T) {
		_, err := s.GetIngredient(ctx, "nope")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("get prepared food", func(t *testing.T) {
		got, err := s.GetPreparedFood(ctx, "sushi")
		require.NoError(t, err)
		assert.Equal(t, domain.CuisineChinese, got.Cuisine)
	})

	t.Run("seed is idempotent", func(t *testing.T) {
		require.NoError(t, s.SeedCatalog(ctx, ings, pfs))

		all, err := s.ListIngredients(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}
