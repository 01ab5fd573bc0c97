// Package mocks provides a hand-maintained testify mock for store.Store.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jpmardones/despensa/internal/store"
	domain "github.com/jpmardones/despensa/pkg/types"
)

// Store is a mock implementation of store.Store.
type Store struct {
	mock.Mock
}

func (m *Store) GetAllMappings(ctx context.Context) (map[string]domain.Mapping, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Mapping), args.Error(1)
}

func (m *Store) GetMapping(ctx context.Context, normalized string) (*domain.Mapping, error) {
	args := m.Called(ctx, normalized)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mapping), args.Error(1)
}

func (m *Store) CreateMapping(ctx context.Context, mp *domain.Mapping) (bool, *domain.Mapping, error) {
	args := m.Called(ctx, mp)
	var existing *domain.Mapping
	if args.Get(1) != nil {
		existing = args.Get(1).(*domain.Mapping)
	}
	return args.Bool(0), existing, args.Error(2)
}

func (m *Store) UpsertPantryEntry(ctx context.Context, userID string, e *domain.PantryEntry) error {
	args := m.Called(ctx, userID, e)
	return args.Error(0)
}

func (m *Store) ListPantry(ctx context.Context, userID string) ([]domain.PantryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PantryEntry), args.Error(1)
}

func (m *Store) RemovePantryEntry(ctx context.Context, userID, canonicalID string) error {
	args := m.Called(ctx, userID, canonicalID)
	return args.Error(0)
}

func (m *Store) SetPantryCuisine(ctx context.Context, userID, canonicalID string, cuisine domain.Cuisine) error {
	args := m.Called(ctx, userID, canonicalID, cuisine)
	return args.Error(0)
}

func (m *Store) ListPantryUserIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *Store) ReportUnknownItem(ctx context.Context, kind store.UnknownKind, name, normalized, userID string) error {
	args := m.Called(ctx, kind, name, normalized, userID)
	return args.Error(0)
}

func (m *Store) ListUnknownReports(ctx context.Context, kind store.UnknownKind, limit int) ([]domain.UnknownItemReport, error) {
	args := m.Called(ctx, kind, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UnknownItemReport), args.Error(1)
}

func (m *Store) GetIngredient(ctx context.Context, id string) (*domain.CanonicalIngredient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CanonicalIngredient), args.Error(1)
}

func (m *Store) ListIngredients(ctx context.Context) ([]domain.CanonicalIngredient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CanonicalIngredient), args.Error(1)
}

func (m *Store) GetPreparedFood(ctx context.Context, id string) (*domain.CanonicalPreparedFood, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CanonicalPreparedFood), args.Error(1)
}

func (m *Store) ListPreparedFoods(ctx context.Context) ([]domain.CanonicalPreparedFood, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CanonicalPreparedFood), args.Error(1)
}

func (m *Store) SeedCatalog(ctx context.Context, ings []domain.CanonicalIngredient, pfs []domain.CanonicalPreparedFood) error {
	args := m.Called(ctx, ings, pfs)
	return args.Error(0)
}

func (m *Store) Migrate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Store) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
