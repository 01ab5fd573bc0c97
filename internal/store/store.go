// Package store defines the datastore abstraction for despensa.
// Business logic depends on the Store interface, never on concrete
// implementations, so the reconciliation service can be tested without
// a running database.
package store

import (
	"context"
	"errors"

	domain "github.com/jpmardones/despensa/pkg/types"
)

// ErrNotFound is returned by point reads when no row exists.
var ErrNotFound = errors.New("not found")

// UnknownKind selects which backlog collection an unknown-item report
// goes to.
type UnknownKind string

// Backlog kind constants.
const (
	UnknownIngredient   UnknownKind = "ingredient"
	UnknownPreparedFood UnknownKind = "prepared"
)

// Store defines all data access operations for despensa.
type Store interface {
	// Mappings (shared across users, keyed by normalized name).
	GetAllMappings(ctx context.Context) (map[string]domain.Mapping, error)
	GetMapping(ctx context.Context, normalized string) (*domain.Mapping, error)
	// CreateMapping inserts a mapping if none exists for its normalized
	// key. A concurrent duplicate create is a no-op: created is false
	// and existing holds the record that won.
	CreateMapping(ctx context.Context, m *domain.Mapping) (created bool, existing *domain.Mapping, err error)

	// Pantry (per user, keyed by canonical id, merge-on-conflict).
	UpsertPantryEntry(ctx context.Context, userID string, e *domain.PantryEntry) error
	ListPantry(ctx context.Context, userID string) ([]domain.PantryEntry, error)
	RemovePantryEntry(ctx context.Context, userID, canonicalID string) error
	SetPantryCuisine(ctx context.Context, userID, canonicalID string, cuisine domain.Cuisine) error
	ListPantryUserIDs(ctx context.Context) ([]string, error)

	// Unknown-item backlog (shared, keyed by normalized name).
	ReportUnknownItem(ctx context.Context, kind UnknownKind, name, normalized, userID string) error
	ListUnknownReports(ctx context.Context, kind UnknownKind, limit int) ([]domain.UnknownItemReport, error)

	// Reference catalogs (read-only to the reconciliation flow; written
	// only by the seed command).
	GetIngredient(ctx context.Context, id string) (*domain.CanonicalIngredient, error)
	ListIngredients(ctx context.Context) ([]domain.CanonicalIngredient, error)
	GetPreparedFood(ctx context.Context, id string) (*domain.CanonicalPreparedFood, error)
	ListPreparedFoods(ctx context.Context) ([]domain.CanonicalPreparedFood, error)
	SeedCatalog(ctx context.Context, ings []domain.CanonicalIngredient, pfs []domain.CanonicalPreparedFood) error

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
