// Package pantry builds, classifies, and enriches per-user pantry
// entries.
package pantry

import (
	"time"

	"github.com/jpmardones/despensa/pkg/normalize"
	domain "github.com/jpmardones/despensa/pkg/types"
)

const (
	// Shelf life applied to prepared dishes that have no catalog record.
	preparedShelfLifeDays = 90
	// Shelf life applied to unknown ingredients until the catalog
	// learns about them.
	unknownShelfLifeDays = 7

	// Unit for prepared dishes and unknown items, which have no
	// canonical default unit.
	freeformUnit = "unidad"
)

// IngredientEntry builds a pantry entry for a catalogued ingredient.
func IngredientEntry(
	ing *domain.CanonicalIngredient,
	sourceTransactionID string,
	now time.Time,
) *domain.PantryEntry {
	return &domain.PantryEntry{
		CanonicalID:         ing.ID,
		Name:                ing.Names.ES,
		Quantity:            1,
		Unit:                ing.DefaultUnit,
		PurchasedAt:         now,
		EstimatedExpiry:     now.AddDate(0, 0, ing.ShelfLifeDays),
		Status:              domain.StatusAvailable,
		Type:                domain.EntryIngredient,
		SourceTransactionID: sourceTransactionID,
	}
}

// CanonicalPreparedEntry builds a pantry entry for a catalogued
// prepared dish, carrying its cuisine tag.
func CanonicalPreparedEntry(
	pf *domain.CanonicalPreparedFood,
	sourceTransactionID string,
	now time.Time,
) *domain.PantryEntry {
	return &domain.PantryEntry{
		CanonicalID:         pf.ID,
		Name:                pf.Names.ES,
		Quantity:            1,
		Unit:                freeformUnit,
		PurchasedAt:         now,
		EstimatedExpiry:     now.AddDate(0, 0, pf.ShelfLifeDays),
		Status:              domain.StatusAvailable,
		Type:                domain.EntryPrepared,
		Cuisine:             pf.Cuisine,
		SourceTransactionID: sourceTransactionID,
	}
}

// FreeformPreparedEntry builds a pantry entry for a prepared dish the
// catalog does not know. The entry keeps the shopper-facing name and a
// conservative default shelf life. Cuisine is left unset so a later
// classification survives repeat purchases.
func FreeformPreparedEntry(
	originalName, normalizedName, sourceTransactionID string,
	now time.Time,
) *domain.PantryEntry {
	return &domain.PantryEntry{
		CanonicalID:         normalize.PreparedFoodID(normalizedName),
		Name:                originalName,
		Quantity:            1,
		Unit:                freeformUnit,
		PurchasedAt:         now,
		EstimatedExpiry:     now.AddDate(0, 0, preparedShelfLifeDays),
		Status:              domain.StatusAvailable,
		Type:                domain.EntryPrepared,
		SourceTransactionID: sourceTransactionID,
	}
}

// UnknownIngredientEntry builds a pantry entry for an ingredient that
// is missing from the catalog. It gets a short shelf life so it
// resurfaces quickly.
func UnknownIngredientEntry(
	originalName, normalizedName, sourceTransactionID string,
	now time.Time,
) *domain.PantryEntry {
	return &domain.PantryEntry{
		CanonicalID:         normalize.UnknownIngredientID(normalizedName),
		Name:                originalName,
		Quantity:            1,
		Unit:                freeformUnit,
		PurchasedAt:         now,
		EstimatedExpiry:     now.AddDate(0, 0, unknownShelfLifeDays),
		Status:              domain.StatusAvailable,
		Type:                domain.EntryIngredient,
		SourceTransactionID: sourceTransactionID,
	}
}

// UnknownPreparedEntry builds a pantry entry for a prepared dish that
// is missing from the catalog.
func UnknownPreparedEntry(
	originalName, normalizedName, sourceTransactionID string,
	now time.Time,
) *domain.PantryEntry {
	return &domain.PantryEntry{
		CanonicalID:         normalize.UnknownPreparedID(normalizedName),
		Name:                originalName,
		Quantity:            1,
		Unit:                freeformUnit,
		PurchasedAt:         now,
		EstimatedExpiry:     now.AddDate(0, 0, preparedShelfLifeDays),
		Status:              domain.StatusAvailable,
		Type:                domain.EntryPrepared,
		SourceTransactionID: sourceTransactionID,
	}
}
