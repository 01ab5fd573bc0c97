// Package domain defines the core business types for despensa.
package domain

import (
	"time"
)

// MappingKind discriminates what a shared name mapping resolves to.
// The zero value is not valid; every mapping carries an explicit kind.
type MappingKind string

// Mapping kind constants.
const (
	KindIngredient        MappingKind = "ingredient"
	KindPrepared          MappingKind = "prepared"
	KindUnknownIngredient MappingKind = "unknown_ingredient"
	KindUnknownPrepared   MappingKind = "unknown_prepared"
)

// Valid reports whether k is one of the four known mapping kinds.
func (k MappingKind) Valid() bool {
	switch k {
	case KindIngredient, KindPrepared, KindUnknownIngredient, KindUnknownPrepared:
		return true
	}
	return false
}

// EntryType distinguishes pantry rows backed by the ingredient catalog
// from prepared dishes.
type EntryType string

// Entry type constants.
const (
	EntryIngredient EntryType = "ingredient"
	EntryPrepared   EntryType = "prepared"
)

// EntryStatus is the user-facing stock status of a pantry entry.
type EntryStatus string

// Entry status constants.
const (
	StatusAvailable EntryStatus = "available"
	StatusLow       EntryStatus = "low"
	StatusExpired   EntryStatus = "expired"
)

// Cuisine tags a prepared dish.
type Cuisine string

// Cuisine constants, in display order.
const (
	CuisineMediterranean Cuisine = "mediterranean"
	CuisineChinese       Cuisine = "chinese"
	CuisineIndian        Cuisine = "indian"
	CuisinePeruvian      Cuisine = "peruvian"
	CuisineChilean       Cuisine = "chilean"
	CuisineOther         Cuisine = "other"
	CuisineUnclassified  Cuisine = "unclassified"
)

// Cuisines lists all cuisine tags in display order.
var Cuisines = []Cuisine{
	CuisineMediterranean, CuisineChinese, CuisineIndian,
	CuisinePeruvian, CuisineChilean, CuisineOther, CuisineUnclassified,
}

// Valid reports whether c is a known cuisine tag.
func (c Cuisine) Valid() bool {
	for _, known := range Cuisines {
		if c == known {
			return true
		}
	}
	return false
}

// Freshness classifies a pantry entry relative to its estimated expiry.
type Freshness string

// Freshness constants, ordered most-urgent-first.
const (
	FreshnessExpired      Freshness = "expired"
	FreshnessExpiringSoon Freshness = "expiring_soon"
	FreshnessFresh        Freshness = "fresh"
)

// LocalizedName holds the Spanish and English display names of a
// catalog record. Spanish is the primary display language.
type LocalizedName struct {
	ES string `json:"es"`
	EN string `json:"en"`
}

// CanonicalIngredient is a catalog-defined ingredient. The catalog is
// read-only from this service's point of view.
type CanonicalIngredient struct {
	ID            string        `json:"id"             db:"id"`
	Names         LocalizedName `json:"names"          db:"names"`
	Category      string        `json:"category"       db:"category"`
	Icon          string        `json:"icon"           db:"icon"`
	DefaultUnit   string        `json:"default_unit"   db:"default_unit"`
	ShelfLifeDays int           `json:"shelf_life_days" db:"shelf_life_days"`
	Substitutions []string      `json:"substitutions"  db:"substitutions"`
}

// CanonicalPreparedFood is a catalog-defined prepared dish.
type CanonicalPreparedFood struct {
	ID            string        `json:"id"              db:"id"`
	Names         LocalizedName `json:"names"           db:"names"`
	Cuisine       Cuisine       `json:"cuisine"         db:"cuisine"`
	Icon          string        `json:"icon"            db:"icon"`
	ShelfLifeDays int           `json:"shelf_life_days" db:"shelf_life_days"`
}

// Transaction is one purchase record from the external grocery ledger.
type Transaction struct {
	ID       string            `json:"id"`
	Date     string            `json:"date"`
	Merchant string            `json:"merchant"`
	Category string            `json:"category"`
	Items    []TransactionItem `json:"items"`
}

// TransactionItem is one line item inside a ledger transaction.
// Quantity and Category are optional in the ledger payload.
type TransactionItem struct {
	Name        string  `json:"name"`
	Quantity    int     `json:"qty,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category,omitempty"`
	Subcategory string  `json:"subcategory,omitempty"`
}

// ExtractedItem is one deduplicated cooking-relevant line item derived
// from a single import pass. It lives only for the duration of the
// import and is never persisted.
type ExtractedItem struct {
	OriginalName   string `json:"original_name"`
	NormalizedName string `json:"normalized_name"`
	Quantity       int    `json:"quantity"`
	Category       string `json:"category"`
	TransactionID  string `json:"transaction_id"`
	Date           string `json:"date"`
	Merchant       string `json:"merchant"`
}

// Mapping is a shared, persistent fact: a normalized product name
// resolves to a canonical entity (or is a known unknown). Keyed by
// NormalizedSource; at most one mapping exists per key.
type Mapping struct {
	CanonicalID      string      `json:"canonical_id"      db:"canonical_id"`
	Source           string      `json:"source"            db:"source"`
	NormalizedSource string      `json:"normalized_source" db:"normalized_source"`
	Kind             MappingKind `json:"kind"              db:"kind"`
	CreatedBy        string      `json:"created_by"        db:"created_by"`
	CreatedAt        time.Time   `json:"created_at"        db:"created_at"`
}

// PantryEntry is one row of a user's perishable inventory, keyed by
// (user, canonical id). Repeat purchases merge into the same row.
type PantryEntry struct {
	CanonicalID         string      `json:"canonical_id"                    db:"canonical_id"`
	Name                string      `json:"name"                            db:"name"`
	Quantity            int         `json:"quantity"                        db:"quantity"`
	Unit                string      `json:"unit"                            db:"unit"`
	PurchasedAt         time.Time   `json:"purchased_at"                    db:"purchased_at"`
	EstimatedExpiry     time.Time   `json:"estimated_expiry"                db:"estimated_expiry"`
	Status              EntryStatus `json:"status"                          db:"status"`
	Type                EntryType   `json:"type"                            db:"type"`
	Cuisine             Cuisine     `json:"cuisine,omitempty"               db:"cuisine"`
	SourceTransactionID string      `json:"source_transaction_id,omitempty" db:"source_transaction_id"`
}

// EnrichedEntry is a PantryEntry joined against the reference catalogs
// for display, with the derived freshness state attached.
type EnrichedEntry struct {
	PantryEntry

	Icon      string    `json:"icon"`
	Category  string    `json:"category"`
	Freshness Freshness `json:"freshness"`
}

// UnknownItemReport is the global frequency counter for a product name
// reported as unrecognized, keyed by normalized name.
type UnknownItemReport struct {
	Name           string    `json:"name"             db:"name"`
	NormalizedName string    `json:"normalized_name"  db:"normalized_name"`
	Count          int       `json:"count"            db:"count"`
	ReportedBy     string    `json:"reported_by"      db:"reported_by"`
	CreatedAt      time.Time `json:"created_at"       db:"created_at"`
	LastReportedAt time.Time `json:"last_reported_at" db:"last_reported_at"`
}

// ImportSummary reports the outcome of one import cycle.
type ImportSummary struct {
	Extracted    int `json:"extracted"`
	Pending      int `json:"pending"`
	AutoResolved int `json:"auto_resolved"`
}

// QueueCounters holds the per-session resolution tallies.
type QueueCounters struct {
	Mapped       int `json:"mapped"`
	Prepared     int `json:"prepared"`
	AutoResolved int `json:"auto_resolved"`
}
