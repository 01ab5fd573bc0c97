package pantry

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	domain "github.com/jpmardones/despensa/pkg/types"
)

const (
	fallbackIngredientIcon = "📦"
	fallbackPreparedIcon   = "🍱"
	fallbackCategory       = "Other"
)

// freshnessOrder sorts most-urgent-first.
var freshnessOrder = map[domain.Freshness]int{
	domain.FreshnessExpired:      0,
	domain.FreshnessExpiringSoon: 1,
	domain.FreshnessFresh:        2,
}

// Enrich joins raw pantry entries with the reference catalogs: icon,
// category, and freshness bucket. Entries whose canonical record is
// missing get fallback display data instead of being dropped. The
// result is sorted expired first, then alphabetically with Spanish
// collation.
func Enrich(
	entries []domain.PantryEntry,
	ings map[string]domain.CanonicalIngredient,
	pfs map[string]domain.CanonicalPreparedFood,
	now time.Time,
) []domain.EnrichedEntry {
	out := make([]domain.EnrichedEntry, 0, len(entries))
	for _, e := range entries {
		enriched := domain.EnrichedEntry{
			PantryEntry: e,
			Icon:        fallbackIngredientIcon,
			Category:    fallbackCategory,
			Freshness:   Classify(e.EstimatedExpiry, now),
		}

		if e.Type == domain.EntryPrepared {
			enriched.Icon = fallbackPreparedIcon
			if pf, ok := pfs[e.CanonicalID]; ok {
				enriched.Icon = pf.Icon
			}
			if enriched.Cuisine == "" {
				enriched.Cuisine = domain.CuisineUnclassified
			}
		} else if ing, ok := ings[e.CanonicalID]; ok {
			enriched.Icon = ing.Icon
			enriched.Category = ing.Category
		}

		out = append(out, enriched)
	}

	coll := collate.New(language.Spanish)
	sort.SliceStable(out, func(i, j int) bool {
		if d := freshnessOrder[out[i].Freshness] - freshnessOrder[out[j].Freshness]; d != 0 {
			return d < 0
		}
		return coll.CompareString(out[i].Name, out[j].Name) < 0
	})

	return out
}

// IngredientIndex keys a catalog list by canonical id.
func IngredientIndex(ings []domain.CanonicalIngredient) map[string]domain.CanonicalIngredient {
	m := make(map[string]domain.CanonicalIngredient, len(ings))
	for _, ing := range ings {
		m[ing.ID] = ing
	}
	return m
}

// PreparedFoodIndex keys a catalog list by canonical id.
func PreparedFoodIndex(pfs []domain.CanonicalPreparedFood) map[string]domain.CanonicalPreparedFood {
	m := make(map[string]domain.CanonicalPreparedFood, len(pfs))
	for _, pf := range pfs {
		m[pf.ID] = pf
	}
	return m
}
