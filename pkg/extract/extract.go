// Package extract flattens grocery ledger transactions into the
// deduplicated set of cooking-relevant items that one import cycle
// works on.
package extract

import (
	"slices"

	"github.com/jpmardones/despensa/pkg/normalize"
	domain "github.com/jpmardones/despensa/pkg/types"
)

// CookingCategories is the fixed allow-list of ledger categories that
// contain cooking-relevant items. Everything else (cleaning supplies,
// toiletries, ...) is ignored.
var CookingCategories = []string{
	"Produce",
	"Meat & Seafood",
	"Bakery",
	"Dairy & Eggs",
	"Pantry",
	"Frozen Foods",
}

// CookingItems flattens all line items from the given transactions,
// filters to cooking-relevant categories, and deduplicates by
// normalized name. Transactions are walked in caller order (most recent
// first) and the first occurrence of a name wins, so the freshest
// purchase of each product is the one that survives. Missing quantities
// default to 1. Items whose name cannot be normalized are skipped.
func CookingItems(txs []domain.Transaction) []domain.ExtractedItem {
	seen := make(map[string]struct{})
	var out []domain.ExtractedItem

	for _, tx := range txs {
		for _, it := range tx.Items {
			if !isCookingItem(it) {
				continue
			}

			norm, err := normalize.Name(it.Name)
			if err != nil {
				continue
			}
			if _, dup := seen[norm]; dup {
				continue
			}
			seen[norm] = struct{}{}

			qty := it.Quantity
			if qty == 0 {
				qty = 1
			}

			out = append(out, domain.ExtractedItem{
				OriginalName:   it.Name,
				NormalizedName: norm,
				Quantity:       qty,
				Category:       it.Category,
				TransactionID:  tx.ID,
				Date:           tx.Date,
				Merchant:       tx.Merchant,
			})
		}
	}

	return out
}

// Unmapped returns the items whose normalized name has no entry in the
// shared mapping dictionary.
func Unmapped(
	items []domain.ExtractedItem,
	mappings map[string]domain.Mapping,
) []domain.ExtractedItem {
	var out []domain.ExtractedItem
	for _, it := range items {
		if _, ok := mappings[it.NormalizedName]; !ok {
			out = append(out, it)
		}
	}
	return out
}

// Mapped returns the items whose normalized name already has a mapping.
func Mapped(
	items []domain.ExtractedItem,
	mappings map[string]domain.Mapping,
) []domain.ExtractedItem {
	var out []domain.ExtractedItem
	for _, it := range items {
		if _, ok := mappings[it.NormalizedName]; ok {
			out = append(out, it)
		}
	}
	return out
}

func isCookingItem(it domain.TransactionItem) bool {
	if it.Category == "" {
		return false
	}
	return slices.Contains(CookingCategories, it.Category)
}
