// Package seed embeds the reference catalogs shipped with the binary.
// The seed command loads them into the database.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	domain "github.com/jpmardones/despensa/pkg/types"
)

//go:embed ingredients.json
var ingredientsJSON []byte

//go:embed prepared_foods.json
var preparedFoodsJSON []byte

// Ingredients decodes the embedded canonical-ingredient catalog.
func Ingredients() ([]domain.CanonicalIngredient, error) {
	var ings []domain.CanonicalIngredient
	if err := json.Unmarshal(ingredientsJSON, &ings); err != nil {
		return nil, fmt.Errorf("decoding embedded ingredients: %w", err)
	}
	return ings, nil
}

// PreparedFoods decodes the embedded canonical-prepared-food catalog.
func PreparedFoods() ([]domain.CanonicalPreparedFood, error) {
	var pfs []domain.CanonicalPreparedFood
	if err := json.Unmarshal(preparedFoodsJSON, &pfs); err != nil {
		return nil, fmt.Errorf("decoding embedded prepared foods: %w", err)
	}
	return pfs, nil
}
