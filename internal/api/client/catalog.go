package client

import (
	"context"

	domain "github.com/jpmardones/despensa/pkg/types"
)

type ingredientsResponse struct {
	Ingredients []domain.CanonicalIngredient `json:"ingredients"`
}

type preparedFoodsResponse struct {
	PreparedFoods []domain.CanonicalPreparedFood `json:"prepared_foods"`
}

// ListIngredients returns the canonical ingredient catalog.
func (c *Client) ListIngredients(ctx context.Context) ([]domain.CanonicalIngredient, error) {
	var resp ingredientsResponse
	if err := c.get(ctx, "/api/v1/catalog/ingredients", &resp); err != nil {
		return nil, err
	}
	return resp.Ingredients, nil
}

// ListPreparedFoods returns the canonical prepared-food catalog.
func (c *Client) ListPreparedFoods(ctx context.Context) ([]domain.CanonicalPreparedFood, error) {
	var resp preparedFoodsResponse
	if err := c.get(ctx, "/api/v1/catalog/prepared-foods", &resp); err != nil {
		return nil, err
	}
	return resp.PreparedFoods, nil
}
