package client

import (
	"context"
	"fmt"

	domain "github.com/jpmardones/despensa/pkg/types"
)

// pantryResponse wraps the pantry endpoint's body.
type pantryResponse struct {
	Entries []domain.EnrichedEntry `json:"entries"`
}

// GetPantry returns the user's enriched pantry, most urgent first.
func (c *Client) GetPantry(ctx context.Context, userID string) ([]domain.EnrichedEntry, error) {
	var resp pantryResponse
	if err := c.get(ctx, fmt.Sprintf("/api/v1/users/%s/pantry", userID), &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

// RemovePantryEntry deletes one entry from the user's pantry.
func (c *Client) RemovePantryEntry(ctx context.Context, userID, canonicalID string) error {
	return c.del(ctx, fmt.Sprintf("/api/v1/users/%s/pantry/%s", userID, canonicalID), nil)
}

// SetPantryCuisine re-classifies a prepared entry's cuisine.
func (c *Client) SetPantryCuisine(ctx context.Context, userID, canonicalID string, cuisine domain.Cuisine) error {
	body := map[string]string{"cuisine": string(cuisine)}
	return c.put(ctx,
		fmt.Sprintf("/api/v1/users/%s/pantry/%s/cuisine", userID, canonicalID), body, nil)
}
