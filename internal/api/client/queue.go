package client

import (
	"context"
	"fmt"

	domain "github.com/jpmardones/despensa/pkg/types"
)

// QueueState is the transient resolution-queue state for one user.
type QueueState struct {
	Pending  []domain.ExtractedItem `json:"pending"`
	Skipped  []domain.ExtractedItem `json:"skipped"`
	Counters domain.QueueCounters   `json:"counters"`
}

// resolveRequest contains the fields the resolve endpoint accepts.
type resolveRequest struct {
	NormalizedName string `json:"normalized_name"`
	Action         string `json:"action"`
	CanonicalID    string `json:"canonical_id,omitempty"`
}

// Import triggers a ledger import for the user and returns the summary.
func (c *Client) Import(ctx context.Context, userID string) (*domain.ImportSummary, error) {
	var summary domain.ImportSummary
	if err := c.post(ctx, fmt.Sprintf("/api/v1/users/%s/import", userID), nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetQueue returns the user's pending and skipped items plus counters.
func (c *Client) GetQueue(ctx context.Context, userID string) (*QueueState, error) {
	var state QueueState
	if err := c.get(ctx, fmt.Sprintf("/api/v1/users/%s/queue", userID), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Resolve applies a resolution action to a pending item. canonicalID is
// required for the ingredient and prepared actions and ignored otherwise.
func (c *Client) Resolve(ctx context.Context, userID, normalizedName, action, canonicalID string) error {
	req := resolveRequest{
		NormalizedName: normalizedName,
		Action:         action,
		CanonicalID:    canonicalID,
	}
	return c.post(ctx, fmt.Sprintf("/api/v1/users/%s/queue/resolve", userID), req, nil)
}

// Skip moves a pending item to the skipped pile.
func (c *Client) Skip(ctx context.Context, userID, normalizedName string) error {
	body := map[string]string{"normalized_name": normalizedName}
	return c.post(ctx, fmt.Sprintf("/api/v1/users/%s/queue/skip", userID), body, nil)
}

// Restore moves a skipped item back to pending.
func (c *Client) Restore(ctx context.Context, userID, normalizedName string) error {
	body := map[string]string{"normalized_name": normalizedName}
	return c.post(ctx, fmt.Sprintf("/api/v1/users/%s/queue/restore", userID), body, nil)
}
