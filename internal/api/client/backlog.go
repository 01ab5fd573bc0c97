package client

import (
	"context"
	"fmt"

	domain "github.com/jpmardones/despensa/pkg/types"
)

// backlogResponse wraps the backlog endpoint's body.
type backlogResponse struct {
	Reports []domain.UnknownItemReport `json:"reports"`
}

// GetBacklog returns the unknown-item backlog for a kind ("ingredient"
// or "prepared"), most-reported first.
func (c *Client) GetBacklog(ctx context.Context, kind string, limit int) ([]domain.UnknownItemReport, error) {
	path := "/api/v1/backlog/" + kind
	if limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}

	var resp backlogResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Reports, nil
}
