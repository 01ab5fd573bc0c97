package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/jpmardones/despensa/internal/reconcile"
	domain "github.com/jpmardones/despensa/pkg/types"
)

// PantryHandler serves and mutates per-user pantry inventory.
type PantryHandler struct {
	service *reconcile.Service
}

// NewPantryHandler creates a new PantryHandler.
func NewPantryHandler(svc *reconcile.Service) *PantryHandler {
	return &PantryHandler{service: svc}
}

// --- Input/Output types ---

// GetPantryInput fetches a user's pantry.
type GetPantryInput struct {
	UserID string `path:"id" doc:"User identifier"`
}

// GetPantryOutput is the enriched, sorted pantry.
type GetPantryOutput struct {
	Body struct {
		Entries []domain.EnrichedEntry `json:"entries"`
	}
}

// RemoveEntryInput deletes one pantry entry.
type RemoveEntryInput struct {
	UserID      string `path:"id"          doc:"User identifier"`
	CanonicalID string `path:"canonicalId" doc:"Canonical id of the entry"`
}

// RemoveEntryOutput confirms the removal.
type RemoveEntryOutput struct {
	Body StatusResponse
}

// SetCuisineInput re-classifies a prepared entry's cuisine.
type SetCuisineInput struct {
	UserID      string `path:"id"          doc:"User identifier"`
	CanonicalID string `path:"canonicalId" doc:"Canonical id of the entry"`
	Body        struct {
		Cuisine string `json:"cuisine" doc:"Cuisine tag" enum:"mediterranean,chinese,indian,peruvian,chilean,other,unclassified" required:"true"`
	}
}

// SetCuisineOutput confirms the change.
type SetCuisineOutput struct {
	Body StatusResponse
}

// --- Handlers ---

// GetPantry returns the user's pantry joined with catalog data,
// sorted most-urgent-first.
func (h *PantryHandler) GetPantry(
	ctx context.Context,
	input *GetPantryInput,
) (*GetPantryOutput, error) {
	entries, err := h.service.Pantry(ctx, input.UserID)
	if err != nil {
		return nil, mapServiceError(err)
	}

	resp := &GetPantryOutput{}
	resp.Body.Entries = entries
	return resp, nil
}

// RemoveEntry deletes one entry from the user's pantry.
func (h *PantryHandler) RemoveEntry(
	ctx context.Context,
	input *RemoveEntryInput,
) (*RemoveEntryOutput, error) {
	if err := h.service.RemoveEntry(ctx, input.UserID, input.CanonicalID); err != nil {
		return nil, mapServiceError(err)
	}
	return &RemoveEntryOutput{Body: StatusResponse{Status: "removed"}}, nil
}

// SetCuisine re-classifies a prepared entry's cuisine tag.
func (h *PantryHandler) SetCuisine(
	ctx context.Context,
	input *SetCuisineInput,
) (*SetCuisineOutput, error) {
	err := h.service.SetCuisine(ctx,
		input.UserID, input.CanonicalID, domain.Cuisine(input.Body.Cuisine))
	if err != nil {
		return nil, mapServiceError(err)
	}
	return &SetCuisineOutput{Body: StatusResponse{Status: "updated"}}, nil
}

// RegisterPantryRoutes registers pantry endpoints with the Huma API.
func RegisterPantryRoutes(api huma.API, h *PantryHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-pantry",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}/pantry",
		Summary:     "Get the pantry",
		Description: "Returns the user's pantry enriched with icons, categories, and freshness, sorted expired first.",
		Tags:        []string{"pantry"},
	}, h.GetPantry)

	huma.Register(api, huma.Operation{
		OperationID: "remove-pantry-entry",
		Method:      http.MethodDelete,
		Path:        "/api/v1/users/{id}/pantry/{canonicalId}",
		Summary:     "Remove a pantry entry",
		Tags:        []string{"pantry"},
		Errors:      []int{http.StatusNotFound},
	}, h.RemoveEntry)

	huma.Register(api, huma.Operation{
		OperationID: "set-pantry-cuisine",
		Method:      http.MethodPut,
		Path:        "/api/v1/users/{id}/pantry/{canonicalId}/cuisine",
		Summary:     "Set a prepared entry's cuisine",
		Tags:        []string{"pantry"},
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound},
	}, h.SetCuisine)
}
