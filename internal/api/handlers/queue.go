package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/jpmardones/despensa/internal/reconcile"
	domain "github.com/jpmardones/despensa/pkg/types"
)

// QueueHandler drives imports and the interactive resolution queue.
type QueueHandler struct {
	service *reconcile.Service
}

// NewQueueHandler creates a new QueueHandler.
func NewQueueHandler(svc *reconcile.Service) *QueueHandler {
	return &QueueHandler{service: svc}
}

// --- Input/Output types ---

// ImportInput triggers a ledger import for a user.
type ImportInput struct {
	UserID string `path:"id" doc:"User identifier"`
}

// ImportOutput reports what the import produced.
type ImportOutput struct {
	Body domain.ImportSummary
}

// GetQueueInput fetches a user's queue state.
type GetQueueInput struct {
	UserID string `path:"id" doc:"User identifier"`
}

// GetQueueOutput is the full transient queue state.
type GetQueueOutput struct {
	Body struct {
		Pending  []domain.ExtractedItem `json:"pending"`
		Skipped  []domain.ExtractedItem `json:"skipped"`
		Counters domain.QueueCounters   `json:"counters"`
	}
}

// ResolveInput resolves one pending item.
type ResolveInput struct {
	UserID string `path:"id" doc:"User identifier"`
	Body   struct {
		NormalizedName string `json:"normalized_name" doc:"Normalized name of the pending item"                                                   required:"true"`
		Action         string `json:"action"          doc:"Resolution branch"  enum:"ingredient,prepared,freeform_prepared,unknown_ingredient,unknown_prepared" required:"true"`
		CanonicalID    string `json:"canonical_id,omitempty" doc:"Catalog id, required for ingredient and prepared actions"`
	}
}

// ResolveOutput confirms the resolution.
type ResolveOutput struct {
	Body StatusResponse
}

// SkipInput moves a pending item to the skipped pile.
type SkipInput struct {
	UserID string `path:"id" doc:"User identifier"`
	Body   struct {
		NormalizedName string `json:"normalized_name" required:"true"`
	}
}

// SkipOutput confirms the move.
type SkipOutput struct {
	Body StatusResponse
}

// --- Handlers ---

// Import fetches the user's recent transactions, auto-resolves known
// items, and installs the pending queue.
func (h *QueueHandler) Import(
	ctx context.Context,
	input *ImportInput,
) (*ImportOutput, error) {
	summary, err := h.service.LoadItems(ctx, input.UserID)
	if err != nil {
		return nil, mapServiceError(err)
	}
	return &ImportOutput{Body: summary}, nil
}

// GetQueue returns the pending and skipped items plus session counters.
func (h *QueueHandler) GetQueue(
	ctx context.Context,
	input *GetQueueInput,
) (*GetQueueOutput, error) {
	resp := &GetQueueOutput{}
	resp.Body.Pending = h.service.Pending(input.UserID)
	resp.Body.Skipped = h.service.Skipped(input.UserID)
	resp.Body.Counters = h.service.Counters(input.UserID)
	return resp, nil
}

// Resolve applies one of the five resolution branches to a pending item.
func (h *QueueHandler) Resolve(
	ctx context.Context,
	input *ResolveInput,
) (*ResolveOutput, error) {
	var err error
	switch input.Body.Action {
	case "ingredient":
		if input.Body.CanonicalID == "" {
			return nil, huma.Error400BadRequest("canonical_id is required for action ingredient")
		}
		err = h.service.ResolveIngredient(ctx,
			input.UserID, input.Body.NormalizedName, input.Body.CanonicalID)
	case "prepared":
		if input.Body.CanonicalID == "" {
			return nil, huma.Error400BadRequest("canonical_id is required for action prepared")
		}
		err = h.service.ResolvePrepared(ctx,
			input.UserID, input.Body.NormalizedName, input.Body.CanonicalID)
	case "freeform_prepared":
		err = h.service.MarkPrepared(ctx, input.UserID, input.Body.NormalizedName)
	case "unknown_ingredient":
		err = h.service.MarkUnknownIngredient(ctx, input.UserID, input.Body.NormalizedName)
	case "unknown_prepared":
		err = h.service.MarkUnknownPrepared(ctx, input.UserID, input.Body.NormalizedName)
	default:
		return nil, huma.Error400BadRequest("unknown action " + input.Body.Action)
	}
	if err != nil {
		return nil, mapServiceError(err)
	}

	return &ResolveOutput{Body: StatusResponse{Status: "resolved"}}, nil
}

// Skip moves a pending item aside without writing anything.
func (h *QueueHandler) Skip(
	ctx context.Context,
	input *SkipInput,
) (*SkipOutput, error) {
	if err := h.service.Skip(input.UserID, input.Body.NormalizedName); err != nil {
		return nil, mapServiceError(err)
	}
	return &SkipOutput{Body: StatusResponse{Status: "skipped"}}, nil
}

// Restore moves a skipped item back to pending.
func (h *QueueHandler) Restore(
	ctx context.Context,
	input *SkipInput,
) (*SkipOutput, error) {
	if err := h.service.Restore(input.UserID, input.Body.NormalizedName); err != nil {
		return nil, mapServiceError(err)
	}
	return &SkipOutput{Body: StatusResponse{Status: "restored"}}, nil
}

// RegisterQueueRoutes registers import and queue endpoints with the
// Huma API.
func RegisterQueueRoutes(api huma.API, h *QueueHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "import-transactions",
		Method:      http.MethodPost,
		Path:        "/api/v1/users/{id}/import",
		Summary:     "Import recent transactions",
		Description: "Extracts cooking items from the user's recent ledger transactions, auto-resolves known items into the pantry, and returns the import summary.",
		Tags:        []string{"queue"},
		Errors:      []int{http.StatusConflict},
	}, h.Import)

	huma.Register(api, huma.Operation{
		OperationID: "get-queue",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}/queue",
		Summary:     "Get the resolution queue",
		Description: "Returns pending items, skipped items, and session counters.",
		Tags:        []string{"queue"},
	}, h.GetQueue)

	huma.Register(api, huma.Operation{
		OperationID: "resolve-item",
		Method:      http.MethodPost,
		Path:        "/api/v1/users/{id}/queue/resolve",
		Summary:     "Resolve a pending item",
		Description: "Records a mapping, stocks the pantry, and for unknown branches reports to the backlog.",
		Tags:        []string{"queue"},
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound, http.StatusConflict},
	}, h.Resolve)

	huma.Register(api, huma.Operation{
		OperationID: "skip-item",
		Method:      http.MethodPost,
		Path:        "/api/v1/users/{id}/queue/skip",
		Summary:     "Skip a pending item",
		Tags:        []string{"queue"},
		Errors:      []int{http.StatusNotFound},
	}, h.Skip)

	huma.Register(api, huma.Operation{
		OperationID: "restore-item",
		Method:      http.MethodPost,
		Path:        "/api/v1/users/{id}/queue/restore",
		Summary:     "Restore a skipped item",
		Tags:        []string{"queue"},
		Errors:      []int{http.StatusNotFound},
	}, h.Restore)
}
