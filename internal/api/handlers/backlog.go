package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/jpmardones/despensa/internal/reconcile"
	"github.com/jpmardones/despensa/internal/store"
	domain "github.com/jpmardones/despensa/pkg/types"
)

// BacklogHandler exposes the shared unknown-item backlog.
type BacklogHandler struct {
	service *reconcile.Service
}

// NewBacklogHandler creates a new BacklogHandler.
func NewBacklogHandler(svc *reconcile.Service) *BacklogHandler {
	return &BacklogHandler{service: svc}
}

// GetBacklogInput lists unknown-item reports for one kind.
type GetBacklogInput struct {
	Kind  string `path:"kind"   doc:"Report kind" enum:"ingredient,prepared"`
	Limit int    `query:"limit" doc:"Maximum reports to return" default:"50" minimum:"1" maximum:"500"`
}

// GetBacklogOutput is the backlog ordered by report count.
type GetBacklogOutput struct {
	Body struct {
		Reports []domain.UnknownItemReport `json:"reports"`
	}
}

// GetBacklog returns the most-reported unknown items of the given kind.
func (h *BacklogHandler) GetBacklog(
	ctx context.Context,
	input *GetBacklogInput,
) (*GetBacklogOutput, error) {
	var kind store.UnknownKind
	switch input.Kind {
	case "ingredient":
		kind = store.UnknownIngredient
	case "prepared":
		kind = store.UnknownPreparedFood
	default:
		return nil, huma.Error400BadRequest("unknown backlog kind: " + input.Kind)
	}

	reports, err := h.service.UnknownReports(ctx, kind, input.Limit)
	if err != nil {
		return nil, mapServiceError(err)
	}

	resp := &GetBacklogOutput{}
	resp.Body.Reports = reports
	return resp, nil
}

// RegisterBacklogRoutes registers backlog endpoints with the Huma API.
func RegisterBacklogRoutes(api huma.API, h *BacklogHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-backlog",
		Method:      http.MethodGet,
		Path:        "/api/v1/backlog/{kind}",
		Summary:     "List unknown-item reports",
		Description: "Returns the shared backlog of unrecognized items, most-reported first.",
		Tags:        []string{"backlog"},
		Errors:      []int{http.StatusBadRequest},
	}, h.GetBacklog)
}
