package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/jpmardones/despensa/internal/catalog"
	"github.com/jpmardones/despensa/internal/reconcile"
	"github.com/jpmardones/despensa/internal/store"
	"github.com/jpmardones/despensa/pkg/normalize"
)

// mapServiceError converts reconciliation-layer errors to HTTP
// problems. Latch hits map to 409 so clients treat them as retryable
// no-ops; a saga failure is a 500 that names the failed step, with
// the item still pending for retry.
func mapServiceError(err error) error {
	var sagaErr *reconcile.SagaError

	switch {
	case errors.Is(err, normalize.ErrInvalidName):
		return huma.Error400BadRequest("invalid item name")
	case errors.Is(err, reconcile.ErrLoadInFlight):
		return huma.Error409Conflict("an import is already running")
	case errors.Is(err, reconcile.ErrSaveInFlight):
		return huma.Error409Conflict("a resolution is already running")
	case errors.Is(err, reconcile.ErrNotPending):
		return huma.Error404NotFound("item is not in the pending queue")
	case errors.Is(err, catalog.ErrNotFound):
		return huma.Error404NotFound("canonical id not found in catalog")
	case errors.Is(err, store.ErrNotFound):
		return huma.Error404NotFound("not found")
	case errors.As(err, &sagaErr):
		return huma.Error500InternalServerError(
			"resolution failed at step " + sagaErr.Step + "; retry the same action")
	default:
		return huma.Error500InternalServerError(err.Error())
	}
}
