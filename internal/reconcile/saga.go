package reconcile

import (
	"context"

	"github.com/jpmardones/despensa/internal/metrics"
	"github.com/jpmardones/despensa/internal/store"
	domain "github.com/jpmardones/despensa/pkg/types"
)

// backlogReport is the optional third saga step, used only by the two
// unknown branches.
type backlogReport struct {
	kind       store.UnknownKind
	name       string
	normalized string
}

// resolution bundles the writes one queue resolution performs.
type resolution struct {
	mapping *domain.Mapping
	entry   *domain.PantryEntry
	backlog *backlogReport
}

// runSaga executes the resolution steps in order: create the shared
// mapping, upsert the pantry entry, and, for unknown items, bump the
// backlog counter. Each step is an idempotent keyed write; on failure
// the returned SagaError names the step and the whole saga can be
// retried from the top.
func (s *Service) runSaga(ctx context.Context, userID string, res resolution) error {
	created, _, err := s.store.CreateMapping(ctx, res.mapping)
	if err != nil {
		return &SagaError{Step: StepCreateMapping, Err: err}
	}
	if !created {
		s.logger.Debug("mapping already existed",
			"normalized_source", res.mapping.NormalizedSource,
		)
	}

	if err := s.store.UpsertPantryEntry(ctx, userID, res.entry); err != nil {
		return &SagaError{Step: StepUpsertPantry, Err: err}
	}

	if res.backlog != nil {
		err := s.store.ReportUnknownItem(ctx,
			res.backlog.kind, res.backlog.name, res.backlog.normalized, userID)
		if err != nil {
			return &SagaError{Step: StepReportBacklog, Err: err}
		}
		metrics.UnknownReportsTotal.Inc()
	}

	metrics.ResolutionsTotal.WithLabelValues(string(res.mapping.Kind)).Inc()
	return nil
}
