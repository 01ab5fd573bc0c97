package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrLoadInFlight is returned when an import is requested while one
	// is already running.
	ErrLoadInFlight = errors.New("import already in progress")

	// ErrSaveInFlight is returned when a resolution is requested while
	// another resolution is still being persisted.
	ErrSaveInFlight = errors.New("resolution already in progress")

	// ErrNotPending is returned when the named item is not in the
	// user's pending queue.
	ErrNotPending = errors.New("item is not pending")
)

// Saga step names, in execution order.
const (
	StepCreateMapping = "create_mapping"
	StepUpsertPantry  = "upsert_pantry"
	StepReportBacklog = "report_backlog"
)

// SagaError reports which resolution step failed. Earlier steps may
// have committed; every step is a keyed upsert, so retrying the whole
// resolution from step one is safe.
type SagaError struct {
	Step string
	Err  error
}

func (e *SagaError) Error() string {
	return fmt.Sprintf("resolution step %s: %v", e.Step, e.Err)
}

func (e *SagaError) Unwrap() error {
	return e.Err
}
