package reconcile

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the periodic auto-import sweep.
type Scheduler struct {
	cron    *cron.Cron
	service *Service
	log     *slog.Logger
}

// NewScheduler creates a Scheduler that sweeps all pantry users at the
// given interval.
func NewScheduler(
	svc *Service,
	sweepInterval time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:    c,
		service: svc,
		log:     log,
	}

	if _, err := c.AddFunc(
		"@every "+sweepInterval.String(),
		s.runSweep,
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	s.log.Info("scheduler starting")
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) runSweep() {
	ctx := context.Background()
	s.log.Info("auto-import sweep starting")
	if err := s.service.ImportSweep(ctx); err != nil {
		s.log.Error("auto-import sweep failed", "error", err)
		return
	}
	s.log.Info("auto-import sweep complete")
}
