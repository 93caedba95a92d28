// Package scheduler runs the periodic pass that materializes due recurring
// transactions into the ledger.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/middleware"
	"github.com/dompetku/dompetku_backend/internal/utils/clock"
)

// Scheduler ticks at a fixed interval and hands the current time to the
// recurring service. Missed ticks do not pile up: each pass materializes at
// most one transaction per definition, so catch-up happens one period per
// tick.
type Scheduler struct {
	recurringService portssvc.RecurringSvcFacade
	interval         time.Duration
	clock            clock.Clock
	logger           *slog.Logger
}

// New creates a Scheduler. A nil clock defaults to the system clock.
func New(rs portssvc.RecurringSvcFacade, interval time.Duration, clk clock.Clock, logger *slog.Logger) *Scheduler {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Scheduler{
		recurringService: rs,
		interval:         interval,
		clock:            clk,
		logger:           logger.With(slog.String("component", "scheduler")),
	}
}

// Run blocks until ctx is cancelled, running one pass immediately and then
// one per interval.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("Recurring scheduler started", slog.Duration("interval", s.interval))

	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Recurring scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	tickCtx := middleware.WithLogger(ctx, s.logger)

	processed, err := s.recurringService.ProcessDue(tickCtx, s.clock.Now())
	if err != nil {
		s.logger.Error("Recurring pass finished with failures",
			slog.Int("processed", processed),
			slog.String("error", err.Error()),
		)
		return
	}
	if processed > 0 {
		s.logger.Info("Recurring pass finished", slog.Int("processed", processed))
	}
}
