package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	portssvc "github.com/testbanken/backoffice/internal/core/ports/services"
	"github.com/testbanken/backoffice/internal/middleware"
)

// Worker drives the audit scanner: one sweep immediately on start, then one
// at every local midnight. The wait re-anchors to the next midnight after
// each run instead of sleeping a fixed interval, so it never drifts. Only one
// sweep is ever in flight; the next timer is armed after the current sweep
// returns. A run missed while the process was down is not replayed.
type Worker struct {
	audit  portssvc.AuditSvcFacade
	logger *slog.Logger

	// now is a clock seam for tests.
	now func() time.Time
}

// NewWorker creates a scheduler worker for the audit service.
func NewWorker(audit portssvc.AuditSvcFacade, logger *slog.Logger) *Worker {
	return &Worker{
		audit:  audit,
		logger: logger,
		now:    time.Now,
	}
}

// Run blocks until ctx is cancelled. Cancellation during the wait or during a
// sweep is safe: per-customer checked flags already committed stay committed.
func (w *Worker) Run(ctx context.Context) {
	w.runSweep(ctx)

	for {
		next := NextMidnight(w.now())
		timer := time.NewTimer(next.Sub(w.now()))

		select {
		case <-ctx.Done():
			timer.Stop()
			w.logger.Info("Audit scheduler stopped")
			return
		case <-timer.C:
			w.runSweep(ctx)
		}
	}
}

// runSweep executes one sweep. A failed sweep is logged and must not stop
// future sweeps; the caller re-arms the timer regardless.
func (w *Worker) runSweep(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	sweepLogger := w.logger.With(
		slog.String("component", "audit_sweep"),
		slog.String("sweep_id", uuid.NewString()),
	)
	sweepCtx := middleware.WithLogger(ctx, sweepLogger)

	sweepLogger.Info("Audit sweep starting")
	if _, err := w.audit.RunSweep(sweepCtx, w.now()); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			sweepLogger.Info("Audit sweep cancelled")
			return
		}
		sweepLogger.Error("Audit sweep failed", slog.String("error", err.Error()))
	}
}

// NextMidnight returns the next occurrence of local midnight strictly after t.
func NextMidnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
}
