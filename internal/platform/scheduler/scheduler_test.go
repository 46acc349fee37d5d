package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testbanken/backoffice/internal/dto"
)

type stubAuditService struct {
	sweeps atomic.Int32
	ran    chan time.Time
}

func newStubAuditService() *stubAuditService {
	return &stubAuditService{ran: make(chan time.Time, 8)}
}

func (s *stubAuditService) RunSweep(ctx context.Context, now time.Time) (*dto.SweepSummary, error) {
	s.sweeps.Add(1)
	s.ran <- now
	return &dto.SweepSummary{}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNextMidnight(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Stockholm")
	require.NoError(t, err)

	testCases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"mid afternoon",
			time.Date(2026, 3, 10, 15, 30, 45, 0, loc),
			time.Date(2026, 3, 11, 0, 0, 0, 0, loc),
		},
		{
			"one second before midnight",
			time.Date(2026, 3, 10, 23, 59, 59, 0, loc),
			time.Date(2026, 3, 11, 0, 0, 0, 0, loc),
		},
		{
			"exactly midnight rolls to the next day",
			time.Date(2026, 3, 10, 0, 0, 0, 0, loc),
			time.Date(2026, 3, 11, 0, 0, 0, 0, loc),
		},
		{
			"last day of month",
			time.Date(2026, 1, 31, 12, 0, 0, 0, loc),
			time.Date(2026, 2, 1, 0, 0, 0, 0, loc),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextMidnight(tc.in)
			assert.True(t, got.Equal(tc.want), "got %s, want %s", got, tc.want)
			assert.True(t, got.After(tc.in))
			assert.Equal(t, tc.in.Location(), got.Location())
		})
	}
}

func TestRun_SweepsImmediatelyOnStart(t *testing.T) {
	audit := newStubAuditService()
	worker := NewWorker(audit, discardLogger())

	anchor := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	worker.now = func() time.Time { return anchor }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(done)
	}()

	select {
	case ranAt := <-audit.ran:
		assert.True(t, ranAt.Equal(anchor))
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not run the startup sweep")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop on cancellation")
	}

	assert.Equal(t, int32(1), audit.sweeps.Load())
}

func TestRun_CancelledContextRunsNothing(t *testing.T) {
	audit := newStubAuditService()
	worker := NewWorker(audit, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop with a cancelled context")
	}

	assert.Equal(t, int32(0), audit.sweeps.Load())
}
