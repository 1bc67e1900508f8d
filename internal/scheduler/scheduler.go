package scheduler

import (
	"context"
	"io"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/currency_converter_app/internal/core/ports/services"
	"github.com/SscSPs/currency_converter_app/internal/metrics"
)

// Scheduler periodically refreshes exchange rates from the upstream provider.
type Scheduler struct {
	rateSync portssvc.RateSyncSvcFacade
	interval time.Duration
	logger   *slog.Logger
}

// NewScheduler creates a rate update scheduler running at the given interval.
func NewScheduler(rateSync portssvc.RateSyncSvcFacade, interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scheduler{
		rateSync: rateSync,
		interval: interval,
		logger:   logger,
	}
}

// Run executes an initial rate update and then loops until the context is
// cancelled. It blocks, so callers typically run it in its own goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("Rate update scheduler started", slog.Duration("interval", s.interval))

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Rate update scheduler stopping", slog.String("reason", ctx.Err().Error()))
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	start := time.Now()
	count, err := s.rateSync.UpdateRates(ctx)
	elapsed := time.Since(start)

	metrics.SyncDuration.WithLabelValues("rates").Observe(elapsed.Seconds())
	if err != nil {
		metrics.SyncRunsTotal.WithLabelValues("rates", "error").Inc()
		s.logger.Error("Scheduled rate update failed", slog.String("error", err.Error()), slog.Duration("elapsed", elapsed))
		return
	}

	metrics.SyncRunsTotal.WithLabelValues("rates", "success").Inc()
	metrics.SyncEntriesSaved.WithLabelValues("rates").Add(float64(count))
	s.logger.Info("Scheduled rate update completed", slog.Int("saved", count), slog.Duration("elapsed", elapsed))
}
