package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"barberbook/internal/usecase/commands"
)

// sweepTimeout bounds a single sweep pass so a stuck pass cannot overlap the
// next scheduled one indefinitely.
const sweepTimeout = 2 * time.Minute

// Sweeper runs the periodic booking maintenance passes: expiring stale holds,
// completing finished bookings and purging aged idempotency keys.
type Sweeper struct {
	cron   *cron.Cron
	sweep  commands.SweepCommands
	logger *slog.Logger
}

func NewSweeper(sweep commands.SweepCommands, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		sweep:  sweep,
		logger: logger,
	}
}

func (s *Sweeper) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.runPass); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("booking sweeper started", "schedule", schedule)
	return nil
}

func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("booking sweeper stopped")
}

func (s *Sweeper) runPass() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	expired, err := s.sweep.ExpireStaleHolds(ctx)
	if err != nil {
		s.logger.Error("expire stale holds failed", "error", err)
	}

	completed, err := s.sweep.CompleteFinishedBookings(ctx)
	if err != nil {
		s.logger.Error("complete finished bookings failed", "error", err)
	}

	purged, err := s.sweep.PurgeIdempotencyKeys(ctx)
	if err != nil {
		s.logger.Error("purge idempotency keys failed", "error", err)
	}

	if expired > 0 || completed > 0 || purged > 0 {
		s.logger.Info("sweep pass finished",
			"holds_expired", expired,
			"bookings_completed", completed,
			"keys_purged", purged,
		)
	}
}
