package commands

import (
	"context"
	"log/slog"

	"barberbook/internal/domain/booking"
	"barberbook/internal/pkg/clock"
	"barberbook/internal/pkg/errs"
	"barberbook/internal/usecase/shared"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// sweepBatchSize bounds the work of a single sweep pass.
const sweepBatchSize = 100

type SweepCommands interface {
	// ExpireStaleHolds cancels held bookings whose TTL has elapsed, releasing
	// their slots. Returns the number of bookings cancelled.
	ExpireStaleHolds(ctx context.Context) (int, error)
	// CompleteFinishedBookings marks confirmed bookings whose slot has ended
	// as completed, which unlocks review submission. Returns the number of
	// bookings completed.
	CompleteFinishedBookings(ctx context.Context) (int, error)
	// PurgeIdempotencyKeys drops idempotency keys past their retention
	// window. Returns the number of keys removed.
	PurgeIdempotencyKeys(ctx context.Context) (int64, error)
}

type sweepUseCaseImpl struct {
	uow    shared.UnitOfWork
	events EventPublisher
	clock  clock.Clock
}

func NewSweepCommands(uow shared.UnitOfWork, events EventPublisher, clk clock.Clock) SweepCommands {
	return &sweepUseCaseImpl{
		uow:    uow,
		events: events,
		clock:  clk,
	}
}

func (c *sweepUseCaseImpl) ExpireStaleHolds(ctx context.Context) (int, error) {
	now := c.clock.Now()

	var candidates []*shared.BookingSnapshot
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var listErr error
		candidates, listErr = tx.Bookings().ListExpiredHolds(ctx, tx.DB(), now, sweepBatchSize)
		return listErr
	})
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	cancelled := 0
	for _, snap := range candidates {
		if swept := c.sweepOne(ctx, snap, c.expireHold); swept {
			cancelled++
		}
	}
	return cancelled, nil
}

func (c *sweepUseCaseImpl) CompleteFinishedBookings(ctx context.Context) (int, error) {
	now := c.clock.Now()

	var candidates []*shared.BookingSnapshot
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var listErr error
		candidates, listErr = tx.Bookings().ListFinishedConfirmed(ctx, tx.DB(), now, sweepBatchSize)
		return listErr
	})
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	completed := 0
	for _, snap := range candidates {
		if swept := c.sweepOne(ctx, snap, c.completeBooking); swept {
			completed++
		}
	}
	return completed, nil
}

func (c *sweepUseCaseImpl) PurgeIdempotencyKeys(ctx context.Context) (int64, error) {
	now := c.clock.Now()
	var purged int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var delErr error
		purged, delErr = tx.Idempotency().DeleteExpired(ctx, tx.DB(), now)
		return delErr
	})
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return purged, nil
}

// errSweepSkip aborts a per-booking transaction without counting it; the
// booking changed under the sweeper and no longer qualifies.
var errSweepSkip = errs.New("sweep candidate no longer qualifies")

// sweepOne applies one transition in its own transaction so a stuck row never
// blocks the rest of the batch. The slot lock serializes against concurrent
// hold and payment writers.
func (c *sweepUseCaseImpl) sweepOne(
	ctx context.Context,
	candidate *shared.BookingSnapshot,
	transition func(agg *booking.Booking) (booking.Status, error),
) bool {
	var newStatus booking.Status
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if lockErr := tx.LockSlot(ctx, candidate.BarberID, candidate.SlotStart); lockErr != nil {
			return lockErr
		}

		snap, readErr := tx.Reads().BookingByID(ctx, candidate.ID)
		if readErr != nil {
			return readErr
		}

		agg := snap.ToDomain()
		status, transErr := transition(agg)
		if transErr != nil {
			return transErr
		}
		newStatus = status
		return tx.Bookings().Save(ctx, tx.DB(), agg)
	})
	if err != nil {
		if !errors.Is(err, errSweepSkip) {
			slog.Warn("sweep transition failed",
				"booking_id", candidate.ID.String(),
				"error", err.Error())
		}
		return false
	}

	publishStatusChange(ctx, c.events, c.clock, candidate.ID, newStatus)
	c.logSweep(candidate.ID, newStatus)
	return true
}

func (c *sweepUseCaseImpl) expireHold(agg *booking.Booking) (booking.Status, error) {
	now := c.clock.Now()
	if !agg.HoldExpired(now) {
		return agg.Status(), errSweepSkip
	}
	if err := agg.Cancel(now); err != nil {
		return agg.Status(), errSweepSkip
	}
	return booking.StatusCancelled, nil
}

func (c *sweepUseCaseImpl) completeBooking(agg *booking.Booking) (booking.Status, error) {
	if err := agg.MarkCompleted(c.clock.Now()); err != nil {
		return agg.Status(), errSweepSkip
	}
	return booking.StatusCompleted, nil
}

func (c *sweepUseCaseImpl) logSweep(bookingID uuid.UUID, status booking.Status) {
	slog.Info("sweep transitioned booking",
		"booking_id", bookingID.String(),
		"new_status", status.String())
}
