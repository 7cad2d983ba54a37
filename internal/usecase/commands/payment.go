package commands

import (
	"context"
	"fmt"
	"log/slog"

	"barberbook/internal/domain/booking"
	"barberbook/internal/infra"
	"barberbook/internal/pkg/clock"
	"barberbook/internal/pkg/errs"
	"barberbook/internal/usecase/queries"
	"barberbook/internal/usecase/shared"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

var (
	ErrPaymentNotStarted = errs.New("payment has not been started for this booking")
	ErrInvalidPayment    = errs.New("invalid payment type")
)

// SettlementError carries the gateway outcome for a failed charge. Cancelled
// means the attempt budget is exhausted and the booking was cancelled.
type SettlementError struct {
	Reason    string
	Transient bool
	Attempts  int
	Cancelled bool
}

func (e *SettlementError) Error() string {
	if e.Cancelled {
		return fmt.Sprintf("settlement failed (%s); booking cancelled after %d attempts", e.Reason, e.Attempts)
	}
	return fmt.Sprintf("settlement failed (%s); attempt %d", e.Reason, e.Attempts)
}

type BeginPaymentRequest struct {
	BookingID   uuid.UUID
	PaymentType booking.PaymentType
}

type ConfirmPaymentRequest struct {
	BookingID     uuid.UUID
	PaymentMethod string
}

type PaymentCommands interface {
	// BeginPayment moves a live hold into pending_payment and attaches a
	// payment record with the deposit split already computed.
	BeginPayment(ctx context.Context, req BeginPaymentRequest, actorID uuid.UUID) (*queries.BookingView, error)
	// ConfirmPayment charges the gateway and settles on success. Failures
	// count against the attempt budget and surface as *SettlementError.
	ConfirmPayment(ctx context.Context, req ConfirmPaymentRequest, actorID uuid.UUID) (*queries.BookingView, error)
}

type paymentUseCaseImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	gateway        PaymentGateway
	events         EventPublisher
	clock          clock.Clock
	policy         BookingPolicy
}

func NewPaymentCommands(
	uow shared.UnitOfWork,
	bookingQueries queries.BookingQueries,
	gateway PaymentGateway,
	events EventPublisher,
	clk clock.Clock,
	policy BookingPolicy,
) PaymentCommands {
	return &paymentUseCaseImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		gateway:        gateway,
		events:         events,
		clock:          clk,
		policy:         policy,
	}
}

func (c *paymentUseCaseImpl) BeginPayment(
	ctx context.Context,
	req BeginPaymentRequest,
	actorID uuid.UUID,
) (*queries.BookingView, error) {
	if !req.PaymentType.IsValid() {
		return nil, ErrInvalidPayment
	}

	now := c.clock.Now()
	var newStatus booking.Status
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, readErr := tx.Reads().BookingByID(ctx, req.BookingID)
		if readErr != nil {
			if infra.IsKind(readErr, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(readErr, ErrDatabaseOperationFailed)
		}
		if snap.CustomerID != actorID {
			return ErrBookingNotOwned
		}

		agg := snap.ToDomain()
		if beginErr := agg.BeginPayment(now); beginErr != nil {
			if errors.Is(beginErr, booking.ErrHoldExpired) {
				// A stale hold is released immediately rather than kept
				// around for the sweeper.
				if cancelErr := agg.Cancel(now); cancelErr != nil {
					return errs.Mark(cancelErr, ErrInvalidTransition)
				}
				if saveErr := tx.Bookings().Save(ctx, tx.DB(), agg); saveErr != nil {
					return errs.Mark(saveErr, ErrDatabaseOperationFailed)
				}
				newStatus = booking.StatusCancelled
				return ErrHoldExpired
			}
			return errs.Mark(beginErr, ErrInvalidTransition)
		}

		if ensureErr := c.ensurePaymentRecord(ctx, tx, snap, req.PaymentType); ensureErr != nil {
			return ensureErr
		}

		if saveErr := tx.Bookings().Save(ctx, tx.DB(), agg); saveErr != nil {
			return errs.Mark(saveErr, ErrDatabaseOperationFailed)
		}
		newStatus = agg.Status()
		return nil
	})
	if err != nil {
		// The cancel-on-expiry path rolls back with the tx, so a stale hold
		// must be released in its own transaction before reporting expiry.
		if errors.Is(err, ErrHoldExpired) {
			c.releaseExpiredHold(ctx, req.BookingID)
		}
		return nil, err
	}

	publishStatusChange(ctx, c.events, c.clock, req.BookingID, newStatus)
	return c.bookingQueries.GetByIDSystem(ctx, req.BookingID)
}

// ensurePaymentRecord creates the booking's payment record on first entry
// into pending_payment. A record left by a failed attempt is kept as-is; the
// split chosen at first BeginPayment stands for the booking's lifetime.
func (c *paymentUseCaseImpl) ensurePaymentRecord(
	ctx context.Context,
	tx shared.Tx,
	snap *shared.BookingSnapshot,
	paymentType booking.PaymentType,
) error {
	_, err := tx.Reads().PaymentByBookingID(ctx, snap.ID)
	if err == nil {
		return nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	svc, err := tx.Reads().ServiceByID(ctx, snap.ServiceID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	price, err := booking.NewMoney(svc.PriceCents)
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}
	rec, err := booking.NewPaymentRecord(snap.ID, paymentType, price, c.policy.DepositPercent)
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}
	if createErr := tx.Payments().Create(ctx, tx.DB(), rec); createErr != nil {
		return errs.Mark(createErr, ErrDatabaseOperationFailed)
	}
	return nil
}

// releaseExpiredHold cancels a hold whose TTL elapsed before payment began.
func (c *paymentUseCaseImpl) releaseExpiredHold(ctx context.Context, bookingID uuid.UUID) {
	now := c.clock.Now()
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, readErr := tx.Reads().BookingByID(ctx, bookingID)
		if readErr != nil {
			return readErr
		}
		agg := snap.ToDomain()
		if cancelErr := agg.Cancel(now); cancelErr != nil {
			return cancelErr
		}
		return tx.Bookings().Save(ctx, tx.DB(), agg)
	})
	if err != nil {
		slog.Warn("failed to release expired hold",
			slog.String("booking_id", bookingID.String()),
			slog.String("error", err.Error()))
		return
	}
	publishStatusChange(ctx, c.events, c.clock, bookingID, booking.StatusCancelled)
}

func (c *paymentUseCaseImpl) ConfirmPayment(
	ctx context.Context,
	req ConfirmPaymentRequest,
	actorID uuid.UUID,
) (*queries.BookingView, error) {
	snap, err := c.uow.CommandReads().BookingByID(ctx, req.BookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if snap.CustomerID != actorID {
		return nil, ErrBookingNotOwned
	}

	paySnap, err := c.uow.CommandReads().PaymentByBookingID(ctx, req.BookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPaymentNotStarted
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// Retrying a confirmed booking with a settled record is a replay, not an
	// error. The gateway must not be charged twice.
	if paySnap.SettledAt != nil && snap.Status == booking.StatusConfirmed {
		return c.bookingQueries.GetByIDSystem(ctx, req.BookingID)
	}
	if snap.Status != booking.StatusPendingPayment {
		return nil, ErrInvalidTransition
	}

	// The charge happens outside any transaction or slot lock; a slow
	// gateway must not hold database state hostage.
	result, chargeErr := c.gateway.Charge(ctx, ChargeRequest{
		BookingID:     req.BookingID,
		AmountCents:   paySnap.AmountDueCents,
		Currency:      c.policy.Currency,
		PaymentMethod: req.PaymentMethod,
	})
	if chargeErr != nil {
		result = &SettlementResult{
			Success:       false,
			FailureReason: "gateway unreachable",
			Transient:     true,
		}
		slog.Warn("payment gateway charge failed",
			slog.String("booking_id", req.BookingID.String()),
			slog.String("error", chargeErr.Error()))
	}

	if result.Success {
		return c.settleCharge(ctx, req.BookingID, result)
	}
	return nil, c.recordFailedAttempt(ctx, req.BookingID, result)
}

func (c *paymentUseCaseImpl) settleCharge(
	ctx context.Context,
	bookingID uuid.UUID,
	result *SettlementResult,
) (*queries.BookingView, error) {
	now := c.clock.Now()
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// A concurrent confirm may have won between the charge and this
		// transaction; the unique reference makes the settle idempotent.
		if prior, refErr := tx.Reads().PaymentByReference(ctx, result.Reference); refErr == nil {
			if prior.BookingID == bookingID {
				return nil
			}
			return errs.New("settlement reference already bound to another booking")
		} else if !infra.IsKind(refErr, infra.KindNotFound) {
			return errs.Mark(refErr, ErrDatabaseOperationFailed)
		}

		snap, readErr := tx.Reads().BookingByID(ctx, bookingID)
		if readErr != nil {
			return errs.Mark(readErr, ErrDatabaseOperationFailed)
		}
		paySnap, payErr := tx.Reads().PaymentByBookingID(ctx, bookingID)
		if payErr != nil {
			return errs.Mark(payErr, ErrDatabaseOperationFailed)
		}

		rec := paySnap.ToDomain()
		if settleErr := rec.Settle(result.Reference, rec.AmountDue(), now); settleErr != nil {
			if errors.Is(settleErr, booking.ErrAlreadySettled) {
				return nil
			}
			return errs.Mark(settleErr, ErrDomainValidation)
		}
		if saveErr := tx.Payments().Settle(ctx, tx.DB(), rec); saveErr != nil {
			return errs.Mark(saveErr, ErrDatabaseOperationFailed)
		}

		agg := snap.ToDomain()
		if confirmErr := agg.ConfirmPayment(now); confirmErr != nil {
			return errs.Mark(confirmErr, ErrInvalidTransition)
		}
		return tx.Bookings().Save(ctx, tx.DB(), agg)
	})
	if err != nil {
		return nil, err
	}

	publishStatusChange(ctx, c.events, c.clock, bookingID, booking.StatusConfirmed)
	return c.bookingQueries.GetByIDSystem(ctx, bookingID)
}

func (c *paymentUseCaseImpl) recordFailedAttempt(
	ctx context.Context,
	bookingID uuid.UUID,
	result *SettlementResult,
) error {
	now := c.clock.Now()
	var (
		newStatus booking.Status
		attempts  int
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, readErr := tx.Reads().BookingByID(ctx, bookingID)
		if readErr != nil {
			return errs.Mark(readErr, ErrDatabaseOperationFailed)
		}
		agg := snap.ToDomain()
		status, failErr := agg.FailPayment(now, c.policy.HoldTTL, c.policy.MaxPaymentAttempts)
		if failErr != nil {
			return errs.Mark(failErr, ErrInvalidTransition)
		}
		newStatus = status
		attempts = agg.PaymentAttempts()
		return tx.Bookings().Save(ctx, tx.DB(), agg)
	})
	if err != nil {
		return err
	}

	publishStatusChange(ctx, c.events, c.clock, bookingID, newStatus)
	return &SettlementError{
		Reason:    result.FailureReason,
		Transient: result.Transient,
		Attempts:  attempts,
		Cancelled: newStatus == booking.StatusCancelled,
	}
}

