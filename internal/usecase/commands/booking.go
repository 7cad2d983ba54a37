package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"barberbook/internal/domain/booking"
	"barberbook/internal/infra"
	"barberbook/internal/pkg/clock"
	"barberbook/internal/pkg/errs"
	"barberbook/internal/usecase/queries"
	"barberbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBarberNotFound          = errs.New("barber not found")
	ErrServiceNotFound         = errs.New("service not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrBookingNotOwned         = errs.New("booking not owned by customer")
	ErrSlotUnavailable         = errs.New("slot is unavailable")
	ErrSlotOutsideHours        = errs.New("slot is outside working hours")
	ErrHoldExpired             = errs.New("booking hold has expired")
	ErrInvalidTransition       = errs.New("invalid booking status transition")
	ErrIdempotencyInProgress   = errs.New("idempotency in progress")
	ErrDuplicateHoldRequest    = errs.New("different request reusing idempotency key")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateHoldRequest struct {
	BarberID  uuid.UUID
	ServiceID uuid.UUID
	SlotStart time.Time
}

type CreateHoldResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

type BookingCommands interface {
	CreateHold(ctx context.Context, req CreateHoldRequest, customerID, idempotencyKey uuid.UUID) (*CreateHoldResult, error)
	Cancel(ctx context.Context, bookingID, actorID uuid.UUID) error
}

type bookingUseCaseImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	events         EventPublisher
	clock          clock.Clock
	policy         BookingPolicy
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	bookingQueries queries.BookingQueries,
	events EventPublisher,
	clk clock.Clock,
	policy BookingPolicy,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		events:         events,
		clock:          clk,
		policy:         policy,
	}
}

func (c *bookingUseCaseImpl) CreateHold(
	ctx context.Context,
	req CreateHoldRequest,
	customerID, idempotencyKey uuid.UUID,
) (*CreateHoldResult, error) {
	requestHash := calculateRequestHash(req)
	expiresAt := c.clock.Now().Add(24 * time.Hour)

	replayed, err := c.handleIdempotency(ctx, idempotencyKey, customerID, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return &CreateHoldResult{Booking: replayed, IsReplayed: true}, nil
	}

	view, err := c.createNewHold(ctx, req, customerID, idempotencyKey)
	if err != nil {
		return nil, err
	}
	return &CreateHoldResult{Booking: view, IsReplayed: false}, nil
}

func (c *bookingUseCaseImpl) handleIdempotency(
	ctx context.Context,
	idempotencyKey, customerID uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (*queries.BookingView, error) {
	var inserted bool
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var txErr error
		inserted, txErr = tx.Idempotency().TryInsert(ctx, tx.DB(), idempotencyKey, customerID, "POST /bookings", requestHash, expiresAt)
		return txErr
	})
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if inserted {
		return nil, nil
	}

	existing, err := c.uow.CommandReads().IdempotencyByKey(ctx, idempotencyKey, customerID)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	switch existing.Status {
	case "completed":
		if existing.ResultBookingID != nil {
			return c.bookingQueries.GetByIDSystem(ctx, *existing.ResultBookingID)
		}
		return nil, errs.New("completed request missing result booking ID")

	case "processing":
		if existing.RequestHash != requestHash {
			return nil, ErrDuplicateHoldRequest
		}
		return nil, ErrIdempotencyInProgress

	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (c *bookingUseCaseImpl) createNewHold(
	ctx context.Context,
	req CreateHoldRequest,
	customerID, idempotencyKey uuid.UUID,
) (*queries.BookingView, error) {
	barber, err := c.uow.CommandReads().BarberByID(ctx, req.BarberID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBarberNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	svc, err := c.uow.CommandReads().ServiceByID(ctx, req.ServiceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if svc.BarberID != req.BarberID {
		return nil, ErrServiceNotFound
	}

	now := c.clock.Now()
	slot, err := booking.NewTimeSlot(req.SlotStart, time.Duration(svc.DurationMin)*time.Minute)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	if slot.Start().Before(now) {
		return nil, ErrSlotUnavailable
	}
	if !slotWithinHours(barber, slot) {
		return nil, ErrSlotOutsideHours
	}

	hold := booking.NewHold(req.BarberID, req.ServiceID, customerID, slot, now, c.policy.HoldTTL)

	var released []uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		released = released[:0]
		if lockErr := tx.LockSlot(ctx, req.BarberID, slot.Start()); lockErr != nil {
			return errs.Mark(lockErr, ErrDatabaseOperationFailed)
		}

		blocking, countErr := tx.Bookings().CountBlocking(ctx, tx.DB(), req.BarberID, slot.Start(), slot.End(), now)
		if countErr != nil {
			return errs.Mark(countErr, ErrDatabaseOperationFailed)
		}
		if blocking > 0 {
			return ErrSlotUnavailable
		}

		// A hold the sweeper has not reached yet still occupies the partial
		// unique index while availability already reads the slot as free, so
		// it is released here before the insert.
		stale, staleErr := tx.Bookings().ListExpiredHoldsInSlot(ctx, tx.DB(), req.BarberID, slot.Start(), slot.End(), now)
		if staleErr != nil {
			return errs.Mark(staleErr, ErrDatabaseOperationFailed)
		}
		for _, snap := range stale {
			agg := snap.ToDomain()
			if cancelErr := agg.Cancel(now); cancelErr != nil {
				return ErrSlotUnavailable
			}
			if saveErr := tx.Bookings().Save(ctx, tx.DB(), agg); saveErr != nil {
				return errs.Mark(saveErr, ErrDatabaseOperationFailed)
			}
			released = append(released, snap.ID)
		}

		bookingID, createErr := tx.Bookings().Create(ctx, tx.DB(), hold)
		if createErr != nil {
			if infra.IsKind(createErr, infra.KindConflict) {
				return ErrSlotUnavailable
			}
			return errs.Mark(createErr, ErrDatabaseOperationFailed)
		}

		responseHash := calculateIDHash(bookingID)
		return tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), idempotencyKey, customerID, responseHash, bookingID)
	})
	if err != nil {
		return nil, err
	}

	for _, id := range released {
		publishStatusChange(ctx, c.events, c.clock, id, booking.StatusCancelled)
	}
	publishStatusChange(ctx, c.events, c.clock, hold.ID(), booking.StatusHeld)

	return c.bookingQueries.GetByIDSystem(ctx, hold.ID())
}

func (c *bookingUseCaseImpl) Cancel(ctx context.Context, bookingID, actorID uuid.UUID) error {
	var newStatus booking.Status
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, readErr := tx.Reads().BookingByID(ctx, bookingID)
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
		if cancelErr := agg.Cancel(c.clock.Now()); cancelErr != nil {
			return errs.Mark(cancelErr, ErrInvalidTransition)
		}
		newStatus = agg.Status()
		return tx.Bookings().Save(ctx, tx.DB(), agg)
	})
	if err != nil {
		return err
	}

	publishStatusChange(ctx, c.events, c.clock, bookingID, newStatus)
	return nil
}

// slotWithinHours checks the candidate interval against the barber's schedule
// for that weekday.
func slotWithinHours(barber *shared.BarberSnapshot, slot booking.TimeSlot) bool {
	day := slot.Start().Weekday()
	if barber.ClosedDays&(1<<uint(day)) != 0 {
		return false
	}
	startMin := slot.Start().Hour()*60 + slot.Start().Minute()
	endMin := startMin + int(slot.Duration().Minutes())
	return startMin >= barber.OpenMin && endMin <= barber.CloseMin
}


func calculateRequestHash(req CreateHoldRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
