package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrHoldExpired       = errors.New("booking hold has expired")
	ErrSlotNotFinished   = errors.New("booking slot has not finished yet")
	ErrInvalidPayment    = errors.New("invalid payment type")
)

// Booking is the aggregate owning one appointment's lifecycle:
// held -> pending_payment -> confirmed -> completed, with cancellation from
// any non-terminal state. Bookings are never deleted, only cancelled.
type Booking struct {
	id              uuid.UUID
	barberID        uuid.UUID
	serviceID       uuid.UUID
	customerID      uuid.UUID
	slot            TimeSlot
	status          Status
	paymentAttempts int
	holdExpiresAt   *time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

// NewHold creates a booking in the held state with the given TTL. Slot
// freeness is not checked here; that is the transaction's job.
func NewHold(barberID, serviceID, customerID uuid.UUID, slot TimeSlot, now time.Time, ttl time.Duration) *Booking {
	expires := now.Add(ttl)
	return &Booking{
		id:            uuid.New(),
		barberID:      barberID,
		serviceID:     serviceID,
		customerID:    customerID,
		slot:          slot,
		status:        StatusHeld,
		holdExpiresAt: &expires,
		createdAt:     now,
		updatedAt:     now,
	}
}

func ReconstructBooking(
	id, barberID, serviceID, customerID uuid.UUID,
	slot TimeSlot,
	status Status,
	paymentAttempts int,
	holdExpiresAt *time.Time,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		barberID:        barberID,
		serviceID:       serviceID,
		customerID:      customerID,
		slot:            slot,
		status:          status,
		paymentAttempts: paymentAttempts,
		holdExpiresAt:   holdExpiresAt,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// BeginPayment moves a live hold into pending_payment. An expired hold is
// rejected with ErrHoldExpired; the caller is expected to cancel it.
func (b *Booking) BeginPayment(now time.Time) error {
	if b.status != StatusHeld {
		return ErrInvalidTransition
	}
	if b.HoldExpired(now) {
		return ErrHoldExpired
	}
	b.status = StatusPendingPayment
	b.holdExpiresAt = nil
	b.updatedAt = now
	return nil
}

// ConfirmPayment commits a successful settlement.
func (b *Booking) ConfirmPayment(now time.Time) error {
	if b.status != StatusPendingPayment {
		return ErrInvalidTransition
	}
	b.status = StatusConfirmed
	b.updatedAt = now
	return nil
}

// FailPayment records a failed settlement attempt. Until maxAttempts is
// reached the booking drops back to held with a fresh TTL so the customer can
// retry; after that it is cancelled for good. Returns the resulting status.
func (b *Booking) FailPayment(now time.Time, ttl time.Duration, maxAttempts int) (Status, error) {
	if b.status != StatusPendingPayment {
		return b.status, ErrInvalidTransition
	}
	b.paymentAttempts++
	b.updatedAt = now
	if b.paymentAttempts >= maxAttempts {
		b.status = StatusCancelled
		b.holdExpiresAt = nil
		return b.status, nil
	}
	expires := now.Add(ttl)
	b.status = StatusHeld
	b.holdExpiresAt = &expires
	return b.status, nil
}

// Cancel is valid from any non-terminal state and releases the slot.
func (b *Booking) Cancel(now time.Time) error {
	if b.status.IsTerminal() {
		return ErrInvalidTransition
	}
	b.status = StatusCancelled
	b.holdExpiresAt = nil
	b.updatedAt = now
	return nil
}

// MarkCompleted is the sweeper-driven transition once the slot has passed.
func (b *Booking) MarkCompleted(now time.Time) error {
	if b.status != StatusConfirmed {
		return ErrInvalidTransition
	}
	if now.Before(b.slot.End()) {
		return ErrSlotNotFinished
	}
	b.status = StatusCompleted
	b.updatedAt = now
	return nil
}

func (b *Booking) HoldExpired(now time.Time) bool {
	return b.status == StatusHeld && b.holdExpiresAt != nil && !now.Before(*b.holdExpiresAt)
}

// BlocksSlotAt reports whether this booking keeps its slot unavailable at the
// given instant. An expired hold no longer blocks.
func (b *Booking) BlocksSlotAt(now time.Time) bool {
	if !b.status.BlocksSlot() {
		return false
	}
	return !b.HoldExpired(now)
}

func (b *Booking) ID() uuid.UUID             { return b.id }
func (b *Booking) BarberID() uuid.UUID       { return b.barberID }
func (b *Booking) ServiceID() uuid.UUID      { return b.serviceID }
func (b *Booking) CustomerID() uuid.UUID     { return b.customerID }
func (b *Booking) Slot() TimeSlot            { return b.slot }
func (b *Booking) Status() Status            { return b.status }
func (b *Booking) PaymentAttempts() int      { return b.paymentAttempts }
func (b *Booking) HoldExpiresAt() *time.Time { return b.holdExpiresAt }
func (b *Booking) CreatedAt() time.Time      { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time      { return b.updatedAt }
