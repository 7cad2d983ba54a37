//go:build unit || e2e

package builder

import (
	"time"

	dombooking "barberbook/internal/domain/booking"
	"barberbook/internal/usecase/queries"
	"barberbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID          uuid.UUID
	BarberID    uuid.UUID
	BarberName  string
	ServiceID   uuid.UUID
	ServiceName string
	CustomerID  uuid.UUID
	SlotStart   time.Time
	Duration    time.Duration
	Status      dombooking.Status
	Attempts    int
	HoldTTL     time.Duration
	Now         time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:          uuid.New(),
		BarberID:    uuid.New(),
		BarberName:  "Test Barber",
		ServiceID:   uuid.New(),
		ServiceName: "Classic Haircut",
		CustomerID:  uuid.New(),
		SlotStart:   now.Add(24 * time.Hour),
		Duration:    45 * time.Minute,
		Status:      dombooking.StatusHeld,
		HoldTTL:     10 * time.Minute,
		Now:         now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildHold() *dombooking.Booking {
	slot := dombooking.ReconstructTimeSlot(b.SlotStart, b.Duration)
	return dombooking.NewHold(b.BarberID, b.ServiceID, b.CustomerID, slot, b.Now, b.HoldTTL)
}

// BuildDomain reconstructs a booking in an arbitrary lifecycle state, the way
// a repository load would.
func (b *BookingBuilder) BuildDomain() *dombooking.Booking {
	slot := dombooking.ReconstructTimeSlot(b.SlotStart, b.Duration)
	var holdExpires *time.Time
	if b.Status == dombooking.StatusHeld {
		e := b.Now.Add(b.HoldTTL)
		holdExpires = &e
	}
	return dombooking.ReconstructBooking(
		b.ID, b.BarberID, b.ServiceID, b.CustomerID,
		slot, b.Status, b.Attempts, holdExpires, b.Now, b.Now,
	)
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	var holdExpires *time.Time
	if b.Status == dombooking.StatusHeld {
		e := b.Now.Add(b.HoldTTL)
		holdExpires = &e
	}
	return &shared.BookingSnapshot{
		ID:              b.ID,
		BarberID:        b.BarberID,
		ServiceID:       b.ServiceID,
		CustomerID:      b.CustomerID,
		SlotStart:       b.SlotStart,
		SlotEnd:         b.SlotStart.Add(b.Duration),
		Status:          b.Status,
		PaymentAttempts: b.Attempts,
		HoldExpiresAt:   holdExpires,
		CreatedAt:       b.Now,
		UpdatedAt:       b.Now,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	var holdExpires *time.Time
	if b.Status == dombooking.StatusHeld {
		e := b.Now.Add(b.HoldTTL)
		holdExpires = &e
	}
	return &queries.BookingView{
		ID:            b.ID,
		BarberID:      b.BarberID,
		BarberName:    b.BarberName,
		ServiceID:     b.ServiceID,
		ServiceName:   b.ServiceName,
		CustomerID:    b.CustomerID,
		SlotStart:     b.SlotStart,
		SlotEnd:       b.SlotStart.Add(b.Duration),
		Status:        b.Status.String(),
		HoldExpiresAt: holdExpires,
		CreatedAt:     b.Now,
		UpdatedAt:     b.Now,
	}
}
