package shared

import (
	"context"
	"time"

	"barberbook/internal/domain/booking"
	"barberbook/internal/domain/review"
	"barberbook/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Payments() PaymentRepository
	Reviews() ReviewRepository
	RatingStats() RatingStatsRepository
	Idempotency() IdempotencyRepository
	Reads() CommandReads
	// LockSlot serializes every writer touching the same (barber, slot start)
	// pair for the duration of the transaction. This is the boundary where
	// concurrent hold attempts and the expiry sweep are forced into sequence.
	LockSlot(ctx context.Context, barberID uuid.UUID, slotStart time.Time) error
	DB() db.DBTX
}

type CommandReads interface {
	BarberByID(ctx context.Context, id uuid.UUID) (*BarberSnapshot, error)
	ServiceByID(ctx context.Context, id uuid.UUID) (*ServiceSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	PaymentByBookingID(ctx context.Context, bookingID uuid.UUID) (*PaymentSnapshot, error)
	PaymentByReference(ctx context.Context, reference string) (*PaymentSnapshot, error)
	ReviewByBookingID(ctx context.Context, bookingID uuid.UUID) (*ReviewSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, customerID uuid.UUID) (*IdempotencyRecord, error)
}

// Write-side snapshots keep commands off the read-model query types.
type BarberSnapshot struct {
	ID         uuid.UUID
	Name       string
	Location   string
	OpenMin    int
	CloseMin   int
	ClosedDays uint8
}

type ServiceSnapshot struct {
	ID          uuid.UUID
	BarberID    uuid.UUID
	Name        string
	DurationMin int
	PriceCents  int64
}

type BookingSnapshot struct {
	ID              uuid.UUID
	BarberID        uuid.UUID
	ServiceID       uuid.UUID
	CustomerID      uuid.UUID
	SlotStart       time.Time
	SlotEnd         time.Time
	Status          booking.Status
	PaymentAttempts int
	HoldExpiresAt   *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (s *BookingSnapshot) ToDomain() *booking.Booking {
	return booking.ReconstructBooking(
		s.ID, s.BarberID, s.ServiceID, s.CustomerID,
		booking.ReconstructTimeSlot(s.SlotStart, s.SlotEnd.Sub(s.SlotStart)),
		s.Status,
		s.PaymentAttempts,
		s.HoldExpiresAt,
		s.CreatedAt, s.UpdatedAt,
	)
}

type PaymentSnapshot struct {
	BookingID         uuid.UUID
	PaymentType       booking.PaymentType
	AmountDueCents    int64
	AmountPaidCents   int64
	RemainingDueCents int64
	Reference         string
	SettledAt         *time.Time
}

func (s *PaymentSnapshot) ToDomain() *booking.PaymentRecord {
	return booking.ReconstructPaymentRecord(
		s.BookingID,
		s.PaymentType,
		booking.MustMoney(s.AmountDueCents),
		booking.MustMoney(s.AmountPaidCents),
		booking.MustMoney(s.RemainingDueCents),
		s.Reference,
		s.SettledAt,
	)
}

type ReviewSnapshot struct {
	ID          uuid.UUID
	BookingID   uuid.UUID
	BarberID    uuid.UUID
	CustomerID  uuid.UUID
	Rating      int
	SubmittedAt time.Time
}

type IdempotencyRecord struct {
	Key             uuid.UUID
	CustomerID      uuid.UUID
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	// Save persists a status transition (status, attempts, hold expiry).
	Save(ctx context.Context, tx db.DBTX, b *booking.Booking) error
	// CountBlocking counts bookings for the barber whose interval overlaps
	// [start, end) and which still block the slot at now.
	CountBlocking(ctx context.Context, tx db.DBTX, barberID uuid.UUID, start, end, now time.Time) (int, error)
	// ListExpiredHoldsInSlot returns held bookings overlapping [start, end)
	// whose TTL has elapsed at now.
	ListExpiredHoldsInSlot(ctx context.Context, tx db.DBTX, barberID uuid.UUID, start, end, now time.Time) ([]*BookingSnapshot, error)
	ListExpiredHolds(ctx context.Context, tx db.DBTX, now time.Time, limit int) ([]*BookingSnapshot, error)
	ListFinishedConfirmed(ctx context.Context, tx db.DBTX, now time.Time, limit int) ([]*BookingSnapshot, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, tx db.DBTX, rec *booking.PaymentRecord) error
	Settle(ctx context.Context, tx db.DBTX, rec *booking.PaymentRecord) error
}

type ReviewRepository interface {
	Create(ctx context.Context, tx db.DBTX, rev *review.Review) (uuid.UUID, error)
}

type RatingStatsRepository interface {
	RecalcBarberRatingStats(ctx context.Context, tx db.DBTX, barberID uuid.UUID) error
}

type IdempotencyRepository interface {
	// TryInsert claims the key; inserted=false means another request holds it.
	TryInsert(ctx context.Context, tx db.DBTX, key, customerID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (inserted bool, err error)
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, customerID uuid.UUID, responseHash string, resultBookingID uuid.UUID) error
	DeleteExpired(ctx context.Context, tx db.DBTX, now time.Time) (int64, error)
}
