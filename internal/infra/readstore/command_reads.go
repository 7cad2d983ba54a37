package readstore

import (
	"context"

	"barberbook/internal/domain/booking"
	"barberbook/internal/infra"
	"barberbook/internal/infra/db"
	"barberbook/internal/pkg/pgconv"
	"barberbook/internal/usecase/shared"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// CommandReads serves the write side's validation reads. Bound to a
// transaction it sees uncommitted writes; bound to the pool it is a plain
// read path.
type CommandReads struct {
	db db.DBTX
}

func NewCommandReads(dbtx db.DBTX) *CommandReads {
	return &CommandReads{db: dbtx}
}

func (r *CommandReads) BarberByID(ctx context.Context, id uuid.UUID) (*shared.BarberSnapshot, error) {
	query, args, err := psql.Select("id", "name", "location", "open_min", "close_min", "closed_days").
		From("barbers").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build barber snapshot query", err)
	}

	var snap shared.BarberSnapshot
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&snap.ID, &snap.Name, &snap.Location,
		&snap.OpenMin, &snap.CloseMin, &snap.ClosedDays,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("barber not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read barber snapshot", err)
	}
	return &snap, nil
}

func (r *CommandReads) ServiceByID(ctx context.Context, id uuid.UUID) (*shared.ServiceSnapshot, error) {
	query, args, err := psql.Select("id", "barber_id", "name", "duration_min", "price_cents").
		From("services").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build service snapshot query", err)
	}

	var snap shared.ServiceSnapshot
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&snap.ID, &snap.BarberID, &snap.Name, &snap.DurationMin, &snap.PriceCents,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read service snapshot", err)
	}
	return &snap, nil
}

func (r *CommandReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	query, args, err := psql.Select(
		"id", "barber_id", "service_id", "customer_id",
		"slot_start", "slot_end", "status", "payment_attempts",
		"hold_expires_at", "created_at", "updated_at",
	).
		From("bookings").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking snapshot query", err)
	}

	var (
		snap   shared.BookingSnapshot
		status string
	)
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&snap.ID, &snap.BarberID, &snap.ServiceID, &snap.CustomerID,
		&snap.SlotStart, &snap.SlotEnd, &status, &snap.PaymentAttempts,
		&snap.HoldExpiresAt, &snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read booking snapshot", err)
	}
	snap.Status = booking.Status(status)
	return &snap, nil
}

func (r *CommandReads) PaymentByBookingID(ctx context.Context, bookingID uuid.UUID) (*shared.PaymentSnapshot, error) {
	return r.paymentBy(ctx, sq.Eq{"booking_id": bookingID})
}

func (r *CommandReads) PaymentByReference(ctx context.Context, reference string) (*shared.PaymentSnapshot, error) {
	return r.paymentBy(ctx, sq.Eq{"reference": reference})
}

func (r *CommandReads) paymentBy(ctx context.Context, pred sq.Eq) (*shared.PaymentSnapshot, error) {
	query, args, err := psql.Select(
		"booking_id", "payment_type",
		"amount_due_cents", "amount_paid_cents", "remaining_due_cents",
		"COALESCE(reference, '')", "settled_at",
	).
		From("payments").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build payment snapshot query", err)
	}

	var (
		snap        shared.PaymentSnapshot
		paymentType string
	)
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&snap.BookingID, &paymentType,
		&snap.AmountDueCents, &snap.AmountPaidCents, &snap.RemainingDueCents,
		&snap.Reference, &snap.SettledAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read payment snapshot", err)
	}
	snap.PaymentType = booking.PaymentType(paymentType)
	return &snap, nil
}

func (r *CommandReads) ReviewByBookingID(ctx context.Context, bookingID uuid.UUID) (*shared.ReviewSnapshot, error) {
	query, args, err := psql.Select("id", "booking_id", "barber_id", "customer_id", "rating", "submitted_at").
		From("reviews").
		Where(sq.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build review snapshot query", err)
	}

	var snap shared.ReviewSnapshot
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&snap.ID, &snap.BookingID, &snap.BarberID, &snap.CustomerID,
		&snap.Rating, &snap.SubmittedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("review not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read review snapshot", err)
	}
	return &snap, nil
}

func (r *CommandReads) IdempotencyByKey(ctx context.Context, key, customerID uuid.UUID) (*shared.IdempotencyRecord, error) {
	query, args, err := psql.Select("key", "customer_id", "status", "request_hash", "result_booking_id", "expires_at").
		From("idempotency_keys").
		Where(sq.Eq{"key": key, "customer_id": customerID}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build idempotency query", err)
	}

	var rec shared.IdempotencyRecord
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&rec.Key, &rec.CustomerID, &rec.Status, &rec.RequestHash,
		&rec.ResultBookingID, &rec.ExpiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read idempotency key", err)
	}
	return &rec, nil
}
