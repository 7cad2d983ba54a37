package repository

import (
	"context"
	"time"

	"barberbook/internal/domain/booking"
	"barberbook/internal/infra"
	"barberbook/internal/infra/db"
	"barberbook/internal/usecase/shared"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var bookingColumns = []string{
	"id", "barber_id", "service_id", "customer_id",
	"slot_start", "slot_end", "status", "payment_attempts",
	"hold_expires_at", "created_at", "updated_at",
}

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	query, args, err := psql.Insert("bookings").
		Columns(bookingColumns...).
		Values(
			b.ID(), b.BarberID(), b.ServiceID(), b.CustomerID(),
			b.Slot().Start(), b.Slot().End(), b.Status().String(), b.PaymentAttempts(),
			b.HoldExpiresAt(), b.CreatedAt(), b.UpdatedAt(),
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to build booking insert", err)
	}

	var id uuid.UUID
	if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		// The partial unique index on active bookings turns a lost slot race
		// into a conflict rather than a double booking.
		if kind := kindFromPgErr(err); kind == infra.KindDuplicateKey {
			return uuid.Nil, infra.WrapRepoErr("slot already booked", err, infra.KindConflict)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

func (r *BookingRepository) Save(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	query, args, err := psql.Update("bookings").
		Set("status", b.Status().String()).
		Set("payment_attempts", b.PaymentAttempts()).
		Set("hold_expires_at", b.HoldExpiresAt()).
		Set("updated_at", b.UpdatedAt()).
		Where(sq.Eq{"id": b.ID()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build booking update", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to save booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) CountBlocking(ctx context.Context, tx db.DBTX, barberID uuid.UUID, start, end, now time.Time) (int, error) {
	query, args, err := psql.Select("COUNT(*)").
		From("bookings").
		Where(sq.Eq{"barber_id": barberID}).
		Where(sq.Lt{"slot_start": end}).
		Where(sq.Gt{"slot_end": start}).
		Where(sq.Or{
			sq.Eq{"status": []string{
				booking.StatusPendingPayment.String(),
				booking.StatusConfirmed.String(),
			}},
			sq.And{
				sq.Eq{"status": booking.StatusHeld.String()},
				sq.Gt{"hold_expires_at": now},
			},
		}).
		ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build blocking count query", err)
	}

	var count int
	if err := tx.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count blocking bookings", err)
	}
	return count, nil
}

func (r *BookingRepository) ListExpiredHoldsInSlot(ctx context.Context, tx db.DBTX, barberID uuid.UUID, start, end, now time.Time) ([]*shared.BookingSnapshot, error) {
	query, args, err := psql.Select(bookingColumns...).
		From("bookings").
		Where(sq.Eq{"barber_id": barberID}).
		Where(sq.Lt{"slot_start": end}).
		Where(sq.Gt{"slot_end": start}).
		Where(sq.Eq{"status": booking.StatusHeld.String()}).
		Where(sq.LtOrEq{"hold_expires_at": now}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build expired slot holds query", err)
	}
	return r.listSnapshots(ctx, tx, query, args)
}

func (r *BookingRepository) ListExpiredHolds(ctx context.Context, tx db.DBTX, now time.Time, limit int) ([]*shared.BookingSnapshot, error) {
	query, args, err := psql.Select(bookingColumns...).
		From("bookings").
		Where(sq.Eq{"status": booking.StatusHeld.String()}).
		Where(sq.LtOrEq{"hold_expires_at": now}).
		OrderBy("hold_expires_at ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build expired holds query", err)
	}
	return r.listSnapshots(ctx, tx, query, args)
}

func (r *BookingRepository) ListFinishedConfirmed(ctx context.Context, tx db.DBTX, now time.Time, limit int) ([]*shared.BookingSnapshot, error) {
	query, args, err := psql.Select(bookingColumns...).
		From("bookings").
		Where(sq.Eq{"status": booking.StatusConfirmed.String()}).
		Where(sq.LtOrEq{"slot_end": now}).
		OrderBy("slot_end ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build finished bookings query", err)
	}
	return r.listSnapshots(ctx, tx, query, args)
}

func (r *BookingRepository) listSnapshots(ctx context.Context, tx db.DBTX, query string, args []any) ([]*shared.BookingSnapshot, error) {
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var snaps []*shared.BookingSnapshot
	for rows.Next() {
		snap, scanErr := scanBookingSnapshot(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", scanErr)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return snaps, nil
}

func scanBookingSnapshot(row pgx.Row) (*shared.BookingSnapshot, error) {
	var (
		snap   shared.BookingSnapshot
		status string
	)
	err := row.Scan(
		&snap.ID, &snap.BarberID, &snap.ServiceID, &snap.CustomerID,
		&snap.SlotStart, &snap.SlotEnd, &status, &snap.PaymentAttempts,
		&snap.HoldExpiresAt, &snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	snap.Status = booking.Status(status)
	return &snap, nil
}
