package readstore

import (
	"context"
	"time"

	"barberbook/internal/infra"
	"barberbook/internal/infra/db"
	"barberbook/internal/pkg/pgconv"
	"barberbook/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

var bookingViewColumns = []string{
	"bk.id", "bk.barber_id", "b.name AS barber_name",
	"bk.service_id", "sv.name AS service_name", "bk.customer_id",
	"bk.slot_start", "bk.slot_end", "bk.status", "bk.hold_expires_at",
	"bk.created_at", "bk.updated_at",
	"p.payment_type", "p.amount_due_cents", "p.amount_paid_cents",
	"p.remaining_due_cents", "p.reference", "p.settled_at",
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query, args, err := psql.Select(bookingViewColumns...).
		From("bookings bk").
		Join("barbers b ON b.id = bk.barber_id").
		Join("services sv ON sv.id = bk.service_id").
		LeftJoin("payments p ON p.booking_id = bk.id").
		Where(sq.Eq{"bk.id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking query", err)
	}

	var (
		v                 queries.BookingView
		paymentType       pgtype.Text
		amountDueCents    pgtype.Int8
		amountPaidCents   pgtype.Int8
		remainingDueCents pgtype.Int8
		reference         pgtype.Text
		settledAt         pgtype.Timestamptz
	)
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&v.ID, &v.BarberID, &v.BarberName,
		&v.ServiceID, &v.ServiceName, &v.CustomerID,
		&v.SlotStart, &v.SlotEnd, &v.Status, &v.HoldExpiresAt,
		&v.CreatedAt, &v.UpdatedAt,
		&paymentType, &amountDueCents, &amountPaidCents,
		&remainingDueCents, &reference, &settledAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	if paymentType.Valid {
		v.Payment = &queries.PaymentView{
			Type:              paymentType.String,
			AmountDueCents:    amountDueCents.Int64,
			AmountPaidCents:   amountPaidCents.Int64,
			RemainingDueCents: remainingDueCents.Int64,
			SettledAt:         pgconv.TimePtrFromPgtype(settledAt),
		}
		if reference.Valid {
			v.Payment.Reference = reference.String
		}
	}
	return &v, nil
}

func (r *BookingReadStore) FindByCustomerFirstPage(ctx context.Context, customerID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	builder := r.listBuilder(customerID).Limit(uint64(limit))
	return r.list(ctx, builder)
}

func (r *BookingReadStore) FindByCustomerKeyset(ctx context.Context, customerID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	builder := r.listBuilder(customerID).
		Where(sq.Expr("(bk.created_at, bk.id) < (?, ?)", lastCreatedAt, lastID)).
		Limit(uint64(limit))
	return r.list(ctx, builder)
}

func (r *BookingReadStore) listBuilder(customerID uuid.UUID) sq.SelectBuilder {
	return psql.Select(
		"bk.id", "b.name AS barber_name", "sv.name AS service_name",
		"bk.slot_start", "bk.status", "bk.created_at",
	).
		From("bookings bk").
		Join("barbers b ON b.id = bk.barber_id").
		Join("services sv ON sv.id = bk.service_id").
		Where(sq.Eq{"bk.customer_id": customerID}).
		OrderBy("bk.created_at DESC", "bk.id DESC")
}

func (r *BookingReadStore) list(ctx context.Context, builder sq.SelectBuilder) ([]*queries.BookingListItem, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var result []*queries.BookingListItem
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(&item.ID, &item.BarberName, &item.ServiceName, &item.SlotStart, &item.Status, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list row", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking list rows", err)
	}
	return result, nil
}
