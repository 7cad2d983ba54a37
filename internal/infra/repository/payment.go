package repository

import (
	"context"

	"barberbook/internal/domain/booking"
	"barberbook/internal/infra"
	"barberbook/internal/infra/db"

	sq "github.com/Masterminds/squirrel"
)

type PaymentRepository struct{}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{}
}

func (r *PaymentRepository) Create(ctx context.Context, tx db.DBTX, rec *booking.PaymentRecord) error {
	query, args, err := psql.Insert("payments").
		Columns(
			"booking_id", "payment_type",
			"amount_due_cents", "amount_paid_cents", "remaining_due_cents",
		).
		Values(
			rec.BookingID(), string(rec.PaymentType()),
			rec.AmountDue().Cents(), rec.AmountPaid().Cents(), rec.RemainingDue().Cents(),
		).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build payment insert", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		if kind := kindFromPgErr(err); kind != infra.KindDBFailure {
			return infra.WrapRepoErr("payment record already exists", err, kind)
		}
		return infra.WrapRepoErr("failed to create payment record", err)
	}
	return nil
}

func (r *PaymentRepository) Settle(ctx context.Context, tx db.DBTX, rec *booking.PaymentRecord) error {
	query, args, err := psql.Update("payments").
		Set("reference", rec.Reference()).
		Set("amount_paid_cents", rec.AmountPaid().Cents()).
		Set("settled_at", rec.SettledAt()).
		Where(sq.Eq{"booking_id": rec.BookingID()}).
		Where(sq.Eq{"settled_at": nil}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build payment settle", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		// The unique index on reference refuses to record one settlement
		// against two bookings.
		if kind := kindFromPgErr(err); kind == infra.KindDuplicateKey {
			return infra.WrapRepoErr("settlement reference already recorded", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to settle payment record", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("payment record missing or already settled", nil, infra.KindConflict)
	}
	return nil
}
