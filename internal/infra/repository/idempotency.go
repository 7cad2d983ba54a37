package repository

import (
	"context"
	"time"

	"barberbook/internal/infra"
	"barberbook/internal/infra/db"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type IdempotencyRepository struct{}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx db.DBTX, key, customerID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	query, args, err := psql.Insert("idempotency_keys").
		Columns("key", "customer_id", "endpoint", "request_hash", "status", "expires_at").
		Values(key, customerID, endpoint, requestHash, "processing", expiresAt).
		Suffix("ON CONFLICT (key, customer_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, infra.WrapRepoErr("failed to build idempotency insert", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert idempotency key", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, customerID uuid.UUID, responseHash string, resultBookingID uuid.UUID) error {
	query, args, err := psql.Update("idempotency_keys").
		Set("status", "completed").
		Set("response_hash", responseHash).
		Set("result_booking_id", resultBookingID).
		Where(sq.Eq{"key": key, "customer_id": customerID}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build idempotency update", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return nil
}

// DeleteExpired reclaims keys past their retention window. Invoked from the
// periodic sweep.
func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, tx db.DBTX, now time.Time) (int64, error) {
	query, args, err := psql.Delete("idempotency_keys").
		Where(sq.LtOrEq{"expires_at": now}).
		ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build idempotency delete", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}
