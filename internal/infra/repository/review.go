package repository

import (
	"context"

	"barberbook/internal/domain/review"
	"barberbook/internal/infra"
	"barberbook/internal/infra/db"

	"github.com/google/uuid"
)

type ReviewRepository struct{}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

func (r *ReviewRepository) Create(ctx context.Context, tx db.DBTX, rev *review.Review) (uuid.UUID, error) {
	query, args, err := psql.Insert("reviews").
		Columns(
			"id", "booking_id", "barber_id", "customer_id",
			"rating", "tags", "comment", "photos", "submitted_at",
		).
		Values(
			rev.ID(), rev.BookingID(), rev.BarberID(), rev.CustomerID(),
			rev.Rating().Value(), rev.Tags().Values(), rev.Comment().String(), rev.Photos().Refs(), rev.SubmittedAt(),
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to build review insert", err)
	}

	var id uuid.UUID
	if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if kind := kindFromPgErr(err); kind != infra.KindDBFailure {
			return uuid.Nil, infra.WrapRepoErr("review conflicts with existing data", err, kind)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create review", err)
	}
	return id, nil
}
