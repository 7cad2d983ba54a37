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
)

type ReviewReadStore struct {
	db db.DBTX
}

func NewReviewReadStore(dbtx db.DBTX) *ReviewReadStore {
	return &ReviewReadStore{db: dbtx}
}

func (r *ReviewReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReviewView, error) {
	query, args, err := psql.Select(
		"r.id", "r.booking_id", "r.barber_id", "b.name AS barber_name",
		"r.customer_id", "r.rating", "r.tags", "r.comment", "r.photos", "r.submitted_at",
	).
		From("reviews r").
		Join("barbers b ON b.id = r.barber_id").
		Where(sq.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build review query", err)
	}

	var v queries.ReviewView
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&v.ID, &v.BookingID, &v.BarberID, &v.BarberName,
		&v.CustomerID, &v.Rating, &v.Tags, &v.Comment, &v.Photos, &v.SubmittedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("review not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find review by ID", err)
	}
	return &v, nil
}

func (r *ReviewReadStore) FindByBarberFirstPage(ctx context.Context, barberID uuid.UUID, limit int32, minRating, maxRating *int) ([]*queries.ReviewListItem, error) {
	builder := r.listBuilder(barberID, minRating, maxRating).Limit(uint64(limit))
	return r.list(ctx, builder)
}

func (r *ReviewReadStore) FindByBarberKeyset(ctx context.Context, barberID uuid.UUID, lastSubmittedAt time.Time, lastID uuid.UUID, limit int32, minRating, maxRating *int) ([]*queries.ReviewListItem, error) {
	builder := r.listBuilder(barberID, minRating, maxRating).
		Where(sq.Expr("(submitted_at, id) < (?, ?)", lastSubmittedAt, lastID)).
		Limit(uint64(limit))
	return r.list(ctx, builder)
}

func (r *ReviewReadStore) listBuilder(barberID uuid.UUID, minRating, maxRating *int) sq.SelectBuilder {
	builder := psql.Select("id", "rating", "tags", "comment", "submitted_at").
		From("reviews").
		Where(sq.Eq{"barber_id": barberID}).
		OrderBy("submitted_at DESC", "id DESC")
	if minRating != nil {
		builder = builder.Where(sq.GtOrEq{"rating": *minRating})
	}
	if maxRating != nil {
		builder = builder.Where(sq.LtOrEq{"rating": *maxRating})
	}
	return builder
}

func (r *ReviewReadStore) list(ctx context.Context, builder sq.SelectBuilder) ([]*queries.ReviewListItem, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build review list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reviews", err)
	}
	defer rows.Close()

	var result []*queries.ReviewListItem
	for rows.Next() {
		var item queries.ReviewListItem
		if err := rows.Scan(&item.ID, &item.Rating, &item.Tags, &item.Comment, &item.SubmittedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan review list row", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate review list rows", err)
	}
	return result, nil
}

func (r *ReviewReadStore) GetBarberRatingStats(ctx context.Context, barberID uuid.UUID) (*queries.BarberRatingStats, error) {
	query, args, err := psql.Select(
		"barber_id", "total_reviews", "average_rating",
		"rating_1_count", "rating_2_count", "rating_3_count",
		"rating_4_count", "rating_5_count", "updated_at",
	).
		From("barber_rating_stats").
		Where(sq.Eq{"barber_id": barberID}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build rating stats query", err)
	}

	var v queries.BarberRatingStats
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&v.BarberID, &v.TotalReviews, &v.AverageRating,
		&v.Rating1Count, &v.Rating2Count, &v.Rating3Count,
		&v.Rating4Count, &v.Rating5Count, &v.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("rating stats not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find rating stats", err)
	}
	return &v, nil
}
