package repository

import (
	"context"

	"barberbook/internal/infra"
	"barberbook/internal/infra/db"

	"github.com/google/uuid"
)

// recalcBarberRatingStatsSQL rebuilds the aggregate from the reviews table in
// one statement so it can never drift from its source.
const recalcBarberRatingStatsSQL = `
INSERT INTO barber_rating_stats (
    barber_id, total_reviews, average_rating,
    rating_1_count, rating_2_count, rating_3_count, rating_4_count, rating_5_count,
    updated_at
)
SELECT
    $1,
    COUNT(*),
    COALESCE(AVG(rating), 0),
    COUNT(*) FILTER (WHERE rating = 1),
    COUNT(*) FILTER (WHERE rating = 2),
    COUNT(*) FILTER (WHERE rating = 3),
    COUNT(*) FILTER (WHERE rating = 4),
    COUNT(*) FILTER (WHERE rating = 5),
    NOW()
FROM reviews
WHERE barber_id = $1
ON CONFLICT (barber_id) DO UPDATE SET
    total_reviews  = EXCLUDED.total_reviews,
    average_rating = EXCLUDED.average_rating,
    rating_1_count = EXCLUDED.rating_1_count,
    rating_2_count = EXCLUDED.rating_2_count,
    rating_3_count = EXCLUDED.rating_3_count,
    rating_4_count = EXCLUDED.rating_4_count,
    rating_5_count = EXCLUDED.rating_5_count,
    updated_at     = EXCLUDED.updated_at
`

type RatingStatsRepository struct{}

func NewRatingStatsRepository() *RatingStatsRepository {
	return &RatingStatsRepository{}
}

func (r *RatingStatsRepository) RecalcBarberRatingStats(ctx context.Context, tx db.DBTX, barberID uuid.UUID) error {
	if _, err := tx.Exec(ctx, recalcBarberRatingStatsSQL, barberID); err != nil {
		return infra.WrapRepoErr("failed to recalc barber rating stats", err)
	}
	return nil
}
