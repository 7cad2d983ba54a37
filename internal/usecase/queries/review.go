package queries

import (
	"context"
	"time"

	"barberbook/internal/infra"
	"barberbook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrReviewNotFound = errs.New("review not found")

type ReviewReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReviewView, error)
	FindByBarberFirstPage(ctx context.Context, barberID uuid.UUID, limit int32, minRating, maxRating *int) ([]*ReviewListItem, error)
	FindByBarberKeyset(ctx context.Context, barberID uuid.UUID, lastSubmittedAt time.Time, lastID uuid.UUID, limit int32, minRating, maxRating *int) ([]*ReviewListItem, error)
	GetBarberRatingStats(ctx context.Context, barberID uuid.UUID) (*BarberRatingStats, error)
}

type ReviewQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReviewView, error)
	ListByBarber(ctx context.Context, barberID uuid.UUID, filters ReviewFilters, cursor *Cursor, limit int) ([]*ReviewListItem, *Cursor, error)
	GetBarberRatingStats(ctx context.Context, barberID uuid.UUID) (*BarberRatingStats, error)
}

type reviewQueriesImpl struct {
	repo ReviewReadStore
}

func NewReviewQueries(repo ReviewReadStore) ReviewQueries {
	return &reviewQueriesImpl{repo: repo}
}

func (q *reviewQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReviewView, error) {
	rv, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return rv, nil
}

func (q *reviewQueriesImpl) ListByBarber(ctx context.Context, barberID uuid.UUID, filters ReviewFilters, cursor *Cursor, limit int) ([]*ReviewListItem, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*ReviewListItem
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindByBarberFirstPage(ctx, barberID, int32(limit+1), filters.MinRating, filters.MaxRating)
	} else {
		lastSubmittedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindByBarberKeyset(ctx, barberID, lastSubmittedAt, lastID, int32(limit+1), filters.MinRating, filters.MaxRating)
	}
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.SubmittedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

func (q *reviewQueriesImpl) GetBarberRatingStats(ctx context.Context, barberID uuid.UUID) (*BarberRatingStats, error) {
	stats, err := q.repo.GetBarberRatingStats(ctx, barberID)
	if err != nil {
		// No aggregate row yet just means nobody has reviewed this barber.
		if infra.IsKind(err, infra.KindNotFound) {
			return &BarberRatingStats{BarberID: barberID}, nil
		}
		return nil, err
	}
	return stats, nil
}
