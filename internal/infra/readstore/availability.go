package readstore

import (
	"context"
	"time"

	"barberbook/internal/domain/booking"
	"barberbook/internal/infra"
	"barberbook/internal/infra/db"
	"barberbook/internal/pkg/pgconv"
	"barberbook/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type AvailabilityReadStore struct {
	db db.DBTX
}

func NewAvailabilityReadStore(dbtx db.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{db: dbtx}
}

func (r *AvailabilityReadStore) BarberSchedule(ctx context.Context, barberID uuid.UUID) (*queries.BarberScheduleView, error) {
	query, args, err := psql.Select("id", "open_min", "close_min", "closed_days").
		From("barbers").
		Where(sq.Eq{"id": barberID}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build schedule query", err)
	}

	var v queries.BarberScheduleView
	err = r.db.QueryRow(ctx, query, args...).Scan(&v.BarberID, &v.OpenMin, &v.CloseMin, &v.ClosedDays)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("barber not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find barber schedule", err)
	}
	return &v, nil
}

func (r *AvailabilityReadStore) BlockingIntervals(ctx context.Context, barberID uuid.UUID, from, to, now time.Time) ([]queries.BusyInterval, error) {
	query, args, err := psql.Select("slot_start", "slot_end").
		From("bookings").
		Where(sq.Eq{"barber_id": barberID}).
		Where(sq.Lt{"slot_start": to}).
		Where(sq.Gt{"slot_end": from}).
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
		OrderBy("slot_start ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build blocking intervals query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list blocking intervals", err)
	}
	defer rows.Close()

	var result []queries.BusyInterval
	for rows.Next() {
		var iv queries.BusyInterval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, infra.WrapRepoErr("failed to scan blocking interval", err)
		}
		result = append(result, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate blocking intervals", err)
	}
	return result, nil
}
