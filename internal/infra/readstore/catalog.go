package readstore

import (
	"context"

	"barberbook/internal/infra"
	"barberbook/internal/infra/db"
	"barberbook/internal/pkg/pgconv"
	"barberbook/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var barberViewColumns = []string{
	"b.id", "b.name", "b.location",
	"COALESCE(s.average_rating, 0) AS average_rating",
	"COALESCE(s.total_reviews, 0) AS total_reviews",
}

type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(dbtx db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: dbtx}
}

func (r *CatalogReadStore) ListBarbers(ctx context.Context) ([]*queries.BarberView, error) {
	query, args, err := psql.Select(barberViewColumns...).
		From("barbers b").
		LeftJoin("barber_rating_stats s ON s.barber_id = b.id").
		OrderBy("b.name ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build barbers query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list barbers", err)
	}
	defer rows.Close()

	var result []*queries.BarberView
	for rows.Next() {
		var v queries.BarberView
		if err := rows.Scan(&v.ID, &v.Name, &v.Location, &v.AverageRating, &v.ReviewCount); err != nil {
			return nil, infra.WrapRepoErr("failed to scan barber row", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate barber rows", err)
	}
	return result, nil
}

func (r *CatalogReadStore) FindBarberByID(ctx context.Context, id uuid.UUID) (*queries.BarberView, error) {
	query, args, err := psql.Select(barberViewColumns...).
		From("barbers b").
		LeftJoin("barber_rating_stats s ON s.barber_id = b.id").
		Where(sq.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build barber query", err)
	}

	var v queries.BarberView
	err = r.db.QueryRow(ctx, query, args...).Scan(&v.ID, &v.Name, &v.Location, &v.AverageRating, &v.ReviewCount)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("barber not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find barber by ID", err)
	}
	return &v, nil
}

func (r *CatalogReadStore) ListServicesByBarber(ctx context.Context, barberID uuid.UUID) ([]*queries.ServiceView, error) {
	query, args, err := psql.Select("id", "barber_id", "name", "description", "duration_min", "price_cents").
		From("services").
		Where(sq.Eq{"barber_id": barberID}).
		OrderBy("price_cents ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build services query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list services", err)
	}
	defer rows.Close()

	var result []*queries.ServiceView
	for rows.Next() {
		var v queries.ServiceView
		if err := rows.Scan(&v.ID, &v.BarberID, &v.Name, &v.Description, &v.DurationMin, &v.PriceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan service row", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate service rows", err)
	}
	return result, nil
}
