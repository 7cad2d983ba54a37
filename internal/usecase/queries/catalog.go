package queries

import (
	"context"

	"barberbook/internal/infra"
	"barberbook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrBarberNotFound = errs.New("barber not found")

type CatalogReadStore interface {
	ListBarbers(ctx context.Context) ([]*BarberView, error)
	FindBarberByID(ctx context.Context, id uuid.UUID) (*BarberView, error)
	ListServicesByBarber(ctx context.Context, barberID uuid.UUID) ([]*ServiceView, error)
}

type CatalogQueries interface {
	ListBarbers(ctx context.Context) ([]*BarberView, error)
	GetBarber(ctx context.Context, id uuid.UUID) (*BarberView, error)
	ListServices(ctx context.Context, barberID uuid.UUID) ([]*ServiceView, error)
}

type catalogQueriesImpl struct {
	repo CatalogReadStore
}

func NewCatalogQueries(repo CatalogReadStore) CatalogQueries {
	return &catalogQueriesImpl{repo: repo}
}

func (q *catalogQueriesImpl) ListBarbers(ctx context.Context) ([]*BarberView, error) {
	return q.repo.ListBarbers(ctx)
}

func (q *catalogQueriesImpl) GetBarber(ctx context.Context, id uuid.UUID) (*BarberView, error) {
	barber, err := q.repo.FindBarberByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBarberNotFound
		}
		return nil, err
	}
	return barber, nil
}

func (q *catalogQueriesImpl) ListServices(ctx context.Context, barberID uuid.UUID) ([]*ServiceView, error) {
	// Unknown barber must surface NotFound, not an empty list.
	if _, err := q.GetBarber(ctx, barberID); err != nil {
		return nil, err
	}
	return q.repo.ListServicesByBarber(ctx, barberID)
}
