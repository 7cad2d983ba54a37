//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"barberbook/internal/infra"
	"barberbook/internal/usecase/queries"
	"barberbook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookingStore struct {
	view     *queries.BookingView
	items    []*queries.BookingListItem
	lastCall string
}

func (s *stubBookingStore) FindByID(_ context.Context, _ uuid.UUID) (*queries.BookingView, error) {
	if s.view == nil {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return s.view, nil
}

func (s *stubBookingStore) FindByCustomerFirstPage(_ context.Context, _ uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	s.lastCall = "first"
	return capItems(s.items, limit), nil
}

func (s *stubBookingStore) FindByCustomerKeyset(_ context.Context, _ uuid.UUID, _ time.Time, _ uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	s.lastCall = "keyset"
	return capItems(s.items, limit), nil
}

func capItems(items []*queries.BookingListItem, limit int32) []*queries.BookingListItem {
	if int32(len(items)) > limit {
		return items[:limit]
	}
	return items
}

func listItems(n int) []*queries.BookingListItem {
	base := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	items := make([]*queries.BookingListItem, n)
	for i := range items {
		items[i] = &queries.BookingListItem{
			ID:          uuid.New(),
			BarberName:  "Test Barber",
			ServiceName: "Classic Haircut",
			SlotStart:   base.Add(time.Duration(i) * time.Hour),
			Status:      "confirmed",
			CreatedAt:   base.Add(-time.Duration(i) * time.Minute),
		}
	}
	return items
}

func TestBookingGetByID(t *testing.T) {
	t.Run("owner sees the booking", func(t *testing.T) {
		view := builder.NewBookingBuilder().BuildView()
		q := queries.NewBookingQueries(&stubBookingStore{view: view})

		got, err := q.GetByID(context.Background(), view.ID, view.CustomerID)
		require.NoError(t, err)
		assert.Equal(t, view.ID, got.ID)
	})

	t.Run("other customers are denied", func(t *testing.T) {
		view := builder.NewBookingBuilder().BuildView()
		q := queries.NewBookingQueries(&stubBookingStore{view: view})

		_, err := q.GetByID(context.Background(), view.ID, uuid.New())
		assert.ErrorIs(t, err, queries.ErrBookingAccess)
	})

	t.Run("system read skips the ownership check", func(t *testing.T) {
		view := builder.NewBookingBuilder().BuildView()
		q := queries.NewBookingQueries(&stubBookingStore{view: view})

		got, err := q.GetByIDSystem(context.Background(), view.ID)
		require.NoError(t, err)
		assert.Equal(t, view.ID, got.ID)
	})

	t.Run("unknown booking maps to not found", func(t *testing.T) {
		q := queries.NewBookingQueries(&stubBookingStore{})

		_, err := q.GetByID(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, queries.ErrBookingNotFound)
	})
}

func TestBookingListByCustomer(t *testing.T) {
	t.Run("short page has no next cursor", func(t *testing.T) {
		store := &stubBookingStore{items: listItems(3)}
		q := queries.NewBookingQueries(store)

		rows, next, err := q.ListByCustomer(context.Background(), uuid.New(), nil, 10)
		require.NoError(t, err)
		assert.Len(t, rows, 3)
		assert.Nil(t, next)
		assert.Equal(t, "first", store.lastCall)
	})

	t.Run("full page yields a cursor pointing at the last row", func(t *testing.T) {
		store := &stubBookingStore{items: listItems(11)}
		q := queries.NewBookingQueries(store)

		rows, next, err := q.ListByCustomer(context.Background(), uuid.New(), nil, 10)
		require.NoError(t, err)
		require.Len(t, rows, 10)
		require.NotNil(t, next)

		gotTime, gotID, err := queries.DecodeAfterCursor(next.After)
		require.NoError(t, err)
		last := rows[len(rows)-1]
		assert.Equal(t, last.ID, gotID)
		assert.Equal(t, last.CreatedAt.UnixMicro(), gotTime.UnixMicro())
	})

	t.Run("cursor routes to the keyset query", func(t *testing.T) {
		store := &stubBookingStore{items: listItems(1)}
		q := queries.NewBookingQueries(store)

		cursor := &queries.Cursor{After: queries.EncodeAfterCursor(time.Now(), uuid.New())}
		_, _, err := q.ListByCustomer(context.Background(), uuid.New(), cursor, 10)
		require.NoError(t, err)
		assert.Equal(t, "keyset", store.lastCall)
	})

	t.Run("garbage cursor is rejected", func(t *testing.T) {
		q := queries.NewBookingQueries(&stubBookingStore{})

		_, _, err := q.ListByCustomer(context.Background(), uuid.New(), &queries.Cursor{After: "garbage"}, 10)
		assert.ErrorIs(t, err, queries.ErrInvalidCursor)
	})
}
