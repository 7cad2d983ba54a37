//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"barberbook/internal/infra"
	"barberbook/internal/pkg/clock"
	"barberbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAvailabilityStore struct {
	schedule    *queries.BarberScheduleView
	scheduleErr error
	busy        []queries.BusyInterval
}

func (s *stubAvailabilityStore) BarberSchedule(_ context.Context, _ uuid.UUID) (*queries.BarberScheduleView, error) {
	if s.scheduleErr != nil {
		return nil, s.scheduleErr
	}
	return s.schedule, nil
}

func (s *stubAvailabilityStore) BlockingIntervals(_ context.Context, _ uuid.UUID, _, _, _ time.Time) ([]queries.BusyInterval, error) {
	return s.busy, nil
}

func newSchedule() *queries.BarberScheduleView {
	return &queries.BarberScheduleView{
		BarberID:   uuid.New(),
		OpenMin:    9 * 60,
		CloseMin:   17*60 + 30,
		ClosedDays: 1 << uint(time.Sunday),
	}
}

func TestGetAvailableSlots(t *testing.T) {
	// Tuesday, well before opening
	now := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	newQueries := func(store *stubAvailabilityStore, at time.Time) queries.AvailabilityQueries {
		return queries.NewAvailabilityQueries(store, clock.NewMockClock(at), 30)
	}

	t.Run("full open day on the half hour grid", func(t *testing.T) {
		q := newQueries(&stubAvailabilityStore{schedule: newSchedule()}, now)

		slots, err := q.GetAvailableSlots(context.Background(), uuid.New(), day, day)
		require.NoError(t, err)

		// 09:00 through 17:00 inclusive, every 30 minutes
		require.Len(t, slots, 17)
		assert.Equal(t, day.Add(9*time.Hour), slots[0].Start)
		assert.Equal(t, day.Add(17*time.Hour), slots[len(slots)-1].Start)
		for _, s := range slots {
			assert.Equal(t, int32(30), s.DurationMin)
		}
	})

	t.Run("closed day yields no slots", func(t *testing.T) {
		sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
		q := newQueries(&stubAvailabilityStore{schedule: newSchedule()}, now.AddDate(0, 0, -3))

		slots, err := q.GetAvailableSlots(context.Background(), uuid.New(), sunday, sunday)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("slots before now are skipped", func(t *testing.T) {
		midDay := day.Add(12*time.Hour + 10*time.Minute)
		q := newQueries(&stubAvailabilityStore{schedule: newSchedule()}, midDay)

		slots, err := q.GetAvailableSlots(context.Background(), uuid.New(), day, day)
		require.NoError(t, err)

		require.NotEmpty(t, slots)
		assert.Equal(t, day.Add(12*time.Hour+30*time.Minute), slots[0].Start)
	})

	t.Run("busy intervals knock out overlapping slots", func(t *testing.T) {
		store := &stubAvailabilityStore{
			schedule: newSchedule(),
			busy: []queries.BusyInterval{
				// a 45 minute booking starting 10:00 blocks 10:00 and 10:30
				{Start: day.Add(10 * time.Hour), End: day.Add(10*time.Hour + 45*time.Minute)},
			},
		}
		q := newQueries(store, now)

		slots, err := q.GetAvailableSlots(context.Background(), uuid.New(), day, day)
		require.NoError(t, err)

		starts := make(map[time.Time]bool, len(slots))
		for _, s := range slots {
			starts[s.Start] = true
		}
		assert.False(t, starts[day.Add(10*time.Hour)])
		assert.False(t, starts[day.Add(10*time.Hour+30*time.Minute)])
		assert.True(t, starts[day.Add(9*time.Hour+30*time.Minute)])
		assert.True(t, starts[day.Add(11*time.Hour)])
	})

	t.Run("interval touching a slot boundary does not block it", func(t *testing.T) {
		store := &stubAvailabilityStore{
			schedule: newSchedule(),
			busy: []queries.BusyInterval{
				{Start: day.Add(10 * time.Hour), End: day.Add(10*time.Hour + 30*time.Minute)},
			},
		}
		q := newQueries(store, now)

		slots, err := q.GetAvailableSlots(context.Background(), uuid.New(), day, day)
		require.NoError(t, err)

		starts := make(map[time.Time]bool, len(slots))
		for _, s := range slots {
			starts[s.Start] = true
		}
		assert.False(t, starts[day.Add(10*time.Hour)])
		assert.True(t, starts[day.Add(10*time.Hour+30*time.Minute)])
	})

	t.Run("multi day range spans calendar days", func(t *testing.T) {
		q := newQueries(&stubAvailabilityStore{schedule: newSchedule()}, now)

		slots, err := q.GetAvailableSlots(context.Background(), uuid.New(), day, day.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Len(t, slots, 34)
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		q := newQueries(&stubAvailabilityStore{schedule: newSchedule()}, now)

		_, err := q.GetAvailableSlots(context.Background(), uuid.New(), day, day.AddDate(0, 0, -1))
		assert.ErrorIs(t, err, queries.ErrInvalidRange)
	})

	t.Run("range beyond the cap is rejected", func(t *testing.T) {
		q := newQueries(&stubAvailabilityStore{schedule: newSchedule()}, now)

		_, err := q.GetAvailableSlots(context.Background(), uuid.New(), day, day.AddDate(0, 0, queries.MaxRangeDays+1))
		assert.ErrorIs(t, err, queries.ErrInvalidRange)
	})

	t.Run("unknown barber maps to not found", func(t *testing.T) {
		store := &stubAvailabilityStore{
			scheduleErr: infra.WrapRepoErr("barber not found", nil, infra.KindNotFound),
		}
		q := newQueries(store, now)

		_, err := q.GetAvailableSlots(context.Background(), uuid.New(), day, day)
		assert.ErrorIs(t, err, queries.ErrBarberNotFound)
	})
}
