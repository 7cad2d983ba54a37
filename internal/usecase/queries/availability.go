package queries

import (
	"context"
	"time"

	"barberbook/internal/infra"
	"barberbook/internal/pkg/clock"
	"barberbook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidRange = errs.New("invalid date range")

// MaxRangeDays bounds how far ahead a single availability request may look.
const MaxRangeDays = 31

// BarberScheduleView is the slice of barber data availability needs.
type BarberScheduleView struct {
	BarberID   uuid.UUID
	OpenMin    int
	CloseMin   int
	ClosedDays uint8
}

func (s *BarberScheduleView) isOpenOn(day time.Weekday) bool {
	return s.ClosedDays&(1<<uint(day)) == 0
}

// BusyInterval is a half-open [Start, End) window blocked by an active booking.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

type AvailabilityReadStore interface {
	BarberSchedule(ctx context.Context, barberID uuid.UUID) (*BarberScheduleView, error)
	// BlockingIntervals returns intervals of bookings that still block their
	// slot at now (held-and-unexpired, pending_payment, confirmed) touching
	// [from, to).
	BlockingIntervals(ctx context.Context, barberID uuid.UUID, from, to, now time.Time) ([]BusyInterval, error)
}

type AvailabilityQueries interface {
	GetAvailableSlots(ctx context.Context, barberID uuid.UUID, from, to time.Time) ([]*SlotView, error)
}

type availabilityQueriesImpl struct {
	repo           AvailabilityReadStore
	clock          clock.Clock
	granularityMin int
}

func NewAvailabilityQueries(repo AvailabilityReadStore, clk clock.Clock, granularityMin int) AvailabilityQueries {
	return &availabilityQueriesImpl{repo: repo, clock: clk, granularityMin: granularityMin}
}

func (q *availabilityQueriesImpl) GetAvailableSlots(ctx context.Context, barberID uuid.UUID, from, to time.Time) ([]*SlotView, error) {
	if to.Before(from) {
		return nil, ErrInvalidRange
	}
	if to.Sub(from) > MaxRangeDays*24*time.Hour {
		return nil, ErrInvalidRange
	}

	schedule, err := q.repo.BarberSchedule(ctx, barberID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBarberNotFound
		}
		return nil, err
	}

	now := q.clock.Now()
	rangeEnd := to.AddDate(0, 0, 1) // `to` is an inclusive date
	busy, err := q.repo.BlockingIntervals(ctx, barberID, from, rangeEnd, now)
	if err != nil {
		return nil, err
	}

	granularity := time.Duration(q.granularityMin) * time.Minute
	slots := make([]*SlotView, 0)
	for day := dayStart(from); day.Before(rangeEnd); day = day.AddDate(0, 0, 1) {
		for _, start := range daySlots(schedule, day, granularity, now) {
			if slotBlocked(start, start.Add(granularity), busy) {
				continue
			}
			slots = append(slots, &SlotView{
				BarberID:    barberID,
				Start:       start,
				DurationMin: int32(q.granularityMin),
			})
		}
	}
	return slots, nil
}

// daySlots generates the candidate grid for one calendar day: every
// granularity step from opening until the last start that still fits before
// close. Days in the past and starts before now are skipped.
func daySlots(schedule *BarberScheduleView, day time.Time, granularity time.Duration, now time.Time) []time.Time {
	if !schedule.isOpenOn(day.Weekday()) {
		return nil
	}

	open := dayStart(day).Add(time.Duration(schedule.OpenMin) * time.Minute)
	close := dayStart(day).Add(time.Duration(schedule.CloseMin) * time.Minute)

	var starts []time.Time
	for cursor := open; !cursor.Add(granularity).After(close); cursor = cursor.Add(granularity) {
		if cursor.Before(now) {
			continue
		}
		starts = append(starts, cursor)
	}
	return starts
}

// slotBlocked reports whether the half-open candidate window [start, end)
// intersects any busy interval. Boundary touches are not blocking.
func slotBlocked(start, end time.Time, busy []BusyInterval) bool {
	for _, b := range busy {
		if start.Before(b.End) && b.Start.Before(end) {
			return true
		}
	}
	return false
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
