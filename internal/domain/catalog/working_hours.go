package catalog

import (
	"errors"
	"time"
)

var ErrInvalidWorkingHours = errors.New("working hours open must be before close")

// WorkingHours is a barber's daily schedule expressed in minutes since
// midnight, with a bitmask of closed weekdays (bit n = time.Weekday n).
type WorkingHours struct {
	openMin    int
	closeMin   int
	closedDays uint8
}

// DefaultWorkingHours matches the 09:00-17:30 slot grid the booking app
// presents, closed on Sundays.
func DefaultWorkingHours() WorkingHours {
	hours, _ := NewWorkingHours(9*60, 17*60+30, 1<<uint(time.Sunday))
	return hours
}

func NewWorkingHours(openMin, closeMin int, closedDays uint8) (WorkingHours, error) {
	if openMin < 0 || closeMin > 24*60 || openMin >= closeMin {
		return WorkingHours{}, ErrInvalidWorkingHours
	}
	return WorkingHours{openMin: openMin, closeMin: closeMin, closedDays: closedDays}, nil
}

func (w WorkingHours) OpenMin() int      { return w.openMin }
func (w WorkingHours) CloseMin() int     { return w.closeMin }
func (w WorkingHours) ClosedDays() uint8 { return w.closedDays }

func (w WorkingHours) IsOpenOn(day time.Weekday) bool {
	return w.closedDays&(1<<uint(day)) == 0
}

// OpenAt / CloseAt anchor the schedule to a concrete calendar day.
func (w WorkingHours) OpenAt(day time.Time) time.Time {
	return dayStart(day).Add(time.Duration(w.openMin) * time.Minute)
}

func (w WorkingHours) CloseAt(day time.Time) time.Time {
	return dayStart(day).Add(time.Duration(w.closeMin) * time.Minute)
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
