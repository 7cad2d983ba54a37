package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidSlotStart = errors.New("slot start must align to the booking granularity")
	ErrInvalidDuration  = errors.New("duration must be positive")
	ErrNegativeAmount   = errors.New("amount cannot be negative")
)

// SlotGranularity is the fixed grid the availability resolver generates slots
// on. Service durations need not be multiples of it; overlap checks use the
// real duration.
const SlotGranularity = 30 * time.Minute

type TimeSlot struct {
	start    time.Time
	duration time.Duration
}

func NewTimeSlot(start time.Time, duration time.Duration) (TimeSlot, error) {
	if duration <= 0 {
		return TimeSlot{}, ErrInvalidDuration
	}
	if !start.Truncate(SlotGranularity).Equal(start) {
		return TimeSlot{}, ErrInvalidSlotStart
	}
	return TimeSlot{start: start.UTC(), duration: duration}, nil
}

func ReconstructTimeSlot(start time.Time, duration time.Duration) TimeSlot {
	return TimeSlot{start: start.UTC(), duration: duration}
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.start.Add(ts.duration)
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.duration
}

// Overlaps reports whether the half-open intervals [start, end) intersect.
// Bookings that merely touch at a boundary do not overlap.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.End()) && other.start.Before(ts.End())
}

func (ts TimeSlot) String() string {
	return fmt.Sprintf("[%s,%s)", ts.start.Format(time.RFC3339), ts.End().Format(time.RFC3339))
}

// Money is an amount in euro cents.
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents}, nil
}

func MustMoney(cents int64) Money {
	m, err := NewMoney(cents)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Euros() float64 {
	return float64(m.cents) / 100.0
}

func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

func (m Money) IsZero() bool {
	return m.cents == 0
}

// PaymentSplit is what the customer owes now versus after the appointment.
type PaymentSplit struct {
	AmountDue    Money
	RemainingDue Money
}

// SplitPrice computes the deposit/full split for a service price. The deposit
// is percent of the price rounded half-up to the cent, so
// AmountDue + RemainingDue always reproduces the price exactly.
func SplitPrice(price Money, paymentType PaymentType, depositPercent int) PaymentSplit {
	if paymentType == PaymentFull {
		return PaymentSplit{AmountDue: price, RemainingDue: Money{}}
	}
	deposit := Money{cents: (price.cents*int64(depositPercent) + 50) / 100}
	return PaymentSplit{AmountDue: deposit, RemainingDue: price.Sub(deposit)}
}
