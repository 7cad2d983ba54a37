//go:build unit

package booking_test

import (
	"testing"
	"time"

	"barberbook/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlot(t *testing.T) {
	aligned := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

	t.Run("aligned start is accepted", func(t *testing.T) {
		slot, err := booking.NewTimeSlot(aligned, 45*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, aligned, slot.Start())
		assert.Equal(t, aligned.Add(45*time.Minute), slot.End())
	})

	t.Run("half hour start is accepted", func(t *testing.T) {
		_, err := booking.NewTimeSlot(aligned.Add(30*time.Minute), time.Hour)
		require.NoError(t, err)
	})

	t.Run("misaligned start is rejected", func(t *testing.T) {
		_, err := booking.NewTimeSlot(aligned.Add(10*time.Minute), time.Hour)
		assert.ErrorIs(t, err, booking.ErrInvalidSlotStart)
	})

	t.Run("non positive duration is rejected", func(t *testing.T) {
		_, err := booking.NewTimeSlot(aligned, 0)
		assert.ErrorIs(t, err, booking.ErrInvalidDuration)

		_, err = booking.NewTimeSlot(aligned, -time.Minute)
		assert.ErrorIs(t, err, booking.ErrInvalidDuration)
	})

	t.Run("overlap is half open", func(t *testing.T) {
		a, err := booking.NewTimeSlot(aligned, 30*time.Minute)
		require.NoError(t, err)
		touching, err := booking.NewTimeSlot(aligned.Add(30*time.Minute), 30*time.Minute)
		require.NoError(t, err)
		crossing := booking.ReconstructTimeSlot(aligned.Add(-30*time.Minute), 45*time.Minute)

		assert.False(t, a.Overlaps(touching))
		assert.False(t, touching.Overlaps(a))
		assert.True(t, a.Overlaps(crossing))
		assert.True(t, crossing.Overlaps(a))
	})
}

func TestMoney(t *testing.T) {
	t.Run("negative amounts are rejected", func(t *testing.T) {
		_, err := booking.NewMoney(-1)
		assert.ErrorIs(t, err, booking.ErrNegativeAmount)
	})

	t.Run("zero is valid", func(t *testing.T) {
		m, err := booking.NewMoney(0)
		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})

	t.Run("euros conversion", func(t *testing.T) {
		m := booking.MustMoney(2550)
		assert.Equal(t, int64(2550), m.Cents())
		assert.InEpsilon(t, 25.50, m.Euros(), 1e-9)
	})
}

func TestSplitPrice(t *testing.T) {
	t.Run("full payment takes the whole price up front", func(t *testing.T) {
		split := booking.SplitPrice(booking.MustMoney(3000), booking.PaymentFull, 20)
		assert.Equal(t, int64(3000), split.AmountDue.Cents())
		assert.True(t, split.RemainingDue.IsZero())
	})

	t.Run("deposit rounds half up", func(t *testing.T) {
		cases := []struct {
			name       string
			priceCents int64
			percent    int
			deposit    int64
		}{
			{"even split", 2500, 20, 500},
			{"rounds down below half cent", 1001, 20, 200},
			{"rounds up at half cent", 1002, 25, 251},
			{"rounds up above half cent", 1299, 20, 260},
			{"single cent price", 1, 20, 0},
			{"zero price", 0, 20, 0},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				split := booking.SplitPrice(booking.MustMoney(tc.priceCents), booking.PaymentDeposit, tc.percent)
				assert.Equal(t, tc.deposit, split.AmountDue.Cents())
				assert.Equal(t, tc.priceCents-tc.deposit, split.RemainingDue.Cents())
			})
		}
	})

	t.Run("deposit and remainder always reproduce the price", func(t *testing.T) {
		for cents := int64(0); cents < 10000; cents += 7 {
			split := booking.SplitPrice(booking.MustMoney(cents), booking.PaymentDeposit, 20)
			require.Equal(t, cents, split.AmountDue.Cents()+split.RemainingDue.Cents(), "price %d", cents)
			require.GreaterOrEqual(t, split.AmountDue.Cents(), int64(0))
			require.GreaterOrEqual(t, split.RemainingDue.Cents(), int64(0))
		}
	})
}

func TestPaymentType(t *testing.T) {
	assert.True(t, booking.PaymentDeposit.IsValid())
	assert.True(t, booking.PaymentFull.IsValid())
	assert.False(t, booking.PaymentType("installments").IsValid())
	assert.False(t, booking.PaymentType("").IsValid())
}
