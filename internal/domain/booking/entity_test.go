//go:build unit

package booking_test

import (
	"testing"
	"time"

	"barberbook/internal/domain/booking"
	"barberbook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHold(t *testing.T) {
	b := builder.NewBookingBuilder()
	hold := b.BuildHold()

	assert.NotEqual(t, uuid.Nil, hold.ID())
	assert.Equal(t, booking.StatusHeld, hold.Status())
	require.NotNil(t, hold.HoldExpiresAt())
	assert.Equal(t, b.Now.Add(b.HoldTTL), *hold.HoldExpiresAt())
	assert.Equal(t, 0, hold.PaymentAttempts())
	assert.True(t, hold.BlocksSlotAt(b.Now))
}

func TestHoldExpiry(t *testing.T) {
	b := builder.NewBookingBuilder()
	hold := b.BuildHold()

	t.Run("live before the deadline", func(t *testing.T) {
		assert.False(t, hold.HoldExpired(b.Now.Add(b.HoldTTL-time.Second)))
	})

	t.Run("expired exactly at the deadline", func(t *testing.T) {
		assert.True(t, hold.HoldExpired(b.Now.Add(b.HoldTTL)))
	})

	t.Run("expired hold no longer blocks its slot", func(t *testing.T) {
		assert.False(t, hold.BlocksSlotAt(b.Now.Add(b.HoldTTL)))
	})
}

func TestBeginPayment(t *testing.T) {
	t.Run("moves a live hold to pending_payment and clears the TTL", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		hold := b.BuildHold()

		require.NoError(t, hold.BeginPayment(b.Now.Add(time.Minute)))
		assert.Equal(t, booking.StatusPendingPayment, hold.Status())
		assert.Nil(t, hold.HoldExpiresAt())
	})

	t.Run("rejects an expired hold", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		hold := b.BuildHold()

		err := hold.BeginPayment(b.Now.Add(b.HoldTTL))
		assert.ErrorIs(t, err, booking.ErrHoldExpired)
		assert.Equal(t, booking.StatusHeld, hold.Status())
	})

	t.Run("rejects non-held statuses", func(t *testing.T) {
		for _, status := range []booking.Status{
			booking.StatusPendingPayment,
			booking.StatusConfirmed,
			booking.StatusCompleted,
			booking.StatusCancelled,
		} {
			b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.Status = status })
			err := b.BuildDomain().BeginPayment(b.Now)
			assert.ErrorIs(t, err, booking.ErrInvalidTransition, "status %s", status)
		}
	})
}

func TestConfirmPayment(t *testing.T) {
	t.Run("confirms from pending_payment", func(t *testing.T) {
		b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Status = booking.StatusPendingPayment
		})
		bk := b.BuildDomain()

		require.NoError(t, bk.ConfirmPayment(b.Now))
		assert.Equal(t, booking.StatusConfirmed, bk.Status())
	})

	t.Run("rejects any other status", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		err := b.BuildDomain().ConfirmPayment(b.Now)
		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
	})
}

func TestFailPayment(t *testing.T) {
	const maxAttempts = 3

	t.Run("drops back to held with a fresh TTL", func(t *testing.T) {
		b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Status = booking.StatusPendingPayment
		})
		bk := b.BuildDomain()
		failedAt := b.Now.Add(5 * time.Minute)

		status, err := bk.FailPayment(failedAt, b.HoldTTL, maxAttempts)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusHeld, status)
		assert.Equal(t, 1, bk.PaymentAttempts())
		require.NotNil(t, bk.HoldExpiresAt())
		assert.Equal(t, failedAt.Add(b.HoldTTL), *bk.HoldExpiresAt())
	})

	t.Run("cancels for good at the attempt budget", func(t *testing.T) {
		b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Status = booking.StatusPendingPayment
			b.Attempts = maxAttempts - 1
		})
		bk := b.BuildDomain()

		status, err := bk.FailPayment(b.Now, b.HoldTTL, maxAttempts)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, status)
		assert.Equal(t, maxAttempts, bk.PaymentAttempts())
		assert.Nil(t, bk.HoldExpiresAt())
	})

	t.Run("full retry cycle exhausts the budget", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		bk := b.BuildHold()
		now := b.Now

		for attempt := 1; attempt <= maxAttempts; attempt++ {
			require.NoError(t, bk.BeginPayment(now))
			status, err := bk.FailPayment(now, b.HoldTTL, maxAttempts)
			require.NoError(t, err)
			if attempt < maxAttempts {
				require.Equal(t, booking.StatusHeld, status)
			} else {
				require.Equal(t, booking.StatusCancelled, status)
			}
			now = now.Add(time.Minute)
		}
		assert.Equal(t, maxAttempts, bk.PaymentAttempts())
	})

	t.Run("rejects non pending_payment statuses", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		_, err := b.BuildHold().FailPayment(b.Now, b.HoldTTL, maxAttempts)
		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
	})
}

func TestCancel(t *testing.T) {
	t.Run("allowed from every non-terminal state", func(t *testing.T) {
		for _, status := range []booking.Status{
			booking.StatusHeld,
			booking.StatusPendingPayment,
			booking.StatusConfirmed,
		} {
			b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.Status = status })
			bk := b.BuildDomain()
			require.NoError(t, bk.Cancel(b.Now), "status %s", status)
			assert.Equal(t, booking.StatusCancelled, bk.Status())
			assert.False(t, bk.BlocksSlotAt(b.Now))
		}
	})

	t.Run("rejected from terminal states", func(t *testing.T) {
		for _, status := range []booking.Status{
			booking.StatusCompleted,
			booking.StatusCancelled,
		} {
			b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.Status = status })
			err := b.BuildDomain().Cancel(b.Now)
			assert.ErrorIs(t, err, booking.ErrInvalidTransition, "status %s", status)
		}
	})
}

func TestMarkCompleted(t *testing.T) {
	t.Run("completes a confirmed booking after its slot ends", func(t *testing.T) {
		b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Status = booking.StatusConfirmed
		})
		bk := b.BuildDomain()

		require.NoError(t, bk.MarkCompleted(b.SlotStart.Add(b.Duration)))
		assert.Equal(t, booking.StatusCompleted, bk.Status())
	})

	t.Run("rejects completion before the slot ends", func(t *testing.T) {
		b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Status = booking.StatusConfirmed
		})
		err := b.BuildDomain().MarkCompleted(b.SlotStart.Add(b.Duration - time.Second))
		assert.ErrorIs(t, err, booking.ErrSlotNotFinished)
	})

	t.Run("rejects non-confirmed statuses", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		err := b.BuildHold().MarkCompleted(b.SlotStart.Add(b.Duration))
		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
	})
}
