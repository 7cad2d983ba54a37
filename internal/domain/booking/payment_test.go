//go:build unit

package booking_test

import (
	"testing"
	"time"

	"barberbook/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaymentRecord(t *testing.T) {
	bookingID := uuid.New()
	price := booking.MustMoney(4500)

	t.Run("deposit record splits the price", func(t *testing.T) {
		rec, err := booking.NewPaymentRecord(bookingID, booking.PaymentDeposit, price, 20)
		require.NoError(t, err)

		assert.Equal(t, int64(900), rec.AmountDue().Cents())
		assert.Equal(t, int64(3600), rec.RemainingDue().Cents())
		assert.True(t, rec.AmountPaid().IsZero())
		assert.False(t, rec.IsSettled())
	})

	t.Run("full record owes everything up front", func(t *testing.T) {
		rec, err := booking.NewPaymentRecord(bookingID, booking.PaymentFull, price, 20)
		require.NoError(t, err)

		assert.Equal(t, price.Cents(), rec.AmountDue().Cents())
		assert.True(t, rec.RemainingDue().IsZero())
	})

	t.Run("rejects an unknown payment type", func(t *testing.T) {
		_, err := booking.NewPaymentRecord(bookingID, booking.PaymentType("later"), price, 20)
		assert.ErrorIs(t, err, booking.ErrInvalidPayment)
	})
}

func TestSettle(t *testing.T) {
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	newRecord := func(t *testing.T) *booking.PaymentRecord {
		t.Helper()
		rec, err := booking.NewPaymentRecord(uuid.New(), booking.PaymentDeposit, booking.MustMoney(2500), 20)
		require.NoError(t, err)
		return rec
	}

	t.Run("records the reference and paid amount", func(t *testing.T) {
		rec := newRecord(t)

		require.NoError(t, rec.Settle("pi_123", rec.AmountDue(), now))
		assert.True(t, rec.IsSettled())
		assert.Equal(t, "pi_123", rec.Reference())
		assert.Equal(t, rec.AmountDue().Cents(), rec.AmountPaid().Cents())
		require.NotNil(t, rec.SettledAt())
		assert.Equal(t, now, *rec.SettledAt())
	})

	t.Run("second settlement is rejected", func(t *testing.T) {
		rec := newRecord(t)
		require.NoError(t, rec.Settle("pi_123", rec.AmountDue(), now))

		err := rec.Settle("pi_456", rec.AmountDue(), now.Add(time.Minute))
		assert.ErrorIs(t, err, booking.ErrAlreadySettled)
		assert.Equal(t, "pi_123", rec.Reference())
	})

	t.Run("empty reference is rejected", func(t *testing.T) {
		rec := newRecord(t)
		err := rec.Settle("", rec.AmountDue(), now)
		assert.ErrorIs(t, err, booking.ErrEmptyReference)
		assert.False(t, rec.IsSettled())
	})

	t.Run("amount mismatch is rejected", func(t *testing.T) {
		rec := newRecord(t)
		err := rec.Settle("pi_123", booking.MustMoney(rec.AmountDue().Cents()+1), now)
		assert.ErrorIs(t, err, booking.ErrAmountMismatch)
		assert.False(t, rec.IsSettled())
	})
}
