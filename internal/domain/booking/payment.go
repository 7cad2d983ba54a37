package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadySettled  = errors.New("payment record already settled")
	ErrEmptyReference  = errors.New("settlement reference cannot be empty")
	ErrAmountMismatch  = errors.New("settled amount does not match amount due")
	ErrInvalidSplitSum = errors.New("deposit and remainder must sum to the price")
)

// PaymentRecord tracks the funds owed for one booking. It is created when
// payment begins and becomes immutable once settled.
type PaymentRecord struct {
	bookingID    uuid.UUID
	paymentType  PaymentType
	amountDue    Money
	amountPaid   Money
	remainingDue Money
	reference    string
	settledAt    *time.Time
}

func NewPaymentRecord(bookingID uuid.UUID, paymentType PaymentType, price Money, depositPercent int) (*PaymentRecord, error) {
	if !paymentType.IsValid() {
		return nil, ErrInvalidPayment
	}
	split := SplitPrice(price, paymentType, depositPercent)
	if split.AmountDue.Cents()+split.RemainingDue.Cents() != price.Cents() {
		return nil, ErrInvalidSplitSum
	}
	return &PaymentRecord{
		bookingID:    bookingID,
		paymentType:  paymentType,
		amountDue:    split.AmountDue,
		remainingDue: split.RemainingDue,
	}, nil
}

func ReconstructPaymentRecord(
	bookingID uuid.UUID,
	paymentType PaymentType,
	amountDue, amountPaid, remainingDue Money,
	reference string,
	settledAt *time.Time,
) *PaymentRecord {
	return &PaymentRecord{
		bookingID:    bookingID,
		paymentType:  paymentType,
		amountDue:    amountDue,
		amountPaid:   amountPaid,
		remainingDue: remainingDue,
		reference:    reference,
		settledAt:    settledAt,
	}
}

// Settle records the gateway's confirmation that funds were captured.
func (p *PaymentRecord) Settle(reference string, amountPaid Money, now time.Time) error {
	if p.settledAt != nil {
		return ErrAlreadySettled
	}
	if reference == "" {
		return ErrEmptyReference
	}
	if amountPaid.Cents() != p.amountDue.Cents() {
		return ErrAmountMismatch
	}
	p.reference = reference
	p.amountPaid = amountPaid
	p.settledAt = &now
	return nil
}

func (p *PaymentRecord) IsSettled() bool {
	return p.settledAt != nil
}

func (p *PaymentRecord) BookingID() uuid.UUID     { return p.bookingID }
func (p *PaymentRecord) PaymentType() PaymentType { return p.paymentType }
func (p *PaymentRecord) AmountDue() Money         { return p.amountDue }
func (p *PaymentRecord) AmountPaid() Money        { return p.amountPaid }
func (p *PaymentRecord) RemainingDue() Money      { return p.remainingDue }
func (p *PaymentRecord) Reference() string        { return p.reference }
func (p *PaymentRecord) SettledAt() *time.Time    { return p.settledAt }
