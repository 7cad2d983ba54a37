package request

import (
	"time"

	"barberbook/internal/domain/booking"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	BarberID  uuid.UUID `json:"barber_id" binding:"required"`
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	SlotStart time.Time `json:"slot_start" binding:"required"`
}

type BeginPaymentRequest struct {
	PaymentType string `json:"payment_type" binding:"required,oneof=deposit full"`
}

func (r BeginPaymentRequest) ToDomain() booking.PaymentType {
	return booking.PaymentType(r.PaymentType)
}

type ConfirmPaymentRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}
