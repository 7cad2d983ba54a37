package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ChargeRequest is what crosses the gateway boundary. PaymentMethod is an
// opaque gateway token; raw card details never reach the engine.
type ChargeRequest struct {
	BookingID     uuid.UUID
	AmountCents   int64
	Currency      string
	PaymentMethod string
}

// SettlementResult maps the gateway's response into engine terms. Transient
// marks gateway-unreachable style failures where a manual retry makes sense.
type SettlementResult struct {
	Success       bool
	Reference     string
	FailureReason string
	Transient     bool
}

// PaymentGateway adapts one external card processor. Implementations must not
// retry on their own; bounded retries are this package's decision.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*SettlementResult, error)
}

// StatusChangedEvent is emitted after every committed booking transition so
// notification and calendar systems can subscribe.
type StatusChangedEvent struct {
	Event      string    `json:"event"`
	BookingID  uuid.UUID `json:"booking_id"`
	NewStatus  string    `json:"new_status"`
	OccurredAt time.Time `json:"occurred_at"`
}

const EventBookingStatusChanged = "booking.status_changed"

// EventPublisher delivery is best-effort; failures are logged and never fail
// the originating operation.
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, evt StatusChangedEvent) error
}

// BookingPolicy carries the tunable workflow knobs from configuration.
type BookingPolicy struct {
	HoldTTL            time.Duration
	DepositPercent     int
	MaxPaymentAttempts int
	Currency           string
}
