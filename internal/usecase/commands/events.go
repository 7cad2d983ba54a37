package commands

import (
	"context"
	"log/slog"

	"barberbook/internal/domain/booking"
	"barberbook/internal/pkg/clock"

	"github.com/google/uuid"
)

// publishStatusChange emits a status event after the owning transaction has
// committed. Publish failures are logged, never propagated.
func publishStatusChange(ctx context.Context, events EventPublisher, clk clock.Clock, bookingID uuid.UUID, status booking.Status) {
	if events == nil {
		return
	}
	evt := StatusChangedEvent{
		Event:      EventBookingStatusChanged,
		BookingID:  bookingID,
		NewStatus:  status.String(),
		OccurredAt: clk.Now(),
	}
	if err := events.PublishStatusChanged(ctx, evt); err != nil {
		slog.Warn("failed to publish booking status event",
			"booking_id", bookingID.String(),
			"status", status.String(),
			"error", err.Error())
	}
}
