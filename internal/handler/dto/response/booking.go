package response

import (
	"time"

	"barberbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentResponse struct {
	Type              string     `json:"type"`
	AmountDueCents    int64      `json:"amountDueCents"`
	AmountPaidCents   int64      `json:"amountPaidCents"`
	RemainingDueCents int64      `json:"remainingDueCents"`
	Reference         string     `json:"reference,omitempty"`
	SettledAt         *time.Time `json:"settledAt,omitempty"`
}

type BookingResponse struct {
	ID            uuid.UUID        `json:"id"`
	BarberID      uuid.UUID        `json:"barberId"`
	BarberName    string           `json:"barberName"`
	ServiceID     uuid.UUID        `json:"serviceId"`
	ServiceName   string           `json:"serviceName"`
	SlotStart     time.Time        `json:"slotStart"`
	SlotEnd       time.Time        `json:"slotEnd"`
	Status        string           `json:"status"`
	HoldExpiresAt *time.Time       `json:"holdExpiresAt,omitempty"`
	Payment       *PaymentResponse `json:"payment,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

type BookingListItemResponse struct {
	ID          uuid.UUID `json:"id"`
	BarberName  string    `json:"barberName"`
	ServiceName string    `json:"serviceName"`
	SlotStart   time.Time `json:"slotStart"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type BookingListResponse struct {
	Items      []*BookingListItemResponse `json:"items"`
	NextCursor string                     `json:"nextCursor,omitempty"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	resp := &BookingResponse{
		ID:            v.ID,
		BarberID:      v.BarberID,
		BarberName:    v.BarberName,
		ServiceID:     v.ServiceID,
		ServiceName:   v.ServiceName,
		SlotStart:     v.SlotStart,
		SlotEnd:       v.SlotEnd,
		Status:        v.Status,
		HoldExpiresAt: v.HoldExpiresAt,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
	if v.Payment != nil {
		resp.Payment = &PaymentResponse{
			Type:              v.Payment.Type,
			AmountDueCents:    v.Payment.AmountDueCents,
			AmountPaidCents:   v.Payment.AmountPaidCents,
			RemainingDueCents: v.Payment.RemainingDueCents,
			Reference:         v.Payment.Reference,
			SettledAt:         v.Payment.SettledAt,
		}
	}
	return resp
}

func FromBookingListItems(items []*queries.BookingListItem, next *queries.Cursor) *BookingListResponse {
	resp := &BookingListResponse{
		Items: make([]*BookingListItemResponse, len(items)),
	}
	for i, item := range items {
		resp.Items[i] = &BookingListItemResponse{
			ID:          item.ID,
			BarberName:  item.BarberName,
			ServiceName: item.ServiceName,
			SlotStart:   item.SlotStart,
			Status:      item.Status,
			CreatedAt:   item.CreatedAt,
		}
	}
	if next != nil {
		resp.NextCursor = next.After
	}
	return resp
}
