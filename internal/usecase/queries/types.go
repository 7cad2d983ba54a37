package queries

import (
	"time"

	"github.com/google/uuid"
)

// BarberView represents read-optimized barber data with aggregate rating
type BarberView struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Location      string    `json:"location"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int32     `json:"review_count"`
}

// ServiceView represents read-optimized service data
type ServiceView struct {
	ID          uuid.UUID `json:"id"`
	BarberID    uuid.UUID `json:"barber_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DurationMin int32     `json:"duration_min"`
	PriceCents  int64     `json:"price_cents"`
}

// SlotView is one bookable start time for a barber
type SlotView struct {
	BarberID    uuid.UUID `json:"barber_id"`
	Start       time.Time `json:"start"`
	DurationMin int32     `json:"duration_min"`
}

// PaymentView represents the payment attached to a booking
type PaymentView struct {
	Type              string     `json:"type"`
	AmountDueCents    int64      `json:"amount_due_cents"`
	AmountPaidCents   int64      `json:"amount_paid_cents"`
	RemainingDueCents int64      `json:"remaining_due_cents"`
	Reference         string     `json:"reference,omitempty"`
	SettledAt         *time.Time `json:"settled_at,omitempty"`
}

// BookingView represents read-optimized booking data
type BookingView struct {
	ID            uuid.UUID    `json:"id"`
	BarberID      uuid.UUID    `json:"barber_id"`
	BarberName    string       `json:"barber_name"`
	ServiceID     uuid.UUID    `json:"service_id"`
	ServiceName   string       `json:"service_name"`
	CustomerID    uuid.UUID    `json:"customer_id"`
	SlotStart     time.Time    `json:"slot_start"`
	SlotEnd       time.Time    `json:"slot_end"`
	Status        string       `json:"status"`
	HoldExpiresAt *time.Time   `json:"hold_expires_at,omitempty"`
	Payment       *PaymentView `json:"payment,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// BookingListItem is the compact row for booking lists
type BookingListItem struct {
	ID          uuid.UUID `json:"id"`
	BarberName  string    `json:"barber_name"`
	ServiceName string    `json:"service_name"`
	SlotStart   time.Time `json:"slot_start"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReviewView represents read-optimized review data
type ReviewView struct {
	ID          uuid.UUID `json:"id"`
	BookingID   uuid.UUID `json:"booking_id"`
	BarberID    uuid.UUID `json:"barber_id"`
	BarberName  string    `json:"barber_name"`
	CustomerID  uuid.UUID `json:"customer_id"`
	Rating      int32     `json:"rating"`
	Tags        []string  `json:"tags"`
	Comment     string    `json:"comment"`
	Photos      []string  `json:"photos"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ReviewListItem is the compact row for review lists
type ReviewListItem struct {
	ID          uuid.UUID `json:"id"`
	Rating      int32     `json:"rating"`
	Tags        []string  `json:"tags"`
	Comment     string    `json:"comment"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// BarberRatingStats is the maintained aggregate over a barber's reviews
type BarberRatingStats struct {
	BarberID      uuid.UUID `json:"barber_id"`
	TotalReviews  int32     `json:"total_reviews"`
	AverageRating float64   `json:"average_rating"`
	Rating1Count  int32     `json:"rating_1_count"`
	Rating2Count  int32     `json:"rating_2_count"`
	Rating3Count  int32     `json:"rating_3_count"`
	Rating4Count  int32     `json:"rating_4_count"`
	Rating5Count  int32     `json:"rating_5_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ReviewFilters struct {
	MinRating *int
	MaxRating *int
}
