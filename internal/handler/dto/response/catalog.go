package response

import (
	"time"

	"barberbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type BarberResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Location      string    `json:"location"`
	AverageRating float64   `json:"averageRating"`
	ReviewCount   int32     `json:"reviewCount"`
}

type ServiceResponse struct {
	ID          uuid.UUID `json:"id"`
	BarberID    uuid.UUID `json:"barberId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	DurationMin int32     `json:"durationMin"`
	PriceCents  int64     `json:"priceCents"`
}

type SlotResponse struct {
	Start       time.Time `json:"start"`
	DurationMin int32     `json:"durationMin"`
}

type RatingStatsResponse struct {
	BarberID      uuid.UUID `json:"barberId"`
	TotalReviews  int32     `json:"totalReviews"`
	AverageRating float64   `json:"averageRating"`
	Distribution  [5]int32  `json:"distribution"`
}

func FromBarberView(v *queries.BarberView) *BarberResponse {
	return &BarberResponse{
		ID:            v.ID,
		Name:          v.Name,
		Location:      v.Location,
		AverageRating: v.AverageRating,
		ReviewCount:   v.ReviewCount,
	}
}

func FromServiceView(v *queries.ServiceView) *ServiceResponse {
	return &ServiceResponse{
		ID:          v.ID,
		BarberID:    v.BarberID,
		Name:        v.Name,
		Description: v.Description,
		DurationMin: v.DurationMin,
		PriceCents:  v.PriceCents,
	}
}

func FromSlotView(v *queries.SlotView) *SlotResponse {
	return &SlotResponse{
		Start:       v.Start,
		DurationMin: v.DurationMin,
	}
}

func FromRatingStats(v *queries.BarberRatingStats) *RatingStatsResponse {
	return &RatingStatsResponse{
		BarberID:      v.BarberID,
		TotalReviews:  v.TotalReviews,
		AverageRating: v.AverageRating,
		Distribution:  [5]int32{v.Rating1Count, v.Rating2Count, v.Rating3Count, v.Rating4Count, v.Rating5Count},
	}
}
