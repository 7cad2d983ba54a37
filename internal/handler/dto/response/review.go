package response

import (
	"time"

	"barberbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReviewResponse struct {
	ID          uuid.UUID `json:"id"`
	BookingID   uuid.UUID `json:"bookingId"`
	BarberID    uuid.UUID `json:"barberId"`
	BarberName  string    `json:"barberName"`
	Rating      int32     `json:"rating"`
	Tags        []string  `json:"tags"`
	Comment     string    `json:"comment,omitempty"`
	Photos      []string  `json:"photos,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type ReviewListItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Rating      int32     `json:"rating"`
	Tags        []string  `json:"tags"`
	Comment     string    `json:"comment,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type ReviewListResponse struct {
	Items      []*ReviewListItemResponse `json:"items"`
	NextCursor string                    `json:"nextCursor,omitempty"`
}

func FromReviewView(v *queries.ReviewView) *ReviewResponse {
	return &ReviewResponse{
		ID:          v.ID,
		BookingID:   v.BookingID,
		BarberID:    v.BarberID,
		BarberName:  v.BarberName,
		Rating:      v.Rating,
		Tags:        v.Tags,
		Comment:     v.Comment,
		Photos:      v.Photos,
		SubmittedAt: v.SubmittedAt,
	}
}

func FromReviewListItems(items []*queries.ReviewListItem, next *queries.Cursor) *ReviewListResponse {
	resp := &ReviewListResponse{
		Items: make([]*ReviewListItemResponse, len(items)),
	}
	for i, item := range items {
		resp.Items[i] = &ReviewListItemResponse{
			ID:          item.ID,
			Rating:      item.Rating,
			Tags:        item.Tags,
			Comment:     item.Comment,
			SubmittedAt: item.SubmittedAt,
		}
	}
	if next != nil {
		resp.NextCursor = next.After
	}
	return resp
}
