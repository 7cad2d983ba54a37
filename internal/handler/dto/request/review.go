package request

import (
	"strings"

	"github.com/google/uuid"
)

type SubmitReviewRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	Rating    int       `json:"rating" binding:"required,min=1,max=5"`
	Tags      []string  `json:"tags,omitempty"`
	Comment   string    `json:"comment,omitempty"`
	Photos    []string  `json:"photos,omitempty"`
}

func (r SubmitReviewRequest) TrimmedComment() string {
	return strings.TrimSpace(r.Comment)
}
