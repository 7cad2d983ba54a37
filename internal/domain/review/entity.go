package review

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrBookingNotCompleted = errors.New("booking is not completed")
	ErrReviewAlreadyExists = errors.New("review already exists for this booking")
	ErrBookingNotOwned     = errors.New("booking does not belong to the reviewer")
)

// Review is feedback attached to exactly one completed booking.
type Review struct {
	id          uuid.UUID
	bookingID   uuid.UUID
	barberID    uuid.UUID
	customerID  uuid.UUID
	rating      Rating
	tags        Tags
	comment     Comment
	photos      Photos
	submittedAt time.Time
}

func NewReview(bookingID, barberID, customerID uuid.UUID, rating Rating, tags Tags, comment Comment, photos Photos, now time.Time) *Review {
	return &Review{
		id:          uuid.New(),
		bookingID:   bookingID,
		barberID:    barberID,
		customerID:  customerID,
		rating:      rating,
		tags:        tags,
		comment:     comment,
		photos:      photos,
		submittedAt: now,
	}
}

func ReconstructReview(
	id, bookingID, barberID, customerID uuid.UUID,
	rating Rating,
	tags Tags,
	comment Comment,
	photos Photos,
	submittedAt time.Time,
) *Review {
	return &Review{
		id:          id,
		bookingID:   bookingID,
		barberID:    barberID,
		customerID:  customerID,
		rating:      rating,
		tags:        tags,
		comment:     comment,
		photos:      photos,
		submittedAt: submittedAt,
	}
}

func (r *Review) ID() uuid.UUID          { return r.id }
func (r *Review) BookingID() uuid.UUID   { return r.bookingID }
func (r *Review) BarberID() uuid.UUID    { return r.barberID }
func (r *Review) CustomerID() uuid.UUID  { return r.customerID }
func (r *Review) Rating() Rating         { return r.rating }
func (r *Review) Tags() Tags             { return r.tags }
func (r *Review) Comment() Comment       { return r.comment }
func (r *Review) Photos() Photos         { return r.photos }
func (r *Review) SubmittedAt() time.Time { return r.submittedAt }
