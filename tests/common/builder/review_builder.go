//go:build unit || e2e

package builder

import (
	"time"

	domreview "barberbook/internal/domain/review"
	"barberbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReviewBuilder struct {
	BookingID   uuid.UUID
	BarberID    uuid.UUID
	BarberName  string
	CustomerID  uuid.UUID
	Rating      int
	Tags        []string
	Comment     string
	Photos      []string
	SubmittedAt time.Time
}

func NewReviewBuilder() *ReviewBuilder {
	return &ReviewBuilder{
		BookingID:   uuid.New(),
		BarberID:    uuid.New(),
		BarberName:  "Test Barber",
		CustomerID:  uuid.New(),
		Rating:      5,
		Tags:        []string{"Professional", "On Time"},
		Comment:     "Excellent service!",
		Photos:      nil,
		SubmittedAt: time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC),
	}
}

func (r *ReviewBuilder) With(mutate func(*ReviewBuilder)) *ReviewBuilder {
	mutate(r)
	return r
}

func (r *ReviewBuilder) BuildDomain() (*domreview.Review, error) {
	rating, err := domreview.NewRating(r.Rating)
	if err != nil {
		return nil, err
	}
	tags, err := domreview.NewTags(r.Tags)
	if err != nil {
		return nil, err
	}
	comment, err := domreview.NewComment(r.Comment)
	if err != nil {
		return nil, err
	}
	photos, err := domreview.NewPhotos(r.Photos)
	if err != nil {
		return nil, err
	}
	return domreview.NewReview(r.BookingID, r.BarberID, r.CustomerID, rating, tags, comment, photos, r.SubmittedAt), nil
}

func (r *ReviewBuilder) BuildView() *queries.ReviewView {
	return &queries.ReviewView{
		ID:          uuid.New(),
		BookingID:   r.BookingID,
		BarberID:    r.BarberID,
		BarberName:  r.BarberName,
		CustomerID:  r.CustomerID,
		Rating:      int32(r.Rating),
		Tags:        r.Tags,
		Comment:     r.Comment,
		Photos:      r.Photos,
		SubmittedAt: r.SubmittedAt,
	}
}
