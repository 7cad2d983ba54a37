package commands

import (
	"context"

	"barberbook/internal/domain/booking"
	"barberbook/internal/domain/review"
	"barberbook/internal/infra"
	"barberbook/internal/pkg/clock"
	"barberbook/internal/pkg/errs"
	"barberbook/internal/usecase/queries"
	"barberbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotCompleted = errs.New("booking is not completed yet")
	ErrDuplicateReview     = errs.New("review already exists for this booking")
	ErrInvalidReview       = errs.New("invalid review payload")
)

type SubmitReviewRequest struct {
	BookingID uuid.UUID
	Rating    int
	Tags      []string
	Comment   string
	Photos    []string
}

type ReviewCommands interface {
	// Submit records a review for a completed booking the actor owns and
	// refreshes the barber's rating aggregate in the same transaction.
	Submit(ctx context.Context, req SubmitReviewRequest, actorID uuid.UUID) (*queries.ReviewView, error)
}

type reviewUseCaseImpl struct {
	uow           shared.UnitOfWork
	reviewQueries queries.ReviewQueries
	clock         clock.Clock
}

func NewReviewCommands(uow shared.UnitOfWork, reviewQueries queries.ReviewQueries, clk clock.Clock) ReviewCommands {
	return &reviewUseCaseImpl{
		uow:           uow,
		reviewQueries: reviewQueries,
		clock:         clk,
	}
}

func (c *reviewUseCaseImpl) Submit(
	ctx context.Context,
	req SubmitReviewRequest,
	actorID uuid.UUID,
) (*queries.ReviewView, error) {
	rating, err := review.NewRating(req.Rating)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidReview)
	}
	tags, err := review.NewTags(req.Tags)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidReview)
	}
	comment, err := review.NewComment(req.Comment)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidReview)
	}
	photos, err := review.NewPhotos(req.Photos)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidReview)
	}

	now := c.clock.Now()
	var reviewID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, readErr := tx.Reads().BookingByID(ctx, req.BookingID)
		if readErr != nil {
			if infra.IsKind(readErr, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(readErr, ErrDatabaseOperationFailed)
		}
		if snap.CustomerID != actorID {
			return ErrBookingNotOwned
		}
		if snap.Status != booking.StatusCompleted {
			return ErrBookingNotCompleted
		}

		if _, dupErr := tx.Reads().ReviewByBookingID(ctx, req.BookingID); dupErr == nil {
			return ErrDuplicateReview
		} else if !infra.IsKind(dupErr, infra.KindNotFound) {
			return errs.Mark(dupErr, ErrDatabaseOperationFailed)
		}

		rev := review.NewReview(req.BookingID, snap.BarberID, actorID, rating, tags, comment, photos, now)
		id, createErr := tx.Reviews().Create(ctx, tx.DB(), rev)
		if createErr != nil {
			// The unique index on booking_id is the real duplicate guard;
			// the read above only narrows the window.
			if infra.IsKind(createErr, infra.KindDuplicateKey) {
				return ErrDuplicateReview
			}
			return errs.Mark(createErr, ErrDatabaseOperationFailed)
		}
		reviewID = id

		return tx.RatingStats().RecalcBarberRatingStats(ctx, tx.DB(), snap.BarberID)
	})
	if err != nil {
		return nil, err
	}

	return c.reviewQueries.GetByID(ctx, reviewID)
}
