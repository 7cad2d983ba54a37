//go:build e2e

package review_test

import (
	"net/http"
	"testing"
	"time"

	"barberbook/internal/handler/dto/response"
	"barberbook/tests/common/authtest"
	"barberbook/tests/common/dbtest"
	"barberbook/tests/common/httptest"
	"barberbook/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const reviewsURL = "/api/reviews"

type ReviewSuite struct {
	e2e.SharedSuite
}

func TestReviewSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReviewSuite))
}

// completedBooking seeds a finished booking for the given customer against
// the default barber.
func (s *ReviewSuite) completedBooking(t *testing.T, customerID uuid.UUID) uuid.UUID {
	t.Helper()
	start := time.Now().UTC().Add(-48 * time.Hour).Truncate(time.Hour)
	bookingID := dbtest.CreateTestBooking(t, s.DB, dbtest.DefaultBarberID, dbtest.DefaultServiceID,
		customerID, start, start.Add(30*time.Minute), "confirmed")
	dbtest.MarkBookingCompleted(t, s.DB, bookingID)
	return bookingID
}

func (s *ReviewSuite) customerToken(t *testing.T, customerID uuid.UUID) string {
	t.Helper()
	return authtest.NewJWTHelper(s.Config.JWT).GenerateToken(t, customerID)
}

func (s *ReviewSuite) TestSubmitReview() {
	s.Run("review for a completed booking", func() {
		t := s.T()

		customerID := uuid.New()
		bookingID := s.completedBooking(t, customerID)
		token := s.customerToken(t, customerID)

		reqBody := map[string]any{
			"booking_id": bookingID.String(),
			"rating":     5,
			"tags":       []string{"Professional", "On Time"},
			"comment":    "Excellent service!",
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.ReviewResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.NotEqual(t, uuid.Nil, created.ID)

		// Fetch detail and compare
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, reviewsURL+"/"+created.ID.String(), nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var actual response.ReviewResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &actual))

		expected := &response.ReviewResponse{
			BookingID:  bookingID,
			BarberID:   dbtest.DefaultBarberID,
			BarberName: "Fade Masters",
			Rating:     5,
			Tags:       []string{"Professional", "On Time"},
			Comment:    "Excellent service!",
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.ReviewResponse{}, "ID", "Photos", "SubmittedAt"),
		}
		if diff := cmp.Diff(expected, &actual, opts...); diff != "" {
			t.Errorf("review response mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("duplicate review is rejected", func() {
		t := s.T()

		customerID := uuid.New()
		bookingID := s.completedBooking(t, customerID)
		token := s.customerToken(t, customerID)

		reqBody := map[string]any{"booking_id": bookingID.String(), "rating": 4}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL, reqBody, token)
		require.Equal(t, http.StatusConflict, w.Code)
	})

	s.Run("booking that is not completed cannot be reviewed", func() {
		t := s.T()

		customerID := uuid.New()
		start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Hour)
		bookingID := dbtest.CreateTestBooking(t, s.DB, dbtest.DefaultBarberID, dbtest.DefaultServiceID,
			customerID, start, start.Add(30*time.Minute), "confirmed")
		token := s.customerToken(t, customerID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL,
			map[string]any{"booking_id": bookingID.String(), "rating": 5}, token)
		require.Equal(t, http.StatusConflict, w.Code)
	})

	s.Run("someone else's booking cannot be reviewed", func() {
		t := s.T()

		bookingID := s.completedBooking(t, uuid.New())
		token := s.customerToken(t, uuid.New())

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL,
			map[string]any{"booking_id": bookingID.String(), "rating": 5}, token)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func (s *ReviewSuite) TestRatingAggregates() {
	s.Run("stats track each submitted rating", func() {
		t := s.T()

		ratings := []int{5, 4, 5}
		for _, rating := range ratings {
			customerID := uuid.New()
			bookingID := s.completedBooking(t, customerID)
			token := s.customerToken(t, customerID)

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL,
				map[string]any{"booking_id": bookingID.String(), "rating": rating}, token)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			"/api/barbers/"+dbtest.DefaultBarberID.String()+"/rating-stats", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var stats response.RatingStatsResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &stats))

		expected := &response.RatingStatsResponse{
			BarberID:      dbtest.DefaultBarberID,
			TotalReviews:  3,
			Distribution:  [5]int32{0, 0, 0, 1, 2},
			AverageRating: stats.AverageRating,
		}
		if diff := cmp.Diff(expected, &stats); diff != "" {
			t.Errorf("rating stats mismatch (-want +got):\n%s", diff)
		}
		require.InDelta(t, 14.0/3.0, stats.AverageRating, 0.01)

		// The barber listing carries the same aggregate
		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			"/api/barbers/"+dbtest.DefaultBarberID.String(), nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var barber response.BarberResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &barber))
		require.Equal(t, int32(3), barber.ReviewCount)
	})

	s.Run("list filters by rating", func() {
		t := s.T()

		for _, rating := range []int{2, 5} {
			customerID := uuid.New()
			bookingID := s.completedBooking(t, customerID)
			token := s.customerToken(t, customerID)

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL,
				map[string]any{"booking_id": bookingID.String(), "rating": rating}, token)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		}

		listURL := "/api/barbers/" + dbtest.DefaultBarberID.String() + "/reviews"

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, listURL, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var all response.ReviewListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &all))
		require.Len(t, all.Items, 2)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, listURL+"?minRating=4", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var filtered response.ReviewListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &filtered))
		require.Len(t, filtered.Items, 1)
		require.Equal(t, int32(5), filtered.Items[0].Rating)
	})
}
