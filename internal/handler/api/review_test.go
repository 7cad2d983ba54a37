//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"barberbook/internal/handler/api"
	resdto "barberbook/internal/handler/dto/response"
	"barberbook/internal/usecase/commands"
	"barberbook/internal/usecase/queries"
	"barberbook/tests/common/builder"
	apptest "barberbook/tests/common/httptest"
	commandsmock "barberbook/tests/mock/commands"
	queriesmock "barberbook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReviewHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	mockCtrl   *gomock.Controller
	mockCmds   *commandsmock.MockReviewCommands
	mockQuery  *queriesmock.MockReviewQueries
	handler    *api.ReviewHandler
	customerID uuid.UUID
}

func (s *ReviewHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCmds = commandsmock.NewMockReviewCommands(s.mockCtrl)
	s.mockQuery = queriesmock.NewMockReviewQueries(s.mockCtrl)
	s.handler = api.NewReviewHandler(s.mockCmds, s.mockQuery)
	s.customerID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("customer_id", s.customerID)
		c.Next()
	}

	s.router.POST("/reviews", authMiddleware, s.handler.SubmitReview)
	s.router.GET("/reviews/:id", s.handler.GetReview)
	s.router.GET("/barbers/:id/reviews", s.handler.ListBarberReviews)
	s.router.GET("/barbers/:id/rating-stats", s.handler.GetBarberRatingStats)
}

func (s *ReviewHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReviewHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReviewHandlerTestSuite))
}

func (s *ReviewHandlerTestSuite) TestSubmitReview() {
	bookingID := uuid.New()
	body := map[string]any{
		"booking_id": bookingID.String(),
		"rating":     5,
		"tags":       []string{"Professional"},
		"comment":    "  Great cut  ",
	}

	s.Run("submission returns 201", func() {
		view := builder.NewReviewBuilder().With(func(b *builder.ReviewBuilder) {
			b.BookingID = bookingID
		}).BuildView()

		s.mockCmds.EXPECT().
			Submit(gomock.Any(), commands.SubmitReviewRequest{
				BookingID: bookingID,
				Rating:    5,
				Tags:      []string{"Professional"},
				Comment:   "Great cut",
			}, s.customerID).
			Return(view, nil)

		w := apptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reviews", body, "token")

		var resp resdto.ReviewResponse
		apptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
		s.Equal(view.ID, resp.ID)
		s.Equal(bookingID, resp.BookingID)
	})

	s.Run("rating out of range fails binding", func() {
		bad := map[string]any{"booking_id": bookingID.String(), "rating": 6}
		w := apptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reviews", bad, "token")
		apptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("unauthenticated returns 401", func() {
		w := apptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reviews", body, "")
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("foreign booking is reported as not found", func() {
		s.mockCmds.EXPECT().
			Submit(gomock.Any(), gomock.Any(), s.customerID).
			Return(nil, commands.ErrBookingNotOwned)

		w := apptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reviews", body, "token")
		apptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "not found")
	})

	s.Run("booking not completed returns 409", func() {
		s.mockCmds.EXPECT().
			Submit(gomock.Any(), gomock.Any(), s.customerID).
			Return(nil, commands.ErrBookingNotCompleted)

		w := apptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reviews", body, "token")
		apptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "not completed")
	})

	s.Run("second review for the same booking returns 409", func() {
		s.mockCmds.EXPECT().
			Submit(gomock.Any(), gomock.Any(), s.customerID).
			Return(nil, commands.ErrDuplicateReview)

		w := apptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reviews", body, "token")
		apptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "already exists")
	})

	s.Run("domain validation failure returns 422", func() {
		s.mockCmds.EXPECT().
			Submit(gomock.Any(), gomock.Any(), s.customerID).
			Return(nil, commands.ErrInvalidReview)

		w := apptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reviews", body, "token")
		apptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "validation")
	})
}

func (s *ReviewHandlerTestSuite) TestGetReview() {
	s.Run("returns the review", func() {
		view := builder.NewReviewBuilder().BuildView()
		s.mockQuery.EXPECT().
			GetByID(gomock.Any(), view.ID).
			Return(view, nil)

		w := apptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reviews/"+view.ID.String(), nil, "")

		var resp resdto.ReviewResponse
		apptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(view.Rating, resp.Rating)
		s.Equal(view.Tags, resp.Tags)
	})

	s.Run("unknown review returns 404", func() {
		id := uuid.New()
		s.mockQuery.EXPECT().
			GetByID(gomock.Any(), id).
			Return(nil, queries.ErrReviewNotFound)

		w := apptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reviews/"+id.String(), nil, "")
		apptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "not found")
	})

	s.Run("invalid id returns 400", func() {
		w := apptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reviews/abc", nil, "")
		apptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid ID")
	})
}

func (s *ReviewHandlerTestSuite) TestListBarberReviews() {
	barberID := uuid.New()

	s.Run("returns items and next cursor", func() {
		items := []*queries.ReviewListItem{
			{ID: uuid.New(), Rating: 4, Tags: []string{"On Time"}},
		}
		next := &queries.Cursor{After: "opaque"}
		s.mockQuery.EXPECT().
			ListByBarber(gomock.Any(), barberID, queries.ReviewFilters{}, nil, 0).
			Return(items, next, nil)

		w := apptest.PerformRequest(s.T(), s.router, http.MethodGet, "/barbers/"+barberID.String()+"/reviews", nil, "")

		var resp resdto.ReviewListResponse
		apptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp.Items, 1)
		s.Equal("opaque", resp.NextCursor)
	})

	s.Run("forwards rating filters", func() {
		minR, maxR := 3, 5
		s.mockQuery.EXPECT().
			ListByBarber(gomock.Any(), barberID, queries.ReviewFilters{MinRating: &minR, MaxRating: &maxR}, nil, 0).
			Return(nil, nil, nil)

		w := apptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/barbers/"+barberID.String()+"/reviews?minRating=3&maxRating=5", nil, "")
		apptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})

	s.Run("out of range filter is ignored", func() {
		s.mockQuery.EXPECT().
			ListByBarber(gomock.Any(), barberID, queries.ReviewFilters{}, nil, 0).
			Return(nil, nil, nil)

		w := apptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/barbers/"+barberID.String()+"/reviews?minRating=9", nil, "")
		apptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})

	s.Run("invalid cursor returns 400", func() {
		s.mockQuery.EXPECT().
			ListByBarber(gomock.Any(), barberID, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil, queries.ErrInvalidCursor)

		w := apptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/barbers/"+barberID.String()+"/reviews?cursor=junk", nil, "")
		apptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "cursor")
	})
}

func (s *ReviewHandlerTestSuite) TestGetBarberRatingStats() {
	barberID := uuid.New()

	s.Run("returns the distribution", func() {
		stats := &queries.BarberRatingStats{
			BarberID:      barberID,
			TotalReviews:  7,
			AverageRating: 4.29,
			Rating3Count:  1,
			Rating4Count:  3,
			Rating5Count:  3,
		}
		s.mockQuery.EXPECT().
			GetBarberRatingStats(gomock.Any(), barberID).
			Return(stats, nil)

		w := apptest.PerformRequest(s.T(), s.router, http.MethodGet, "/barbers/"+barberID.String()+"/rating-stats", nil, "")

		var resp resdto.RatingStatsResponse
		apptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(int32(7), resp.TotalReviews)
		s.Equal([5]int32{0, 0, 1, 3, 3}, resp.Distribution)
	})
}
