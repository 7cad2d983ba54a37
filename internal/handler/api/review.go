package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "barberbook/internal/handler/dto/request"
	resdto "barberbook/internal/handler/dto/response"
	"barberbook/internal/handler/httperr"
	"barberbook/internal/handler/middleware"
	"barberbook/internal/usecase/commands"
	"barberbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewCommands commands.ReviewCommands
	reviewQueries  queries.ReviewQueries
}

func NewReviewHandler(reviewCommands commands.ReviewCommands, reviewQueries queries.ReviewQueries) *ReviewHandler {
	return &ReviewHandler{
		reviewCommands: reviewCommands,
		reviewQueries:  reviewQueries,
	}
}

// @Summary Submit review
// @Description Submit a review for one of the caller's completed bookings
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SubmitReviewRequest true "Review"
// @Success 201 {object} resdto.ReviewResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reviews [post]
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	customerID, ok := middleware.GetCustomerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.SubmitReviewRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	review, err := h.reviewCommands.Submit(c.Request.Context(), commands.SubmitReviewRequest{
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Tags:      req.Tags,
		Comment:   req.TrimmedComment(),
		Photos:    req.Photos,
	}, customerID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound),
			errors.Is(err, commands.ErrBookingNotOwned):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, commands.ErrBookingNotCompleted):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Booking is not completed yet",
			})
		case errors.Is(err, commands.ErrDuplicateReview):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Review already exists for this booking",
			})
		case errors.Is(err, commands.ErrInvalidReview):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Review failed validation",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReviewView(review))
}

// @Summary Get review
// @Description Get a single review by ID
// @Tags reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} resdto.ReviewResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reviews/{id} [get]
func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	review, err := h.reviewQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Review not found",
			})
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, resdto.FromReviewView(review))
}

// @Summary List barber reviews
// @Description List reviews for a barber, newest first, with optional rating filters
// @Tags reviews
// @Produce json
// @Param id path string true "Barber ID"
// @Param minRating query int false "Minimum rating filter"
// @Param maxRating query int false "Maximum rating filter"
// @Param cursor query string false "Pagination cursor from a previous response"
// @Param limit query int false "Page size (max 200)"
// @Success 200 {object} resdto.ReviewListResponse
// @Failure 400 {object} map[string]string
// @Router /barbers/{id}/reviews [get]
func (h *ReviewHandler) ListBarberReviews(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	filters := queries.ReviewFilters{
		MinRating: ratingFilter(c, "minRating"),
		MaxRating: ratingFilter(c, "maxRating"),
	}
	cursor, limit := paginationParams(c)

	items, next, err := h.reviewQueries.ListByBarber(c.Request.Context(), id, filters, cursor, limit)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidCursor) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid pagination cursor",
			})
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, resdto.FromReviewListItems(items, next))
}

// @Summary Get barber rating stats
// @Description Get the aggregate rating distribution for a barber
// @Tags reviews
// @Produce json
// @Param id path string true "Barber ID"
// @Success 200 {object} resdto.RatingStatsResponse
// @Failure 400 {object} map[string]string
// @Router /barbers/{id}/rating-stats [get]
func (h *ReviewHandler) GetBarberRatingStats(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	stats, err := h.reviewQueries.GetBarberRatingStats(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, resdto.FromRatingStats(stats))
}

func ratingFilter(c *gin.Context, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 || v > 5 {
		return nil
	}
	return &v
}
