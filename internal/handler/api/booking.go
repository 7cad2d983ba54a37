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
	"github.com/google/uuid"
)

var errIdempotencyKeyRequired = errors.New("idempotency key required")

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	paymentCommands commands.PaymentCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(
	bookingCommands commands.BookingCommands,
	paymentCommands commands.PaymentCommands,
	bookingQueries queries.BookingQueries,
) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		paymentCommands: paymentCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking hold
// @Description Hold a slot for a barber service with an idempotency key
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 200 {object} resdto.BookingResponse "Replayed from a previous identical request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	customerID, ok := middleware.GetCustomerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	idempotencyKey, err := h.getIdempotencyKey(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.bookingCommands.CreateHold(c.Request.Context(), commands.CreateHoldRequest{
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		SlotStart: req.SlotStart,
	}, customerID, idempotencyKey)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromBookingView(result.Booking))
}

// @Summary Get booking
// @Description Get one of the caller's bookings by ID
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	customerID, ok := middleware.GetCustomerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	booking, err := h.bookingQueries.GetByID(c.Request.Context(), id, customerID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound),
			// Hide other customers' bookings entirely.
			errors.Is(err, queries.ErrBookingAccess):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(booking))
}

// @Summary List bookings
// @Description List the caller's bookings, newest first, with cursor pagination
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param cursor query string false "Pagination cursor from a previous response"
// @Param limit query int false "Page size (max 200)"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	customerID, ok := middleware.GetCustomerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	cursor, limit := paginationParams(c)
	items, next, err := h.bookingQueries.ListByCustomer(c.Request.Context(), customerID, cursor, limit)
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
	c.JSON(http.StatusOK, resdto.FromBookingListItems(items, next))
}

// @Summary Begin payment
// @Description Move a held booking into pending payment and attach the payment split
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.BeginPaymentRequest true "Payment type"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /bookings/{id}/payment [post]
func (h *BookingHandler) BeginPayment(c *gin.Context) {
	customerID, ok := middleware.GetCustomerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.BeginPaymentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	booking, err := h.paymentCommands.BeginPayment(c.Request.Context(), commands.BeginPaymentRequest{
		BookingID:   id,
		PaymentType: req.ToDomain(),
	}, customerID)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(booking))
}

// @Summary Confirm payment
// @Description Charge the payment method and confirm the booking on success
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ConfirmPaymentRequest true "Payment method token"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 402 {object} map[string]any "Settlement declined"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/payment/confirm [post]
func (h *BookingHandler) ConfirmPayment(c *gin.Context) {
	customerID, ok := middleware.GetCustomerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.ConfirmPaymentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	booking, err := h.paymentCommands.ConfirmPayment(c.Request.Context(), commands.ConfirmPaymentRequest{
		BookingID:     id,
		PaymentMethod: req.PaymentMethod,
	}, customerID)
	if err != nil {
		var settlementErr *commands.SettlementError
		if errors.As(err, &settlementErr) {
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error":     "Payment was declined",
				"reason":    settlementErr.Reason,
				"transient": settlementErr.Transient,
				"attempts":  settlementErr.Attempts,
				"cancelled": settlementErr.Cancelled,
			})
			return
		}
		h.handleBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(booking))
}

// @Summary Cancel booking
// @Description Cancel one of the caller's bookings and release its slot
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	customerID, ok := middleware.GetCustomerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.bookingCommands.Cancel(c.Request.Context(), id, customerID); err != nil {
		h.handleBookingError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) handleBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrBarberNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Barber not found",
		})
	case errors.Is(err, commands.ErrServiceNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Service not found",
		})
	case errors.Is(err, commands.ErrBookingNotFound),
		// Hide other customers' bookings entirely.
		errors.Is(err, commands.ErrBookingNotOwned):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errors.Is(err, commands.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Slot is not available",
		})
	case errors.Is(err, commands.ErrSlotOutsideHours):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Slot is outside working hours",
		})
	case errors.Is(err, commands.ErrHoldExpired):
		c.JSON(http.StatusGone, gin.H{
			"error": "Booking hold has expired",
		})
	case errors.Is(err, commands.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Booking is not in a valid state for this operation",
		})
	case errors.Is(err, commands.ErrPaymentNotStarted):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Payment has not been started",
		})
	case errors.Is(err, commands.ErrInvalidPayment):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid payment type",
		})
	case errors.Is(err, commands.ErrIdempotencyInProgress):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Request is currently being processed",
		})
	case errors.Is(err, commands.ErrDuplicateHoldRequest):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Idempotency key reused with different parameters",
		})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Request failed validation",
		})
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
	}
}

func (h *BookingHandler) getIdempotencyKey(c *gin.Context) (uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return uuid.Nil, errIdempotencyKeyRequired
	}

	key, err := uuid.Parse(keyStr)
	if err != nil {
		return uuid.Nil, errors.New("invalid idempotency key format")
	}

	return key, nil
}

func paginationParams(c *gin.Context) (*queries.Cursor, int) {
	var cursor *queries.Cursor
	if after := c.Query("cursor"); after != "" {
		cursor = &queries.Cursor{After: after}
	}
	limit := 0
	if rawLimit := c.Query("limit"); rawLimit != "" {
		if parsed, err := strconv.Atoi(rawLimit); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	return cursor, limit
}
