package api

import (
	"errors"
	"net/http"
	"time"

	resdto "barberbook/internal/handler/dto/response"
	"barberbook/internal/handler/httperr"
	"barberbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	catalogQueries      queries.CatalogQueries
	availabilityQueries queries.AvailabilityQueries
}

func NewCatalogHandler(catalogQueries queries.CatalogQueries, availabilityQueries queries.AvailabilityQueries) *CatalogHandler {
	return &CatalogHandler{
		catalogQueries:      catalogQueries,
		availabilityQueries: availabilityQueries,
	}
}

// @Summary List barbers
// @Description List all barbers with their aggregate ratings
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.BarberResponse
// @Router /barbers [get]
func (h *CatalogHandler) ListBarbers(c *gin.Context) {
	barbers, err := h.catalogQueries.ListBarbers(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	response := make([]*resdto.BarberResponse, len(barbers))
	for i, b := range barbers {
		response[i] = resdto.FromBarberView(b)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Get barber
// @Description Get a single barber with aggregate rating
// @Tags catalog
// @Produce json
// @Param id path string true "Barber ID"
// @Success 200 {object} resdto.BarberResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /barbers/{id} [get]
func (h *CatalogHandler) GetBarber(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	barber, err := h.catalogQueries.GetBarber(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrBarberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Barber not found",
			})
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, resdto.FromBarberView(barber))
}

// @Summary List barber services
// @Description List the services offered by a barber
// @Tags catalog
// @Produce json
// @Param id path string true "Barber ID"
// @Success 200 {array} resdto.ServiceResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /barbers/{id}/services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	services, err := h.catalogQueries.ListServices(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrBarberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Barber not found",
			})
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	response := make([]*resdto.ServiceResponse, len(services))
	for i, s := range services {
		response[i] = resdto.FromServiceView(s)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Get available slots
// @Description List bookable slot start times for a barber within a date range
// @Tags catalog
// @Produce json
// @Param id path string true "Barber ID"
// @Param from query string true "Range start date (RFC 3339 date)"
// @Param to query string true "Range end date, inclusive (RFC 3339 date)"
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /barbers/{id}/slots [get]
func (h *CatalogHandler) GetAvailableSlots(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	from, err := parseDateQuery(c, "from")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid or missing from date",
		})
		return
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid or missing to date",
		})
		return
	}

	slots, err := h.availabilityQueries.GetAvailableSlots(c.Request.Context(), id, from, to)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBarberNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Barber not found",
			})
		case errors.Is(err, queries.ErrInvalidRange):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date range",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	response := make([]*resdto.SlotResponse, len(slots))
	for i, s := range slots {
		response[i] = resdto.FromSlotView(s)
	}
	c.JSON(http.StatusOK, response)
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// parseDateQuery accepts either a bare date or a full RFC 3339 timestamp.
func parseDateQuery(c *gin.Context, name string) (time.Time, error) {
	raw := c.Query(name)
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
