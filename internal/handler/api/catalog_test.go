//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"barberbook/internal/handler/api"
	resdto "barberbook/internal/handler/dto/response"
	"barberbook/internal/usecase/queries"
	apptest "barberbook/tests/common/httptest"
	queriesmock "barberbook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CatalogHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockCatalog      *queriesmock.MockCatalogQueries
	mockAvailability *queriesmock.MockAvailabilityQueries
	handler          *api.CatalogHandler
}

func (s *CatalogHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCatalog = queriesmock.NewMockCatalogQueries(s.mockCtrl)
	s.mockAvailability = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewCatalogHandler(s.mockCatalog, s.mockAvailability)

	s.router.GET("/barbers", s.handler.ListBarbers)
	s.router.GET("/barbers/:id", s.handler.GetBarber)
	s.router.GET("/barbers/:id/services", s.handler.ListServices)
	s.router.GET("/barbers/:id/slots", s.handler.GetAvailableSlots)
}

func (s *CatalogHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCatalogHandlerSuite(t *testing.T) {
	suite.Run(t, new(CatalogHandlerTestSuite))
}

func (s *CatalogHandlerTestSuite) TestListBarbers() {
	s.Run("returns all barbers", func() {
		barbers := []*queries.BarberView{
			{ID: uuid.New(), Name: "Fade Masters", Location: "Downtown", AverageRating: 4.8, ReviewCount: 120},
			{ID: uuid.New(), Name: "Classic Cuts", Location: "Midtown"},
		}
		s.mockCatalog.EXPECT().ListBarbers(gomock.Any()).Return(barbers, nil)

		w := apptest.PerformRequest(s.T(), s.router, http.MethodGet, "/barbers", nil, "")

		var resp []*resdto.BarberResponse
		apptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Require().Len(resp, 2)
		s.Equal("Fade Masters", resp[0].Name)
		s.InDelta(4.8, resp[0].AverageRating, 0.001)
	})

	s.Run("empty catalog returns an empty array", func() {
		s.mockCatalog.EXPECT().ListBarbers(gomock.Any()).Return(nil, nil)

		w := apptest.PerformRequest(s.T(), s.router, http.MethodGet, "/barbers", nil, "")

		var resp []*resdto.BarberResponse
		apptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Empty(resp)
	})
}

func (s *CatalogHandlerTestSuite) TestGetBarber() {
	s.Run("returns the barber", func() {
		barber := &queries.BarberView{ID: uuid.New(), Name: "Fade Masters", AverageRating: 4.5, ReviewCount: 10}
		s.mockCatalog.EXPECT().GetBarber(gomock.Any(), barber.ID).Return(barber, nil)

		w := apptest.PerformRequest(s.T(), s.router, http.MethodGet, "/barbers/"+barber.ID.String(), nil, "")

		var resp resdto.BarberResponse
		apptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(barber.ID, resp.ID)
		s.Equal(int32(10), resp.ReviewCount)
	})

	s.Run("unknown barber returns 404", func() {
		id := uuid.New()
		s.mockCatalog.EXPECT().GetBarber(gomock.Any(), id).Return(nil, queries.ErrBarberNotFound)

		w := apptest.PerformRequest(s.T(), s.router, http.MethodGet, "/barbers/"+id.String(), nil, "")
		apptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Barber not found")
	})

	s.Run("invalid id returns 400", func() {
		w := apptest.PerformRequest(s.T(), s.router, http.MethodGet, "/barbers/abc", nil, "")
		apptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid ID")
	})
}

func (s *CatalogHandlerTestSuite) TestListServices() {
	barberID := uuid.New()

	s.Run("returns the services", func() {
		services := []*queries.ServiceView{
			{ID: uuid.New(), BarberID: barberID, Name: "Classic Haircut", DurationMin: 45, PriceCents: 2500},
			{ID: uuid.New(), BarberID: barberID, Name: "Beard Trim", DurationMin: 30, PriceCents: 1500},
		}
		s.mockCatalog.EXPECT().ListServices(gomock.Any(), barberID).Return(services, nil)

		w := apptest.PerformRequest(s.T(), s.router, http.MethodGet, "/barbers/"+barberID.String()+"/services", nil, "")

		var resp []*resdto.ServiceResponse
		apptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Require().Len(resp, 2)
		s.Equal(int64(2500), resp[0].PriceCents)
	})

	s.Run("unknown barber returns 404", func() {
		s.mockCatalog.EXPECT().ListServices(gomock.Any(), barberID).Return(nil, queries.ErrBarberNotFound)

		w := apptest.PerformRequest(s.T(), s.router, http.MethodGet, "/barbers/"+barberID.String()+"/services", nil, "")
		apptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Barber not found")
	})
}

func (s *CatalogHandlerTestSuite) TestGetAvailableSlots() {
	barberID := uuid.New()
	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	s.Run("returns slots for the range", func() {
		slots := []*queries.SlotView{
			{BarberID: barberID, Start: from.Add(9 * time.Hour), DurationMin: 30},
			{BarberID: barberID, Start: from.Add(9*time.Hour + 30*time.Minute), DurationMin: 30},
		}
		s.mockAvailability.EXPECT().
			GetAvailableSlots(gomock.Any(), barberID, from, to).
			Return(slots, nil)

		w := apptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/barbers/"+barberID.String()+"/slots?from=2026-03-10&to=2026-03-11", nil, "")

		var resp []*resdto.SlotResponse
		apptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Require().Len(resp, 2)
		s.Equal(int32(30), resp[0].DurationMin)
	})

	s.Run("missing from date returns 400", func() {
		w := apptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/barbers/"+barberID.String()+"/slots?to=2026-03-11", nil, "")
		apptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "from date")
	})

	s.Run("unparseable to date returns 400", func() {
		w := apptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/barbers/"+barberID.String()+"/slots?from=2026-03-10&to=tomorrow", nil, "")
		apptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "to date")
	})

	s.Run("inverted range returns 400", func() {
		s.mockAvailability.EXPECT().
			GetAvailableSlots(gomock.Any(), barberID, gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrInvalidRange)

		w := apptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/barbers/"+barberID.String()+"/slots?from=2026-03-11&to=2026-03-10", nil, "")
		apptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "date range")
	})

	s.Run("unknown barber returns 404", func() {
		s.mockAvailability.EXPECT().
			GetAvailableSlots(gomock.Any(), barberID, gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrBarberNotFound)

		w := apptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/barbers/"+barberID.String()+"/slots?from=2026-03-10&to=2026-03-11", nil, "")
		apptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Barber not found")
	})
}
