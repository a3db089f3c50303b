//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"slotgate/internal/domain/schedule"
	"slotgate/internal/handler/api"
	resdto "slotgate/internal/handler/dto/response"
	"slotgate/internal/usecase/queries"
	"slotgate/tests/common/httptest"
	queriesmock "slotgate/tests/mock/queries"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries
	handler     *api.AvailabilityHandler
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewAvailabilityHandler(s.mockQueries)

	s.router.GET("/availability", s.handler.GetDaySlots)
	s.router.GET("/availability/days", s.handler.GetDayGrid)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func slotAt(s *AvailabilityHandlerTestSuite, v string) schedule.TimeOfDay {
	t, err := schedule.ParseTimeOfDay(v)
	s.Require().NoError(err)
	return t
}

func (s *AvailabilityHandlerTestSuite) TestGetDaySlots() {
	s.Run("success: returns formatted slot list", func() {
		date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		s.mockQueries.EXPECT().DaySlots(gomock.Any(), date).
			Return([]schedule.TimeOfDay{slotAt(s, "09:00"), slotAt(s, "09:30")}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability?date=2026-03-02", nil, "")

		var response resdto.DaySlotsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("2026-03-02", response.Date)
		s.Equal([]string{"09:00", "09:30"}, response.Slots)
	})

	s.Run("success: closed day yields empty array, not null", func() {
		date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		s.mockQueries.EXPECT().DaySlots(gomock.Any(), date).Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability?date=2026-03-01", nil, "")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		s.Contains(rec.Body.String(), `"slots":[]`)
	})

	s.Run("error: 400 for malformed date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability?date=03-02-2026", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "YYYY-MM-DD")
	})

	s.Run("error: 400 for missing date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "YYYY-MM-DD")
	})
}

func (s *AvailabilityHandlerTestSuite) TestGetDayGrid() {
	s.Run("success: returns calendar cells", func() {
		from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		grid := []queries.DayAvailability{
			{Date: "2026-03-01", Disabled: true},
			{Date: "2026-03-02", Slots: []schedule.TimeOfDay{slotAt(s, "10:00")}},
		}

		s.mockQueries.EXPECT().DayGrid(gomock.Any(), from, to).Return(grid, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability/days?from=2026-03-01&to=2026-03-02", nil, "")

		var response []resdto.DayAvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 2)
		s.True(response[0].Disabled)
		s.Equal([]string{"10:00"}, response[1].Slots)
	})

	s.Run("error: 400 for inverted range", func() {
		from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

		s.mockQueries.EXPECT().DayGrid(gomock.Any(), from, to).
			Return(nil, queries.ErrBadDateRange).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability/days?from=2026-03-10&to=2026-03-09", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid date range")
	})

	s.Run("error: 500 on query failure", func() {
		from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

		s.mockQueries.EXPECT().DayGrid(gomock.Any(), from, to).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability/days?from=2026-03-01&to=2026-03-02", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
