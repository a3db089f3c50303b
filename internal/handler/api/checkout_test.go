//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"slotgate/internal/handler/api"
	resdto "slotgate/internal/handler/dto/response"
	"slotgate/internal/infra"
	"slotgate/internal/usecase/commands"
	"slotgate/tests/common/builder"
	"slotgate/tests/common/httptest"
	"slotgate/tests/common/testutil"
	commandsmock "slotgate/tests/mock/commands"
	queriesmock "slotgate/tests/mock/queries"
)

type CheckoutHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockCheckout     *commandsmock.MockCheckoutCommands
	mockAppointments *queriesmock.MockAppointmentQueries
	mockListings     *queriesmock.MockListingQueries
	handler          *api.CheckoutHandler
}

func (s *CheckoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCheckout = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.mockAppointments = queriesmock.NewMockAppointmentQueries(s.mockCtrl)
	s.mockListings = queriesmock.NewMockListingQueries(s.mockCtrl)
	s.handler = api.NewCheckoutHandler(s.mockCheckout, s.mockAppointments, s.mockListings)

	s.router.POST("/checkout/appointments", s.handler.InitiateAppointment)
	s.router.POST("/checkout/listings", s.handler.InitiateListing)
	s.router.GET("/checkout/confirmation", s.handler.GetConfirmation)
}

func (s *CheckoutHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(CheckoutHandlerTestSuite))
}

func (s *CheckoutHandlerTestSuite) TestInitiateAppointment() {
	url := "/checkout/appointments"
	reqBody := builder.NewAppointmentBuilder().BuildCheckoutRequestDTO()

	s.Run("success: returns 200 OK with redirect URL", func() {
		s.mockCheckout.EXPECT().InitiateAppointment(gomock.Any(), reqBody.ToPayload()).
			Return("https://checkout.example/cs_1", nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("https://checkout.example/cs_1", response.RedirectURL)
	})

	s.Run("error: 400 Bad Request on missing required fields", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: name", mutate: testutil.Field("name", nil)},
			{name: "missing field: email", mutate: testutil.Field("email", nil)},
			{name: "missing field: services", mutate: testutil.Field("services", nil)},
			{name: "missing field: date", mutate: testutil.Field("date", nil)},
			{name: "missing field: time", mutate: testutil.Field("time", nil)},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "semantically invalid payload",
				commandsError:  commands.ErrInvalidPayload,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Invalid checkout payload",
			},
			{
				name:           "provider unavailable",
				commandsError:  commands.ErrProviderUnavailable,
				expectedStatus: http.StatusBadGateway,
				expectedMsg:    "Payment provider unavailable",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("boom"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCheckout.EXPECT().InitiateAppointment(gomock.Any(), gomock.Any()).
					Return("", tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *CheckoutHandlerTestSuite) TestInitiateListing() {
	url := "/checkout/listings"
	reqBody := builder.NewListingBuilder().BuildCheckoutRequestDTO()

	s.Run("success: returns 200 OK with redirect URL", func() {
		s.mockCheckout.EXPECT().InitiateListing(gomock.Any(), reqBody.ToPayload()).
			Return("https://checkout.example/cs_2", nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("https://checkout.example/cs_2", response.RedirectURL)
	})

	s.Run("error: 400 Bad Request when title is missing", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("title", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *CheckoutHandlerTestSuite) TestGetConfirmation() {
	baseURL := "/checkout/confirmation"

	s.Run("success: returns committed appointment by session", func() {
		record := builder.NewAppointmentBuilder().WithSessionID("cs_done").BuildRecord()

		s.mockAppointments.EXPECT().GetBySessionID(gomock.Any(), "cs_done").
			Return(record, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL+"?session_id=cs_done", nil, "")

		var response struct {
			Type   string                     `json:"type"`
			Record resdto.AppointmentResponse `json:"record"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("appointment", response.Type)
		s.Equal(record.ID, response.Record.ID)
		s.Equal("confirmed", response.Record.Status)
	})

	s.Run("success: falls back to listing lookup", func() {
		record := builder.NewListingBuilder().BuildRecord()
		record.ProviderSessionID = "cs_listing"

		s.mockAppointments.EXPECT().GetBySessionID(gomock.Any(), "cs_listing").
			Return(nil, infra.NewRepoErr(infra.KindNotFound, "not found")).Times(1)
		s.mockListings.EXPECT().GetBySessionID(gomock.Any(), "cs_listing").
			Return(record, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL+"?session_id=cs_listing", nil, "")

		var response struct {
			Type string `json:"type"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("rental_listing", response.Type)
	})

	s.Run("error: 404 while the webhook has not settled", func() {
		s.mockAppointments.EXPECT().GetBySessionID(gomock.Any(), "cs_pending").
			Return(nil, infra.NewRepoErr(infra.KindNotFound, "not found")).Times(1)
		s.mockListings.EXPECT().GetBySessionID(gomock.Any(), "cs_pending").
			Return(nil, infra.NewRepoErr(infra.KindNotFound, "not found")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL+"?session_id=cs_pending", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Record not committed yet")
	})

	s.Run("error: 400 without session_id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "session_id is required")
	})

	s.Run("error: 500 on store failure", func() {
		s.mockAppointments.EXPECT().GetBySessionID(gomock.Any(), "cs_err").
			Return(nil, infra.NewRepoErr(infra.KindDBFailure, "timeout")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL+"?session_id=cs_err", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
