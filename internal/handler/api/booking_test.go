//go:build unit

package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"exechire/internal/domain/user"
	"exechire/internal/handler/api"
	resdto "exechire/internal/handler/dto/response"
	"exechire/internal/usecase/commands"
	"exechire/internal/usecase/queries"
	"exechire/tests/common/builder"
	"exechire/tests/common/httptest"
	"exechire/tests/common/testutil"
	commandsmock "exechire/tests/mock/commands"
	queriesmock "exechire/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockPayments *commandsmock.MockPaymentCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	payments     *api.PaymentHandler
	actorID      uuid.UUID
	actorRole    string
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockPayments = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.payments = api.NewPaymentHandler(s.mockPayments, s.mockQueries)

	s.actorID = uuid.New()
	s.actorRole = "USER"

	// Mock auth middleware: injects the actor the real middleware would set
	injectActor := func(c *gin.Context) {
		c.Set("user_id", s.actorID)
		c.Set("user_role", user.Role(s.actorRole))
	}

	s.router.POST("/bookings", injectActor, s.handler.CreateBooking)
	s.router.GET("/bookings", injectActor, s.handler.ListBookings)
	s.router.GET("/bookings/availability", injectActor, s.handler.CheckAvailability)
	s.router.GET("/bookings/:id", injectActor, s.handler.GetBooking)
	s.router.POST("/bookings/:id/cancel", injectActor, s.handler.CancelBooking)
	s.router.POST("/bookings/:id/confirm-payment", injectActor, s.payments.ConfirmPayment)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"

	bb := builder.NewBookingBuilder().WithUserID(s.actorID)
	reqBody := bb.BuildCreateDTO()
	returnView := bb.BuildView()

	s.Run("success: returns 201 Created with server-side price", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), reqBody, s.actorID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.TotalAmountCents, response.TotalAmountCents)
		s.Equal("PENDING", response.Status)
	})

	s.Run("success: client-sent amount is ignored by binding", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("total_amount_cents", 1))

		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), s.actorID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.TotalAmountCents, response.TotalAmountCents)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: vehicle_id", mutate: testutil.Field("vehicle_id", nil)},
			{name: "missing field: start_date", mutate: testutil.Field("start_date", nil)},
			{name: "missing field: end_date", mutate: testutil.Field("end_date", nil)},
			{name: "malformed date", mutate: testutil.Field("start_date", "not-a-date")},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
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
				name:           "vehicle not found",
				commandsError:  commands.ErrVehicleNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Vehicle not found",
			},
			{
				name:           "vehicle unavailable",
				commandsError:  commands.ErrVehicleUnavailable,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Vehicle is not available",
			},
			{
				name:           "overlapping booking",
				commandsError:  commands.ErrBookingConflict,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "already booked",
			},
			{
				name:           "invalid dates",
				commandsError:  commands.ErrDomainValidation,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Invalid booking dates",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), reqBody, s.actorID).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	returnView := builder.NewBookingBuilder().WithUserID(s.actorID).BuildView()
	url := "/bookings/" + returnView.ID.String()

	s.Run("success: returns own booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnView.ID, response.ID)
	})

	s.Run("error: 400 for malformed booking ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID format")
	})

	s.Run("error: 403 when reading someone else's booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), returnView.ID).
			Return(nil, queries.ErrForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")
	})

	s.Run("error: 404 when booking does not exist", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), returnView.ID).
			Return(nil, queries.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}

func (s *BookingHandlerTestSuite) TestListBookings() {
	s.Run("success: lists own bookings without filter", func() {
		views := []*queries.BookingView{builder.NewBookingBuilder().WithUserID(s.actorID).BuildView()}
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), nil).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "bearer-token")

		var response []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})

	s.Run("error: 403 when filtering by another user", func() {
		otherID := uuid.New()
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), &otherID).
			Return(nil, queries.ErrForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?user_id="+otherID.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")
	})

	s.Run("error: 400 for malformed user_id filter", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?user_id=abc", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid user ID format")
	})
}

func (s *BookingHandlerTestSuite) TestCheckAvailability() {
	vehicleID := uuid.New()
	start := time.Date(2026, 1, 11, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 13, 9, 0, 0, 0, time.UTC)

	availabilityURL := func(vehicleID uuid.UUID, start, end time.Time) string {
		q := url.Values{}
		q.Set("vehicle_id", vehicleID.String())
		q.Set("start_date", start.Format(time.RFC3339))
		q.Set("end_date", end.Format(time.RFC3339))
		return "/bookings/availability?" + q.Encode()
	}

	s.Run("success: available when no conflicts", func() {
		s.mockQueries.EXPECT().Availability(gomock.Any(), vehicleID, gomock.Any(), gomock.Any()).
			Return(&queries.AvailabilityView{VehicleID: vehicleID, Available: true, Conflicts: []queries.ConflictingBooking{}}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, availabilityURL(vehicleID, start, end), nil, "bearer-token")

		var response resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Available)
		s.Empty(response.Conflicts)
	})

	s.Run("success: unavailable with conflict details", func() {
		conflicts := []queries.ConflictingBooking{
			{ID: uuid.New(), StartDate: start, EndDate: end, Status: "CONFIRMED"},
		}
		s.mockQueries.EXPECT().Availability(gomock.Any(), vehicleID, gomock.Any(), gomock.Any()).
			Return(&queries.AvailabilityView{VehicleID: vehicleID, Available: false, Conflicts: conflicts}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, availabilityURL(vehicleID, start, end), nil, "bearer-token")

		var response resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.Available)
		s.Len(response.Conflicts, 1)
		s.Equal("CONFIRMED", response.Conflicts[0].Status)
	})

	s.Run("error: 400 when start is not before end", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, availabilityURL(vehicleID, end, start), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Start date must be before end date")
	})

	s.Run("error: 400 on missing parameters", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/availability?vehicle_id="+vehicleID.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query parameters")
	})

	s.Run("error: 404 for unknown vehicle", func() {
		s.mockQueries.EXPECT().Availability(gomock.Any(), vehicleID, gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrVehicleNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, availabilityURL(vehicleID, start, end), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Vehicle not found")
	})
}

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	returnView := builder.NewBookingBuilder().WithUserID(s.actorID).BuildView()
	returnView.Status = "CANCELLED"
	url := fmt.Sprintf("/bookings/%s/cancel", returnView.ID)

	s.Run("success: returns cancelled booking", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), returnView.ID, gomock.Any()).
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("CANCELLED", response.Status)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "booking not found",
				commandsError:  commands.ErrBookingNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Booking not found",
			},
			{
				name:           "not the owner",
				commandsError:  commands.ErrBookingAccessDenied,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Access denied",
			},
			{
				name:           "completed booking cannot be cancelled",
				commandsError:  commands.ErrInvalidTransition,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "no longer be cancelled",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CancelBooking(gomock.Any(), returnView.ID, gomock.Any()).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestConfirmPayment() {
	returnView := builder.NewBookingBuilder().WithUserID(s.actorID).BuildView()
	returnView.Status = "CONFIRMED"
	url := fmt.Sprintf("/bookings/%s/confirm-payment", returnView.ID)
	reqBody := map[string]any{"provider_ref": "ch_test_123"}

	s.Run("success: confirms payment and booking", func() {
		s.mockPayments.EXPECT().ConfirmPayment(gomock.Any(), returnView.ID, "ch_test_123", gomock.Any()).
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("CONFIRMED", response.Status)
	})

	s.Run("error: 400 for missing provider_ref", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "booking not found",
				commandsError:  commands.ErrBookingNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Booking not found",
			},
			{
				name:           "payment already completed",
				commandsError:  commands.ErrPaymentAlreadyCompleted,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Payment already completed",
			},
			{
				name:           "cancelled booking cannot be confirmed",
				commandsError:  commands.ErrInvalidTransition,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "cannot be confirmed",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockPayments.EXPECT().ConfirmPayment(gomock.Any(), returnView.ID, "ch_test_123", gomock.Any()).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
