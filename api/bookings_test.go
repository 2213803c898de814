package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/planepal/internal/domain"
	"github.com/Domenick1991/planepal/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) BookFlight(ctx context.Context, input booking.BookFlightInput) (*booking.BookResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.BookResult), args.Error(1)
}

func (m *MockBookingUseCase) GetBookedFlights(ctx context.Context, email string) ([]domain.BookedFlight, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookedFlight), args.Error(1)
}

func (m *MockBookingUseCase) GetUpcomingFlights(ctx context.Context, email string) ([]domain.BookedFlight, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookedFlight), args.Error(1)
}

func (m *MockBookingUseCase) UpdateBookedFlight(ctx context.Context, id int64, ticketQuantity int, email string) error {
	args := m.Called(ctx, id, ticketQuantity, email)
	return args.Error(0)
}

func (m *MockBookingUseCase) CancelBooking(ctx context.Context, id int64, email string) error {
	args := m.Called(ctx, id, email)
	return args.Error(0)
}

func newBookingRouter(service booking.BookingUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api/bookings")
	group.Use(AuthRequired())
	NewBookingHandler(service).Register(group)
	return router
}

func performRequest(router *gin.Engine, method, path, email string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if email != "" {
		req.Header.Set("X-User-Email", email)
	}
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestBookingHandler_Book_Success(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService)

	mockService.On("BookFlight", mock.Anything, booking.BookFlightInput{
		FlightID:       4,
		TicketQuantity: 2,
		UserEmail:      "test@example.com",
	}).Return(&booking.BookResult{Booking: &domain.BookedFlight{ID: 1}}, nil).Once()

	body, _ := json.Marshal(gin.H{"scheduledFlightId": 4, "ticketQuantity": 2})
	recorder := performRequest(router, http.MethodPost, "/api/bookings/book-flight", "test@example.com", body)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Successfully booked flight!")
	mockService.AssertExpectations(t)
}

func TestBookingHandler_Book_DefaultsToOneTicket(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService)

	mockService.On("BookFlight", mock.Anything, booking.BookFlightInput{
		FlightID:       4,
		TicketQuantity: 1,
		UserEmail:      "test@example.com",
	}).Return(&booking.BookResult{Booking: &domain.BookedFlight{ID: 1}}, nil).Once()

	body, _ := json.Marshal(gin.H{"scheduledFlightId": 4})
	recorder := performRequest(router, http.MethodPost, "/api/bookings/book-flight", "test@example.com", body)

	assert.Equal(t, http.StatusOK, recorder.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_Book_NotificationFailureNoted(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService)

	result := &booking.BookResult{
		Booking:         &domain.BookedFlight{ID: 1},
		NotificationErr: assert.AnError,
	}
	mockService.On("BookFlight", mock.Anything, mock.Anything).Return(result, nil).Once()

	body, _ := json.Marshal(gin.H{"scheduledFlightId": 4, "ticketQuantity": 1})
	recorder := performRequest(router, http.MethodPost, "/api/bookings/book-flight", "test@example.com", body)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Confirmation email could not be sent.")
}

func TestBookingHandler_Book_RejectionStatuses(t *testing.T) {
	testCases := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "Capacity exceeded", serviceErr: booking.ErrCapacityExceeded, wantStatus: http.StatusBadRequest},
		{name: "Ineligible document", serviceErr: booking.ErrDocumentIneligible, wantStatus: http.StatusBadRequest},
		{name: "Flight unavailable", serviceErr: booking.ErrFlightUnavailable, wantStatus: http.StatusBadRequest},
		{name: "Not found", serviceErr: booking.ErrNotFound, wantStatus: http.StatusBadRequest},
		{name: "Unauthorized", serviceErr: booking.ErrUnauthorized, wantStatus: http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			router := newBookingRouter(mockService)

			mockService.On("BookFlight", mock.Anything, mock.Anything).Return(nil, tc.serviceErr).Once()

			body, _ := json.Marshal(gin.H{"scheduledFlightId": 4, "ticketQuantity": 1})
			recorder := performRequest(router, http.MethodPost, "/api/bookings/book-flight", "test@example.com", body)

			assert.Equal(t, tc.wantStatus, recorder.Code)
		})
	}
}

func TestBookingHandler_Book_MissingIdentity(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService)

	body, _ := json.Marshal(gin.H{"scheduledFlightId": 4})
	recorder := performRequest(router, http.MethodPost, "/api/bookings/book-flight", "", body)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	mockService.AssertNotCalled(t, "BookFlight")
}

func TestBookingHandler_Book_MalformedBody(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService)

	recorder := performRequest(router, http.MethodPost, "/api/bookings/book-flight", "test@example.com", []byte("{not json"))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	mockService.AssertNotCalled(t, "BookFlight")
}

func TestBookingHandler_List_Empty(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService)

	mockService.On("GetBookedFlights", mock.Anything, "test@example.com").Return([]domain.BookedFlight{}, nil).Once()

	recorder := performRequest(router, http.MethodGet, "/api/bookings/booked-flights", "test@example.com", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "You don't have any booked flights yet!")
}

func TestBookingHandler_List_ReturnsBookings(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService)

	departure := time.Date(2026, 9, 14, 8, 30, 0, 0, time.UTC)
	bookings := []domain.BookedFlight{
		{
			ID:               1,
			UserEmail:        "test@example.com",
			DepartureDate:    departure,
			FlightStatus:     domain.FlightStatusScheduled,
			DepartureAirport: "Belgrade Nikola Tesla Airport",
			ArrivalAirport:   "Zurich Airport",
			FlightIcao:       "ASL431",
			TicketQuantity:   2,
		},
	}
	mockService.On("GetBookedFlights", mock.Anything, "test@example.com").Return(bookings, nil).Once()

	recorder := performRequest(router, http.MethodGet, "/api/bookings/booked-flights", "test@example.com", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var payload struct {
		Data []bookedFlightResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	if assert.Len(t, payload.Data, 1) {
		assert.Equal(t, int64(1), payload.Data[0].ID)
		assert.Equal(t, "SCHEDULED", payload.Data[0].FlightStatus)
		assert.Equal(t, "ASL431", payload.Data[0].FlightIcao)
		assert.Equal(t, departure.Format(time.RFC3339), payload.Data[0].FlightDate)
		assert.False(t, payload.Data[0].IsCanceled)
	}
}

func TestBookingHandler_List_UpcomingFilter(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService)

	upcoming := []domain.BookedFlight{{ID: 3, UserEmail: "test@example.com", TicketQuantity: 1}}
	mockService.On("GetUpcomingFlights", mock.Anything, "test@example.com").Return(upcoming, nil).Once()

	recorder := performRequest(router, http.MethodGet, "/api/bookings/booked-flights?upcoming=true", "test@example.com", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	mockService.AssertNotCalled(t, "GetBookedFlights")
}

func TestBookingHandler_Update(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := &MockBookingUseCase{}
		router := newBookingRouter(mockService)

		mockService.On("UpdateBookedFlight", mock.Anything, int64(7), 3, "test@example.com").Return(nil).Once()

		body, _ := json.Marshal(gin.H{"id": 7, "ticketQuantity": 3})
		recorder := performRequest(router, http.MethodPut, "/api/bookings/update-booked-flight", "test@example.com", body)

		assert.Equal(t, http.StatusOK, recorder.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Foreign booking", func(t *testing.T) {
		mockService := &MockBookingUseCase{}
		router := newBookingRouter(mockService)

		mockService.On("UpdateBookedFlight", mock.Anything, int64(7), 3, "other@example.com").Return(booking.ErrUnauthorized).Once()

		body, _ := json.Marshal(gin.H{"id": 7, "ticketQuantity": 3})
		recorder := performRequest(router, http.MethodPut, "/api/bookings/update-booked-flight", "other@example.com", body)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("Too late to modify", func(t *testing.T) {
		mockService := &MockBookingUseCase{}
		router := newBookingRouter(mockService)

		mockService.On("UpdateBookedFlight", mock.Anything, int64(7), 3, "test@example.com").Return(booking.ErrTooLateToModify).Once()

		body, _ := json.Marshal(gin.H{"id": 7, "ticketQuantity": 3})
		recorder := performRequest(router, http.MethodPut, "/api/bookings/update-booked-flight", "test@example.com", body)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestBookingHandler_Cancel(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := &MockBookingUseCase{}
		router := newBookingRouter(mockService)

		mockService.On("CancelBooking", mock.Anything, int64(9), "test@example.com").Return(nil).Once()

		recorder := performRequest(router, http.MethodDelete, "/api/bookings/book-flight/9", "test@example.com", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Booking successfully canceled.")
	})

	t.Run("Invalid id", func(t *testing.T) {
		mockService := &MockBookingUseCase{}
		router := newBookingRouter(mockService)

		recorder := performRequest(router, http.MethodDelete, "/api/bookings/book-flight/abc", "test@example.com", nil)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockService.AssertNotCalled(t, "CancelBooking")
	})

	t.Run("Not found", func(t *testing.T) {
		mockService := &MockBookingUseCase{}
		router := newBookingRouter(mockService)

		mockService.On("CancelBooking", mock.Anything, int64(9), "test@example.com").Return(booking.ErrNotFound).Once()

		recorder := performRequest(router, http.MethodDelete, "/api/bookings/book-flight/9", "test@example.com", nil)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
