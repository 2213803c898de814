package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/planepal/internal/domain"
	"github.com/Domenick1991/planepal/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type bookFlightRequest struct {
	ScheduledFlightID int64 `json:"scheduledFlightId" binding:"required"`
	TicketQuantity    int   `json:"ticketQuantity"`
}

type updateBookedFlightRequest struct {
	ID             int64 `json:"id" binding:"required"`
	TicketQuantity int   `json:"ticketQuantity" binding:"required"`
}

type bookedFlightResponse struct {
	ID               int64  `json:"id"`
	FlightDate       string `json:"flightDate"`
	FlightStatus     string `json:"flightStatus"`
	DepartureAirport string `json:"departureAirport"`
	ArrivalAirport   string `json:"arrivalAirport"`
	FlightIcao       string `json:"flightIcao"`
	TicketQuantity   int    `json:"ticketQuantity"`
	IsCanceled       bool   `json:"isCanceled"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/book-flight", h.book)
	router.GET("/booked-flights", h.list)
	router.PUT("/update-booked-flight", h.update)
	router.DELETE("/book-flight/:id", h.cancel)
}

func (h *BookingHandler) book(c *gin.Context) {
	var req bookFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.TicketQuantity == 0 {
		req.TicketQuantity = 1
	}

	result, err := h.service.BookFlight(c.Request.Context(), booking.BookFlightInput{
		FlightID:       req.ScheduledFlightID,
		TicketQuantity: req.TicketQuantity,
		UserEmail:      userEmail(c),
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	message := "Successfully booked flight!"
	if result.NotificationErr != nil {
		message += " Confirmation email could not be sent."
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *BookingHandler) list(c *gin.Context) {
	var bookings []domain.BookedFlight
	var err error
	if c.Query("upcoming") == "true" {
		bookings, err = h.service.GetUpcomingFlights(c.Request.Context(), userEmail(c))
	} else {
		bookings, err = h.service.GetBookedFlights(c.Request.Context(), userEmail(c))
	}
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	if len(bookings) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "You don't have any booked flights yet!", "data": []bookedFlightResponse{}})
		return
	}

	response := make([]bookedFlightResponse, 0, len(bookings))
	for _, b := range bookings {
		response = append(response, toBookedFlightResponse(b))
	}
	c.JSON(http.StatusOK, gin.H{"data": response})
}

func (h *BookingHandler) update(c *gin.Context) {
	var req updateBookedFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.UpdateBookedFlight(c.Request.Context(), req.ID, req.TicketQuantity, userEmail(c)); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully updated!"})
}

func (h *BookingHandler) cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.CancelBooking(c.Request.Context(), id, userEmail(c)); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking successfully canceled."})
}

func toBookedFlightResponse(b domain.BookedFlight) bookedFlightResponse {
	return bookedFlightResponse{
		ID:               b.ID,
		FlightDate:       b.DepartureDate.Format(time.RFC3339),
		FlightStatus:     b.FlightStatus.String(),
		DepartureAirport: b.DepartureAirport,
		ArrivalAirport:   b.ArrivalAirport,
		FlightIcao:       b.FlightIcao,
		TicketQuantity:   b.TicketQuantity,
		IsCanceled:       b.IsCanceled,
	}
}

func statusFor(err error) int {
	if errors.Is(err, booking.ErrUnauthorized) {
		return http.StatusForbidden
	}
	return http.StatusBadRequest
}
