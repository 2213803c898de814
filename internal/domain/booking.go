package domain

import "time"

// MaxTicketsPerFlight caps the total tickets one user may hold across active
// bookings for the same flight occurrence (ICAO + departure timestamp).
const MaxTicketsPerFlight = 5

type BookedFlight struct {
	ID               int64        `json:"id"`
	UserEmail        string       `json:"userEmail"`
	DepartureDate    time.Time    `json:"flightDate"`
	FlightStatus     FlightStatus `json:"flightStatus"`
	DepartureAirport string       `json:"departureAirport"`
	ArrivalAirport   string       `json:"arrivalAirport"`
	FlightIcao       string       `json:"flightIcao"`
	TicketQuantity   int          `json:"ticketQuantity"`
	ArrivalDate      time.Time    `json:"arrivalDate"`
	IsCanceled       bool         `json:"isCanceled"`
}

// NewBookedFlight snapshots the flight fields at booking time so later
// catalog changes never alter the user's receipt.
func NewBookedFlight(user *User, flight *ScheduledFlight, ticketQuantity int) *BookedFlight {
	return &BookedFlight{
		UserEmail:        user.Email,
		DepartureDate:    flight.Departure.Scheduled,
		FlightStatus:     flight.FlightStatus,
		DepartureAirport: flight.Departure.Airport,
		ArrivalAirport:   flight.Arrival.Airport,
		FlightIcao:       flight.Flight.Icao,
		TicketQuantity:   ticketQuantity,
		ArrivalDate:      flight.Arrival.Scheduled,
		IsCanceled:       false,
	}
}
