package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/planepal/internal/domain"
	"github.com/Domenick1991/planepal/internal/kafka"
	"github.com/Domenick1991/planepal/internal/repository"
	"github.com/Domenick1991/planepal/pkg/logger"
	"github.com/Domenick1991/planepal/pkg/metrics"
	"github.com/google/uuid"
)

// Bookings may be updated or canceled until this long before departure.
const mutationWindow = 2 * time.Hour

// A user document must stay valid this long past the flight date.
const documentValidityMargin = 3 // months

type BookingUseCase interface {
	BookFlight(ctx context.Context, input BookFlightInput) (*BookResult, error)
	GetBookedFlights(ctx context.Context, email string) ([]domain.BookedFlight, error)
	GetUpcomingFlights(ctx context.Context, email string) ([]domain.BookedFlight, error)
	UpdateBookedFlight(ctx context.Context, id int64, ticketQuantity int, email string) error
	CancelBooking(ctx context.Context, id int64, email string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookFlightInput struct {
	FlightID       int64
	TicketQuantity int
	UserEmail      string
}

// BookResult reports a committed booking. NotificationErr is set when the
// confirmation publish failed; the booking itself is not rolled back.
type BookResult struct {
	Booking         *domain.BookedFlight
	NotificationErr error
}

type BookingService struct {
	bookings           repository.BookingRepository
	users              repository.UserRepository
	catalog            repository.CatalogRepository
	producer           Producer
	notificationsTopic string
	log                logger.Logger
	metrics            *metrics.Metrics
	now                func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithMetrics(m *metrics.Metrics) BookingServiceOption {
	return func(s *BookingService) {
		s.metrics = m
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	users repository.UserRepository,
	catalog repository.CatalogRepository,
	producer Producer,
	notificationsTopic string,
	log logger.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:           bookings,
		users:              users,
		catalog:            catalog,
		producer:           producer,
		notificationsTopic: notificationsTopic,
		log:                log,
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// BookFlight checks the preconditions in order, short-circuiting on the first
// failure: existence, document, user status, flight status, capacity.
func (s *BookingService) BookFlight(ctx context.Context, input BookFlightInput) (*BookResult, error) {
	if input.TicketQuantity < 1 {
		return nil, s.reject(ErrInvalidQuantity)
	}

	user, err := s.users.GetByEmail(ctx, input.UserEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, s.reject(fmt.Errorf("%w: user with email %s not found", ErrNotFound, input.UserEmail))
		}
		return nil, s.storeFailure(err)
	}

	flight, err := s.catalog.GetFlightByID(ctx, input.FlightID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, s.reject(fmt.Errorf("%w: scheduled flight with id %d not found", ErrNotFound, input.FlightID))
		}
		return nil, s.storeFailure(err)
	}

	if user.Document == nil {
		return nil, s.reject(fmt.Errorf("%w: cannot book flights without an attached document", ErrDocumentIneligible))
	}
	validUntil := flight.FlightDate.AddDate(0, documentValidityMargin, 0)
	if !user.Document.ExpirationDate.After(validUntil) {
		return nil, s.reject(fmt.Errorf("%w: cannot book flights if the attached document expires in less than 3 months from departure time", ErrDocumentIneligible))
	}

	if user.Status != domain.UserStatusActive {
		return nil, s.reject(ErrUserIneligible)
	}

	if flight.FlightStatus != domain.FlightStatusScheduled {
		return nil, s.reject(ErrFlightUnavailable)
	}

	// Pre-check for a readable error; the insert re-checks under row locks.
	existing, err := s.bookings.ListByUserFlightAndDate(ctx, input.UserEmail, flight.Flight.Icao, flight.Departure.Scheduled)
	if err != nil {
		return nil, s.storeFailure(err)
	}
	held := 0
	for _, b := range existing {
		held += b.TicketQuantity
	}
	if held+input.TicketQuantity > domain.MaxTicketsPerFlight {
		return nil, s.reject(ErrCapacityExceeded)
	}

	booked := domain.NewBookedFlight(user, flight, input.TicketQuantity)
	if err := s.bookings.Create(ctx, booked); err != nil {
		if errors.Is(err, repository.ErrCapacityExceeded) {
			return nil, s.reject(ErrCapacityExceeded)
		}
		return nil, s.storeFailure(err)
	}

	if s.metrics != nil {
		s.metrics.BookingsCreated.Inc()
	}
	s.log.Info("flight booked", "user", booked.UserEmail, "icao", booked.FlightIcao, "tickets", booked.TicketQuantity)

	result := &BookResult{Booking: booked}
	if err := s.notify(ctx, booked); err != nil {
		// Booking is already committed; surface the failure, don't roll back.
		s.log.Error("failed to publish reservation confirmation", "booking_id", booked.ID, "error", err)
		if s.metrics != nil {
			s.metrics.NotificationFailures.Inc()
		}
		result.NotificationErr = err
	}
	return result, nil
}

// GetBookedFlights returns every booking the user owns, canceled included.
// An empty result is a success, not an error.
func (s *BookingService) GetBookedFlights(ctx context.Context, email string) ([]domain.BookedFlight, error) {
	bookings, err := s.bookings.ListByUser(ctx, email)
	if err != nil {
		return nil, s.storeFailure(err)
	}
	return bookings, nil
}

// GetUpcomingFlights returns the user's future non-canceled bookings, soonest
// departure first.
func (s *BookingService) GetUpcomingFlights(ctx context.Context, email string) ([]domain.BookedFlight, error) {
	bookings, err := s.bookings.ListFutureByUser(ctx, email)
	if err != nil {
		return nil, s.storeFailure(err)
	}
	return bookings, nil
}

func (s *BookingService) UpdateBookedFlight(ctx context.Context, id int64, ticketQuantity int, email string) error {
	booked, err := s.authorizedBooking(ctx, id, email)
	if err != nil {
		return err
	}
	if booked.DepartureDate.Before(s.now().Add(mutationWindow)) {
		return s.reject(fmt.Errorf("%w: booking can't be updated, because it is in less than 2 hours", ErrTooLateToModify))
	}
	if ticketQuantity < 1 || ticketQuantity > domain.MaxTicketsPerFlight {
		return s.reject(ErrInvalidQuantity)
	}

	if err := s.bookings.UpdateQuantity(ctx, id, ticketQuantity); err != nil {
		return s.storeFailure(err)
	}
	return nil
}

func (s *BookingService) CancelBooking(ctx context.Context, id int64, email string) error {
	booked, err := s.authorizedBooking(ctx, id, email)
	if err != nil {
		return err
	}
	if booked.DepartureDate.Before(s.now().Add(mutationWindow)) {
		return s.reject(fmt.Errorf("%w: booking can't be canceled, because it is in less than 2 hours", ErrTooLateToModify))
	}

	if err := s.bookings.Cancel(ctx, id); err != nil {
		return s.storeFailure(err)
	}
	return nil
}

func (s *BookingService) authorizedBooking(ctx context.Context, id int64, email string) (*domain.BookedFlight, error) {
	booked, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, s.reject(fmt.Errorf("%w: booked flight with id %d not found", ErrNotFound, id))
		}
		return nil, s.storeFailure(err)
	}
	if booked.UserEmail != email {
		return nil, s.reject(ErrUnauthorized)
	}
	return booked, nil
}

func (s *BookingService) notify(ctx context.Context, booked *domain.BookedFlight) error {
	if s.producer == nil || s.notificationsTopic == "" {
		return nil
	}
	event := kafka.BookingNotification{
		BookingID:        booked.ID,
		UserEmail:        booked.UserEmail,
		DepartureDate:    booked.DepartureDate,
		DepartureAirport: booked.DepartureAirport,
		ArrivalAirport:   booked.ArrivalAirport,
		FlightIcao:       booked.FlightIcao,
		TicketQuantity:   booked.TicketQuantity,
	}
	return s.producer.Publish(ctx, s.notificationsTopic, uuid.NewString(), event)
}

func (s *BookingService) reject(err error) error {
	if s.metrics != nil {
		s.metrics.BookingRejections.WithLabelValues(rejectionReason(err)).Inc()
	}
	return err
}

func (s *BookingService) storeFailure(err error) error {
	s.log.Error("booking store operation failed", "error", err)
	return s.reject(fmt.Errorf("%w: %v", ErrPersistenceFailure, err))
}

var _ BookingUseCase = (*BookingService)(nil)
