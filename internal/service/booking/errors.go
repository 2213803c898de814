package booking

import "errors"

// Outcome taxonomy for the rule engine. Handlers match with errors.Is and
// translate to HTTP statuses; the wrapped text carries the user-facing detail.
var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("user is not authorized")
	ErrDocumentIneligible = errors.New("document ineligible")
	ErrUserIneligible     = errors.New("only ACTIVE user can book flights")
	ErrFlightUnavailable  = errors.New("cannot book the flight, because it is unavailable")
	ErrCapacityExceeded   = errors.New("cannot book flight, exceeded maximum amount of tickets that can be bought: 5")
	ErrInvalidQuantity    = errors.New("ticket quantity cannot be less than 1 or more than 5")
	ErrTooLateToModify    = errors.New("booking cannot be changed, because it is in less than 2 hours")
	ErrPersistenceFailure = errors.New("failed to update the booking in the database")
)

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrDocumentIneligible):
		return "document_ineligible"
	case errors.Is(err, ErrUserIneligible):
		return "user_ineligible"
	case errors.Is(err, ErrFlightUnavailable):
		return "flight_unavailable"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, ErrTooLateToModify):
		return "too_late_to_modify"
	default:
		return "persistence_failure"
	}
}
