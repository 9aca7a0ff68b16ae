package domain

import "errors"

// Business-rule failures are sentinel errors so handlers can map them to
// HTTP statuses with errors.Is. None of them are transient.
var (
	ErrFlightNotFound = errors.New("flight not found")
	ErrTicketNotFound = errors.New("ticket not found")
	ErrCityNotFound   = errors.New("city not found")

	ErrNoSeatsAvailable = errors.New("no seats available on this flight")

	ErrSeatTaken              = errors.New("this seat number is already reserved")
	ErrPassengerAlreadyBooked = errors.New("a reservation already exists for this flight with the same name and surname")

	ErrDepartureConflict = errors.New("a flight is already scheduled to depart from this city at the same hour on that date")
	ErrArrivalConflict   = errors.New("a flight is already scheduled to arrive at this city at the same exact time")

	// ErrValidation wraps malformed-input failures; match with errors.Is.
	ErrValidation = errors.New("validation failed")

	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAdmin           = errors.New("not authorized")
)

// IsConflict reports whether err is one of the duplicate/scheduling
// conflicts that map to HTTP 409.
func IsConflict(err error) bool {
	return errors.Is(err, ErrSeatTaken) ||
		errors.Is(err, ErrPassengerAlreadyBooked) ||
		errors.Is(err, ErrDepartureConflict) ||
		errors.Is(err, ErrArrivalConflict) ||
		errors.Is(err, ErrNoSeatsAvailable)
}

// IsNotFound reports whether err refers to an absent or soft-deleted record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrFlightNotFound) ||
		errors.Is(err, ErrTicketNotFound) ||
		errors.Is(err, ErrCityNotFound)
}
