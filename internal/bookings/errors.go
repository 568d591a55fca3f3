package bookings

import "errors"

var (
	ErrBookingNotFound         = errors.New("booking not found")
	ErrNotBookingOwner         = errors.New("booking does not belong to user")
	ErrBookingAlreadyPaid      = errors.New("booking is already paid")
	ErrBookingAlreadyCancelled = errors.New("booking is already cancelled")

	ErrSeatUnavailable  = errors.New("one or more seats are already taken")
	ErrInvalidSeatLabel = errors.New("invalid seat label")
	ErrTooManySeats     = errors.New("too many seats requested")
	ErrNoSeats          = errors.New("no seats requested")
	ErrDuplicateSeat    = errors.New("duplicate seat in request")
)
