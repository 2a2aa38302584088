package booking

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("booking not found")
	ErrForbidden       = errors.New("not a participant of this booking")
	ErrInvalidStatus   = errors.New("invalid booking status transition")
	ErrInvalidPayment  = errors.New("invalid payment status transition")
	ErrAlreadyBooked   = errors.New("request already has a booking")
	ErrPaymentDeclined = errors.New("payment declined")
	ErrSelfBooking     = errors.New("cannot book a session with yourself")
	ErrNotConfirmed    = errors.New("booking must be confirmed first")
	ErrProviderOnly    = errors.New("only the provider may do this")
	ErrRequesterOnly   = errors.New("only the requester may do this")
)
