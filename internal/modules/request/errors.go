package request

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("request not found")
	ErrForbidden       = errors.New("not allowed to modify this request")
	ErrInvalidStatus   = errors.New("invalid status transition")
	ErrSelfAssignment  = errors.New("cannot assign your own request to yourself")
	ErrAlreadyAssigned = errors.New("request is already assigned")
)
