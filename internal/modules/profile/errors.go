package profile

import "errors"

var (
	ErrNotFound   = errors.New("profile not found")
	ErrForbidden  = errors.New("not allowed to modify this profile")
	ErrValidation = errors.New("validation error")
)
