package availability

import "errors"

var (
	ErrValidation = errors.New("invalid availability slot")
	ErrNotFound   = errors.New("slot not found")
	ErrForbidden  = errors.New("not the owner of this slot")
	ErrOverlap    = errors.New("slot overlaps an existing one")
)
