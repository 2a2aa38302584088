package report

import "errors"

var (
	ErrValidation    = errors.New("invalid report")
	ErrNotFound      = errors.New("report not found")
	ErrInvalidStatus = errors.New("invalid report status")
)
