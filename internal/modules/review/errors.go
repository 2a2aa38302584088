package review

import "errors"

var (
	ErrValidation = errors.New("invalid review")
	ErrSelfReview = errors.New("cannot review yourself")
)
