package chat

import "errors"

var (
	ErrEmptyMessage = errors.New("message content is empty")
	ErrSelfMessage  = errors.New("cannot message yourself")
)
