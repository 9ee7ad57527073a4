package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("board state conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
