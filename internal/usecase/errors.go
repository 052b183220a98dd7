package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrInsufficientHistory   = errors.New("insufficient match history")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
