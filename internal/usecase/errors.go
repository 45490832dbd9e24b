package usecase

import "errors"

// Shared sentinels mapped to HTTP statuses at the delivery layer.
var (
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)
