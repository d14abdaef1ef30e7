package service

import "errors"

// Sentinel errors shared across services; handlers map them to HTTP status.
var (
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrValidation           = errors.New("validation failed")
	ErrConflict             = errors.New("conflict")
	ErrInsufficientHoldings = errors.New("insufficient holdings")
	ErrUpstream             = errors.New("upstream service error")
)
