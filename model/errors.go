package model

import "errors"

// Engine error taxonomy. Handlers map these to HTTP statuses with errors.Is;
// services wrap them with context via fmt.Errorf("...: %w", Err...).
var (
	ErrValidation     = errors.New("validation failed")
	ErrDuplicate      = errors.New("duplicate entry")
	ErrSafetyRejected = errors.New("safety check failed")
	ErrRateLimited    = errors.New("rate limited")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("write conflict")
	ErrInvalidState   = errors.New("invalid state")
)
