package services

import "errors"

// Error taxonomy surfaced to handlers. Services wrap these with context via
// fmt.Errorf("...: %w", err); handlers map them to HTTP status codes with
// errors.Is and never leak internal detail.
var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidInput   = errors.New("invalid input")
	ErrStorageFailure = errors.New("storage failure")
	ErrConflict       = errors.New("conflict")
)
