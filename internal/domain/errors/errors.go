package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrNotFound        = errors.New("resource not found")
	ErrValidation      = errors.New("invalid input")
	ErrConflict        = errors.New("resource conflict")
	ErrCapacity        = errors.New("capacity exceeded")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrUpstream        = errors.New("upstream failure")
	ErrNoActiveGame    = errors.New("no active game")
	ErrGameEnded       = errors.New("game has ended")
	ErrAlreadyVerified = errors.New("completion already verified")
)

// AppError carries a user-facing message alongside the underlying cause.
// Handlers render Message to the invoking user; Err drives classification.
type AppError struct {
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(message string, err error) *AppError {
	return &AppError{Message: message, Err: err}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(message, ErrNotFound)
}

func Validation(message string) *AppError {
	return NewAppError(message, ErrValidation)
}

func Conflict(message string) *AppError {
	return NewAppError(message, ErrConflict)
}

func Capacity(message string) *AppError {
	return NewAppError(message, ErrCapacity)
}

func Unauthorized(message string) *AppError {
	return NewAppError(message, ErrUnauthorized)
}

func Upstream(message string, err error) *AppError {
	return &AppError{Message: message, Err: fmt.Errorf("%w: %w", ErrUpstream, err)}
}

// UserMessage extracts the user-facing message from err, falling back to
// the provided default for unexpected faults. The original error is never
// surfaced to the caller.
func UserMessage(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
