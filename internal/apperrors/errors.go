// Package apperrors defines the error taxonomy shared by repositories,
// services and handlers: not-found, conflict and validation failures.
// Everything else is treated as an internal error at the HTTP boundary.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a resource that is absent or not owned by the caller.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness violation (duplicate review, duplicate
	// store per user, concurrent duplicate cart line).
	ErrConflict = errors.New("conflict")
	// ErrValidation marks a rejected input: bad enum value, empty cart,
	// insufficient stock, illegal status transition.
	ErrValidation = errors.New("validation failed")
)

// NotFound wraps ErrNotFound with a formatted message.
func NotFound(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
}

// Conflict wraps ErrConflict with a formatted message.
func Conflict(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrConflict}, args...)...)
}

// Validation wraps ErrValidation with a formatted message.
func Validation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}
