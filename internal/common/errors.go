// Package common defines shared constants and sentinel errors used across
// client and server layers of DreamNotes. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Boundary validation errors.
	ErrValidation = errors.New("validation error")

	// Auth errors (invalid, malformed, or expired token).
	ErrInvalidToken = errors.New("invalid token")
)
