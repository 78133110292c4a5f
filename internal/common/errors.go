// Package common defines shared constants and sentinel errors used across
// client and server layers of folio. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

// ValidationError carries a user-facing message for a rejected input.
// It matches ErrorValidation with errors.Is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrorValidation }

// Invalid is shorthand for &ValidationError{Message: msg}.
func Invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// KindError is a user-facing message tagged with one of the sentinels above,
// e.g. NotFound("Blog not found") matches ErrorNotFound.
type KindError struct {
	Kind    error
	Message string
}

func (e *KindError) Error() string { return e.Message }

func (e *KindError) Unwrap() error { return e.Kind }

func NotFound(msg string) error {
	return &KindError{Kind: ErrorNotFound, Message: msg}
}

func Conflict(msg string) error {
	return &KindError{Kind: ErrorConflict, Message: msg}
}

func Unauthorized(msg string) error {
	return &KindError{Kind: ErrorUnauthorized, Message: msg}
}
