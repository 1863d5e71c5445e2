package models

import "errors"

// Error taxonomy shared by services and mapped to HTTP status codes at the
// handler boundary. Services never return raw driver errors for expected
// failure modes.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("please verify your email before logging in")
)

// ValidationError reports a missing or empty required field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}
