package services

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateUsername is returned when registering an already-taken
	// username.
	ErrDuplicateUsername = errors.New("username already registered")

	// ErrInvalidCredentials is returned for an unknown username, a wrong
	// password or a deactivated account; callers cannot tell which.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnauthenticated is returned when a token subject does not resolve
	// to an active user.
	ErrUnauthenticated = errors.New("user not found or inactive")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
