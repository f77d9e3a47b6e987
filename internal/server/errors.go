// Package server provides the HTTP REST API for student accounts and profiles.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "Invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrProfileNotFound indicates a profile, or the named attachment of one, was not found.
// The message is shown to API clients as is.
type ErrProfileNotFound struct {
	ProfileID  uuid.UUID
	Attachment string
}

func (e *ErrProfileNotFound) Error() string {
	if e.Attachment != "" {
		return fmt.Sprintf("No %s stored for this profile", e.Attachment)
	}
	return "Profile not found"
}

// ErrForbidden indicates the caller is authenticated but may not act on the resource
type ErrForbidden struct {
	Reason string
}

func (e *ErrForbidden) Error() string {
	return "forbidden: " + e.Reason
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		emailErr     *ErrEmailAlreadyExists
		credErr      *ErrInvalidCredentials
		userErr      *ErrUserNotFound
		profileErr   *ErrProfileNotFound
		forbiddenErr *ErrForbidden
		validErr     *ErrValidation
	)
	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &emailErr):
		return http.StatusConflict
	case errors.As(err, &credErr):
		return http.StatusUnauthorized
	case errors.As(err, &userErr), errors.As(err, &profileErr):
		return http.StatusNotFound
	case errors.As(err, &forbiddenErr):
		return http.StatusForbidden
	case errors.As(err, &validErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
