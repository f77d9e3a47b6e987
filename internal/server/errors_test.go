package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestErrEmailAlreadyExists(t *testing.T) {
	err := &ErrEmailAlreadyExists{Email: "test@example.com"}
	assert.Equal(t, "email already registered: test@example.com", err.Error())
	assert.Equal(t, http.StatusConflict, HTTPStatus(err))
}

func TestErrInvalidCredentials(t *testing.T) {
	err := &ErrInvalidCredentials{}
	assert.Equal(t, "Invalid email or password", err.Error())
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(err))
}

func TestErrUserNotFound(t *testing.T) {
	userID := uuid.New()
	err := &ErrUserNotFound{UserID: userID}
	assert.Equal(t, "user not found: "+userID.String(), err.Error())
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestErrProfileNotFound(t *testing.T) {
	id := uuid.New()
	err := &ErrProfileNotFound{ProfileID: id}
	assert.Equal(t, "Profile not found", err.Error())
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))

	att := &ErrProfileNotFound{ProfileID: id, Attachment: "resume"}
	assert.Equal(t, "No resume stored for this profile", att.Error())
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("serving: %w", att)))
}

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "email", Message: "invalid format"}
	assert.Equal(t, "validation error: email - invalid format", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))

	bare := &ErrValidation{Message: "Missing profile data"}
	assert.Equal(t, "Missing profile data", bare.Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"ErrEmailAlreadyExists", &ErrEmailAlreadyExists{Email: "test@example.com"}, http.StatusConflict},
		{"ErrInvalidCredentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"ErrUserNotFound", &ErrUserNotFound{UserID: uuid.New()}, http.StatusNotFound},
		{"ErrProfileNotFound", &ErrProfileNotFound{ProfileID: uuid.New()}, http.StatusNotFound},
		{"ErrForbidden", &ErrForbidden{Reason: "user mismatch"}, http.StatusForbidden},
		{"ErrValidation", &ErrValidation{Field: "password", Message: "too short"}, http.StatusBadRequest},
		{"wrapped", fmt.Errorf("creating: %w", &ErrValidation{Message: "x"}), http.StatusBadRequest},
		{"Unknown error", assert.AnError, http.StatusInternalServerError},
		{"Nil error", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
