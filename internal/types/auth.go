package types

import (
	"time"

	"github.com/google/uuid"
)

// SignupRequest represents the request to register a new student account.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Skills   string `json:"skills,omitempty"` // free-text skills captured at signup
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User represents a student account for API responses. The password hash never leaves the db package.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Skills    []string  `json:"skills"`
	CreatedAt time.Time `json:"created_at"`
}

// SignupResponse is returned after a successful registration.
type SignupResponse struct {
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"user_id"`
	Token   string    `json:"token"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"user_id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Token   string    `json:"token"`
}

// Validate validates the SignupRequest using the validator.
func (r *SignupRequest) Validate() error {
	return NewValidator().Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	return NewValidator().Struct(r)
}
