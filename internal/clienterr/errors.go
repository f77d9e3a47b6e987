// Package clienterr defines the error taxonomy shared by the profile wizard and its HTTP adapters.
// Every failure is recoverable: callers display the message and the wizard stays interactive.
package clienterr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an adapter or wizard error.
type Kind string

// Error kinds.
const (
	KindValidation Kind = "validation"
	KindNetwork    Kind = "network"
	KindServer     Kind = "server"
	KindUnknown    Kind = "unknown"
)

// ValidationError is a local rejection raised before any network call: a file that is
// the wrong type or too large, or a step gate that is not satisfied.
type ValidationError struct {
	Field   string
	Message string
	Missing []string // required fields left empty, for step gates
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: missing %s", e.Message, strings.Join(e.Missing, ", "))
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return e.Message
}

// NetworkError wraps a transport failure (DNS, refused connection, timeout, broken body).
type NetworkError struct {
	Op    string
	URL   string
	Cause error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// ServerError is a non-2xx response. Message is the server-provided text, or a fallback.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Classify reports the kind of err.
func Classify(err error) Kind {
	var ve *ValidationError
	var ne *NetworkError
	var se *ServerError
	switch {
	case errors.As(err, &ve):
		return KindValidation
	case errors.As(err, &ne):
		return KindNetwork
	case errors.As(err, &se):
		return KindServer
	default:
		return KindUnknown
	}
}

// Message returns the text a UI should display for err. Server messages pass through
// verbatim; anything without a usable message falls back to fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		if len(ve.Missing) > 0 {
			return ve.Error()
		}
		if ve.Message != "" {
			return ve.Message
		}
	}
	var se *ServerError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
