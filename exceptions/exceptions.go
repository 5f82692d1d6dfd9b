package exceptions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Error is the one error type that crosses controller boundaries. The status
// code decides the HTTP response, Message is safe to show to the client.
type Error struct {
	StatusCode    int      `json:"-"`
	Message       string   `json:"error"`
	MissingFields []string `json:"missing_fields,omitempty"`
	cause         error
	transient     bool
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// WithCause attaches the underlying error for logs without changing what the
// client sees.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

func NewValidation(message string) *Error {
	return &Error{StatusCode: fiber.StatusBadRequest, Message: message}
}

func NewAuthentication(message string) *Error {
	return &Error{StatusCode: fiber.StatusUnauthorized, Message: message}
}

func NewAuthorization(message string) *Error {
	return &Error{StatusCode: fiber.StatusForbidden, Message: message}
}

func NewNotFound(message string) *Error {
	return &Error{StatusCode: fiber.StatusNotFound, Message: message}
}

func NewInternal(message string, cause error) *Error {
	return &Error{StatusCode: fiber.StatusInternalServerError, Message: message, cause: cause}
}

// NewIncompleteProfile names exactly the fields the caller must fill in.
func NewIncompleteProfile(fields []string) *Error {
	return &Error{
		StatusCode:    fiber.StatusBadRequest,
		Message:       "Profile is incomplete. Missing: " + strings.Join(fields, ", "),
		MissingFields: fields,
	}
}

// NewTransientRace marks a lookup that may succeed on retry. Callers retry it
// internally; only on exhaustion is it folded into a NotFound.
func NewTransientRace(message string, cause error) *Error {
	return &Error{StatusCode: fiber.StatusNotFound, Message: message, cause: cause, transient: true}
}

func (e *Error) Transient() bool {
	return e.transient
}

// IsTransient reports whether err is a retryable race.
func IsTransient(err error) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Transient()
}
