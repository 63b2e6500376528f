package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// Each API error type carries its own HTTP status via statusCoder;
// HTTPStatus maps anything else to a 500.
type statusCoder interface {
	httpStatus() int
}

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

func (e *ErrEmailAlreadyExists) httpStatus() int { return http.StatusConflict }

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string { return "invalid email or password" }

func (e *ErrInvalidCredentials) httpStatus() int { return http.StatusUnauthorized }

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

func (e *ErrUserNotFound) httpStatus() int { return http.StatusNotFound }

// ErrSessionNotFound indicates the conversation session was not found
type ErrSessionNotFound struct {
	SessionID uuid.UUID
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.SessionID)
}

func (e *ErrSessionNotFound) httpStatus() int { return http.StatusNotFound }

// ErrForbidden indicates the caller does not own the requested resource
type ErrForbidden struct{}

func (e *ErrForbidden) Error() string { return "forbidden" }

func (e *ErrForbidden) httpStatus() int { return http.StatusForbidden }

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

func (e *ErrValidation) httpStatus() int { return http.StatusBadRequest }

// HTTPStatus returns the HTTP status code an error should surface as.
func HTTPStatus(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) {
		return sc.httpStatus()
	}
	return http.StatusInternalServerError
}
