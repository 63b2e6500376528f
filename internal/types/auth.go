// Package types provides type definitions for structured data used throughout the resume-coach system.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateUserRequest represents the request to create a new user with password authentication.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User represents a user profile for API responses (avoids import cycle with store package).
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse represents the login/register response with user data and authentication token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// CreateSessionRequest starts a new conversation. JDSummary and
// ResumeSections are optional; when omitted the server seeds the
// built-in demo resume so the assistant is usable immediately.
type CreateSessionRequest struct {
	JDSummary      string            `json:"jd_summary,omitempty"`
	ResumeSections map[SectionID]any `json:"resume_sections,omitempty"`
}

// PostMessageRequest carries one user turn into a session.
type PostMessageRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}

// SessionResponse is the session API's view of a conversation after a turn.
type SessionResponse struct {
	ID             uuid.UUID `json:"id"`
	CurrentSection SectionID `json:"current_section,omitempty"`
	Messages       []Message `json:"messages"`
}

// Validate validates the CreateUserRequest using the validator.
func (r *CreateUserRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the PostMessageRequest using the validator.
func (r *PostMessageRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
