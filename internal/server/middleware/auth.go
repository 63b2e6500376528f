// Package middleware carries the HTTP middleware shared by the session
// API handlers.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is the key type for request-scoped values set by this
// package, distinct from any other package's context keys.
type ContextKey string

const userIDKey ContextKey = "userID"

// ErrNoUserID is returned by GetUserID for requests that did not pass
// through AuthMiddleware.
var ErrNoUserID = errors.New("no authenticated user in request context")

// TokenValidator validates a bearer token and exposes its claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (UserIDGetter, error)
}

// UserIDGetter is the one claim the middleware needs from a token.
type UserIDGetter interface {
	GetUserID() uuid.UUID
}

// AuthMiddleware rejects requests without a valid "Authorization:
// Bearer <token>" header and stores the token's user ID in the request
// context for handlers to read back via GetUserID.
func AuthMiddleware(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w)
				return
			}

			claims, err := tokens.ValidateToken(token)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.GetUserID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken pulls the token out of an Authorization header value.
// The "Bearer" scheme matches case-insensitively; a missing, empty, or
// space-containing token is rejected before it reaches the validator.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

func unauthorized(w http.ResponseWriter) {
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}

// GetUserID returns the authenticated user ID stored by AuthMiddleware.
func GetUserID(r *http.Request) (uuid.UUID, error) {
	id, ok := r.Context().Value(userIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrNoUserID
	}
	return id, nil
}

// UserIDKey exposes the context key so tests can inject a user without
// running the middleware.
func UserIDKey() ContextKey {
	return userIDKey
}
