package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-coach/internal/config"
	"github.com/jonathan/resume-coach/internal/types"
)

func setupAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	passwordConfig, err := config.NewPasswordConfig()
	require.NoError(t, err)
	userService := NewUserService(newFakeUserStore(), passwordConfig)
	return NewAuthHandler(userService, setupTestJWTService(t, 24))
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	h := setupAuthHandler(t)

	w := postJSON(t, h.Register, "/auth/register", types.CreateUserRequest{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "correct-horse-battery",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, "john@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Token)
}

func TestAuthHandler_Register_InvalidBody(t *testing.T) {
	h := setupAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	h.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	h := setupAuthHandler(t)

	tests := []struct {
		name string
		req  types.CreateUserRequest
	}{
		{
			name: "missing email",
			req:  types.CreateUserRequest{Name: "John", Password: "correct-horse-battery"},
		},
		{
			name: "bad email",
			req:  types.CreateUserRequest{Name: "John", Email: "not-an-email", Password: "correct-horse-battery"},
		},
		{
			name: "short password",
			req:  types.CreateUserRequest{Name: "John", Email: "john@example.com", Password: "short"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, h.Register, "/auth/register", tt.req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "validation error")
		})
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	h := setupAuthHandler(t)

	req := types.CreateUserRequest{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "correct-horse-battery",
	}

	w := postJSON(t, h.Register, "/auth/register", req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, h.Register, "/auth/register", req)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "email already registered")
}

func TestAuthHandler_Login(t *testing.T) {
	h := setupAuthHandler(t)

	w := postJSON(t, h.Register, "/auth/register", types.CreateUserRequest{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "correct-horse-battery",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, h.Login, "/auth/login", types.LoginRequest{
		Email:    "john@example.com",
		Password: "correct-horse-battery",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, "john@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Token)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := setupAuthHandler(t)

	w := postJSON(t, h.Login, "/auth/login", types.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")
}
