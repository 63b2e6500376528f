package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-coach/internal/types"
)

// AuthHandler serves the register and login endpoints. Both mint a JWT
// on success so a fresh registration can immediately open sessions.
type AuthHandler struct {
	userService *UserService
	jwtService  *JWTService
	validator   *validator.Validate
}

// NewAuthHandler wires the handler to its user and token services.
func NewAuthHandler(userService *UserService, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		validator:   validator.New(),
	}
}

// Register creates a user account and logs it in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	h.authenticate(w, r, &req, http.StatusCreated, func(ctx context.Context) (*types.User, error) {
		return h.userService.Register(ctx, &req)
	})
}

// Login verifies credentials and issues a token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	h.authenticate(w, r, &req, http.StatusOK, func(ctx context.Context) (*types.User, error) {
		return h.userService.Login(ctx, &req)
	})
}

// authenticate runs the decode, validate, resolve-user, mint-token flow
// shared by both endpoints.
func (h *AuthHandler) authenticate(w http.ResponseWriter, r *http.Request, req any, successStatus int, resolve func(context.Context) (*types.User, error)) {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		http.Error(w, validationMessage(err), http.StatusBadRequest)
		return
	}

	user, err := resolve(r.Context())
	if err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(successStatus)
	_ = json.NewEncoder(w).Encode(types.LoginResponse{User: user, Token: token})
}

// validationMessage reports the first failed field.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Sprintf("validation error: %s - %s", verrs[0].Field(), verrs[0].Tag())
	}
	return "validation error: invalid request"
}
