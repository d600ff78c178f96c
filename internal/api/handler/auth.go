package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cinephile-dev/cinephile/internal/domain/model"
	"github.com/cinephile-dev/cinephile/internal/domain/repository"
	"github.com/cinephile-dev/cinephile/internal/usecase"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	Password    string `json:"password"`
}

// UserResponse is the public view of a user. It never carries the
// password hash.
type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	Disabled    bool   `json:"disabled"`
}

// AuthHandler handles login and registration.
type AuthHandler struct {
	svc usecase.AccountService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc usecase.AccountService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		Error(w, http.StatusBadRequest, "invalid_request", "Email and password are required")
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			// One message for unknown email and wrong password.
			Error(w, http.StatusBadRequest, "invalid_credentials", "Incorrect email or password")
		case errors.Is(err, usecase.ErrUserDisabled):
			Error(w, http.StatusBadRequest, "inactive_user", "Inactive user")
		default:
			Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		}
		return
	}

	JSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	user, err := h.svc.Register(r.Context(), model.UserCreate{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Password:    req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			Error(w, http.StatusBadRequest, "email_taken", "The user with this email already exists in the system")
		case errors.Is(err, model.ErrEmptyEmail):
			Error(w, http.StatusBadRequest, "invalid_email", "Email cannot be empty")
		case errors.Is(err, model.ErrEmptyPassword):
			Error(w, http.StatusBadRequest, "invalid_password", "Password cannot be empty")
		default:
			Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		}
		return
	}

	JSON(w, http.StatusOK, toUserResponse(user))
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Disabled:    u.Disabled,
	}
}
