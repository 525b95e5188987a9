// Package http provides the HTTP handlers and routing of the reference
// storefront API server.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hansshop/storefront/internal/middleware"
	"github.com/hansshop/storefront/internal/models"
)

// AuthService defines the authentication operations required by the
// HTTP handlers.
type AuthService interface {
	// Register creates an account and issues a token. byAdmin reports
	// whether the request came from an authenticated admin.
	Register(ctx context.Context, name, email, password string, role models.Role, byAdmin bool) (string, *models.User, error)
	// Login verifies credentials and issues a fresh token.
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	AuthService AuthService
}

// RegisterRequest is the JSON payload for account registration.
type RegisterRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role,omitempty"`
}

// LoginRequest is the JSON payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// credentialsResponse is the body of a successful register or login.
type credentialsResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register handles account creation. Creating an admin account is only
// allowed when the request itself carries an admin token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	requester := middleware.UserFromContext(r.Context())
	byAdmin := requester != nil && requester.Role == models.RoleAdmin

	token, user, err := h.AuthService.Register(r.Context(), req.Name, req.Email, req.Password, req.Role, byAdmin)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, credentialsResponse{Token: token, User: user})
}

// Login handles email/password authentication.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	token, user, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, credentialsResponse{Token: token, User: user})
}
