package api

import (
	"context"

	"github.com/hansshop/storefront/internal/models"
)

// AuthAPI wraps the authentication endpoints.
type AuthAPI struct {
	c *Client
}

// Credentials is the response of a successful register or login call.
// Persisting the token and user is the caller's job; the gateway itself
// stays side-effect free.
type Credentials struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates a new account with the given role.
func (a *AuthAPI) Register(ctx context.Context, name, email, password string, role models.Role) (*Credentials, error) {
	body := map[string]any{
		"name":     name,
		"email":    email,
		"password": password,
		"role":     role,
	}
	var creds Credentials
	if err := a.c.do(ctx, "POST", "/auth/register", body, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// Login authenticates with email and password.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (*Credentials, error) {
	body := map[string]any{"email": email, "password": password}
	var creds Credentials
	if err := a.c.do(ctx, "POST", "/auth/login", body, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}
