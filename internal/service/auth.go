// Package service provides the business logic of the reference API
// server, delegating persistence to repository interfaces.
package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hansshop/storefront/internal/models"
)

// AuthRepository defines the persistence operations required by the
// authentication service.
type AuthRepository interface {
	// CreateUser stores a new user with the given password hash.
	CreateUser(ctx context.Context, user models.User, passwordHash string) error
	// UserByEmail returns the user and stored password hash for an
	// email, or ErrNotFound.
	UserByEmail(ctx context.Context, email string) (*models.User, string, error)
	// SaveToken associates a bearer token with a user.
	SaveToken(ctx context.Context, token, userID string) error
	// UserByToken resolves a bearer token, or ErrNotFound.
	UserByToken(ctx context.Context, token string) (*models.User, error)
}

// AuthService implements registration, login and token resolution.
type AuthService struct {
	repo AuthRepository
}

// NewAuthService constructs an AuthService using the provided repository.
func NewAuthService(repo AuthRepository) *AuthService {
	return &AuthService{repo: repo}
}

// hashPassword derives a salted hash in "salt$hex" form.
func hashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(salt + ":" + password))
	return salt + "$" + hex.EncodeToString(sum[:])
}

// verifyPassword checks password against a stored "salt$hex" hash.
func verifyPassword(password, stored string) bool {
	salt, _, ok := strings.Cut(stored, "$")
	if !ok {
		return false
	}
	return hmac.Equal([]byte(hashPassword(password, salt)), []byte(stored))
}

// Register creates an account and issues a token for it. Creating an
// Admin account requires the request to come from an authenticated
// admin.
func (s *AuthService) Register(ctx context.Context, name, email, password string, role models.Role, byAdmin bool) (string, *models.User, error) {
	if name == "" || email == "" {
		return "", nil, fmt.Errorf("%w: name and email are required", ErrValidation)
	}
	if len(password) < 6 {
		return "", nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return "", nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if role == models.RoleAdmin && !byAdmin {
		return "", nil, fmt.Errorf("%w: admin accounts can only be created by administrators", ErrForbidden)
	}

	if _, _, err := s.repo.UserByEmail(ctx, email); err == nil {
		return "", nil, ErrEmailTaken
	}

	user := models.User{ID: uuid.NewString(), Name: name, Email: email, Role: role}
	if err := s.repo.CreateUser(ctx, user, hashPassword(password, uuid.NewString())); err != nil {
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	token := uuid.NewString()
	if err := s.repo.SaveToken(ctx, token, user.ID); err != nil {
		return "", nil, fmt.Errorf("save token: %w", err)
	}
	return token, &user, nil
}

// Login verifies the credentials and issues a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, stored, err := s.repo.UserByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !verifyPassword(password, stored) {
		return "", nil, ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := s.repo.SaveToken(ctx, token, user.ID); err != nil {
		return "", nil, fmt.Errorf("save token: %w", err)
	}
	return token, user, nil
}

// UserByToken resolves a bearer token to its user. Satisfies the
// middleware's TokenResolver.
func (s *AuthService) UserByToken(ctx context.Context, token string) (*models.User, error) {
	return s.repo.UserByToken(ctx, token)
}
