package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hansshop/storefront/internal/models"
	"github.com/hansshop/storefront/internal/repository"
	"github.com/hansshop/storefront/internal/service"
)

func newAuthService() *service.AuthService {
	return service.NewAuthService(repository.NewMemoryAuthRepository())
}

func TestRegister_IssuesWorkingToken(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	token, user, err := svc.Register(ctx, "Hans", "hans@example.com", "secret1", models.RoleUser, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" || user.ID == "" {
		t.Fatalf("expected token and user id, got %q / %+v", token, user)
	}

	resolved, err := svc.UserByToken(ctx, token)
	if err != nil {
		t.Fatalf("token did not resolve: %v", err)
	}
	if resolved.ID != user.ID {
		t.Errorf("token resolved to %q, want %q", resolved.ID, user.ID)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		role     models.Role
		byAdmin  bool
		want     error
	}{
		{"short password", "Hans", "hans@example.com", "abc", models.RoleUser, false, service.ErrValidation},
		{"missing name", "", "hans@example.com", "secret1", models.RoleUser, false, service.ErrValidation},
		{"unknown role", "Hans", "hans@example.com", "secret1", models.Role("root"), false, service.ErrValidation},
		{"admin without admin", "Hans", "hans@example.com", "secret1", models.RoleAdmin, false, service.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, tt.userName, tt.email, tt.password, tt.role, tt.byAdmin)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Hans", "hans@example.com", "secret1", models.RoleUser, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, _, err := svc.Register(ctx, "Other", "hans@example.com", "secret2", models.RoleUser, false)
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegister_AdminByAdmin(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	_, user, err := svc.Register(ctx, "Root", "root@example.com", "secret1", models.RoleAdmin, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("expected Admin role, got %q", user.Role)
	}
}

func TestLogin(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Hans", "hans@example.com", "secret1", models.RoleUser, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("good credentials", func(t *testing.T) {
		token, user, err := svc.Login(ctx, "hans@example.com", "secret1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token == "" || user.Name != "Hans" {
			t.Errorf("unexpected result: %q / %+v", token, user)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "hans@example.com", "nope")
		if !errors.Is(err, service.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ghost@example.com", "secret1")
		if !errors.Is(err, service.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}
