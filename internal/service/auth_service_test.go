package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mgarrido/sistema-reservas/internal/model"
	"github.com/mgarrido/sistema-reservas/internal/storage/memory"
)

func newTestAuthService(t *testing.T) (*AuthService, *memory.Gateway) {
	t.Helper()

	gateway := memory.NewGateway()
	accounts := []model.Account{
		{
			ID:        "1",
			Name:      "Administrador",
			Email:     "admin@empresa.com",
			Password:  "admin123",
			Role:      model.RoleAdmin,
			CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	if err := gateway.SaveAccounts(context.Background(), accounts); err != nil {
		t.Fatalf("SaveAccounts() error = %v", err)
	}

	return NewAuthService(gateway, zap.NewNop()), gateway
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)

	session, err := svc.Login(ctx, "admin@empresa.com", "admin123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if session.ID != "1" || session.Role != model.RoleAdmin {
		t.Errorf("Login() session = %+v, want account 1 with admin role", session)
	}

	// The persisted marker is the same password-stripped copy.
	current, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if current == nil || current.ID != "1" {
		t.Fatalf("Current() = %+v, want session for account 1", current)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "admin@empresa.com", "nope"},
		{"unknown email", "nobody@empresa.com", "admin123"},
		{"empty credentials", "", ""},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(ctx, tt.email, tt.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}

	// A failed login must not leave a session behind.
	current, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if current != nil {
		t.Fatalf("Current() = %+v, want nil after failed logins", current)
	}
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)

	if _, err := svc.Login(ctx, "admin@empresa.com", "admin123"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	current, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if current != nil {
		t.Fatalf("Current() after logout = %+v, want nil", current)
	}

	// Logging out twice is harmless.
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("second Logout() error = %v", err)
	}
}

func TestLoginOverwritesSession(t *testing.T) {
	ctx := context.Background()
	svc, gateway := newTestAuthService(t)

	accounts, _ := gateway.LoadAccounts(ctx)
	accounts = append(accounts, model.Account{
		ID:       "2",
		Name:     "Operador",
		Email:    "operador@empresa.com",
		Password: "operador123",
		Role:     model.RoleOperator,
	})
	if err := gateway.SaveAccounts(ctx, accounts); err != nil {
		t.Fatalf("SaveAccounts() error = %v", err)
	}

	if _, err := svc.Login(ctx, "admin@empresa.com", "admin123"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if _, err := svc.Login(ctx, "operador@empresa.com", "operador123"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	current, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if current == nil || current.ID != "2" {
		t.Fatalf("Current() = %+v, want the second login", current)
	}
}
