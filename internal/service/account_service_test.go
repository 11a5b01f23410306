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

func newTestAccountService() (*AccountService, *memory.Gateway) {
	gateway := memory.NewGateway()
	svc := NewAccountService(gateway, zap.NewNop())
	svc.now = func() time.Time { return testNow }
	return svc, gateway
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAccountService()

	account, err := svc.Register(ctx, "Nuevo Cliente", "nuevo@email.com", "secreto1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if account.ID == "" {
		t.Error("Register() did not assign an id")
	}
	if account.Role != model.RoleClient {
		t.Errorf("Register() role = %v, want %v", account.Role, model.RoleClient)
	}
	if account.CreatedAt.IsZero() {
		t.Error("Register() did not stamp CreatedAt")
	}

	accounts, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(accounts) != 1 {
		t.Fatalf("List() returned %d accounts, want 1", len(accounts))
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAccountService()

	if _, err := svc.Register(ctx, "Ocupado", "ocupado@email.com", "secreto1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	cases := []struct {
		name     string
		accName  string
		email    string
		password string
		want     error
	}{
		{"missing name", "", "a@b.com", "secreto1", ErrMissingFields},
		{"missing email", "Ana", "", "secreto1", ErrMissingFields},
		{"missing password", "Ana", "a@b.com", "", ErrMissingFields},
		{"malformed email", "Ana", "no-es-un-email", "secreto1", ErrInvalidEmail},
		{"email with spaces", "Ana", "a b@c.com", "secreto1", ErrInvalidEmail},
		{"short password", "Ana", "a@b.com", "12345", ErrWeakPassword},
		{"duplicate email", "Otro", "ocupado@email.com", "secreto1", ErrEmailTaken},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tt.accName, tt.email, tt.password); !errors.Is(err, tt.want) {
				t.Fatalf("Register() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestChangeRole(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAccountService()

	account, err := svc.Register(ctx, "Futuro Operador", "futuro@email.com", "secreto1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := svc.ChangeRole(ctx, account.ID, model.RoleOperator); err != nil {
		t.Fatalf("ChangeRole() error = %v", err)
	}

	accounts, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if accounts[0].Role != model.RoleOperator {
		t.Errorf("role after ChangeRole() = %v, want %v", accounts[0].Role, model.RoleOperator)
	}
}

func TestChangeRoleErrors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAccountService()

	account, err := svc.Register(ctx, "Cliente", "cliente2@email.com", "secreto1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := svc.ChangeRole(ctx, "nonexistent-id", model.RoleAdmin); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("ChangeRole() error = %v, want ErrAccountNotFound", err)
	}
	if err := svc.ChangeRole(ctx, account.ID, "superuser"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("ChangeRole() error = %v, want ErrInvalidRole", err)
	}
}
