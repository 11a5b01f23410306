package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mgarrido/sistema-reservas/internal/model"
	"github.com/mgarrido/sistema-reservas/internal/storage"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AccountService handles registration and role management. There is no
// deletion path for accounts; role reassignment is last-writer-wins.
type AccountService struct {
	gateway storage.Gateway
	logger  *zap.Logger
	now     func() time.Time
}

func NewAccountService(gateway storage.Gateway, logger *zap.Logger) *AccountService {
	return &AccountService{
		gateway: gateway,
		logger:  logger,
		now:     time.Now,
	}
}

// Register creates a new client account. Self-registration never assigns any
// other role; admins promote accounts afterwards via ChangeRole.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*model.Account, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < 6 {
		return nil, ErrWeakPassword
	}

	accounts, err := s.gateway.LoadAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}

	for _, account := range accounts {
		if account.Email == email {
			return nil, ErrEmailTaken
		}
	}

	account := model.Account{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  password,
		Role:      model.RoleClient,
		CreatedAt: s.now(),
	}

	accounts = append(accounts, account)
	if err := s.gateway.SaveAccounts(ctx, accounts); err != nil {
		return nil, fmt.Errorf("save accounts: %w", err)
	}

	s.logger.Info("Account registered",
		zap.String("account_id", account.ID),
		zap.String("email", account.Email),
	)

	return &account, nil
}

// ChangeRole reassigns an account's role.
func (s *AccountService) ChangeRole(ctx context.Context, id string, role model.Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}

	accounts, err := s.gateway.LoadAccounts(ctx)
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}

	index := -1
	for i := range accounts {
		if accounts[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return ErrAccountNotFound
	}

	accounts[index].Role = role
	if err := s.gateway.SaveAccounts(ctx, accounts); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}

	s.logger.Info("Account role changed",
		zap.String("account_id", id),
		zap.String("role", string(role)),
	)

	return nil
}

// List returns every registered account.
func (s *AccountService) List(ctx context.Context) ([]model.Account, error) {
	return s.gateway.LoadAccounts(ctx)
}
