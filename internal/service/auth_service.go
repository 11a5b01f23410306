package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mgarrido/sistema-reservas/internal/model"
	"github.com/mgarrido/sistema-reservas/internal/storage"
)

// AuthService manages login, logout and the persisted session marker. At most
// one account is "current" at a time; a new login overwrites the marker.
type AuthService struct {
	gateway storage.Gateway
	logger  *zap.Logger
}

func NewAuthService(gateway storage.Gateway, logger *zap.Logger) *AuthService {
	return &AuthService{
		gateway: gateway,
		logger:  logger,
	}
}

// Login verifies the credentials and persists a password-stripped session
// marker for the matching account.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Session, error) {
	accounts, err := s.gateway.LoadAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}

	for _, account := range accounts {
		if !credentialsMatch(account, email, password) {
			continue
		}

		session := account.Session()
		if err := s.gateway.SaveSession(ctx, session); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}

		s.logger.Info("Account logged in",
			zap.String("account_id", account.ID),
			zap.String("role", string(account.Role)),
		)

		return &session, nil
	}

	return nil, ErrInvalidCredentials
}

// Current returns the logged-in account marker, or nil when logged out.
func (s *AuthService) Current(ctx context.Context) (*model.Session, error) {
	return s.gateway.LoadSession(ctx)
}

// Logout clears the session marker. Logging out while logged out is a no-op.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.gateway.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.logger.Info("Session closed")

	return nil
}

// credentialsMatch is the single place passwords are compared. The store
// keeps them in plain text, as the system being replaced did; substituting a
// hashing scheme only requires changing this function.
func credentialsMatch(account model.Account, email, password string) bool {
	return account.Email == email && account.Password == password
}
