package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mgarrido/sistema-reservas/internal/model"
	"github.com/mgarrido/sistema-reservas/internal/storage"
)

// Seeder writes the demo accounts and sample reservations on first run.
// Collections that already hold records are left alone.
type Seeder struct {
	gateway storage.Gateway
	logger  *zap.Logger
	now     func() time.Time
}

func NewSeeder(gateway storage.Gateway, logger *zap.Logger) *Seeder {
	return &Seeder{
		gateway: gateway,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedAccounts(ctx); err != nil {
		return err
	}
	return s.seedReservations(ctx)
}

func (s *Seeder) seedAccounts(ctx context.Context) error {
	accounts, err := s.gateway.LoadAccounts(ctx)
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}
	if len(accounts) > 0 {
		return nil
	}

	now := s.now()
	defaults := []model.Account{
		{
			ID:        "1",
			Name:      "Administrador",
			Email:     "admin@empresa.com",
			Password:  "admin123",
			Role:      model.RoleAdmin,
			CreatedAt: now,
		},
		{
			ID:        "2",
			Name:      "Operador",
			Email:     "operador@empresa.com",
			Password:  "operador123",
			Role:      model.RoleOperator,
			CreatedAt: now,
		},
		{
			ID:        "3",
			Name:      "Cliente Demo",
			Email:     "cliente@email.com",
			Password:  "cliente123",
			Role:      model.RoleClient,
			CreatedAt: now,
		},
	}

	if err := s.gateway.SaveAccounts(ctx, defaults); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}

	s.logger.Info("Default accounts seeded", zap.Int("count", len(defaults)))

	return nil
}

func (s *Seeder) seedReservations(ctx context.Context) error {
	reservations, err := s.gateway.LoadReservations(ctx)
	if err != nil {
		return fmt.Errorf("load reservations: %w", err)
	}
	if len(reservations) > 0 {
		return nil
	}

	now := s.now()
	today := now.Format("2006-01-02")
	samples := []model.Reservation{
		{
			ID:          "101",
			ClientID:    "3",
			ClientName:  "Cliente Demo",
			ClientEmail: "cliente@email.com",
			Service:     "Consulta General",
			Date:        today,
			Time:        "10:00",
			Status:      model.StatusConfirmed,
			Notes:       "Primera consulta",
			CreatedAt:   now,
		},
		{
			ID:          "102",
			ClientID:    "3",
			ClientName:  "Cliente Demo",
			ClientEmail: "cliente@email.com",
			Service:     "Mantenimiento",
			Date:        today,
			Time:        "11:30",
			Status:      model.StatusPending,
			Notes:       "Revisión programada",
			CreatedAt:   now,
		},
	}

	if err := s.gateway.SaveReservations(ctx, samples); err != nil {
		return fmt.Errorf("save reservations: %w", err)
	}

	s.logger.Info("Sample reservations seeded",
		zap.Int("count", len(samples)),
		zap.String("date", today),
	)

	return nil
}
