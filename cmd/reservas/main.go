package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/mgarrido/sistema-reservas/internal/app"
	"github.com/mgarrido/sistema-reservas/internal/config"
	"github.com/mgarrido/sistema-reservas/internal/service"
	"github.com/mgarrido/sistema-reservas/internal/storage/postgres"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	gateway := postgres.NewGateway(pool)

	if err := app.NewSeeder(gateway, logger).Run(ctx); err != nil {
		logger.Fatal("Failed to seed store", zap.Error(err))
	}

	reservations := service.NewReservationService(gateway, logger)

	stats, err := reservations.Stats(ctx)
	if err != nil {
		logger.Fatal("Failed to compute statistics", zap.Error(err))
	}

	logger.Info("Reservation store ready",
		zap.String("environment", cfg.Environment),
		zap.Int("total", stats.Total),
		zap.Int("pending", stats.Pending),
		zap.Int("confirmed", stats.Confirmed),
		zap.Int("cancelled", stats.Cancelled),
		zap.Int("today", stats.Today),
	)
}
