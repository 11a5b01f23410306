// Package postgres persists the gateway collections in a single key/value
// table: one JSONB row per collection, replaced whole on every save.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mgarrido/sistema-reservas/internal/model"
	"github.com/mgarrido/sistema-reservas/internal/storage"
)

type Gateway struct {
	pool *pgxpool.Pool
}

var _ storage.Gateway = (*Gateway)(nil)

func NewGateway(pool *pgxpool.Pool) *Gateway {
	return &Gateway{pool: pool}
}

// loadValue reads the raw stored bytes for name. Absent rows return nil with
// no error.
func (g *Gateway) loadValue(ctx context.Context, name string) ([]byte, error) {
	query := `
		SELECT data
		FROM collections
		WHERE name = $1
	`

	var data []byte
	err := g.pool.QueryRow(ctx, query, name).Scan(&data)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("load collection %s: %w", name, err)
	}

	return data, nil
}

// saveValue replaces the stored bytes for name in a single statement.
func (g *Gateway) saveValue(ctx context.Context, name string, data []byte) error {
	query := `
		INSERT INTO collections (name, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET data = EXCLUDED.data, updated_at = now()
	`

	if _, err := g.pool.Exec(ctx, query, name, data); err != nil {
		return fmt.Errorf("save collection %s: %w", name, err)
	}

	return nil
}

func (g *Gateway) loadCollection(ctx context.Context, name string, dest any) error {
	data, err := g.loadValue(ctx, name)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode collection %s: %w: %v", name, storage.ErrCorrupt, err)
	}

	return nil
}

func (g *Gateway) saveCollection(ctx context.Context, name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", name, err)
	}

	return g.saveValue(ctx, name, data)
}

func (g *Gateway) LoadAccounts(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	if err := g.loadCollection(ctx, storage.CollectionAccounts, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (g *Gateway) SaveAccounts(ctx context.Context, accounts []model.Account) error {
	return g.saveCollection(ctx, storage.CollectionAccounts, accounts)
}

func (g *Gateway) LoadReservations(ctx context.Context) ([]model.Reservation, error) {
	var reservations []model.Reservation
	if err := g.loadCollection(ctx, storage.CollectionReservations, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

func (g *Gateway) SaveReservations(ctx context.Context, reservations []model.Reservation) error {
	return g.saveCollection(ctx, storage.CollectionReservations, reservations)
}

func (g *Gateway) LoadSession(ctx context.Context) (*model.Session, error) {
	data, err := g.loadValue(ctx, storage.CollectionSession)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w: %v", storage.ErrCorrupt, err)
	}

	return &session, nil
}

func (g *Gateway) SaveSession(ctx context.Context, session model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return g.saveValue(ctx, storage.CollectionSession, data)
}

func (g *Gateway) ClearSession(ctx context.Context) error {
	query := `DELETE FROM collections WHERE name = $1`

	if _, err := g.pool.Exec(ctx, query, storage.CollectionSession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	return nil
}
