// Package memory is an in-memory gateway used by tests and ephemeral runs.
// Values are held serialized, like the real storage medium, so corrupt data
// behaves the same way here as in postgres.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mgarrido/sistema-reservas/internal/model"
	"github.com/mgarrido/sistema-reservas/internal/storage"
)

type Gateway struct {
	mu     sync.Mutex
	values map[string][]byte
}

var _ storage.Gateway = (*Gateway)(nil)

func NewGateway() *Gateway {
	return &Gateway{values: make(map[string][]byte)}
}

// SetRaw stores raw bytes under name, bypassing serialization. Tests use it
// to inject malformed data.
func (g *Gateway) SetRaw(name string, data []byte) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.values[name] = data
}

func (g *Gateway) load(name string, dest any) error {
	g.mu.Lock()
	data, ok := g.values[name]
	g.mu.Unlock()

	if !ok {
		return nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode collection %s: %w: %v", name, storage.ErrCorrupt, err)
	}

	return nil
}

func (g *Gateway) save(name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", name, err)
	}

	g.mu.Lock()
	g.values[name] = data
	g.mu.Unlock()

	return nil
}

func (g *Gateway) LoadAccounts(_ context.Context) ([]model.Account, error) {
	var accounts []model.Account
	if err := g.load(storage.CollectionAccounts, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (g *Gateway) SaveAccounts(_ context.Context, accounts []model.Account) error {
	return g.save(storage.CollectionAccounts, accounts)
}

func (g *Gateway) LoadReservations(_ context.Context) ([]model.Reservation, error) {
	var reservations []model.Reservation
	if err := g.load(storage.CollectionReservations, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

func (g *Gateway) SaveReservations(_ context.Context, reservations []model.Reservation) error {
	return g.save(storage.CollectionReservations, reservations)
}

func (g *Gateway) LoadSession(_ context.Context) (*model.Session, error) {
	g.mu.Lock()
	data, ok := g.values[storage.CollectionSession]
	g.mu.Unlock()

	if !ok {
		return nil, nil
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w: %v", storage.ErrCorrupt, err)
	}

	return &session, nil
}

func (g *Gateway) SaveSession(_ context.Context, session model.Session) error {
	return g.save(storage.CollectionSession, session)
}

func (g *Gateway) ClearSession(_ context.Context) error {
	g.mu.Lock()
	delete(g.values, storage.CollectionSession)
	g.mu.Unlock()
	return nil
}
