// Package storage defines the persistence gateway the services are built
// against: three named collections (accounts, reservations, session marker)
// loaded and replaced as whole values. Implementations do not validate record
// shape; that is the services' job.
package storage

import (
	"context"
	"errors"

	"github.com/mgarrido/sistema-reservas/internal/model"
)

// Collection names shared by all gateway implementations.
const (
	CollectionAccounts     = "accounts"
	CollectionReservations = "reservations"
	CollectionSession      = "session"
)

// ErrCorrupt is returned when a stored value cannot be deserialized. It means
// the durability layer itself is untrustworthy and should be treated as fatal
// for the session.
var ErrCorrupt = errors.New("stored collection data is corrupt")

// Gateway is the typed persistence contract. Collection loads return an empty
// slice when the collection is absent; saves replace the whole collection in
// a single synchronous write. LoadSession returns nil when nobody is logged
// in.
type Gateway interface {
	LoadAccounts(ctx context.Context) ([]model.Account, error)
	SaveAccounts(ctx context.Context, accounts []model.Account) error

	LoadReservations(ctx context.Context) ([]model.Reservation, error)
	SaveReservations(ctx context.Context, reservations []model.Reservation) error

	LoadSession(ctx context.Context) (*model.Session, error)
	SaveSession(ctx context.Context, session model.Session) error
	ClearSession(ctx context.Context) error
}
