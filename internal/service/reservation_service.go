package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mgarrido/sistema-reservas/internal/model"
	"github.com/mgarrido/sistema-reservas/internal/storage"
)

// ReservationService owns the reservation lifecycle: creation validation,
// slot-conflict checking, status changes, rescheduling and derived queries.
// Every mutation is a whole-collection load-validate-save; two processes
// writing the same store concurrently can lose updates (last write wins).
type ReservationService struct {
	gateway storage.Gateway
	logger  *zap.Logger
	now     func() time.Time
}

func NewReservationService(gateway storage.Gateway, logger *zap.Logger) *ReservationService {
	return &ReservationService{
		gateway: gateway,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateRequest carries the fields a caller supplies for a new reservation.
// Date and Time must already be in canonical YYYY-MM-DD / HH:MM form.
type CreateRequest struct {
	ClientID    string
	ClientName  string
	ClientEmail string
	Service     string
	Date        string
	Time        string
	Notes       string
}

// Create validates the request and appends a new pending reservation.
func (s *ReservationService) Create(ctx context.Context, req CreateRequest) (*model.Reservation, error) {
	today := s.now().Format("2006-01-02")
	if req.Date < today {
		return nil, ErrPastDate
	}

	reservations, err := s.gateway.LoadReservations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reservations: %w", err)
	}

	if slotTaken(reservations, req.Date, req.Time, "") {
		return nil, ErrSlotConflict
	}

	reservation := model.Reservation{
		ID:          uuid.NewString(),
		ClientID:    req.ClientID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Service:     req.Service,
		Date:        req.Date,
		Time:        req.Time,
		Status:      model.StatusPending,
		Notes:       req.Notes,
		CreatedAt:   s.now(),
	}

	reservations = append(reservations, reservation)
	if err := s.gateway.SaveReservations(ctx, reservations); err != nil {
		return nil, fmt.Errorf("save reservations: %w", err)
	}

	s.logger.Info("Reservation created",
		zap.String("reservation_id", reservation.ID),
		zap.String("client_id", reservation.ClientID),
		zap.String("date", reservation.Date),
		zap.String("time", reservation.Time),
	)

	return &reservation, nil
}

// UpdateFields is a partial update: nil fields are left untouched.
type UpdateFields struct {
	Service *string
	Date    *string
	Time    *string
	Status  *model.ReservationStatus
	Notes   *string
}

// Update merges the non-nil fields into the reservation. When both Date and
// Time are being changed the slot-conflict invariant is re-checked, excluding
// the reservation itself.
func (s *ReservationService) Update(ctx context.Context, id string, fields UpdateFields) error {
	if fields.Status != nil && !fields.Status.Valid() {
		return ErrInvalidStatus
	}

	reservations, err := s.gateway.LoadReservations(ctx)
	if err != nil {
		return fmt.Errorf("load reservations: %w", err)
	}

	index := -1
	for i := range reservations {
		if reservations[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return ErrNotFound
	}

	if fields.Date != nil && fields.Time != nil {
		if slotTaken(reservations, *fields.Date, *fields.Time, id) {
			return ErrSlotConflict
		}
	}

	r := &reservations[index]
	if fields.Service != nil {
		r.Service = *fields.Service
	}
	if fields.Date != nil {
		r.Date = *fields.Date
	}
	if fields.Time != nil {
		r.Time = *fields.Time
	}
	if fields.Status != nil {
		r.Status = *fields.Status
	}
	if fields.Notes != nil {
		r.Notes = *fields.Notes
	}

	if err := s.gateway.SaveReservations(ctx, reservations); err != nil {
		return fmt.Errorf("save reservations: %w", err)
	}

	s.logger.Info("Reservation updated",
		zap.String("reservation_id", id),
		zap.String("date", r.Date),
		zap.String("time", r.Time),
		zap.String("status", string(r.Status)),
	)

	return nil
}

// ChangeStatus sets only the status. No transition table is applied: any
// status may follow any status. Cancelling releases the slot for future
// conflict checks.
func (s *ReservationService) ChangeStatus(ctx context.Context, id string, status model.ReservationStatus) error {
	return s.Update(ctx, id, UpdateFields{Status: &status})
}

// Delete removes the reservation unconditionally. Deleting an absent id is a
// no-op; removal can only free capacity, so no slot re-validation happens.
func (s *ReservationService) Delete(ctx context.Context, id string) error {
	reservations, err := s.gateway.LoadReservations(ctx)
	if err != nil {
		return fmt.Errorf("load reservations: %w", err)
	}

	filtered := reservations[:0]
	for _, r := range reservations {
		if r.ID != id {
			filtered = append(filtered, r)
		}
	}

	if err := s.gateway.SaveReservations(ctx, filtered); err != nil {
		return fmt.Errorf("save reservations: %w", err)
	}

	s.logger.Info("Reservation deleted", zap.String("reservation_id", id))

	return nil
}

// ListByDate returns the reservations for a date, ordered ascending by time.
// Zero-padded HH:MM makes plain string ordering correct.
func (s *ReservationService) ListByDate(ctx context.Context, date string) ([]model.Reservation, error) {
	reservations, err := s.gateway.LoadReservations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reservations: %w", err)
	}

	var result []model.Reservation
	for _, r := range reservations {
		if r.Date == date {
			result = append(result, r)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Time < result[j].Time
	})

	return result, nil
}

// ListByClient returns a client's reservations, newest date first.
func (s *ReservationService) ListByClient(ctx context.Context, clientID string) ([]model.Reservation, error) {
	reservations, err := s.gateway.LoadReservations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reservations: %w", err)
	}

	var result []model.Reservation
	for _, r := range reservations {
		if r.ClientID == clientID {
			result = append(result, r)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date > result[j].Date
	})

	return result, nil
}

// Stats is an aggregation over the whole collection. Total is always the sum
// of the three status counts.
type Stats struct {
	Total     int
	Pending   int
	Confirmed int
	Cancelled int
	Today     int
}

func (s *ReservationService) Stats(ctx context.Context) (Stats, error) {
	reservations, err := s.gateway.LoadReservations(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("load reservations: %w", err)
	}

	today := s.now().Format("2006-01-02")

	var stats Stats
	stats.Total = len(reservations)
	for _, r := range reservations {
		switch r.Status {
		case model.StatusPending:
			stats.Pending++
		case model.StatusConfirmed:
			stats.Confirmed++
		case model.StatusCancelled:
			stats.Cancelled++
		}
		if r.Date == today {
			stats.Today++
		}
	}

	return stats, nil
}

// AvailableSlots returns the bookable times on a date that are not held by an
// active reservation.
func (s *ReservationService) AvailableSlots(ctx context.Context, date string) ([]string, error) {
	reservations, err := s.gateway.LoadReservations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reservations: %w", err)
	}

	var free []string
	for _, slot := range model.TimeSlots {
		if !slotTaken(reservations, date, slot, "") {
			free = append(free, slot)
		}
	}

	return free, nil
}

// slotTaken reports whether another active reservation already holds the
// (date, time) pair. excludeID skips the reservation being updated so a
// record can keep its own slot.
func slotTaken(reservations []model.Reservation, date, timeSlot, excludeID string) bool {
	for _, r := range reservations {
		if r.Date == date && r.Time == timeSlot && r.Active() && r.ID != excludeID {
			return true
		}
	}
	return false
}
