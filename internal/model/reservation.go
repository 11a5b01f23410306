package model

import "time"

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"   // initial state for every new reservation
	StatusConfirmed ReservationStatus = "confirmed" // approved by an operator or admin
	StatusCancelled ReservationStatus = "cancelled" // cancelled; releases its slot
)

// Valid reports whether s is one of the known statuses.
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Reservation is a booking of a single date/time slot. Client identity is a
// snapshot taken at creation time, not a live reference to the account.
type Reservation struct {
	ID          string            `json:"id"`
	ClientID    string            `json:"clientId"`
	ClientName  string            `json:"clientName"`
	ClientEmail string            `json:"clientEmail"`
	Service     string            `json:"service"`
	Date        string            `json:"date"` // YYYY-MM-DD
	Time        string            `json:"time"` // HH:MM, zero-padded 24h
	Status      ReservationStatus `json:"status"`
	Notes       string            `json:"notes,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// Active reports whether the reservation currently holds its slot.
func (r Reservation) Active() bool {
	return r.Status != StatusCancelled
}

// TimeSlots is the fixed set of bookable times, ordered ascending.
var TimeSlots = []string{
	"09:00", "10:00", "11:00", "12:00", "13:00",
	"14:00", "15:00", "16:00", "17:00", "18:00",
}

// ValidTimeSlot reports whether t is one of the bookable times.
func ValidTimeSlot(t string) bool {
	for _, slot := range TimeSlots {
		if slot == t {
			return true
		}
	}
	return false
}
