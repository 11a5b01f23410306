package service

import "errors"

var (
	ErrPastDate           = errors.New("reservation date must be today or later")
	ErrSlotConflict       = errors.New("time slot is not available")
	ErrNotFound           = errors.New("reservation not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("all fields are required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidRole        = errors.New("unknown role")
	ErrInvalidStatus      = errors.New("unknown reservation status")
)
