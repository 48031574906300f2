package repository

import (
	"context"
	"errors"

	"dental-portal/internal/model"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")

	// Constraint-backed uniqueness. The store enforces these with UNIQUE
	// indexes, so a concurrent check-then-insert still fails cleanly.
	ErrUsernameExists = errors.New("username already registered")
	ErrEmailExists    = errors.New("email already registered")
	ErrSlotTaken      = errors.New("slot already booked")
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, apt *model.Appointment) error
	Get(ctx context.Context, id int64) (*model.Appointment, error)
	// ListUpcomingForUser returns the user's appointments whose date is
	// fromDate or later, ordered ascending by (date, time).
	ListUpcomingForUser(ctx context.Context, userID int64, fromDate string) ([]*model.Appointment, error)
	SlotTaken(ctx context.Context, date, timeOfDay string) (bool, error)
	Delete(ctx context.Context, id int64) error
}
