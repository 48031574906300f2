package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dental-portal/internal/model"
	"dental-portal/internal/repository"
)

var (
	ErrMissingField  = errors.New("all fields are required")
	ErrInvalidFormat = errors.New("invalid date or time format")
	ErrPastDate      = errors.New("cannot book an appointment in the past")
	ErrSlotTaken     = errors.New("that date and time is already booked")
	ErrNotFound      = errors.New("appointment not found or not yours")
)

type Service struct {
	repo repository.AppointmentRepository
}

func NewService(repo repository.AppointmentRepository) *Service {
	return &Service{repo: repo}
}

// ListUpcoming returns the user's appointments from today onward, soonest
// first. The ordering carries the dashboard's "next appointment first"
// semantics.
func (s *Service) ListUpcoming(ctx context.Context, userID int64) ([]*model.Appointment, error) {
	today := time.Now().Format(model.DateLayout)

	appointments, err := s.repo.ListUpcomingForUser(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// Book validates and persists a new appointment for userID. Validation
// short-circuits: missing field, then format, then past date, then slot
// availability. The store's UNIQUE (date, time) index backs the availability
// check, so a concurrent booking that wins the race still surfaces as
// ErrSlotTaken rather than a duplicate row.
func (s *Service) Book(ctx context.Context, userID int64, date, timeOfDay, aptType string) (*model.Appointment, error) {
	if date == "" || timeOfDay == "" || aptType == "" {
		return nil, ErrMissingField
	}

	slot, err := time.ParseInLocation(model.SlotLayout, date+" "+timeOfDay, time.Local)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	if slot.Before(time.Now()) {
		return nil, ErrPastDate
	}

	taken, err := s.repo.SlotTaken(ctx, date, timeOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to check slot: %w", err)
	}
	if taken {
		return nil, ErrSlotTaken
	}

	apt := &model.Appointment{
		UserID: userID,
		Date:   date,
		Time:   timeOfDay,
		Type:   aptType,
	}
	if err := s.repo.Create(ctx, apt); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	return apt, nil
}

// Cancel deletes the appointment permanently. A missing appointment and one
// owned by a different account both return ErrNotFound, so a caller cannot
// probe for other users' bookings.
func (s *Service) Cancel(ctx context.Context, userID, appointmentID int64) error {
	apt, err := s.repo.Get(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get appointment: %w", err)
	}

	if apt.UserID != userID {
		return ErrNotFound
	}

	if err := s.repo.Delete(ctx, appointmentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	return nil
}
