package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dental-portal/internal/model"
	"dental-portal/internal/repository"
)

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			user_id, appointment_date, appointment_time,
			appointment_type, created_at
		) VALUES (?, ?, ?, ?, ?)
	`
	apt.CreatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		apt.UserID,
		apt.Date,
		apt.Time,
		apt.Type,
		apt.CreatedAt,
	)
	if err != nil {
		if uniqueViolation(err, "appointments.appointment_date") {
			return repository.ErrSlotTaken
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get appointment id: %w", err)
	}
	apt.ID = id

	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `
		SELECT id, user_id, appointment_date, appointment_time,
			   appointment_type, created_at
		FROM appointments
		WHERE id = ?
	`
	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) ListUpcomingForUser(ctx context.Context, userID int64, fromDate string) ([]*model.Appointment, error) {
	query := `
		SELECT id, user_id, appointment_date, appointment_time,
			   appointment_type, created_at
		FROM appointments
		WHERE user_id = ? AND appointment_date >= ?
		ORDER BY appointment_date ASC, appointment_time ASC
	`
	appointments := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query, userID, fromDate); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) SlotTaken(ctx context.Context, date, timeOfDay string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE appointment_date = ? AND appointment_time = ?
		)
	`
	var taken bool
	if err := r.db.GetContext(ctx, &taken, query, date, timeOfDay); err != nil {
		return false, fmt.Errorf("failed to check slot: %w", err)
	}
	return taken, nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM appointments
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}
