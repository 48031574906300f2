package model

import "time"

// Date and time are stored as the raw form strings; the pair (Date, Time) is
// unique across all accounts because the clinic has a single chair.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
	SlotLayout = "2006-01-02 15:04"
)

type Appointment struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Date      string    `db:"appointment_date" json:"date"`
	Time      string    `db:"appointment_time" json:"time"`
	Type      string    `db:"appointment_type" json:"type"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type BookAppointmentRequest struct {
	Date string `form:"appointment_date" json:"date"`
	Time string `form:"appointment_time" json:"time"`
	Type string `form:"appointment_type" json:"type"`
}
