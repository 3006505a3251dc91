package models

import (
	"time"

	"courtbook/internal/domain"
)

// Booking is one scheduled court reservation and the row shape persisted in
// the bookings table. BookingName and BookingEmail are derived at creation
// (first player + contact email) and kept for display.
type Booking struct {
	ID                int64         `json:"id"`
	P1                string        `json:"p1"`
	P2                string        `json:"p2"`
	P3                string        `json:"p3"`
	Court             string        `json:"court"`
	CourtAlias        string        `json:"court_alias,omitempty"`
	SubmitTime        string        `json:"submit_time"`
	ScheduledDatetime time.Time     `json:"scheduled_datetime"`
	ConfirmationEmail string        `json:"confirmation_email,omitempty"`
	Phone             string        `json:"phone,omitempty"`
	StudentID         string        `json:"student_id,omitempty"`
	BookingName       string        `json:"booking_name,omitempty"`
	BookingEmail      string        `json:"booking_email,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	Status            domain.Status `json:"status"`
}

// BookingInput carries the fields a caller supplies when creating a booking.
type BookingInput struct {
	P1                string `json:"p1"`
	P2                string `json:"p2"`
	P3                string `json:"p3"`
	Court             string `json:"court"`
	SubmitTime        string `json:"submit_time"`
	ConfirmationEmail string `json:"confirmation_email"`
	Phone             string `json:"phone"`
	StudentID         string `json:"student_id"`
}
