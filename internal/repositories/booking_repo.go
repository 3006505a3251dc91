package repositories

import (
	"database/sql"
	"errors"
	"time"

	intconfig "courtbook/internal/config"
	"courtbook/internal/domain"
	"courtbook/internal/domain/models"
)

const bookingColumns = `
	id, p1, p2, p3, court, submit_time, scheduled_datetime,
	COALESCE(confirmation_email,''), COALESCE(phone,''), COALESCE(student_id,''),
	COALESCE(booking_name,''), COALESCE(booking_email,''),
	created_at, status`

type BookingRepo struct {
	DB *sql.DB
}

func (r BookingRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.P1, &b.P2, &b.P3, &b.Court,
		&b.SubmitTime, &b.ScheduledDatetime,
		&b.ConfirmationEmail, &b.Phone, &b.StudentID,
		&b.BookingName, &b.BookingEmail,
		&b.CreatedAt, &b.Status,
	)
	return b, err
}

// Create inserts a new booking row and returns it with the assigned id.
// Status defaults to pending, created_at to now.
func (r BookingRepo) Create(b models.Booking) (models.Booking, error) {
	if b.Status == "" {
		b.Status = domain.StatusPending
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	if b.ConfirmationEmail != "" {
		b.BookingName = b.P1
		b.BookingEmail = b.ConfirmationEmail
	}

	res, err := r.db().Exec(`
		INSERT INTO bookings
			(p1, p2, p3, court, submit_time, scheduled_datetime,
			 confirmation_email, phone, student_id, booking_name, booking_email,
			 created_at, status)
		VALUES (?, ?, ?, ?, ?, ?, NULLIF(?,''), NULLIF(?,''), NULLIF(?,''), NULLIF(?,''), NULLIF(?,''), ?, ?)`,
		b.P1, b.P2, b.P3, b.Court, b.SubmitTime, b.ScheduledDatetime,
		b.ConfirmationEmail, b.Phone, b.StudentID, b.BookingName, b.BookingEmail,
		b.CreatedAt, b.Status,
	)
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to create booking", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to read booking id", Err: err}
	}
	b.ID = id
	return b, nil
}

// GetByID loads a single booking row.
func (r BookingRepo) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	b, err := scanBooking(r.db().QueryRow(
		`SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, domain.InternalError{Msg: "failed to load booking", Err: err}
	}
	return b, nil
}

// List returns all bookings, oldest first.
func (r BookingRepo) List() ([]models.Booking, error) {
	rows, err := r.db().Query(`SELECT ` + bookingColumns + ` FROM bookings ORDER BY id`)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list bookings", Err: err}
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, domain.InternalError{Msg: "failed to scan booking", Err: err}
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "failed to read bookings", Err: err}
	}
	return out, nil
}

// Count returns the number of stored bookings.
func (r BookingRepo) Count() (int, error) {
	var n int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM bookings`).Scan(&n); err != nil {
		return 0, domain.InternalError{Msg: "failed to count bookings", Err: err}
	}
	return n, nil
}

// UpdateStatus sets the status of one booking.
func (r BookingRepo) UpdateStatus(id int64, status domain.Status) error {
	res, err := r.db().Exec(`UPDATE bookings SET status=? WHERE id=?`, status, id)
	if err != nil {
		return domain.InternalError{Msg: "failed to update booking status", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var cur domain.Status
		scanErr := r.db().QueryRow(`SELECT status FROM bookings WHERE id=? LIMIT 1`, id).Scan(&cur)
		if errors.Is(scanErr, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "booking"}
		}
	}
	return nil
}

// HasRecentDuplicate reports whether a non-cancelled booking with the same
// three players and court was created after the given cutoff.
func (r BookingRepo) HasRecentDuplicate(p1, p2, p3, court string, since time.Time) (bool, error) {
	var n int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM bookings
		WHERE p1=? AND p2=? AND p3=? AND court=?
		  AND status <> ? AND created_at > ?`,
		p1, p2, p3, court, domain.StatusCancelled, since,
	).Scan(&n)
	if err != nil {
		return false, domain.InternalError{Msg: "failed to check duplicates", Err: err}
	}
	return n > 0, nil
}

// DeleteOlderThan removes bookings created before the cutoff, regardless of
// status, and returns how many rows went away.
func (r BookingRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res, err := r.db().Exec(`DELETE FROM bookings WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, domain.InternalError{Msg: "failed to purge old bookings", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return n, nil
}
