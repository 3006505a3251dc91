package repositories

import (
	"testing"
	"time"

	"courtbook/internal/domain"
	"courtbook/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var bookingRows = []string{
	"id", "p1", "p2", "p3", "court", "submit_time", "scheduled_datetime",
	"confirmation_email", "phone", "student_id", "booking_name", "booking_email",
	"created_at", "status",
}

func TestBookingRepoCreateFillsDefaults(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(7, 1))

	repo := BookingRepo{DB: db}
	in := models.Booking{
		P1: "Anan", P2: "Beam", P3: "Chai",
		Court:             "3",
		SubmitTime:        "13:00",
		ScheduledDatetime: time.Date(2026, 8, 21, 13, 0, 0, 0, time.UTC),
		ConfirmationEmail: "anan@example.com",
	}
	out, err := repo.Create(in)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if out.ID != 7 {
		t.Fatalf("expected id 7, got %d", out.ID)
	}
	if out.Status != domain.StatusPending {
		t.Fatalf("expected pending status, got %s", out.Status)
	}
	if out.BookingName != "Anan" || out.BookingEmail != "anan@example.com" {
		t.Fatalf("derived contact fields wrong: %q %q", out.BookingName, out.BookingEmail)
	}
	if out.CreatedAt.IsZero() {
		t.Fatalf("created_at not set")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=").WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(bookingRows))

	repo := BookingRepo{DB: db}
	if _, err := repo.GetByID(42); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestBookingRepoGetByIDRejectsNonPositive(t *testing.T) {
	repo := BookingRepo{}
	if _, err := repo.GetByID(0); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found for id 0, got %v", err)
	}
}

func TestBookingRepoListScansRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows(bookingRows).
		AddRow(1, "A", "B", "C", "1", "13:00", now, "", "", "", "", "", now, "pending").
		AddRow(2, "D", "E", "F", "5", "08:45", now, "d@e.f", "0811", "650001", "D", "d@e.f", now, "confirmed")
	mock.ExpectQuery("SELECT (.+) FROM bookings ORDER BY id").WillReturnRows(rows)

	repo := BookingRepo{DB: db}
	list, err := repo.List()
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(list))
	}
	if list[1].Status != domain.StatusConfirmed {
		t.Fatalf("expected confirmed, got %s", list[1].Status)
	}
	if list[1].Phone != "0811" {
		t.Fatalf("phone not scanned, got %q", list[1].Phone)
	}
}

func TestBookingRepoUpdateStatusUnknownID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT status FROM bookings").WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))

	repo := BookingRepo{DB: db}
	if err := repo.UpdateStatus(99, domain.StatusCancelled); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestBookingRepoUpdateStatusNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// zero rows affected but the row exists (status already equal)
	mock.ExpectExec("UPDATE bookings SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT status FROM bookings").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("cancelled"))

	repo := BookingRepo{DB: db}
	if err := repo.UpdateStatus(3, domain.StatusCancelled); err != nil {
		t.Fatalf("expected nil for same-status update, got %v", err)
	}
}

func TestBookingRepoHasRecentDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"cnt"}).AddRow(1))

	repo := BookingRepo{DB: db}
	dup, err := repo.HasRecentDuplicate("A", "B", "C", "1", time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("duplicate check error: %v", err)
	}
	if !dup {
		t.Fatalf("expected duplicate to be reported")
	}
}

func TestBookingRepoDeleteOlderThan(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM bookings WHERE created_at").
		WillReturnResult(sqlmock.NewResult(0, 3))

	repo := BookingRepo{DB: db}
	n, err := repo.DeleteOlderThan(time.Now().AddDate(0, 0, -5))
	if err != nil {
		t.Fatalf("purge error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 purged rows, got %d", n)
	}
}
