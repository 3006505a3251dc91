package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"courtbook/internal/domain"
	"courtbook/internal/domain/models"
)

func TestSlipServiceGenerate(t *testing.T) {
	loader := func(id int64) (models.Booking, error) {
		return models.Booking{
			ID:                id,
			P1:                "Somchai J",
			P2:                "Anan",
			P3:                "Preeda",
			Court:             "court-2",
			CourtAlias:        "Court 2",
			SubmitTime:        "13:00",
			ScheduledDatetime: time.Date(2026, 8, 22, 13, 0, 0, 0, time.UTC),
			ConfirmationEmail: "somchai@example.com",
			CreatedAt:         time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC),
			Status:            domain.StatusConfirmed,
		}, nil
	}

	svc := SlipService{Loader: loader}

	pdf, filename, err := svc.GenerateSlip(9)
	if err != nil {
		t.Fatalf("GenerateSlip returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("GenerateSlip returned empty data")
	}
	if filename != "SLIP_9_Somchai_J.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestSlipServiceUnknownBooking(t *testing.T) {
	svc := SlipService{Loader: func(id int64) (models.Booking, error) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}}

	if _, _, err := svc.GenerateSlip(404); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestSlipServiceLoaderError(t *testing.T) {
	svc := SlipService{Loader: func(id int64) (models.Booking, error) {
		return models.Booking{}, errors.New("db gone")
	}}

	if _, _, err := svc.GenerateSlip(1); err == nil {
		t.Fatalf("expected loader error to propagate")
	}
}

func TestSafeFilenamePart(t *testing.T) {
	if got := safeFilenamePart("a b/c"); got != "a_b_c" {
		t.Fatalf("unexpected sanitized name %q", got)
	}
	if got := safeFilenamePart("   "); got != "NA" {
		t.Fatalf("expected NA for blank input, got %q", got)
	}
	long := strings.Repeat("x", 60)
	if got := safeFilenamePart(long); len(got) != 40 {
		t.Fatalf("expected 40-char cap, got %d", len(got))
	}
}
