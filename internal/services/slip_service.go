package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"courtbook/internal/config"
	"courtbook/internal/domain/models"
	"courtbook/internal/repositories"
	"courtbook/internal/utils"
)

// SlipService renders a printable PDF slip for a booking.
type SlipService struct {
	Repo      repositories.BookingRepo
	RequestID string
	Loader    func(int64) (models.Booking, error)
}

func (s SlipService) GenerateSlip(bookingID int64) ([]byte, string, error) {
	b, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "slip", "generate", fmt.Sprintf("booking_id=%d", bookingID))
	return buildSlipPDF(b)
}

func (s SlipService) loadBooking(bookingID int64) (models.Booking, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}
	return s.repo().GetByID(bookingID)
}

func (s SlipService) repo() repositories.BookingRepo {
	if s.Repo.DB != nil {
		return s.Repo
	}
	return repositories.BookingRepo{}
}

func buildSlipPDF(b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Slip", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "COURT BOOKING SLIP")
	pdf.Ln(12)

	// the full court label is Thai text, which the core fonts cannot
	// render, so the slip prints the short alias
	alias := b.CourtAlias
	if alias == "" {
		alias = config.CourtAlias(b.Court)
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking No   : #%d", b.ID),
		fmt.Sprintf("Status       : %s", strings.ToUpper(string(b.Status))),
		fmt.Sprintf("Court        : %s", safe(alias, "-")),
		fmt.Sprintf("Submit Time  : %s", safe(b.SubmitTime, "-")),
		fmt.Sprintf("Scheduled    : %s", b.ScheduledDatetime.Format("2006-01-02 15:04")),
		fmt.Sprintf("Player 1     : %s", safe(b.P1, "-")),
		fmt.Sprintf("Player 2     : %s", safe(b.P2, "-")),
		fmt.Sprintf("Player 3     : %s", safe(b.P3, "-")),
		fmt.Sprintf("Contact      : %s", safe(b.ConfirmationEmail, "-")),
		fmt.Sprintf("Created      : %s", b.CreatedAt.Format("2006-01-02 15:04")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This slip records the scheduled form submission. The court office confirms the final assignment after the form goes through.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("SLIP_%d_%s.pdf", b.ID, safeFilenamePart(b.P1))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
