package handlers

import (
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	intconfig "courtbook/internal/config"
	"courtbook/internal/domain"
	"courtbook/internal/domain/models"
	"courtbook/internal/http/middleware"
	"courtbook/internal/notify"
	"courtbook/internal/scheduler"
	"courtbook/internal/utils"

	"github.com/gin-gonic/gin"
)

const maxPlayerNameLen = 100

// POST /api/book
func CreateBooking(c *gin.Context) {
	d := getDeps()
	reqID := middleware.GetRequestID(c)

	var req models.BookingInput
	if !BindJSONOrError(c, &req) {
		return
	}

	p1 := utils.SanitizeName(req.P1)
	p2 := utils.SanitizeName(req.P2)
	p3 := utils.SanitizeName(req.P3)
	email := utils.SanitizeName(req.ConfirmationEmail)
	phone := utils.TrimOrEmpty(req.Phone)
	studentID := utils.TrimOrEmpty(req.StudentID)

	for _, name := range []string{p1, p2, p3} {
		if n := utf8.RuneCountInString(name); n < 1 || n > maxPlayerNameLen {
			RespondDomainError(c, domain.ValidationError{Msg: "player names must be between 1 and 100 characters"})
			return
		}
	}
	if email != "" && (phone == "" || studentID == "") {
		RespondDomainError(c, domain.ValidationError{Msg: "confirmation email requires phone and student id"})
		return
	}

	submitTime := utils.TrimOrEmpty(req.SubmitTime)
	if submitTime == "" {
		submitTime = d.Env.DefaultSubmitTime
	}
	hour, minute, err := utils.ParseClock(submitTime)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "submit_time", Msg: "invalid time format, use HH:MM (24h)", Err: err})
		return
	}

	court, ok := intconfig.ResolveCourt(utils.TrimOrEmpty(req.Court))
	if !ok {
		RespondDomainError(c, domain.ValidationError{Field: "court", Msg: "unknown court selection"})
		return
	}

	now := d.now()
	target := scheduler.NextOccurrence(now, hour, minute)

	dup, err := d.Repo.HasRecentDuplicate(p1, p2, p3, court.ID, now.Add(-24*time.Hour))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if dup {
		RespondDomainError(c, domain.ValidationError{Msg: "Duplicate booking detected for these players and court."})
		return
	}

	b, err := d.Repo.Create(models.Booking{
		P1:                p1,
		P2:                p2,
		P3:                p3,
		Court:             court.ID,
		SubmitTime:        utils.FormatClock(hour, minute),
		ScheduledDatetime: target,
		ConfirmationEmail: email,
		Phone:             phone,
		StudentID:         studentID,
		CreatedAt:         now,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	code, err := d.Codes.Generate(b.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	// a pending booking survives even when every channel is down, the
	// code can be re-requested later
	if err := d.Notifier.SendOTP(reqID, notify.OTPMessage{
		BookingID:   b.ID,
		PlayerName:  b.P1,
		Code:        code,
		Kind:        notify.KindConfirmation,
		CourtAlias:  court.Alias,
		BookingTime: target,
	}); err != nil {
		utils.LogEvent(reqID, "bookings", "create",
			fmt.Sprintf("confirmation code delivery failed for booking %d: %v", b.ID, err))
	}

	b.CourtAlias = court.Alias
	d.Hub.BroadcastNewBooking(b)

	utils.LogEvent(reqID, "bookings", "create",
		fmt.Sprintf("booking %d scheduled for %s", b.ID, target.Format("2006-01-02 15:04")))

	c.JSON(http.StatusOK, gin.H{
		"status":          "pending",
		"message":         fmt.Sprintf("Booking scheduled for %s (pending confirmation)", target.Format("2006-01-02 15:04")),
		"booking":         b,
		"total_scheduled": countBookings(d, reqID),
	})
}

// GET /api/bookings
func ListBookings(c *gin.Context) {
	d := getDeps()

	list, err := d.Repo.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	out := make([]models.Booking, 0, len(list))
	for _, b := range list {
		b.CourtAlias = intconfig.CourtAlias(b.Court)
		out = append(out, b)
	}
	c.JSON(http.StatusOK, gin.H{"total": len(out), "bookings": out})
}

func countBookings(d Deps, reqID string) int {
	total, err := d.Repo.Count()
	if err != nil {
		utils.LogEvent(reqID, "bookings", "count", fmt.Sprintf("count query failed: %v", err))
		return 0
	}
	return total
}
