package handlers

import (
	"fmt"
	"net/http"

	intconfig "courtbook/internal/config"
	"courtbook/internal/domain"
	"courtbook/internal/http/middleware"
	"courtbook/internal/notify"
	"courtbook/internal/scheduler"
	"courtbook/internal/utils"

	"github.com/gin-gonic/gin"
)

type confirmRequest struct {
	BookingID        int64  `json:"booking_id"`
	ConfirmationCode string `json:"confirmation_code"`
}

type codeRequest struct {
	BookingID int64 `json:"booking_id"`
}

// POST /api/confirm-booking
func ConfirmBooking(c *gin.Context) {
	d := getDeps()
	reqID := middleware.GetRequestID(c)

	var req confirmRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	b, err := d.Repo.GetByID(req.BookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !domain.CanTransition(b.Status, domain.StatusConfirmed) {
		RespondDomainError(c, domain.ValidationError{
			Msg: fmt.Sprintf("Booking is not pending confirmation (current status: %s)", b.Status),
		})
		return
	}

	if !d.Codes.Verify(req.BookingID, utils.TrimOrEmpty(req.ConfirmationCode)) {
		RespondDomainError(c, domain.AuthError{Msg: "Invalid or expired confirmation code"})
		return
	}

	if err := d.Repo.UpdateStatus(req.BookingID, domain.StatusConfirmed); err != nil {
		RespondDomainError(c, err)
		return
	}
	confirmed, err := d.Repo.GetByID(req.BookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	hour, minute, err := utils.ParseClock(confirmed.SubmitTime)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "booking carries an invalid submit time", Err: err})
		return
	}
	court, ok := intconfig.ResolveCourt(confirmed.Court)
	if !ok {
		RespondDomainError(c, domain.InternalError{Msg: "booking references a court that is no longer configured"})
		return
	}

	// the target is re-resolved at confirmation time, a booking confirmed
	// after its minute passed rolls to tomorrow
	target := scheduler.NextOccurrence(d.now(), hour, minute)
	if !d.Tasks.Register(confirmed.ID, target, scheduler.Payload{
		BookingID:         confirmed.ID,
		P1:                confirmed.P1,
		P2:                confirmed.P2,
		P3:                confirmed.P3,
		CourtName:         court.Name,
		ConfirmationEmail: confirmed.ConfirmationEmail,
	}) {
		utils.LogEvent(reqID, "bookings", "confirm",
			fmt.Sprintf("submission task for booking %d already registered", confirmed.ID))
	}

	confirmed.CourtAlias = court.Alias
	d.Hub.BroadcastStatusUpdate(confirmed.ID, domain.StatusConfirmed)

	utils.LogEvent(reqID, "bookings", "confirm",
		fmt.Sprintf("booking %d confirmed, submission at %s", confirmed.ID, target.Format("2006-01-02 15:04")))

	c.JSON(http.StatusOK, gin.H{
		"status":          "confirmed",
		"message":         fmt.Sprintf("Booking %d has been confirmed and submission scheduled.", confirmed.ID),
		"booking":         confirmed,
		"total_scheduled": countBookings(d, reqID),
	})
}

// POST /api/request-confirm-code
func RequestConfirmCode(c *gin.Context) {
	d := getDeps()
	reqID := middleware.GetRequestID(c)

	var req codeRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	// the limiter is checked before the booking lookup, an unknown id
	// still burns its window
	if err := d.Codes.CheckRateLimit(req.BookingID); err != nil {
		RespondDomainError(c, err)
		return
	}

	b, err := d.Repo.GetByID(req.BookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if b.Status != domain.StatusPending {
		RespondDomainError(c, domain.ValidationError{
			Msg: fmt.Sprintf("Booking is not pending confirmation (current status: %s).", b.Status),
		})
		return
	}

	code, err := d.Codes.Generate(req.BookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if err := d.Notifier.SendOTP(reqID, notify.OTPMessage{
		BookingID:   b.ID,
		PlayerName:  b.P1,
		Code:        code,
		Kind:        notify.KindConfirmation,
		CourtAlias:  intconfig.CourtAlias(b.Court),
		BookingTime: b.ScheduledDatetime,
	}); err != nil {
		respondError(c, http.StatusInternalServerError, "delivery_failed",
			"Failed to send confirmation code. Check server logs.", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Confirmation code sent to notification channels."})
}
