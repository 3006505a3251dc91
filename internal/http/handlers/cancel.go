package handlers

import (
	"fmt"
	"net/http"

	intconfig "courtbook/internal/config"
	"courtbook/internal/domain"
	"courtbook/internal/http/middleware"
	"courtbook/internal/notify"
	"courtbook/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type cancelRequest struct {
	BookingID int64  `json:"booking_id"`
	Password  string `json:"password"`
}

// DELETE /api/cancel
//
// The caller authenticates with either the master cancel password or a
// one-time code. Auth runs before the booking lookup, so probing for
// existing ids without credentials only ever sees 401.
func CancelBooking(c *gin.Context) {
	d := getDeps()
	reqID := middleware.GetRequestID(c)

	var req cancelRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	authorized := false
	if d.Env.CancelPasswordHash != "" &&
		bcrypt.CompareHashAndPassword([]byte(d.Env.CancelPasswordHash), []byte(req.Password)) == nil {
		authorized = true
	} else if d.Codes.Verify(req.BookingID, utils.TrimOrEmpty(req.Password)) {
		authorized = true
	}
	if !authorized {
		utils.LogEvent(reqID, "bookings", "cancel",
			fmt.Sprintf("rejected cancel attempt for booking %d", req.BookingID))
		RespondDomainError(c, domain.AuthError{Msg: "Invalid password or expired code"})
		return
	}

	b, err := d.Repo.GetByID(req.BookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if b.Status == domain.StatusSubmitted {
		RespondDomainError(c, domain.ValidationError{
			Msg: "Cannot cancel a booking that has already been submitted.",
		})
		return
	}

	if d.Tasks.Cancel(req.BookingID) {
		utils.LogEvent(reqID, "bookings", "cancel",
			fmt.Sprintf("submission task for booking %d cancelled", req.BookingID))
	}

	if err := d.Repo.UpdateStatus(req.BookingID, domain.StatusCancelled); err != nil {
		RespondDomainError(c, err)
		return
	}
	// a cancelled booking needs no live challenge, master-password cancels
	// would otherwise leave one behind until expiry
	d.Codes.Drop(req.BookingID)
	cancelled, err := d.Repo.GetByID(req.BookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	cancelled.CourtAlias = intconfig.CourtAlias(cancelled.Court)

	d.Hub.BroadcastStatusUpdate(req.BookingID, domain.StatusCancelled)

	utils.LogEvent(reqID, "bookings", "cancel",
		fmt.Sprintf("booking %d cancelled (%s, %s, %s)", cancelled.ID, cancelled.P1, cancelled.P2, cancelled.P3))

	c.JSON(http.StatusOK, gin.H{
		"status":          "cancelled",
		"message":         fmt.Sprintf("Booking %d has been cancelled", req.BookingID),
		"booking":         cancelled,
		"total_scheduled": countBookings(d, reqID),
	})
}

// POST /api/request-cancel-code
func RequestCancelCode(c *gin.Context) {
	d := getDeps()
	reqID := middleware.GetRequestID(c)

	var req codeRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if err := d.Codes.CheckRateLimit(req.BookingID); err != nil {
		RespondDomainError(c, err)
		return
	}

	b, err := d.Repo.GetByID(req.BookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	code, err := d.Codes.Generate(req.BookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if err := d.Notifier.SendOTP(reqID, notify.OTPMessage{
		BookingID:  b.ID,
		PlayerName: b.P1,
		Code:       code,
		Kind:       notify.KindCancellation,
	}); err != nil {
		respondError(c, http.StatusInternalServerError, "delivery_failed",
			"Failed to send verification code. Check server logs.", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent to notification channels"})
}
