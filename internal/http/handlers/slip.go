package handlers

import (
	"net/http"
	"strconv"

	"courtbook/internal/http/middleware"
	"courtbook/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/bookings/:id/slip returns the booking slip PDF (inline).
func GetBookingSlipPDF(c *gin.Context) {
	d := getDeps()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_booking_id", "invalid booking id", err)
		return
	}

	svc := services.SlipService{
		Repo:      d.Repo,
		RequestID: middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerateSlip(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
