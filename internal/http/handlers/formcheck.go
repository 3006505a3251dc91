package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/form-check verifies the upstream form still carries every
// configured field.
func FormCheck(c *gin.Context) {
	d := getDeps()
	if d.Form == nil {
		respondError(c, http.StatusServiceUnavailable, "form_client_missing", "form client is not configured", nil)
		return
	}

	report := d.Form.CheckSchema()
	status := http.StatusOK
	if report.Status != "success" {
		status = http.StatusBadGateway
	}
	c.JSON(status, report)
}
