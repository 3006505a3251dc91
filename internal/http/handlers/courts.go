package handlers

import (
	"net/http"

	intconfig "courtbook/internal/config"

	"github.com/gin-gonic/gin"
)

// GET /api/courts
func GetCourts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"courts": intconfig.Courts()})
}
