package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/ws upgrades to a websocket feed of booking events.
func WS(c *gin.Context) {
	d := getDeps()
	if d.Hub == nil {
		respondError(c, http.StatusServiceUnavailable, "hub_missing", "event hub is not running", nil)
		return
	}
	// Serve hijacks the connection; nothing more to write here
	d.Hub.Serve(c.Writer, c.Request)
}
