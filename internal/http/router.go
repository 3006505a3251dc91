package api

import (
	"log"
	stdhttp "net/http"

	intconfig "courtbook/internal/config"
	h "courtbook/internal/http/handlers"
	"courtbook/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	_ = env

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	// booking frontend
	r.StaticFile("/", "./static/index.html")
	r.Static("/static", "./static")

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)
		api.GET("/form-check", h.FormCheck)

		api.GET("/ws", h.WS)
		api.GET("/courts", h.GetCourts)

		api.POST("/book", h.CreateBooking)
		api.GET("/bookings", h.ListBookings)
		api.GET("/bookings/:id/slip", h.GetBookingSlipPDF)

		api.POST("/confirm-booking", h.ConfirmBooking)
		api.POST("/request-confirm-code", h.RequestConfirmCode)

		api.DELETE("/cancel", h.CancelBooking)
		api.POST("/request-cancel-code", h.RequestCancelCode)
	}

	h.SetRouter(r)
	return r
}
