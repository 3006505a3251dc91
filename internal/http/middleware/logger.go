package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger prints minimal request log including request_id when available.
// The websocket feed is skipped: its "latency" is the connection lifetime
// and would drown the log in noise.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.FullPath() == "/api/ws" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		log.Printf("[HTTP] request_id=%s method=%s path=%s status=%d latency_ms=%.3f bytes=%d ip=%s",
			GetRequestID(c),
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			float64(latency.Microseconds())/1000.0,
			c.Writer.Size(),
			c.ClientIP(),
		)
	}
}
