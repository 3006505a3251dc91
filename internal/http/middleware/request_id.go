package middleware

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	requestIDKey    = "request_id"
	maxRequestIDLen = 64
)

// RequestID ensures every request has an id for tracing and logs. A caller
// supplied X-Request-ID is honored after sanitizing: the id is echoed into
// log lines and error bodies, so control characters are stripped and the
// length is capped.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := sanitizeRequestID(c.Request.Header.Get("X-Request-ID"))
		if rid == "" {
			rid = strconv.FormatInt(time.Now().UnixNano(), 10) + "-" + strconv.Itoa(rand.Intn(1000000))
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

func sanitizeRequestID(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		}
		return -1
	}, s)
	if len(s) > maxRequestIDLen {
		s = s[:maxRequestIDLen]
	}
	return s
}

// GetRequestID extracts request_id from gin context when available.
func GetRequestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if v, ok := c.Get(requestIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
