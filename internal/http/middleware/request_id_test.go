package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func requestIDEngine() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	var seen string
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestRequestIDGeneratesWhenMissing(t *testing.T) {
	r, seen := requestIDEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if *seen == "" {
		t.Fatalf("no request id generated")
	}
	if got := w.Header().Get("X-Request-ID"); got != *seen {
		t.Fatalf("header %q does not match context id %q", got, *seen)
	}
}

func TestRequestIDHonorsCleanHeader(t *testing.T) {
	r, seen := requestIDEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "trace-42.a")
	r.ServeHTTP(w, req)

	if *seen != "trace-42.a" {
		t.Fatalf("caller id not honored, got %q", *seen)
	}
}

func TestRequestIDSanitizesHostileHeader(t *testing.T) {
	r, seen := requestIDEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "abc\tdef<script>"+strings.Repeat("x", 200))
	r.ServeHTTP(w, req)

	id := *seen
	if strings.ContainsAny(id, "\t<>") {
		t.Fatalf("control characters survived: %q", id)
	}
	if len(id) > maxRequestIDLen {
		t.Fatalf("id exceeds cap: %d chars", len(id))
	}
}
