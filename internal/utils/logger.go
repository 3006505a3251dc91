package utils

import (
	"fmt"
	"log"
	"strings"
)

// LogEvent prints standardized log line with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized. OTP codes
// never go through here.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}

// LogEventf is LogEvent with a format string, for background work (scheduler,
// sweeper) that has no request id.
func LogEventf(module, action, format string, args ...any) {
	LogEvent("", module, action, fmt.Sprintf(format, args...))
}
