package utils

import (
	"fmt"
	"strings"
	"time"
)

const layoutClock = "15:04"

// ParseClock parses a "HH:MM" time-of-day and returns hour and minute.
// Rejects anything outside 00:00..23:59.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse(layoutClock, strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return t.Hour(), t.Minute(), nil
}

// FormatClock renders an hour and minute as "HH:MM".
func FormatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
