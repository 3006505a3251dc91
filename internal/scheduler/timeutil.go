package scheduler

import "time"

// NextOccurrence resolves a desired time-of-day to the next absolute instant
// at or after now that matches it, minute-grained:
//
//   - now already inside the requested minute: return now as-is, the task is
//     due immediately
//   - requested time-of-day already passed today: tomorrow at HH:MM
//   - otherwise: today at HH:MM
//
// A request for a time already past today therefore rolls to the next day
// instead of being rejected, so callers never have to compute dates.
func NextOccurrence(now time.Time, hour, minute int) time.Time {
	if now.Hour() == hour && now.Minute() == minute {
		return now
	}
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if target.Before(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target
}
