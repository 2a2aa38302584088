// Package classify holds the pure status/expiry functions. Callers pass a
// clock so tests can pin "now"; nothing here does I/O.
package classify

import "time"

// RequestExpiryDays is how long a pending help request stays visible in
// public browse before it is treated as expired. Expiry is derived at read
// time and never persisted.
const RequestExpiryDays = 15

// DaysSince returns whole days elapsed since t, never negative.
func DaysSince(now func() time.Time, t time.Time) int {
	if now == nil {
		now = time.Now
	}
	d := int(now().Sub(t).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// IsExpired reports whether createdAt lies strictly more than thresholdDays
// in the past. Exactly thresholdDays old is not expired; one second past
// the threshold is.
func IsExpired(now func() time.Time, createdAt time.Time, thresholdDays int) bool {
	if now == nil {
		now = time.Now
	}
	return now().Sub(createdAt) > time.Duration(thresholdDays)*24*time.Hour
}

// RequestExpired applies the standard 15-day window.
func RequestExpired(now func() time.Time, createdAt time.Time) bool {
	return IsExpired(now, createdAt, RequestExpiryDays)
}

// StatusColor maps a status to the UI badge color token. Total over every
// known status with a neutral fallback for anything unknown.
func StatusColor(status string) string {
	switch status {
	case "pending":
		return "amber"
	case "booked", "confirmed":
		return "blue"
	case "completed", "released":
		return "green"
	case "canceled", "failed":
		return "red"
	case "escrow":
		return "purple"
	default:
		return "gray"
	}
}
