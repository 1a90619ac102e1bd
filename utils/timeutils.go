package utils

import (
	"time"
)

// Iso8601Now returns the current time in ISO8601 format
func Iso8601Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Iso8601 formats t in UTC as ISO8601
func Iso8601(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Iso8601FromUnixSeconds converts Unix timestamp to ISO8601 format
func Iso8601FromUnixSeconds(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}

// ClockTime returns the HH:MM wall clock label used for journey estimates
func ClockTime(t time.Time) string {
	return t.Format("15:04")
}

// ValidUntil returns the instant a tick published at `at` goes stale.
func ValidUntil(at time.Time, tickInterval time.Duration) string {
	if at.IsZero() || tickInterval <= 0 {
		return ""
	}
	return Iso8601(at.Add(tickInterval))
}
