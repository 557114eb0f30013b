// Package dates resolves relative date keywords to absolute calendar
// dates at parse time.
package dates

import (
	"strings"
	"time"
)

// DateLayout is the wire format for date-only values
const DateLayout = "2006-01-02"

// Resolve maps a relative date keyword to an absolute YYYY-MM-DD date
// computed from the current local calendar date. Any non-keyword input
// is returned unchanged, so absolute dates and datetimes pass through.
func Resolve(value string) string {
	return ResolveAt(value, time.Now())
}

// ResolveAt is Resolve with an explicit reference time
func ResolveAt(value string, now time.Time) string {
	var offset int

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "today":
		offset = 0
	case "yesterday":
		offset = -1
	case "tomorrow":
		offset = 1
	case "last_week", "last-week":
		offset = -7
	case "next_week", "next-week":
		offset = 7
	default:
		return value
	}

	anchor := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	return anchor.AddDate(0, 0, offset).Format(DateLayout)
}

// IsKeyword reports whether value is a supported relative date keyword
func IsKeyword(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "today", "yesterday", "tomorrow", "last_week", "last-week", "next_week", "next-week":
		return true
	default:
		return false
	}
}
