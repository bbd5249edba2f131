package helpers

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DateLayout is the calendar-date wire format used by DATE columns and query strings.
const DateLayout = "2006-01-02"

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		// Use the global logger here, assuming logger might not be configured when this is called.
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// DateOnly returns t's calendar day as midnight UTC, the same shape
// ParseDate produces, so dates from the clock and from requests compare equal.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar date.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthBounds returns [start of t's month, start of next month).
func MonthBounds(t time.Time) (start, end time.Time) {
	y, m, _ := t.Date()
	start = time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 1, 0)
	return start, end
}
