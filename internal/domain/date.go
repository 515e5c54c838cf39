package domain

import (
	"fmt"
	"time"
)

// ParseDate parses a calendar date (YYYY-MM-DD) as UTC midnight.
// Day arithmetic on the result is always an exact multiple of 24h.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate formats t as a calendar date
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// Today returns the calendar date of now, using now's own location
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseMonth parses YYYY-MM and returns the first and last calendar dates of that month
func ParseMonth(s string) (first, last string, err error) {
	t, err := time.Parse(MonthFormat, s)
	if err != nil {
		return "", "", fmt.Errorf("invalid month %q: %w", s, err)
	}
	return FormatDate(t), FormatDate(t.AddDate(0, 1, -1)), nil
}
