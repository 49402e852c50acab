package model

import (
	"fmt"
	"time"
)

// DateFormat is the calendar-date layout used for every date field.
const DateFormat = "2006-01-02"

// FormatDate renders t as YYYY-MM-DD in t's location.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// ParseDate parses a YYYY-MM-DD string as midnight local time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}
