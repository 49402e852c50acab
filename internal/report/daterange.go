package report

import (
	"fmt"
	"time"

	"github.com/dompet-dev/dompet/internal/model"
)

// DateRange selects calendar days. A zero bound is open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseRange parses YYYY-MM-DD bounds in local time. Either may be empty.
func ParseRange(start, end string) (DateRange, error) {
	var r DateRange
	var err error
	if start != "" {
		if r.Start, err = model.ParseDate(start); err != nil {
			return DateRange{}, fmt.Errorf("start: %w", err)
		}
	}
	if end != "" {
		if r.End, err = model.ParseDate(end); err != nil {
			return DateRange{}, fmt.Errorf("end: %w", err)
		}
	}
	if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		return DateRange{}, fmt.Errorf("end %s is before start %s", end, start)
	}
	return r, nil
}

// MonthToDate spans the first of now's month through now's day.
func MonthToDate(now time.Time) DateRange {
	y, m, d := now.Date()
	return DateRange{
		Start: time.Date(y, m, 1, 0, 0, 0, 0, now.Location()),
		End:   time.Date(y, m, d, 0, 0, 0, 0, now.Location()),
	}
}

// Contains reports whether the date falls inside the range. The end day is
// included through 23:59:59.999. Unparseable dates are outside every
// bounded range.
func (r DateRange) Contains(date string) bool {
	if r.Start.IsZero() && r.End.IsZero() {
		return true
	}
	t, err := model.ParseDate(date)
	if err != nil {
		return false
	}
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(endOfDay(r.End)) {
		return false
	}
	return true
}

// String renders the range as "start..end".
func (r DateRange) String() string {
	bound := func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return model.FormatDate(t)
	}
	return bound(r.Start) + ".." + bound(r.End)
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
