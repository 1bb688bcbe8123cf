package pkg

import (
	"strings"
	"time"
)

// DayLayout is the wire format of a calendar day.
const DayLayout = "2006-01-02"

// All day helpers work on the UTC calendar, whatever location t carries.

// DayStart returns the UTC midnight starting the day t falls on.
func DayStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayBounds returns the half-open interval [from, to) of the UTC day of t.
func DayBounds(t time.Time) (from, to time.Time) {
	from = DayStart(t)
	return from, from.AddDate(0, 0, 1)
}

func SameDay(a, b time.Time) bool {
	return DayStart(a).Equal(DayStart(b))
}

// ParseDay parses a YYYY-MM-DD string as a UTC day.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, strings.TrimSpace(s), time.UTC)
}

func FormatDay(t time.Time) string {
	return t.UTC().Format(DayLayout)
}
