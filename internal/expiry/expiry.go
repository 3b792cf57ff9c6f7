// Package expiry classifies item expiry dates against a reference day.
package expiry

import (
	"fmt"
	"time"
)

// UpcomingWindowDays is the inclusive number of days ahead at which an
// unexpired item counts as upcoming.
const UpcomingWindowDays = 7

// DateLayout is the canonical on-disk date format.
const DateLayout = "2006-01-02"

// Severity ranks expiry urgency
type Severity int

const (
	SeverityNormal Severity = iota
	SeverityUpcoming
	SeverityExpired
)

// String returns the display name for a severity
func (s Severity) String() string {
	switch s {
	case SeverityExpired:
		return "expired"
	case SeverityUpcoming:
		return "upcoming"
	default:
		return "normal"
	}
}

// Status is the derived expiry state of a single item
type Status struct {
	DaysUntil  int
	IsExpired  bool
	IsUpcoming bool
	Severity   Severity
}

// Classify compares an item's expiry date against today at calendar-day
// granularity. Both inputs are reduced to timezone-naive civil dates before
// the arithmetic, so a DST shift between the two instants cannot move the
// day boundary.
func Classify(itemDate, today time.Time) Status {
	d := civil(itemDate)
	t := civil(today)

	days := int(d.Sub(t) / (24 * time.Hour))
	expired := d.Before(t)
	upcoming := !expired && days <= UpcomingWindowDays

	sev := SeverityNormal
	if expired {
		sev = SeverityExpired
	} else if upcoming {
		sev = SeverityUpcoming
	}

	return Status{
		DaysUntil:  days,
		IsExpired:  expired,
		IsUpcoming: upcoming,
		Severity:   sev,
	}
}

// civil strips time-of-day and zone, leaving midnight UTC of the same
// calendar day.
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a canonical YYYY-MM-DD string. The underlying layout
// parse rejects impossible dates (month 13, Feb 30) instead of rolling
// them over.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a time as a canonical YYYY-MM-DD string.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// IsValidDate reports whether year/month/day form a real Gregorian date.
// Constructing the date and reading the components back must reproduce the
// inputs exactly, so overflowed values like Feb 30 are rejected.
func IsValidDate(year, month, day int) bool {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}
