package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrUnparseableDate is returned by ParseDate for input no layout accepts.
var ErrUnparseableDate = errors.New("unparseable date")

// dateOnlyLayouts carry no time of day; values parsed with them start at UTC midnight.
var dateOnlyLayouts = []string{
	"2006-01-02",
	DayLayout,
	"Mon Jan 2 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2006-1-2",
	"01/02/2006",
	"1/2/2006",
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	time.RFC1123Z,
	time.RFC1123,
}

// ParseDate parses a calendar date or date-time. Inputs without a zone are
// read as UTC. dateOnly reports whether the input carried no time of day.
func ParseDate(raw string) (t time.Time, dateOnly bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false, ErrUnparseableDate
	}
	for _, layout := range dateOnlyLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, true, nil
		}
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t.UTC(), false, nil
		}
	}
	return time.Time{}, false, ErrUnparseableDate
}

// EndOfDay returns the last representable instant of t's UTC day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
}
