package calendar

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// DateLayout and TimeLayout are the stored formats for Event.Date and Event.Time.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ErrInvalidDate is returned when a date or time cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	DateLayout,
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate normalizes a user-supplied date, and optional HH:MM time, into
// stored form. It accepts ISO dates and timestamps, loose Y-M-D with
// unpadded parts, and long English dates. When raw carries a time of day and
// clock is empty, that time is kept.
func ParseDate(raw, clock string) (date, hhmm string, err error) {
	raw = strings.TrimSpace(raw)
	clock = strings.TrimSpace(clock)
	if raw == "" {
		return "", "", ErrInvalidDate
	}

	t, hasTime, ok := parseAny(raw)
	if !ok {
		return "", "", ErrInvalidDate
	}
	date = t.Format(DateLayout)

	switch {
	case clock != "":
		ct, err := time.Parse(TimeLayout, normalizeClock(clock))
		if err != nil {
			return "", "", ErrInvalidDate
		}
		hhmm = ct.Format(TimeLayout)
	case hasTime:
		hhmm = t.Format(TimeLayout)
	}
	return date, hhmm, nil
}

// MustDay parses a stored YYYY-MM-DD date in loc. ok is false for malformed input.
func MustDay(date string, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, date, loc)
	return t, err == nil
}

func parseAny(raw string) (t time.Time, hasTime, ok bool) {
	for _, layout := range dateLayouts {
		if pt, err := time.Parse(layout, raw); err == nil {
			return pt, layout != DateLayout && !strings.HasPrefix(layout, "Jan"), true
		}
	}
	// Loose Y-M-D such as 2025-3-7.
	parts := strings.Split(raw, "-")
	if len(parts) != 3 {
		return time.Time{}, false, false
	}
	y, e1 := strconv.Atoi(parts[0])
	m, e2 := strconv.Atoi(parts[1])
	d, e3 := strconv.Atoi(parts[2])
	if e1 != nil || e2 != nil || e3 != nil || m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false, false
	}
	t = time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d {
		// rolled over, e.g. 2025-2-30
		return time.Time{}, false, false
	}
	return t, false, true
}

// normalizeClock pads "9:5" style input to "09:05".
func normalizeClock(s string) string {
	h, m, found := strings.Cut(s, ":")
	if !found {
		return s
	}
	if len(h) == 1 {
		h = "0" + h
	}
	if len(m) == 1 {
		m = "0" + m
	}
	return h + ":" + m
}
