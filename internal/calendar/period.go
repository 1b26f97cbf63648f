package calendar

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Period is a named date range relative to "now".
type Period string

const (
	Today     Period = "today"
	Tomorrow  Period = "tomorrow"
	ThisWeek  Period = "this week"
	NextWeek  Period = "next week"
	ThisMonth Period = "this month"
	NextMonth Period = "next month"
	Overdue   Period = "overdue"
)

// ParsePeriod matches s case-insensitively against the known periods.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.Join(strings.Fields(cases.Fold().String(s)), " "))
	switch p {
	case Today, Tomorrow, ThisWeek, NextWeek, ThisMonth, NextMonth, Overdue:
		return p, nil
	}
	return "", fmt.Errorf("invalid period: %q", s)
}

// Contains reports whether the stored date falls inside p, evaluated at now
// in now's location. Weeks run Sunday through Saturday. Overdue means
// strictly before today. Malformed dates are never contained.
func (p Period) Contains(date string, now time.Time) bool {
	d, ok := MustDay(date, now.Location())
	if !ok {
		return false
	}
	today := startOfDay(now)

	switch p {
	case Today:
		return d.Equal(today)
	case Tomorrow:
		return d.Equal(today.AddDate(0, 0, 1))
	case ThisWeek:
		start := today.AddDate(0, 0, -int(today.Weekday()))
		return !d.Before(start) && d.Before(start.AddDate(0, 0, 7))
	case NextWeek:
		start := today.AddDate(0, 0, 7-int(today.Weekday()))
		return !d.Before(start) && d.Before(start.AddDate(0, 0, 7))
	case ThisMonth:
		return d.Year() == today.Year() && d.Month() == today.Month()
	case NextMonth:
		next := time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, today.Location())
		return d.Year() == next.Year() && d.Month() == next.Month()
	case Overdue:
		return d.Before(today)
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
