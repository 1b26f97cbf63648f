package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday.
var periodNow = time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("  This   WEEK ")
	require.NoError(t, err)
	assert.Equal(t, ThisWeek, p)

	_, err = ParsePeriod("next year")
	assert.Error(t, err)
}

func TestPeriod_Contains(t *testing.T) {
	cases := []struct {
		p    Period
		date string
		want bool
	}{
		{Today, "2025-03-12", true},
		{Today, "2025-03-13", false},
		{Tomorrow, "2025-03-13", true},
		{ThisWeek, "2025-03-09", true}, // Sunday start
		{ThisWeek, "2025-03-15", true},
		{ThisWeek, "2025-03-16", false},
		{NextWeek, "2025-03-16", true},
		{NextWeek, "2025-03-22", true},
		{NextWeek, "2025-03-23", false},
		{ThisMonth, "2025-03-31", true},
		{ThisMonth, "2025-04-01", false},
		{NextMonth, "2025-04-30", true},
		{Overdue, "2025-03-11", true},
		{Overdue, "2025-03-12", false},
		{Today, "garbage", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.p.Contains(tc.date, periodNow), "%s %s", tc.p, tc.date)
	}
}

func TestPeriod_NextMonthAcrossYear(t *testing.T) {
	now := time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)
	assert.True(t, NextMonth.Contains("2026-01-05", now))
	assert.False(t, NextMonth.Contains("2025-01-05", now))
}
