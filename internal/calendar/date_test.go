package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		name, raw, clock   string
		wantDate, wantTime string
	}{
		{"iso date", "2025-03-07", "", "2025-03-07", ""},
		{"loose ymd", "2025-3-7", "", "2025-03-07", ""},
		{"timestamp keeps time", "2025-03-07T14:30:00Z", "", "2025-03-07", "14:30"},
		{"explicit clock wins", "2025-03-07T14:30:00Z", "09:15", "2025-03-07", "09:15"},
		{"unpadded clock", "2025-03-07", "9:5", "2025-03-07", "09:05"},
		{"long english", "March 7, 2025", "", "2025-03-07", ""},
		{"surrounding space", "  2025-03-07 ", " 10:00 ", "2025-03-07", "10:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, hm, err := ParseDate(tc.raw, tc.clock)
			require.NoError(t, err)
			assert.Equal(t, tc.wantDate, d)
			assert.Equal(t, tc.wantTime, hm)
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range [][2]string{
		{"", ""},
		{"tomorrow-ish", ""},
		{"2025-02-30", ""},
		{"2025-13-01", ""},
		{"2025-03-07", "25:00"},
		{"2025-03-07", "noon"},
	} {
		_, _, err := ParseDate(in[0], in[1])
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q %q", in[0], in[1])
	}
}
