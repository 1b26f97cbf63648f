// Package calendar turns stored events into what calendar clients consume:
// widget entries, iCalendar documents and period filters. It also owns date
// parsing and the default color assignment for new events.
package calendar

import "unicode/utf16"

// Palette is the set of default event colors.
var Palette = []string{
	"#3b82f6", // blue
	"#10b981", // emerald
	"#f59e0b", // amber
	"#ef4444", // red
	"#8b5cf6", // violet
	"#06b6d4", // cyan
	"#f43f5e", // rose
	"#22c55e", // green
}

// PickColor returns a palette color derived from seed. The same seed always
// maps to the same color, across processes and clients, since the hash runs
// over UTF-16 code units.
func PickColor(seed string) string {
	var h uint32
	for _, u := range utf16.Encode([]rune(seed)) {
		h = h*31 + uint32(u)
	}
	return Palette[h%uint32(len(Palette))]
}
