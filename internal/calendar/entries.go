package calendar

import (
	"sort"

	"github.com/Vinayak2k03/NotedAI/internal/domain"
)

// Entry is the shape the calendar widget renders.
type Entry struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Start         string     `json:"start"`
	AllDay        bool       `json:"allDay"`
	Color         string     `json:"color"`
	ExtendedProps EntryProps `json:"extendedProps"`
}

// EntryProps carries event fields the widget does not interpret.
type EntryProps struct {
	Description string `json:"description,omitempty"`
	Time        string `json:"time,omitempty"`
}

// Entries maps events to widget entries ordered by start. Events without a
// time are all-day; events without a color get the default for their title.
func Entries(events []domain.Event) []Entry {
	out := make([]Entry, 0, len(events))
	for _, e := range events {
		start := e.Date
		if e.Time != "" {
			start = e.Date + "T" + e.Time + ":00"
		}
		color := e.Color
		if color == "" {
			color = PickColor(e.Title)
		}
		out = append(out, Entry{
			ID:     e.ID,
			Title:  e.Title,
			Start:  start,
			AllDay: e.Time == "",
			Color:  color,
			ExtendedProps: EntryProps{
				Description: e.Description,
				Time:        e.Time,
			},
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
