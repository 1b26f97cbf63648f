package calendar

import (
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/Vinayak2k03/NotedAI/internal/domain"
)

// DefaultEventDuration is the length given to timed events on export.
const DefaultEventDuration = time.Hour

const productID = "-//NotedAI//Calendar//EN"

// ExportICS renders events as an iCalendar document. Timed events are placed
// in loc; all-day events use DATE values. Events with malformed dates are
// skipped.
func ExportICS(events []domain.Event, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	stamp := now.UTC()
	for _, e := range events {
		day, ok := MustDay(e.Date, loc)
		if !ok {
			continue
		}
		ve := cal.AddEvent(e.ID + "@notedai")
		ve.SetDtStampTime(stamp)
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.Color != "" {
			ve.SetProperty(ical.ComponentProperty("COLOR"), e.Color)
		}

		if e.Time == "" {
			ve.SetAllDayStartAt(day)
			ve.SetAllDayEndAt(day.AddDate(0, 0, 1))
			continue
		}
		clock, err := time.Parse(TimeLayout, e.Time)
		if err != nil {
			ve.SetAllDayStartAt(day)
			ve.SetAllDayEndAt(day.AddDate(0, 0, 1))
			continue
		}
		start := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
		ve.SetStartAt(start)
		ve.SetEndAt(start.Add(DefaultEventDuration))
	}
	return cal.Serialize()
}
