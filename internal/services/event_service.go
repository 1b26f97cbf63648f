// Package services – EventService
//
// This file implements EventService, which owns a user's calendar events.
// Events are stored as one JSON collection per user; every mutation loads the
// collection, edits it in memory and writes it back whole.
//
// Observability: public methods are OpenTelemetry-instrumented.
package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/Vinayak2k03/NotedAI/internal/calendar"
	"github.com/Vinayak2k03/NotedAI/internal/domain"
)

// EventInput carries user-supplied event fields. Date accepts anything
// calendar.ParseDate does; Color is optional.
type EventInput struct {
	Title       string
	Date        string
	Time        string
	Description string
	Color       string
}

// EventService manages calendar events.
type EventService struct {
	DB  *gorm.DB
	Now func() time.Time

	// mu serializes writers in this process; each cycle also runs in a
	// transaction.
	mu sync.Mutex
}

// NewEventService constructs an EventService using the wall clock.
func NewEventService(db *gorm.DB) *EventService {
	return &EventService{DB: db, Now: time.Now}
}

// List returns all events for userID in stored order.
func (s *EventService) List(ctx context.Context, userID string) ([]domain.Event, error) {
	ctx, span := otel.Tracer("services/EventService").Start(ctx, "List",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	return loadList[domain.Event](ctx, s.DB, userID, domain.KeyEvents)
}

// Add validates in and appends a new event. When an event with the same
// title (case-insensitive), date and time already exists it is returned with
// created=false and nothing is written.
func (s *EventService) Add(ctx context.Context, userID string, in EventInput) (ev *domain.Event, created bool, err error) {
	ctx, span := otel.Tracer("services/EventService").Start(ctx, "Add",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	e, err := buildEvent(in)
	if err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var existing *domain.Event
	err = updateList(ctx, s.DB, userID, domain.KeyEvents, func(events []domain.Event) ([]domain.Event, bool, error) {
		for i := range events {
			if sameEvent(events[i], e) {
				existing = &events[i]
				return nil, false, nil
			}
		}
		e.ID = uuid.NewString()
		return append(events, e), true, nil
	})
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	span.SetAttributes(attribute.String("event.id", e.ID))
	return &e, true, nil
}

// Update replaces the fields of event id with in. An empty Color keeps the
// current color.
func (s *EventService) Update(ctx context.Context, userID, id string, in EventInput) (*domain.Event, error) {
	ctx, span := otel.Tracer("services/EventService").Start(ctx, "Update",
		trace.WithAttributes(attribute.String("user.id", userID), attribute.String("event.id", id)))
	defer span.End()

	next, err := buildEvent(in)
	if err != nil {
		return nil, err
	}

	var out domain.Event
	err = s.modify(ctx, userID, id, func(e *domain.Event) {
		if strings.TrimSpace(in.Color) == "" {
			next.Color = e.Color
		}
		next.ID = e.ID
		*e = next
		out = next
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Move reschedules event id to date, keeping its time. It backs the calendar
// widget's drop callback.
func (s *EventService) Move(ctx context.Context, userID, id, date string) (*domain.Event, error) {
	ctx, span := otel.Tracer("services/EventService").Start(ctx, "Move",
		trace.WithAttributes(attribute.String("user.id", userID), attribute.String("event.id", id)))
	defer span.End()

	d, _, err := calendar.ParseDate(date, "")
	if err != nil {
		return nil, err
	}
	var out domain.Event
	err = s.modify(ctx, userID, id, func(e *domain.Event) {
		e.Date = d
		out = *e
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes event id and returns it.
func (s *EventService) Delete(ctx context.Context, userID, id string) (*domain.Event, error) {
	ctx, span := otel.Tracer("services/EventService").Start(ctx, "Delete",
		trace.WithAttributes(attribute.String("user.id", userID), attribute.String("event.id", id)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed domain.Event
	err := updateList(ctx, s.DB, userID, domain.KeyEvents, func(events []domain.Event) ([]domain.Event, bool, error) {
		for i, e := range events {
			if e.ID == id {
				removed = e
				return append(events[:i], events[i+1:]...), true, nil
			}
		}
		return nil, false, ErrEventNotFound
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

// ForPeriod returns the events falling inside the named period, ordered by
// date then time.
func (s *EventService) ForPeriod(ctx context.Context, userID, period string) ([]domain.Event, calendar.Period, error) {
	p, err := calendar.ParsePeriod(period)
	if err != nil || p == calendar.Overdue {
		return nil, "", ErrInvalidPeriod
	}
	events, err := s.List(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	now := s.now()
	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if p.Contains(e.Date, now) {
			out = append(out, e)
		}
	}
	sortEvents(out)
	return out, p, nil
}

func (s *EventService) modify(ctx context.Context, userID, id string, fn func(*domain.Event)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return updateList(ctx, s.DB, userID, domain.KeyEvents, func(events []domain.Event) ([]domain.Event, bool, error) {
		for i := range events {
			if events[i].ID == id {
				fn(&events[i])
				return events, true, nil
			}
		}
		return nil, false, ErrEventNotFound
	})
}

func (s *EventService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func buildEvent(in EventInput) (domain.Event, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Event{}, ErrEmptyTitle
	}
	date, hhmm, err := calendar.ParseDate(in.Date, in.Time)
	if err != nil {
		return domain.Event{}, err
	}
	color := strings.TrimSpace(in.Color)
	if color == "" {
		color = calendar.PickColor(title)
	}
	return domain.Event{
		Title:       title,
		Date:        date,
		Time:        hhmm,
		Description: strings.TrimSpace(in.Description),
		Color:       color,
	}, nil
}

func sameEvent(a, b domain.Event) bool {
	return a.Date == b.Date && a.Time == b.Time && equalFold(a.Title, b.Title)
}

func sortEvents(events []domain.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].Time < events[j].Time
	})
}
