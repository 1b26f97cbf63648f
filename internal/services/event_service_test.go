package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Vinayak2k03/NotedAI/internal/calendar"
)

func newEventSvc(t *testing.T) *EventService {
	s := NewEventService(newSvcDB(t))
	s.Now = fixedNow
	return s
}

func TestEventService_Add_DefaultsAndNormalization(t *testing.T) {
	s := newEventSvc(t)
	ctx := context.Background()

	e, created, err := s.Add(ctx, "u1", EventInput{Title: "  Standup ", Date: "2025-3-14", Time: "9:30"})
	if err != nil || !created {
		t.Fatalf("Add: created=%v err=%v", created, err)
	}
	if e.ID == "" || e.Title != "Standup" || e.Date != "2025-03-14" || e.Time != "09:30" {
		t.Fatalf("unexpected event: %+v", e)
	}
	if e.Color != calendar.PickColor("Standup") {
		t.Fatalf("default color = %q", e.Color)
	}

	list, _ := s.List(ctx, "u1")
	if len(list) != 1 {
		t.Fatalf("expected 1 event, got %d", len(list))
	}
}

func TestEventService_Add_DuplicateGuard(t *testing.T) {
	s := newEventSvc(t)
	ctx := context.Background()

	first, _, _ := s.Add(ctx, "u1", EventInput{Title: "Retro", Date: "2025-03-14"})
	again, created, err := s.Add(ctx, "u1", EventInput{Title: "RETRO", Date: "2025-03-14"})
	if err != nil || created {
		t.Fatalf("duplicate should not be created: created=%v err=%v", created, err)
	}
	if again.ID != first.ID {
		t.Fatalf("duplicate should return existing event")
	}

	// Different time is a different event.
	if _, created, _ := s.Add(ctx, "u1", EventInput{Title: "Retro", Date: "2025-03-14", Time: "15:00"}); !created {
		t.Fatalf("timed event should be created")
	}
	list, _ := s.List(ctx, "u1")
	if len(list) != 2 {
		t.Fatalf("expected 2 events, got %d", len(list))
	}
}

func TestEventService_Add_Validation(t *testing.T) {
	s := newEventSvc(t)
	ctx := context.Background()

	if _, _, err := s.Add(ctx, "u1", EventInput{Title: " ", Date: "2025-03-14"}); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("want ErrEmptyTitle, got %v", err)
	}
	if _, _, err := s.Add(ctx, "u1", EventInput{Title: "X", Date: "someday"}); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("want ErrInvalidDate, got %v", err)
	}
}

func TestEventService_UpdateMoveDelete(t *testing.T) {
	s := newEventSvc(t)
	ctx := context.Background()

	e, _, _ := s.Add(ctx, "u1", EventInput{Title: "Demo", Date: "2025-03-14", Time: "10:00", Color: "#123456"})

	up, err := s.Update(ctx, "u1", e.ID, EventInput{Title: "Demo day", Date: "2025-03-15", Description: "room 4"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if up.ID != e.ID || up.Title != "Demo day" || up.Time != "" || up.Color != "#123456" || up.Description != "room 4" {
		t.Fatalf("unexpected update: %+v", up)
	}

	mv, err := s.Move(ctx, "u1", e.ID, "2025-03-20")
	if err != nil || mv.Date != "2025-03-20" {
		t.Fatalf("Move: %+v %v", mv, err)
	}
	if _, err := s.Move(ctx, "u1", e.ID, "bogus"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("want ErrInvalidDate, got %v", err)
	}

	del, err := s.Delete(ctx, "u1", e.ID)
	if err != nil || del.Title != "Demo day" {
		t.Fatalf("Delete: %+v %v", del, err)
	}
	if _, err := s.Delete(ctx, "u1", e.ID); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("second delete: want ErrEventNotFound, got %v", err)
	}
	if _, err := s.Update(ctx, "u1", "nope", EventInput{Title: "a", Date: "2025-01-01"}); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("update missing: want ErrEventNotFound, got %v", err)
	}
}

func TestEventService_ForPeriod(t *testing.T) {
	s := newEventSvc(t)
	ctx := context.Background()

	for _, in := range []EventInput{
		{Title: "Later", Date: "2025-03-14", Time: "16:00"},
		{Title: "Early", Date: "2025-03-14", Time: "08:00"},
		{Title: "Today", Date: "2025-03-12"},
		{Title: "Next week", Date: "2025-03-18"},
		{Title: "April", Date: "2025-04-02"},
	} {
		if _, _, err := s.Add(ctx, "u1", in); err != nil {
			t.Fatalf("Add %q: %v", in.Title, err)
		}
	}

	got, p, err := s.ForPeriod(ctx, "u1", "This Week")
	if err != nil || p != calendar.ThisWeek {
		t.Fatalf("ForPeriod: %v %v", p, err)
	}
	if len(got) != 3 || got[0].Title != "Today" || got[1].Title != "Early" || got[2].Title != "Later" {
		t.Fatalf("unexpected order: %+v", got)
	}

	if got, _, _ := s.ForPeriod(ctx, "u1", "next month"); len(got) != 1 || got[0].Title != "April" {
		t.Fatalf("next month: %+v", got)
	}
	if _, _, err := s.ForPeriod(ctx, "u1", "someday"); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("want ErrInvalidPeriod, got %v", err)
	}
	if _, _, err := s.ForPeriod(ctx, "u1", "overdue"); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("overdue is a task period, got %v", err)
	}
}
