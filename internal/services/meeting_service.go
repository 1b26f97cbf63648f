// Package services – MeetingService
//
// This file implements MeetingService, which owns a user's meetings and their
// notes. A meeting created without a name is titled from the first line of
// its notes.
package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/Vinayak2k03/NotedAI/internal/calendar"
	"github.com/Vinayak2k03/NotedAI/internal/domain"
	"github.com/Vinayak2k03/NotedAI/internal/summary"
)

// MeetingInput carries user-supplied meeting fields.
type MeetingInput struct {
	Name  string
	Date  string
	Time  string
	Notes string
}

// MeetingService manages meetings.
type MeetingService struct {
	DB  *gorm.DB
	Now func() time.Time

	// Title generation config
	TitleLocale   language.Tag
	TitleMaxWords int
	TitleMaxLen   int

	mu sync.Mutex
}

// NewMeetingService constructs a MeetingService with default title settings.
func NewMeetingService(db *gorm.DB) *MeetingService {
	return &MeetingService{
		DB:            db,
		Now:           time.Now,
		TitleLocale:   language.English,
		TitleMaxWords: 6,
		TitleMaxLen:   60,
	}
}

// Create stores a new meeting. Date defaults to today; Name defaults to a
// title derived from Notes, else the untitled placeholder.
func (s *MeetingService) Create(ctx context.Context, userID string, in MeetingInput) (*domain.Meeting, error) {
	ctx, span := otel.Tracer("services/MeetingService").Start(ctx, "Create",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	date := s.now().Format(calendar.DateLayout)
	var hhmm string
	if strings.TrimSpace(in.Date) != "" || strings.TrimSpace(in.Time) != "" {
		raw := in.Date
		if strings.TrimSpace(raw) == "" {
			raw = date
		}
		d, t, err := calendar.ParseDate(raw, in.Time)
		if err != nil {
			return nil, err
		}
		date, hhmm = d, t
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = titleFromNotes(in.Notes, s.TitleLocale, s.maxWords(), s.TitleMaxLen)
	}
	if name == "" {
		name = summary.DefaultMeetingName
	}

	m := domain.Meeting{
		ID:    uuid.NewString(),
		Name:  name,
		Date:  date,
		Time:  hhmm,
		Notes: in.Notes,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := updateList(ctx, s.DB, userID, domain.KeyMeetings, func(meetings []domain.Meeting) ([]domain.Meeting, bool, error) {
		return append(meetings, m), true, nil
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns all meetings for userID.
func (s *MeetingService) List(ctx context.Context, userID string) ([]domain.Meeting, error) {
	return loadList[domain.Meeting](ctx, s.DB, userID, domain.KeyMeetings)
}

// Get returns meeting id or ErrMeetingNotFound.
func (s *MeetingService) Get(ctx context.Context, userID, id string) (*domain.Meeting, error) {
	meetings, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range meetings {
		if meetings[i].ID == id {
			return &meetings[i], nil
		}
	}
	return nil, ErrMeetingNotFound
}

// UpdateNotes replaces the notes of meeting id. A stored summary is kept; it
// is the caller's choice to regenerate it.
func (s *MeetingService) UpdateNotes(ctx context.Context, userID, id, notes string) (*domain.Meeting, error) {
	ctx, span := otel.Tracer("services/MeetingService").Start(ctx, "UpdateNotes",
		trace.WithAttributes(attribute.String("user.id", userID), attribute.String("meeting.id", id)))
	defer span.End()

	return s.modify(ctx, userID, id, func(m *domain.Meeting) { m.Notes = notes })
}

// SetSummary records a generated summary on meeting id.
func (s *MeetingService) SetSummary(ctx context.Context, userID, id string, res summary.Result) (*domain.Meeting, error) {
	at := res.GeneratedAt.UTC()
	return s.modify(ctx, userID, id, func(m *domain.Meeting) {
		m.Summary = res.Summary
		m.SummaryMethod = string(res.Method)
		m.SummarizedAt = &at
	})
}

// Delete removes meeting id.
func (s *MeetingService) Delete(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return updateList(ctx, s.DB, userID, domain.KeyMeetings, func(meetings []domain.Meeting) ([]domain.Meeting, bool, error) {
		for i := range meetings {
			if meetings[i].ID == id {
				return append(meetings[:i], meetings[i+1:]...), true, nil
			}
		}
		return nil, false, ErrMeetingNotFound
	})
}

func (s *MeetingService) modify(ctx context.Context, userID, id string, fn func(*domain.Meeting)) (*domain.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out domain.Meeting
	err := updateList(ctx, s.DB, userID, domain.KeyMeetings, func(meetings []domain.Meeting) ([]domain.Meeting, bool, error) {
		for i := range meetings {
			if meetings[i].ID == id {
				fn(&meetings[i])
				out = meetings[i]
				return meetings, true, nil
			}
		}
		return nil, false, ErrMeetingNotFound
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *MeetingService) maxWords() int {
	if s.TitleMaxWords <= 0 {
		return 6
	}
	return s.TitleMaxWords
}

func (s *MeetingService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
