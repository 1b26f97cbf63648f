// Package handlers exposes the REST API: summary generation, calendar
// events, tasks, meetings and the assistant action bridge.
//
// Handlers are transport-thin: they bind and validate input, call the
// application services through the narrow interfaces below, and translate
// results into HTTP responses (including conditional responses and
// idempotent replays).
package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Vinayak2k03/NotedAI/internal/assistant"
	"github.com/Vinayak2k03/NotedAI/internal/calendar"
	"github.com/Vinayak2k03/NotedAI/internal/domain"
	"github.com/Vinayak2k03/NotedAI/internal/http/middleware"
	"github.com/Vinayak2k03/NotedAI/internal/services"
	"github.com/Vinayak2k03/NotedAI/internal/summary"
)

//
// Service contracts (context-aware)
//

// SummaryService runs the summary pipeline with idempotent replay.
type SummaryService interface {
	Generate(ctx context.Context, userID, idemKey string, req summary.Request) (summary.Result, bool, error)
	SummarizeMeeting(ctx context.Context, userID, id, idemKey string) (*domain.Meeting, summary.Result, bool, error)
}

// EventService manages calendar events.
type EventService interface {
	List(ctx context.Context, userID string) ([]domain.Event, error)
	Add(ctx context.Context, userID string, in services.EventInput) (*domain.Event, bool, error)
	Update(ctx context.Context, userID, id string, in services.EventInput) (*domain.Event, error)
	Move(ctx context.Context, userID, id, date string) (*domain.Event, error)
	Delete(ctx context.Context, userID, id string) (*domain.Event, error)
	ForPeriod(ctx context.Context, userID, period string) ([]domain.Event, calendar.Period, error)
}

// TaskService manages tasks.
type TaskService interface {
	Add(ctx context.Context, userID string, in services.TaskInput) (*domain.Task, error)
	Delete(ctx context.Context, userID, ref string) (*domain.Task, error)
	Toggle(ctx context.Context, userID, ref string) (*domain.Task, error)
	List(ctx context.Context, userID string, f services.TaskFilter) (services.TaskList, error)
}

// MeetingService manages meetings.
type MeetingService interface {
	Create(ctx context.Context, userID string, in services.MeetingInput) (*domain.Meeting, error)
	List(ctx context.Context, userID string) ([]domain.Meeting, error)
	Get(ctx context.Context, userID, id string) (*domain.Meeting, error)
	UpdateNotes(ctx context.Context, userID, id, notes string) (*domain.Meeting, error)
	Delete(ctx context.Context, userID, id string) error
}

// ActionRegistry describes and dispatches assistant actions.
type ActionRegistry interface {
	Describe() []assistant.Action
	Invoke(ctx context.Context, userID, name string, args assistant.Args) (any, error)
}

// StatsFunc reports the size and last update of a user's collection. It
// backs weak ETags; a nil StatsFunc disables conditional responses.
type StatsFunc func(ctx context.Context, userID, key string) (size int, updatedAt *time.Time, err error)

//
// Handler wiring
//

// Deps are the collaborators of Handlers.
type Deps struct {
	Summaries SummaryService
	Events    EventService
	Tasks     TaskService
	Meetings  MeetingService
	Actions   ActionRegistry
	Stats     StatsFunc

	// SummaryTimeout bounds summary requests end to end; <= 0 means 45s.
	SummaryTimeout time.Duration
	// Location renders calendar times; nil means time.Local.
	Location *time.Location
	// Now is the clock for calendar exports; nil means time.Now.
	Now func() time.Time
}

// Handlers groups the HTTP endpoints.
type Handlers struct {
	summaries SummaryService
	events    EventService
	tasks     TaskService
	meetings  MeetingService
	actions   ActionRegistry
	stats     StatsFunc

	summaryTimeout time.Duration
	loc            *time.Location
	now            func() time.Time
}

// DefaultSummaryTimeout applies when Deps.SummaryTimeout is not positive.
const DefaultSummaryTimeout = 45 * time.Second

// New constructs Handlers from d.
func New(d Deps) *Handlers {
	h := &Handlers{
		summaries:      d.Summaries,
		events:         d.Events,
		tasks:          d.Tasks,
		meetings:       d.Meetings,
		actions:        d.Actions,
		stats:          d.Stats,
		summaryTimeout: d.SummaryTimeout,
		loc:            d.Location,
		now:            d.Now,
	}
	if h.summaryTimeout <= 0 {
		h.summaryTimeout = DefaultSummaryTimeout
	}
	if h.loc == nil {
		h.loc = time.Local
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

// userID returns the caller identity resolved by middleware.Identity.
func userID(c *gin.Context) string {
	return middleware.UserIDFrom(c)
}

// idempotencyKey returns the validated Idempotency-Key, or "".
func idempotencyKey(c *gin.Context) string {
	k, _ := middleware.GetIdempotencyKey(c)
	return k
}
