package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Vinayak2k03/NotedAI/internal/calendar"
	"github.com/Vinayak2k03/NotedAI/internal/domain"
	"github.com/Vinayak2k03/NotedAI/internal/services"
	"github.com/Vinayak2k03/NotedAI/internal/summary"
)

// EventStore is the event surface the calendar actions need.
type EventStore interface {
	Add(ctx context.Context, userID string, in services.EventInput) (*domain.Event, bool, error)
	Delete(ctx context.Context, userID, id string) (*domain.Event, error)
	ForPeriod(ctx context.Context, userID, period string) ([]domain.Event, calendar.Period, error)
}

// TaskStore is the task surface the task actions need.
type TaskStore interface {
	Add(ctx context.Context, userID string, in services.TaskInput) (*domain.Task, error)
	Delete(ctx context.Context, userID, ref string) (*domain.Task, error)
	Toggle(ctx context.Context, userID, ref string) (*domain.Task, error)
	List(ctx context.Context, userID string, f services.TaskFilter) (services.TaskList, error)
}

// MeetingSummarizer summarizes a stored meeting.
type MeetingSummarizer interface {
	SummarizeMeeting(ctx context.Context, userID, id, idemKey string) (*domain.Meeting, summary.Result, bool, error)
}

// Deps are the collaborators of the default actions. A nil store skips its
// actions.
type Deps struct {
	Events    EventStore
	Tasks     TaskStore
	Summaries MeetingSummarizer
	Now       func() time.Time
}

const fullDateLayout = "Monday, January 2, 2006"

// RegisterDefaults registers the calendar, task and meeting actions.
func RegisterDefaults(r *Registry, d Deps) error {
	if d.Now == nil {
		d.Now = time.Now
	}
	var actions []Action
	if d.Events != nil {
		actions = append(actions, addEventAction(d), deleteEventAction(d), showEventsAction(d))
	}
	if d.Tasks != nil {
		actions = append(actions, addTaskAction(d), deleteTaskAction(d), toggleTaskAction(d), listTasksAction(d))
	}
	if d.Summaries != nil {
		actions = append(actions, meetingSummaryAction(d))
	}
	for _, a := range actions {
		if err := r.Register(a); err != nil {
			return err
		}
	}
	return nil
}

func addEventAction(d Deps) Action {
	return Action{
		Name:        "addEvent",
		Description: "Add a new event to the calendar with detailed information",
		Parameters: []Param{
			{Name: "title", Type: "string", Description: "The title or name of the event", Required: true},
			{Name: "date", Type: "string", Description: "The date of the event in YYYY-MM-DD format", Required: true},
			{Name: "time", Type: "string", Description: "The time of the event in HH:MM format"},
			{Name: "description", Type: "string", Description: "A detailed description of the event"},
			{Name: "color", Type: "string", Description: "The color for the event in hexadecimal format"},
		},
		Handler: func(ctx context.Context, userID string, a Args) (any, error) {
			e, created, err := d.Events.Add(ctx, userID, services.EventInput{
				Title:       a.String("title"),
				Date:        a.String("date"),
				Time:        a.String("time"),
				Description: a.String("description"),
				Color:       a.String("color"),
			})
			if err != nil {
				return nil, err
			}
			when := fullDate(e.Date)
			if e.Time != "" {
				when += " at " + e.Time
			}
			if !created {
				return fmt.Sprintf("Event %q already exists for %s", e.Title, when), nil
			}
			return fmt.Sprintf("Event %q successfully added for %s", e.Title, when), nil
		},
	}
}

func deleteEventAction(d Deps) Action {
	return Action{
		Name:        "deleteEvent",
		Description: "Remove a specific event from the calendar using its unique identifier",
		Parameters: []Param{
			{Name: "id", Type: "string", Description: "The unique identifier of the event to be deleted", Required: true},
		},
		Handler: func(ctx context.Context, userID string, a Args) (any, error) {
			id := a.String("id")
			e, err := d.Events.Delete(ctx, userID, id)
			if errors.Is(err, services.ErrEventNotFound) {
				return nil, fmt.Errorf("%w: no event found with ID %s", err, id)
			}
			if err != nil {
				return nil, err
			}
			return fmt.Sprintf("Event %q scheduled for %s has been successfully removed from the calendar.", e.Title, fullDate(e.Date)), nil
		},
	}
}

// PeriodEvent is an event annotated for display.
type PeriodEvent struct {
	domain.Event
	FormattedDate string `json:"formattedDate"`
}

func showEventsAction(d Deps) Action {
	return Action{
		Name:        "showEventsForPeriod",
		Description: "Display events for a specific time period",
		Parameters: []Param{
			{Name: "period", Type: "string", Description: "Time period (today/this week/next week/this month/next month)", Required: true},
		},
		Handler: func(ctx context.Context, userID string, a Args) (any, error) {
			period := a.String("period")
			events, _, err := d.Events.ForPeriod(ctx, userID, period)
			if errors.Is(err, services.ErrInvalidPeriod) {
				return nil, fmt.Errorf("%w: %s", err, period)
			}
			if err != nil {
				return nil, err
			}
			out := make([]PeriodEvent, 0, len(events))
			for _, e := range events {
				out = append(out, PeriodEvent{Event: e, FormattedDate: fullDate(e.Date)})
			}
			return out, nil
		},
	}
}

func addTaskAction(d Deps) Action {
	return Action{
		Name:        "addTask",
		Description: "Add a new task to the task list",
		Parameters: []Param{
			{Name: "title", Type: "string", Description: "The title of the task", Required: true},
			{Name: "description", Type: "string", Description: "A detailed description of the task"},
			{Name: "priority", Type: "string", Description: "Priority level: 'low', 'medium', or 'high'"},
			{Name: "dueDate", Type: "string", Description: "Due date in YYYY-MM-DD format"},
			{Name: "tags", Type: "string", Description: "Comma-separated list of tags for the task"},
		},
		Handler: func(ctx context.Context, userID string, a Args) (any, error) {
			t, err := d.Tasks.Add(ctx, userID, services.TaskInput{
				Title:       a.String("title"),
				Description: a.String("description"),
				Priority:    a.String("priority"),
				DueDate:     a.String("dueDate"),
				Tags:        services.SplitTags(a.String("tags")),
			})
			if err != nil {
				return nil, err
			}
			msg := fmt.Sprintf("Task %q created successfully with %s priority, due on %s", t.Title, t.Priority, dueLabel(t.DueDate, d.Now()))
			if len(t.Tags) > 0 {
				msg += " and tags: " + strings.Join(t.Tags, ", ")
			}
			return msg, nil
		},
	}
}

func deleteTaskAction(d Deps) Action {
	return Action{
		Name:        "deleteTask",
		Description: "Delete a task by its ID or title",
		Parameters: []Param{
			{Name: "identifier", Type: "string", Description: "The ID or title of the task to delete", Required: true},
		},
		Handler: func(ctx context.Context, userID string, a Args) (any, error) {
			t, err := d.Tasks.Delete(ctx, userID, a.String("identifier"))
			if err != nil {
				return nil, err
			}
			return fmt.Sprintf("Task %q has been successfully deleted.", t.Title), nil
		},
	}
}

func toggleTaskAction(d Deps) Action {
	return Action{
		Name:        "toggleTaskCompletion",
		Description: "Mark a task as complete or incomplete",
		Parameters: []Param{
			{Name: "identifier", Type: "string", Description: "The ID or title of the task to toggle completion", Required: true},
		},
		Handler: func(ctx context.Context, userID string, a Args) (any, error) {
			t, err := d.Tasks.Toggle(ctx, userID, a.String("identifier"))
			if err != nil {
				return nil, err
			}
			state := "incomplete"
			if t.Completed {
				state = "complete"
			}
			return fmt.Sprintf("Task %q has been marked as %s.", t.Title, state), nil
		},
	}
}

// TaskView is a task formatted for conversational display.
type TaskView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
	Completed   string `json:"completed"`
	Tags        string `json:"tags"`
	Description string `json:"description"`
}

// TaskListView is the listTasks result.
type TaskListView struct {
	Summary string     `json:"summary"`
	Tasks   []TaskView `json:"tasks"`
}

func listTasksAction(d Deps) Action {
	return Action{
		Name:        "listTasks",
		Description: "List tasks filtered by status, priority, or date period",
		Parameters: []Param{
			{Name: "status", Type: "string", Description: "Filter by status: 'all', 'active', or 'completed'"},
			{Name: "priority", Type: "string", Description: "Filter by priority: 'high', 'medium', or 'low'"},
			{Name: "period", Type: "string", Description: "Filter by time period: 'today', 'tomorrow', 'this week', 'overdue'"},
			{Name: "tag", Type: "string", Description: "Filter by a specific tag"},
		},
		Handler: func(ctx context.Context, userID string, a Args) (any, error) {
			list, err := d.Tasks.List(ctx, userID, services.TaskFilter{
				Status:   a.String("status"),
				Priority: a.String("priority"),
				Period:   a.String("period"),
				Tag:      a.String("tag"),
			})
			if err != nil {
				return nil, err
			}
			now := d.Now()
			out := TaskListView{Summary: list.Summary, Tasks: make([]TaskView, 0, len(list.Tasks))}
			for _, t := range list.Tasks {
				v := TaskView{
					ID:          t.ID,
					Title:       t.Title,
					Priority:    string(t.Priority),
					DueDate:     dueLabel(t.DueDate, now),
					Completed:   "No",
					Tags:        strings.Join(t.Tags, ", "),
					Description: t.Description,
				}
				if t.Completed {
					v.Completed = "Yes"
				}
				if v.Description == "" {
					v.Description = "(No description)"
				}
				out.Tasks = append(out.Tasks, v)
			}
			return out, nil
		},
	}
}

// MeetingSummaryView is the generateMeetingSummary result.
type MeetingSummaryView struct {
	Message string `json:"message"`
	Method  string `json:"method,omitempty"`
	Summary string `json:"summary,omitempty"`
}

func meetingSummaryAction(d Deps) Action {
	return Action{
		Name:        "generateMeetingSummary",
		Description: "Generate a concise summary of the meeting notes",
		Parameters: []Param{
			{Name: "meetingId", Type: "string", Description: "The ID of the meeting to summarize", Required: true},
		},
		Handler: func(ctx context.Context, userID string, a Args) (any, error) {
			_, res, _, err := d.Summaries.SummarizeMeeting(ctx, userID, a.String("meetingId"), "")
			if errors.Is(err, summary.ErrEmptyNotes) {
				return MeetingSummaryView{Message: "Cannot generate summary for empty notes."}, nil
			}
			if err != nil {
				return nil, err
			}
			return MeetingSummaryView{
				Message: "Summary generated successfully!",
				Method:  string(res.Method),
				Summary: res.Summary,
			}, nil
		},
	}
}

func fullDate(date string) string {
	t, ok := calendar.MustDay(date, time.UTC)
	if !ok {
		return date
	}
	return t.Format(fullDateLayout)
}

// dueLabel renders a due date relative to now: Today, Tomorrow, "Mar 14", or
// "Mar 14, 2026" outside the current year.
func dueLabel(date string, now time.Time) string {
	t, ok := calendar.MustDay(date, now.Location())
	if !ok {
		return date
	}
	switch {
	case calendar.Today.Contains(date, now):
		return "Today"
	case calendar.Tomorrow.Contains(date, now):
		return "Tomorrow"
	case t.Year() != now.Year():
		return t.Format("Jan 2, 2006")
	}
	return t.Format("Jan 2")
}
