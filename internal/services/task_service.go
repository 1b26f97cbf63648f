// Package services – TaskService
//
// This file implements TaskService, which owns a user's to-do list. Tasks can
// be addressed by id or, for conversational callers, by case-insensitive
// title.
package services

import (
	"context"
	"fmt"
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

// TaskInput carries user-supplied task fields. Empty Priority means medium;
// empty DueDate means today.
type TaskInput struct {
	Title       string
	Description string
	Priority    string
	DueDate     string
	Tags        []string
}

// TaskFilter narrows List. Zero-value fields do not filter.
type TaskFilter struct {
	Status   string // all | active | completed
	Priority string
	Period   string // today | tomorrow | this week | overdue
	Tag      string
}

// TaskList is a filtered view of the task list with a one-line description.
type TaskList struct {
	Summary string        `json:"summary"`
	Tasks   []domain.Task `json:"tasks"`
}

// TaskService manages to-do items.
type TaskService struct {
	DB  *gorm.DB
	Now func() time.Time

	mu sync.Mutex
}

// NewTaskService constructs a TaskService using the wall clock.
func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{DB: db, Now: time.Now}
}

// Add validates in and appends a new, incomplete task.
func (s *TaskService) Add(ctx context.Context, userID string, in TaskInput) (*domain.Task, error) {
	ctx, span := otel.Tracer("services/TaskService").Start(ctx, "Add",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	prio := domain.Priority(strings.ToLower(strings.TrimSpace(in.Priority)))
	if prio == "" {
		prio = domain.PriorityMedium
	}
	if !prio.Valid() {
		return nil, ErrInvalidPriority
	}
	due := s.now().Format(calendar.DateLayout)
	if strings.TrimSpace(in.DueDate) != "" {
		d, _, err := calendar.ParseDate(in.DueDate, "")
		if err != nil {
			return nil, err
		}
		due = d
	}
	tags := make([]string, 0, len(in.Tags))
	for _, t := range in.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	task := domain.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		DueDate:     due,
		Priority:    prio,
		Tags:        tags,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := updateList(ctx, s.DB, userID, domain.KeyTasks, func(tasks []domain.Task) ([]domain.Task, bool, error) {
		return append(tasks, task), true, nil
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes the task matching ref by id, else by title, and returns it.
func (s *TaskService) Delete(ctx context.Context, userID, ref string) (*domain.Task, error) {
	ctx, span := otel.Tracer("services/TaskService").Start(ctx, "Delete",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed domain.Task
	err := updateList(ctx, s.DB, userID, domain.KeyTasks, func(tasks []domain.Task) ([]domain.Task, bool, error) {
		i := findTask(tasks, ref)
		if i < 0 {
			return nil, false, fmt.Errorf("%w: %s", ErrTaskNotFound, ref)
		}
		removed = tasks[i]
		return append(tasks[:i], tasks[i+1:]...), true, nil
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

// Toggle flips completion of the task matching ref and returns the new state.
func (s *TaskService) Toggle(ctx context.Context, userID, ref string) (*domain.Task, error) {
	ctx, span := otel.Tracer("services/TaskService").Start(ctx, "Toggle",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	var out domain.Task
	err := updateList(ctx, s.DB, userID, domain.KeyTasks, func(tasks []domain.Task) ([]domain.Task, bool, error) {
		i := findTask(tasks, ref)
		if i < 0 {
			return nil, false, fmt.Errorf("%w: %s", ErrTaskNotFound, ref)
		}
		tasks[i].Completed = !tasks[i].Completed
		out = tasks[i]
		return tasks, true, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns tasks matching f together with a description of the filters
// applied, e.g. "Found 2 tasks. Filtered by: active, high priority".
func (s *TaskService) List(ctx context.Context, userID string, f TaskFilter) (TaskList, error) {
	ctx, span := otel.Tracer("services/TaskService").Start(ctx, "List",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	var criteria []string
	var keep []func(domain.Task) bool

	switch st := strings.ToLower(strings.TrimSpace(f.Status)); st {
	case "", "all":
	case "active":
		keep = append(keep, func(t domain.Task) bool { return !t.Completed })
		criteria = append(criteria, st)
	case "completed":
		keep = append(keep, func(t domain.Task) bool { return t.Completed })
		criteria = append(criteria, st)
	default:
		return TaskList{}, ErrInvalidStatus
	}

	if p := domain.Priority(strings.ToLower(strings.TrimSpace(f.Priority))); p != "" {
		if !p.Valid() {
			return TaskList{}, ErrInvalidPriority
		}
		keep = append(keep, func(t domain.Task) bool { return t.Priority == p })
		criteria = append(criteria, string(p)+" priority")
	}

	if strings.TrimSpace(f.Period) != "" {
		p, err := calendar.ParsePeriod(f.Period)
		if err != nil {
			return TaskList{}, ErrInvalidPeriod
		}
		now := s.now()
		switch p {
		case calendar.Today, calendar.Tomorrow, calendar.ThisWeek:
			keep = append(keep, func(t domain.Task) bool { return p.Contains(t.DueDate, now) })
			criteria = append(criteria, "due "+string(p))
		case calendar.Overdue:
			keep = append(keep, func(t domain.Task) bool { return !t.Completed && p.Contains(t.DueDate, now) })
			criteria = append(criteria, string(p))
		default:
			return TaskList{}, ErrInvalidPeriod
		}
	}

	if tag := strings.TrimSpace(f.Tag); tag != "" {
		keep = append(keep, func(t domain.Task) bool { return hasTag(t.Tags, tag) })
		criteria = append(criteria, fmt.Sprintf("tagged with %q", tag))
	}

	tasks, err := loadList[domain.Task](ctx, s.DB, userID, domain.KeyTasks)
	if err != nil {
		return TaskList{}, err
	}
	out := make([]domain.Task, 0, len(tasks))
next:
	for _, t := range tasks {
		for _, k := range keep {
			if !k(t) {
				continue next
			}
		}
		out = append(out, t)
	}

	desc := "All tasks"
	if len(criteria) > 0 {
		desc = "Filtered by: " + strings.Join(criteria, ", ")
	}
	return TaskList{
		Summary: fmt.Sprintf("Found %d tasks. %s", len(out), desc),
		Tasks:   out,
	}, nil
}

func (s *TaskService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// findTask returns the index of the task whose id is ref, else the first
// whose title folds to ref, else -1.
func findTask(tasks []domain.Task, ref string) int {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1
	}
	for i, t := range tasks {
		if t.ID == ref {
			return i
		}
	}
	for i, t := range tasks {
		if equalFold(t.Title, ref) {
			return i
		}
	}
	return -1
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
