// Package domain defines the data models for calendar events, tasks and
// meetings, and the GORM rows that persist them. Entities are stored as JSON
// collections keyed by (user, kind); only Collection and Idempotency are
// mapped to tables.
package domain

import "time"

// Collection keys.
const (
	KeyEvents   = "events"
	KeyTasks    = "tasks"
	KeyMeetings = "meetings"
)

// Collection is one user's serialized list of entities of a single kind.
// Writes replace the whole payload (last write wins).
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - UserID / Key: unique pair identifying the collection.
//   - Payload: JSON array of the entities.
//   - Size: number of entities in Payload, kept for cheap ETags.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Collection struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	UserID    string    `gorm:"type:varchar(64);not null;uniqueIndex:ux_user_collection,priority:1"`
	Key       string    `gorm:"type:varchar(32);not null;uniqueIndex:ux_user_collection,priority:2"`
	Payload   string    `gorm:"type:text;not null"`
	Size      int       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the database table name for Collection.
func (Collection) TableName() string { return "collections" }

// Event is a calendar entry. Date is YYYY-MM-DD; Time is HH:MM and empty for
// all-day events.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color"`
}

// Priority is a task priority.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a to-do item.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	DueDate     string   `json:"dueDate"`
	Completed   bool     `json:"completed"`
	Priority    Priority `json:"priority"`
	Tags        []string `json:"tags"`
}

// Meeting holds notes and, once generated, their summary.
type Meeting struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Date          string     `json:"date"`
	Time          string     `json:"time,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	Summary       string     `json:"summary,omitempty"`
	SummaryMethod string     `json:"summaryMethod,omitempty"`
	SummarizedAt  *time.Time `json:"summarizedAt,omitempty"`
}
