// Package services defines the business logic for calendar events, tasks,
// meetings and meeting summaries. This file centralizes common service-level
// error values so that they can be consistently returned by service methods
// and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import (
	"errors"

	"github.com/Vinayak2k03/NotedAI/internal/calendar"
)

var (
	// ErrEmptyTitle is returned when an event or task is created without a title.
	ErrEmptyTitle = errors.New("title is required")

	// ErrInvalidDate is returned when a date or time cannot be parsed.
	ErrInvalidDate = calendar.ErrInvalidDate

	// ErrInvalidPeriod is returned for an unknown period name.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrInvalidPriority is returned for a priority outside low/medium/high.
	ErrInvalidPriority = errors.New("priority must be 'low', 'medium', or 'high'")

	// ErrInvalidStatus is returned for a task status filter outside all/active/completed.
	ErrInvalidStatus = errors.New("status must be 'all', 'active', or 'completed'")

	// ErrEventNotFound indicates that no event matches the given id.
	ErrEventNotFound = errors.New("event not found")

	// ErrTaskNotFound indicates that no task matches the given id or title.
	ErrTaskNotFound = errors.New("task not found")

	// ErrMeetingNotFound indicates that no meeting matches the given id.
	ErrMeetingNotFound = errors.New("meeting not found")
)
