// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are lowercase snake_case and give clients a stable, machine-readable
// taxonomy next to the human-readable message. Generic codes mirror HTTP
// status semantics; domain codes name failures that status alone cannot
// convey.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "invalid_priority",
//	  "message": "priority must be 'low', 'medium', or 'high'"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/Vinayak2k03/NotedAI/internal/assistant"
	"github.com/Vinayak2k03/NotedAI/internal/services"
	"github.com/Vinayak2k03/NotedAI/internal/summary"
)

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeTimeout          = "timeout"

	// Domain-specific:
	ErrCodeInvalidDate     = "invalid_date"
	ErrCodeInvalidPeriod   = "invalid_period"
	ErrCodeInvalidPriority = "invalid_priority"
	ErrCodeInvalidStatus   = "invalid_status"
	ErrCodeEmptyNotes      = "empty_notes"
	ErrCodeNotesTooLong    = "notes_too_long"
	ErrCodeUnknownAction   = "unknown_action"
	ErrCodeMissingParam    = "missing_param"
	ErrCodeSummaryFailed   = "summary_failed"
	ErrCodeStoreFailed     = "store_failed"
)

// errorMapping pairs a service error with its HTTP translation.
type errorMapping struct {
	err    error
	status int
	code   string
}

var serviceErrors = []errorMapping{
	{services.ErrEmptyTitle, http.StatusBadRequest, ErrCodeBadRequest},
	{services.ErrInvalidDate, http.StatusBadRequest, ErrCodeInvalidDate},
	{services.ErrInvalidPeriod, http.StatusBadRequest, ErrCodeInvalidPeriod},
	{services.ErrInvalidPriority, http.StatusBadRequest, ErrCodeInvalidPriority},
	{services.ErrInvalidStatus, http.StatusBadRequest, ErrCodeInvalidStatus},
	{services.ErrEventNotFound, http.StatusNotFound, ErrCodeNotFound},
	{services.ErrTaskNotFound, http.StatusNotFound, ErrCodeNotFound},
	{services.ErrMeetingNotFound, http.StatusNotFound, ErrCodeNotFound},
	{summary.ErrEmptyNotes, http.StatusBadRequest, ErrCodeEmptyNotes},
	{summary.ErrNotesTooLong, http.StatusBadRequest, ErrCodeNotesTooLong},
	{assistant.ErrUnknownAction, http.StatusNotFound, ErrCodeUnknownAction},
	{assistant.ErrMissingParam, http.StatusBadRequest, ErrCodeMissingParam},
}

// classify maps err to a status and code. Unknown errors are 500 with
// fallbackCode.
func classify(err error, fallbackCode string) (int, string) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, fallbackCode
}
