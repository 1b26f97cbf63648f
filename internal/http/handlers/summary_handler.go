// Summary HTTP handlers.
//
// This file exposes the summary endpoints:
//   - POST /generate-summary         (summarize ad-hoc notes)
//   - POST /meetings/{id}/summary    (summarize a stored meeting and save it)
//
// Both race the pipeline against the request deadline. The pipeline already
// gives up on the AI path early enough to render a fallback, so the timer
// only wins when something downstream hangs; the client then gets a
// dedicated timeout response without waiting for the pipeline to unwind.
//
// Idempotency: with an Idempotency-Key the service replays a stored result
// for (user, scope, key) and the response carries Idempotency-Replayed: true.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Vinayak2k03/NotedAI/internal/domain"
	"github.com/Vinayak2k03/NotedAI/internal/http/middleware"
	"github.com/Vinayak2k03/NotedAI/internal/summary"
)

//
// DTOs
//

// GenerateSummaryRequest is the JSON payload of POST /generate-summary.
type GenerateSummaryRequest struct {
	Notes       string `json:"notes" example:"Discussed Q3 budget. Alice owns the hiring plan."`
	MeetingName string `json:"meetingName,omitempty" example:"Budget review"`
	MeetingDate string `json:"meetingDate,omitempty" example:"2025-03-12"`
}

// GenerateSummaryResponse is returned for every terminal pipeline outcome,
// degraded ones included.
type GenerateSummaryResponse struct {
	Summary   string `json:"summary"`
	Method    string `json:"method" enums:"ai,fallback,rate-limited" example:"ai"`
	Model     string `json:"model,omitempty" example:"gemini-1.5-flash"`
	Timestamp string `json:"timestamp" example:"2025-03-12T10:00:00Z"`
}

// MeetingSummaryResponse is returned by POST /meetings/{id}/summary.
type MeetingSummaryResponse struct {
	Meeting *domain.Meeting `json:"meeting"`
	GenerateSummaryResponse
}

// errDeadline marks a lost race against the request deadline.
var errDeadline = errors.New("request deadline exceeded")

// raceDeadline runs fn under a timeout and returns as soon as either fn
// finishes or the deadline passes. After a lost race ctx is cancelled and fn
// unwinds in the background. Panics in fn are returned as errors.
func raceDeadline[T any](parent context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	type outcome struct {
		v   T
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		v, err := fn(ctx)
		done <- outcome{v: v, err: err}
	}()

	select {
	case out := <-done:
		return out.v, out.err
	case <-ctx.Done():
		select {
		case out := <-done:
			return out.v, out.err
		default:
		}
		var zero T
		return zero, fmt.Errorf("%w: %w", errDeadline, ctx.Err())
	}
}

func toSummaryResponse(res summary.Result) GenerateSummaryResponse {
	return GenerateSummaryResponse{
		Summary:   res.Summary,
		Method:    string(res.Method),
		Model:     res.Model,
		Timestamp: res.GeneratedAt.UTC().Format(time.RFC3339),
	}
}

func markReplayed(c *gin.Context, replayed bool) {
	if replayed {
		c.Header(middleware.HeaderIdempotencyReplayed, "true")
	}
}

// summaryRun bundles a service call's results for raceDeadline.
type summaryRun struct {
	meeting  *domain.Meeting
	res      summary.Result
	replayed bool
}

//
// Handlers
//

// GenerateSummary godoc
// @ID          generateSummary
// @Summary     Summarize meeting notes
// @Description Produces a markdown summary of the notes. AI generation is used when configured
// @Description and within budget; otherwise a deterministic fallback summary is returned, tagged
// @Description by `method`. Degraded results are still 200.
// @Description Supports idempotency via the Idempotency-Key header (same key → same result).
// @Tags        Summaries
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID        header  string  false "User ID"  example(user123)
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.GenerateSummaryRequest  true  "Notes to summarize"
//
// @Success     200  {object}  handlers.GenerateSummaryResponse
// @Failure     400  {object}  handlers.SummaryErrorResponse  "Notes missing or too long"
// @Failure     408  {object}  handlers.SummaryErrorResponse  "Request timed out"
// @Failure     429  {object}  handlers.ErrorResponse         "Edge rate limit"
// @Failure     500  {object}  handlers.SummaryErrorResponse  "Unexpected failure"
// @Router      /generate-summary [post]
func (h *Handlers) GenerateSummary(c *gin.Context) {
	var req GenerateSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Well-formed JSON whose notes is not a string counts as missing notes.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "notes" {
			err = summary.ErrEmptyNotes
		}
		h.summaryFailure(c, err)
		return
	}

	uid, key := userID(c), idempotencyKey(c)
	run, err := raceDeadline(c.Request.Context(), h.summaryTimeout, func(ctx context.Context) (summaryRun, error) {
		res, replayed, err := h.summaries.Generate(ctx, uid, key, summary.Request{
			Notes:       req.Notes,
			MeetingName: req.MeetingName,
			MeetingDate: req.MeetingDate,
			Strict:      true,
		})
		return summaryRun{res: res, replayed: replayed}, err
	})
	if err != nil {
		h.summaryFailure(c, err)
		return
	}

	markReplayed(c, run.replayed)
	ok(c, http.StatusOK, toSummaryResponse(run.res))
}

// summaryFailure writes the flat error body of POST /generate-summary.
func (h *Handlers) summaryFailure(c *gin.Context, err error) {
	lg := middleware.LoggerFrom(c)
	switch {
	case errors.Is(err, summary.ErrEmptyNotes):
		c.AbortWithStatusJSON(http.StatusBadRequest, SummaryErrorResponse{Error: "Notes are required"})
	case errors.Is(err, summary.ErrNotesTooLong):
		c.AbortWithStatusJSON(http.StatusBadRequest, SummaryErrorResponse{Error: err.Error()})
	case errors.Is(err, errDeadline):
		lg.Warn().Err(err).Dur("timeout", h.summaryTimeout).Msg("summary request timed out")
		c.AbortWithStatusJSON(http.StatusRequestTimeout, SummaryErrorResponse{
			Error:   "Request timed out",
			Details: fmt.Sprintf("no summary within %s", h.summaryTimeout),
			Method:  "timeout",
		})
	default:
		lg.Error().Err(err).Msg("summary request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, SummaryErrorResponse{
			Error:   "Failed to generate summary",
			Details: err.Error(),
			Method:  "error",
		})
	}
}

// SummarizeMeeting godoc
// @ID          summarizeMeeting
// @Summary     Summarize a stored meeting
// @Description Summarizes the meeting's notes and stores the result on the meeting.
// @Description Notes are truncated for the prompt rather than rejected.
// @Tags        Meetings
// @Produce     json
//
// @Param       X-User-ID        header  string  false "User ID"  example(user123)
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"
// @Param       id               path    string  true  "Meeting ID"
//
// @Success     200  {object}  handlers.MeetingSummaryResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Meeting has no notes"
// @Failure     404  {object}  handlers.ErrorResponse  "Meeting not found"
// @Failure     408  {object}  handlers.ErrorResponse  "Request timed out"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /meetings/{id}/summary [post]
func (h *Handlers) SummarizeMeeting(c *gin.Context) {
	uid, key, id := userID(c), idempotencyKey(c), c.Param("id")

	run, err := raceDeadline(c.Request.Context(), h.summaryTimeout, func(ctx context.Context) (summaryRun, error) {
		m, res, replayed, err := h.summaries.SummarizeMeeting(ctx, uid, id, key)
		return summaryRun{meeting: m, res: res, replayed: replayed}, err
	})
	if err != nil {
		if errors.Is(err, errDeadline) {
			fail(c, http.StatusRequestTimeout, ErrCodeTimeout, "request timed out")
			return
		}
		failErr(c, err, ErrCodeSummaryFailed)
		return
	}

	markReplayed(c, run.replayed)
	ok(c, http.StatusOK, MeetingSummaryResponse{
		Meeting:                 run.meeting,
		GenerateSummaryResponse: toSummaryResponse(run.res),
	})
}
