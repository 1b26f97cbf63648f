// Package services – SummaryService
//
// This file implements SummaryService, the application-level entry point of
// the summary pipeline. It wraps the orchestrator with tracing, metrics and
// idempotent replay, and writes meeting summaries back to their meeting.
//
// Idempotency: when a key is supplied and a stored result exists for
// (user, scope, key) the stored result is returned without running the
// pipeline, so a replay never spends a rate-limit slot.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/Vinayak2k03/NotedAI/internal/domain"
	"github.com/Vinayak2k03/NotedAI/internal/repo"
	"github.com/Vinayak2k03/NotedAI/internal/summary"
)

// Idempotency scopes.
const (
	ScopeGenerateSummary = "generate-summary"
	scopeMeetingSummary  = "meeting-summary:"
)

// DefaultIdempotencyTTL is how long a stored summary can be replayed.
const DefaultIdempotencyTTL = 24 * time.Hour

// SummaryGenerator runs one request through the pipeline.
type SummaryGenerator interface {
	Generate(ctx context.Context, req summary.Request) (summary.Result, error)
}

// SummaryObserver records pipeline outcomes.
type SummaryObserver interface {
	ObserveSummary(method string, elapsed time.Duration)
}

// SummaryService coordinates summary generation.
type SummaryService struct {
	Generator SummaryGenerator
	Meetings  *MeetingService

	// DB backs idempotency records; nil disables replay.
	DB             *gorm.DB
	IdempotencyTTL time.Duration

	Observer SummaryObserver
}

// NewSummaryService constructs a SummaryService with the default replay TTL.
func NewSummaryService(db *gorm.DB, gen SummaryGenerator, meetings *MeetingService) *SummaryService {
	return &SummaryService{
		Generator:      gen,
		Meetings:       meetings,
		DB:             db,
		IdempotencyTTL: DefaultIdempotencyTTL,
	}
}

// storedResult is the replay payload kept in idempotency records.
type storedResult struct {
	Summary     string    `json:"summary"`
	Method      string    `json:"method"`
	Model       string    `json:"model,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Generate produces a summary for req. replayed reports whether the result
// came from a previous request with the same idempotency key. The only
// errors are validation errors from the orchestrator and storage failures.
func (s *SummaryService) Generate(ctx context.Context, userID, idemKey string, req summary.Request) (res summary.Result, replayed bool, err error) {
	ctx, span := otel.Tracer("services/SummaryService").Start(ctx, "Generate",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Int("notes.len", len(req.Notes)),
			attribute.Bool("strict", req.Strict),
		),
	)
	defer span.End()

	return s.run(ctx, span, userID, ScopeGenerateSummary, idemKey, req)
}

// SummarizeMeeting summarizes the stored notes of meeting id and records the
// result on the meeting.
func (s *SummaryService) SummarizeMeeting(ctx context.Context, userID, id, idemKey string) (*domain.Meeting, summary.Result, bool, error) {
	ctx, span := otel.Tracer("services/SummaryService").Start(ctx, "SummarizeMeeting",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("meeting.id", id),
		),
	)
	defer span.End()

	m, err := s.Meetings.Get(ctx, userID, id)
	if err != nil {
		return nil, summary.Result{}, false, err
	}
	res, replayed, err := s.run(ctx, span, userID, scopeMeetingSummary+id, idemKey, summary.Request{
		Notes:       m.Notes,
		MeetingName: m.Name,
		MeetingDate: m.Date,
	})
	if err != nil {
		return nil, summary.Result{}, false, err
	}
	if replayed {
		return m, res, true, nil
	}
	m, err = s.Meetings.SetSummary(ctx, userID, id, res)
	if err != nil {
		return nil, summary.Result{}, false, err
	}
	return m, res, false, nil
}

func (s *SummaryService) run(ctx context.Context, span trace.Span, userID, scope, idemKey string, req summary.Request) (summary.Result, bool, error) {
	lg := zerolog.Ctx(ctx)

	if res, ok := s.replay(ctx, userID, scope, idemKey); ok {
		span.SetAttributes(attribute.Bool("idempotency.replayed", true))
		lg.Debug().Str("scope", scope).Msg("summary replayed")
		return res, true, nil
	}

	start := time.Now()
	res, err := s.Generator.Generate(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return summary.Result{}, false, err
	}
	elapsed := time.Since(start)

	span.SetAttributes(
		attribute.String("summary.method", string(res.Method)),
		attribute.String("summary.model", res.Model),
	)
	if s.Observer != nil {
		s.Observer.ObserveSummary(string(res.Method), elapsed)
	}
	lg.Info().
		Str("method", string(res.Method)).
		Str("model", res.Model).
		Dur("elapsed", elapsed).
		Msg("summary generated")

	s.remember(ctx, userID, scope, idemKey, res)
	return res, false, nil
}

func (s *SummaryService) replay(ctx context.Context, userID, scope, key string) (summary.Result, bool) {
	if s.DB == nil || key == "" {
		return summary.Result{}, false
	}
	rec, err := repo.GetIdempotency(ctx, s.DB, userID, scope, key, time.Now().UTC())
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("idempotency lookup failed")
		}
		return summary.Result{}, false
	}
	var sr storedResult
	if err := json.Unmarshal(rec.Body, &sr); err != nil {
		return summary.Result{}, false
	}
	return summary.Result{
		Summary:     sr.Summary,
		Method:      summary.Method(sr.Method),
		Model:       sr.Model,
		GeneratedAt: sr.GeneratedAt,
	}, true
}

// remember stores res for replay. Failures are logged, not returned.
func (s *SummaryService) remember(ctx context.Context, userID, scope, key string, res summary.Result) {
	if s.DB == nil || key == "" {
		return
	}
	body, err := json.Marshal(storedResult{
		Summary:     res.Summary,
		Method:      string(res.Method),
		Model:       res.Model,
		GeneratedAt: res.GeneratedAt,
	})
	if err != nil {
		return
	}
	ttl := s.IdempotencyTTL
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	// The request context may already be cancelled when the caller gave up.
	_, err = repo.CreateIdempotency(context.WithoutCancel(ctx), s.DB, userID, scope, key, http.StatusOK, body, ttl)
	if err != nil && !errors.Is(err, repo.ErrDuplicate) {
		zerolog.Ctx(ctx).Warn().Err(err).Str("scope", scope).Msg("idempotency store failed")
	}
}

// HasReplay reports whether a stored result exists for the key.
func (s *SummaryService) HasReplay(ctx context.Context, userID, scope, key string) bool {
	_, ok := s.replay(ctx, userID, scope, key)
	return ok
}

// MeetingSummaryScope is the idempotency scope of meeting id's summary.
func MeetingSummaryScope(id string) string { return scopeMeetingSummary + id }
