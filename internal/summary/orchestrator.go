package summary

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// Method tags where a summary came from.
type Method string

const (
	MethodAI          Method = "ai"
	MethodFallback    Method = "fallback"
	MethodRateLimited Method = "rate-limited"
)

// Defaults applied by NewOrchestrator.
const (
	DefaultMeetingName     = "Untitled Meeting"
	DefaultMaxNotes        = 15000
	DefaultFallbackReserve = 3 * time.Second
	DateLayout             = "2006-01-02"
)

// Suffixes appended to degraded summaries.
const (
	suffixLimiterWait   = "\n\n*Rate limit reached. Try again in %d seconds for AI summary.*"
	suffixUpstreamQuota = "\n\n*AI summary temporarily unavailable due to rate limits.*"
	suffixTimedOut      = "\n\n*AI summary timed out. Generated fallback summary instead.*"
	suffixFailed        = "\n\n*AI summary failed: %s. Generated fallback summary instead.*"
)

// Request is one summary request.
type Request struct {
	Notes       string
	MeetingName string
	MeetingDate string

	// Strict rejects notes longer than the orchestrator's MaxNotes instead of
	// leaving truncation to prompt construction. HTTP callers set it.
	Strict bool
}

// Result is the tagged outcome of one request. Summary is never empty.
type Result struct {
	Summary     string
	Method      Method
	Model       string
	GeneratedAt time.Time
}

// Generator is the AI path as seen by the orchestrator.
type Generator interface {
	Generate(ctx context.Context, prompt string, candidates []string) (text, model string, err error)
}

// CandidateSource produces the ordered model list for one request.
type CandidateSource interface {
	Candidates(ctx context.Context) []string
}

// Orchestrator validates a request, picks the AI or fallback path and
// always returns a tagged Result for valid input.
type Orchestrator struct {
	// Generator is nil when no provider credential is configured; every
	// request then goes straight to the fallback path.
	Generator  Generator
	Candidates CandidateSource
	Limiter    *RateWindow
	Clock      Clock

	MaxNotes    int
	PromptNotes int

	// FallbackReserve is carved off the request deadline so the AI path
	// gives up early enough for the fallback to be rendered in time.
	FallbackReserve time.Duration
}

// NewOrchestrator wires an orchestrator with default limits.
func NewOrchestrator(gen Generator, candidates CandidateSource, limiter *RateWindow, clock Clock) *Orchestrator {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Orchestrator{
		Generator:       gen,
		Candidates:      candidates,
		Limiter:         limiter,
		Clock:           clock,
		MaxNotes:        DefaultMaxNotes,
		PromptNotes:     DefaultPromptNotes,
		FallbackReserve: DefaultFallbackReserve,
	}
}

// Validate trims and defaults req, returning the normalized copy. It never
// touches the limiter or the provider.
func (o *Orchestrator) Validate(req Request) (Request, error) {
	if strings.TrimSpace(req.Notes) == "" {
		return req, ErrEmptyNotes
	}
	if req.Strict && o.MaxNotes > 0 && utf8.RuneCountInString(req.Notes) > o.MaxNotes {
		return req, fmt.Errorf("%w: %d characters allowed", ErrNotesTooLong, o.MaxNotes)
	}
	if strings.TrimSpace(req.MeetingName) == "" {
		req.MeetingName = DefaultMeetingName
	}
	if strings.TrimSpace(req.MeetingDate) == "" {
		req.MeetingDate = o.now().Format(DateLayout)
	}
	return req, nil
}

// Generate runs one request through the pipeline. The only errors returned
// are validation errors; every upstream failure degrades to a fallback.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	req, err := o.Validate(req)
	if err != nil {
		return Result{}, err
	}
	lg := zerolog.Ctx(ctx)

	if o.Generator == nil {
		lg.Info().Msg("no provider configured, using fallback summary")
		return o.fallback(req, MethodFallback, ""), nil
	}

	if o.Limiter != nil && !o.Limiter.Allow() {
		wait := o.Limiter.WaitTime()
		secs := int(math.Ceil(wait.Seconds()))
		lg.Warn().Dur("wait", wait).Msg("summary rate limit reached")
		return o.fallback(req, MethodRateLimited, fmt.Sprintf(suffixLimiterWait, secs)), nil
	}

	gctx, cancel := o.softDeadline(ctx)
	defer cancel()

	var candidates []string
	if o.Candidates != nil {
		candidates = o.Candidates.Candidates(gctx)
	}
	prompt := BuildPrompt(req.MeetingName, req.MeetingDate, req.Notes, o.PromptNotes)

	text, model, err := o.Generator.Generate(gctx, prompt, candidates)
	if err == nil && strings.TrimSpace(text) != "" {
		return Result{Summary: text, Method: MethodAI, Model: model, GeneratedAt: o.now()}, nil
	}
	if err == nil {
		err = NewProviderError(KindOther, model, fmt.Errorf("model %s returned empty text", model))
	}

	kind := KindOf(err)
	lg.Warn().Err(err).Stringer("kind", kind).Int("candidates", len(candidates)).Msg("ai summary failed, using fallback")
	switch kind {
	case KindRateLimited:
		return o.fallback(req, MethodRateLimited, suffixUpstreamQuota), nil
	case KindTimeout:
		return o.fallback(req, MethodFallback, suffixTimedOut), nil
	default:
		return o.fallback(req, MethodFallback, fmt.Sprintf(suffixFailed, err.Error())), nil
	}
}

// softDeadline shortens ctx by FallbackReserve when ctx carries a deadline.
func (o *Orchestrator) softDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	dl, ok := ctx.Deadline()
	if !ok || o.FallbackReserve <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithDeadline(ctx, dl.Add(-o.FallbackReserve))
}

func (o *Orchestrator) fallback(req Request, m Method, suffix string) Result {
	return Result{
		Summary:     Fallback(req.Notes, req.MeetingName, req.MeetingDate) + suffix,
		Method:      m,
		GeneratedAt: o.now(),
	}
}

func (o *Orchestrator) now() time.Time {
	if o.Clock == nil {
		return time.Now()
	}
	return o.Clock.Now()
}
