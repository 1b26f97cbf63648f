package summary

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultAttemptTimeout bounds a single model call.
const DefaultAttemptTimeout = 30 * time.Second

// GenerateOptions carries sampling parameters for one generation call.
type GenerateOptions struct {
	MaxOutputTokens int32
	// Temperature is sent when non-nil; zero is a valid setting.
	Temperature *float32
}

// DefaultTemperature is the sampling temperature NewSummarizer uses.
const DefaultTemperature float32 = 0.7

// Provider issues a single generation call against one model. Implementations
// must return a *ProviderError (or a context error) so the candidate loop can
// classify failures without reading messages.
type Provider interface {
	Generate(ctx context.Context, model, prompt string, opts GenerateOptions) (string, error)
}

// Summarizer obtains AI text by trying candidate models in order.
type Summarizer struct {
	Provider       Provider
	AttemptTimeout time.Duration
	Options        GenerateOptions

	// OnAttempt, when set, observes every finished attempt (err nil on success).
	OnAttempt func(model string, err error)
}

// NewSummarizer returns a Summarizer with default timeout and sampling.
func NewSummarizer(p Provider) *Summarizer {
	temp := DefaultTemperature
	return &Summarizer{
		Provider:       p,
		AttemptTimeout: DefaultAttemptTimeout,
		Options:        GenerateOptions{MaxOutputTokens: 1000, Temperature: &temp},
	}
}

// Generate walks candidates until one succeeds and returns its text and id.
//
// Not-found and unclassified failures advance to the next candidate. Rate
// limit and timeout failures abort the walk immediately since they are not
// model specific. When candidates run out the last error is returned, or
// ErrNoCompatibleModel when nothing ran.
func (s *Summarizer) Generate(ctx context.Context, prompt string, candidates []string) (string, string, error) {
	lg := zerolog.Ctx(ctx)
	var lastErr error

	for _, model := range candidates {
		if err := ctx.Err(); err != nil {
			return "", "", NewProviderError(KindTimeout, model, err)
		}

		text, err := s.attempt(ctx, model, prompt)
		if s.OnAttempt != nil {
			s.OnAttempt(model, err)
		}
		if err == nil {
			lg.Info().Str("model", model).Msg("model succeeded")
			return text, model, nil
		}

		lastErr = err
		switch kind := KindOf(err); kind {
		case KindRateLimited, KindTimeout:
			lg.Warn().Str("model", model).Stringer("kind", kind).Err(err).Msg("model attempt aborted")
			return "", "", err
		case KindNotFound:
			lg.Debug().Str("model", model).Msg("model unavailable, trying next")
		default:
			lg.Warn().Str("model", model).Err(err).Msg("model attempt failed, trying next")
		}
	}

	if lastErr != nil {
		return "", "", lastErr
	}
	return "", "", ErrNoCompatibleModel
}

func (s *Summarizer) attempt(ctx context.Context, model, prompt string) (string, error) {
	timeout := s.AttemptTimeout
	if timeout <= 0 {
		timeout = DefaultAttemptTimeout
	}
	// The parent deadline wins when it is sooner.
	actx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := s.Provider.Generate(actx, model, prompt, s.Options)
	if err == nil {
		return text, nil
	}
	if actx.Err() != nil && KindOf(err) == KindOther {
		return "", NewProviderError(KindTimeout, model, err)
	}
	return "", err
}
