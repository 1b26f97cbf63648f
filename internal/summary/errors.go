// Package summary implements the meeting-summary pipeline: a sliding-window
// admission limiter, a deterministic offline summarizer, model candidate
// resolution, an AI summarizer that walks the candidate list, and the
// orchestrator that ties them together into one tagged result per request.
//
// This file defines the error taxonomy shared by the pipeline. Provider
// adapters translate their own failures into a Kind exactly once; nothing
// downstream inspects error text.
package summary

import (
	"context"
	"errors"
	"fmt"
)

// Validation errors. These are the only errors Orchestrator.Generate returns.
var (
	// ErrEmptyNotes is returned when notes are empty after trimming.
	ErrEmptyNotes = errors.New("notes cannot be empty")

	// ErrNotesTooLong is returned for strict requests whose notes exceed the
	// configured ceiling.
	ErrNotesTooLong = errors.New("notes exceed maximum length")
)

// ErrNoCompatibleModel is reported when the candidate loop never ran a model.
var ErrNoCompatibleModel = errors.New("no compatible model succeeded")

// Kind classifies a provider failure for the candidate loop.
type Kind int

const (
	// KindOther is any failure not covered below. The loop moves on.
	KindOther Kind = iota
	// KindNotFound means the model id is unknown or unsupported. The loop moves on.
	KindNotFound
	// KindRateLimited means quota was exhausted upstream. The loop aborts.
	KindRateLimited
	// KindTimeout means the call was cancelled or timed out. The loop aborts.
	KindTimeout
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limited"
	case KindTimeout:
		return "timeout"
	default:
		return "other"
	}
}

// ProviderError is a classified failure from a single model attempt.
type ProviderError struct {
	Kind  Kind
	Model string
	Err   error
}

// Error implements error.
func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("model %s: %s", e.Model, e.Kind)
	}
	return e.Err.Error()
}

// Unwrap exposes the underlying provider error.
func (e *ProviderError) Unwrap() error { return e.Err }

// NewProviderError wraps err with a kind for the given model.
func NewProviderError(kind Kind, model string, err error) *ProviderError {
	return &ProviderError{Kind: kind, Model: model, Err: err}
}

// KindOf reports the classification of err. Unclassified context
// cancellation counts as a timeout; everything else is KindOther.
func KindOf(err error) Kind {
	if err == nil {
		return KindOther
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindTimeout
	}
	return KindOther
}
