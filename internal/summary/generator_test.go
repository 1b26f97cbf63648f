package summary

import (
	"context"
	"errors"
	"testing"
	"time"
)

// scriptedProvider returns a canned outcome per model and records calls.
type scriptedProvider struct {
	outcomes map[string]error
	texts    map[string]string
	block    map[string]bool
	calls    []string
}

func (p *scriptedProvider) Generate(ctx context.Context, model, _ string, _ GenerateOptions) (string, error) {
	p.calls = append(p.calls, model)
	if p.block[model] {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if err, ok := p.outcomes[model]; ok {
		return "", err
	}
	return p.texts[model], nil
}

func notFound(model string) error {
	return NewProviderError(KindNotFound, model, errors.New("models/"+model+" is not found"))
}

func TestSummarizer_FallsThroughNotFound(t *testing.T) {
	p := &scriptedProvider{
		outcomes: map[string]error{"a": notFound("a"), "b": notFound("b")},
		texts:    map[string]string{"c": "summary from c", "d": "summary from d"},
	}
	var observed []string
	s := NewSummarizer(p)
	s.OnAttempt = func(model string, _ error) { observed = append(observed, model) }

	text, model, err := s.Generate(context.Background(), "prompt", []string{"a", "b", "c", "d"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if text != "summary from c" || model != "c" {
		t.Fatalf("got (%q, %q)", text, model)
	}
	if len(p.calls) != 3 {
		t.Fatalf("candidate d must not be attempted, calls=%v", p.calls)
	}
	if len(observed) != 3 {
		t.Fatalf("observer saw %v", observed)
	}
}

func TestSummarizer_OtherErrorContinues(t *testing.T) {
	p := &scriptedProvider{
		outcomes: map[string]error{"a": NewProviderError(KindOther, "a", errors.New("bad gateway"))},
		texts:    map[string]string{"b": "ok"},
	}
	text, _, err := NewSummarizer(p).Generate(context.Background(), "p", []string{"a", "b"})
	if err != nil || text != "ok" {
		t.Fatalf("got (%q, %v)", text, err)
	}
}

func TestSummarizer_RateLimitAborts(t *testing.T) {
	p := &scriptedProvider{
		outcomes: map[string]error{
			"a": notFound("a"),
			"b": NewProviderError(KindRateLimited, "b", errors.New("quota exceeded")),
		},
		texts: map[string]string{"c": "never"},
	}
	_, _, err := NewSummarizer(p).Generate(context.Background(), "p", []string{"a", "b", "c"})
	if KindOf(err) != KindRateLimited {
		t.Fatalf("expected rate limited, got %v", err)
	}
	if len(p.calls) != 2 {
		t.Fatalf("calls after rate limit: %v", p.calls)
	}
}

func TestSummarizer_AttemptTimeoutAborts(t *testing.T) {
	p := &scriptedProvider{
		block: map[string]bool{"slow": true},
		texts: map[string]string{"fast": "never"},
	}
	s := NewSummarizer(p)
	s.AttemptTimeout = 20 * time.Millisecond

	_, _, err := s.Generate(context.Background(), "p", []string{"slow", "fast"})
	if KindOf(err) != KindTimeout {
		t.Fatalf("expected timeout, got %v", err)
	}
	if len(p.calls) != 1 {
		t.Fatalf("timeout must abort the loop, calls=%v", p.calls)
	}
}

func TestSummarizer_ParentDeadlineShortensAttempt(t *testing.T) {
	p := &scriptedProvider{block: map[string]bool{"slow": true}}
	s := NewSummarizer(p)
	s.AttemptTimeout = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, _, err := s.Generate(ctx, "p", []string{"slow"})
	if KindOf(err) != KindTimeout {
		t.Fatalf("expected timeout, got %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatalf("attempt was not bounded by the parent deadline")
	}
}

func TestSummarizer_ExhaustedReturnsLastError(t *testing.T) {
	last := notFound("b")
	p := &scriptedProvider{outcomes: map[string]error{"a": notFound("a"), "b": last}}
	_, _, err := NewSummarizer(p).Generate(context.Background(), "p", []string{"a", "b"})
	if !errors.Is(err, last) {
		t.Fatalf("expected last error, got %v", err)
	}
}

func TestSummarizer_NoCandidates(t *testing.T) {
	_, _, err := NewSummarizer(&scriptedProvider{}).Generate(context.Background(), "p", nil)
	if !errors.Is(err, ErrNoCompatibleModel) {
		t.Fatalf("expected ErrNoCompatibleModel, got %v", err)
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(context.DeadlineExceeded) != KindTimeout {
		t.Fatalf("deadline should classify as timeout")
	}
	if KindOf(errors.New("x")) != KindOther {
		t.Fatalf("plain error should be other")
	}
	wrapped := errors.Join(errors.New("ctx"), NewProviderError(KindNotFound, "m", nil))
	if KindOf(wrapped) != KindNotFound {
		t.Fatalf("wrapped provider error should keep its kind")
	}
	if NewProviderError(KindRateLimited, "m", nil).Error() != "model m: rate_limited" {
		t.Fatalf("unexpected message for nil-cause error")
	}
}
