package summary

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

type fakeDiscoverer struct {
	models []ModelInfo
	err    error
	calls  int
}

func (f *fakeDiscoverer) ListModels(context.Context) ([]ModelInfo, error) {
	f.calls++
	return f.models, f.err
}

func TestScore(t *testing.T) {
	cases := map[string]int{
		"gemini-1.5-flash-latest": 115,
		"gemini-1.5-pro-002":      65,
		"gemini-2.0-flash":        100,
		"gemini-pro":              50,
		"text-embedding-004":      5,
		"aqa":                     0,
	}
	for name, want := range cases {
		if got := Score(name); got != want {
			t.Errorf("Score(%q) = %d, want %d", name, got, want)
		}
	}
}

func TestRankDiscovered_StableOnTies(t *testing.T) {
	in := []string{"gemini-pro", "gemini-2.0-flash", "other-pro", "gemini-1.5-flash-001"}
	got := RankDiscovered(in)
	want := []string{"gemini-1.5-flash-001", "gemini-2.0-flash", "gemini-pro", "other-pro"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if in[0] != "gemini-pro" {
		t.Fatalf("input slice must not be reordered")
	}
}

func TestResolver_BasicVariant(t *testing.T) {
	r := NewResolver("  my-model ", []string{"a", "my-model", "b"}, nil)
	got := r.Candidates(context.Background())
	want := []string{"my-model", "a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestResolver_DefaultsToStaticList(t *testing.T) {
	r := NewResolver("", nil, nil)
	got := r.Candidates(context.Background())
	if !reflect.DeepEqual(got, DefaultModels) {
		t.Fatalf("got %v, want %v", got, DefaultModels)
	}
}

func TestResolver_DiscoveryFiltersStripsAndRanks(t *testing.T) {
	d := &fakeDiscoverer{models: []ModelInfo{
		{Name: "models/gemini-2.0-pro", Methods: []string{"generateContent"}},
		{Name: "models/embedding-001", Methods: []string{"embedContent"}},
		{Name: "models/gemini-2.0-flash", Methods: []string{"countTokens", "generateContent"}},
		{Name: "models/a", Methods: []string{"generate"}},
		{Name: "models/gemini-pro", Methods: []string{"generateContent"}},
		{Name: "", Methods: []string{"generateContent"}},
	}}
	r := NewResolver("", []string{"gemini-pro"}, d)

	got := r.Candidates(context.Background())
	want := []string{"gemini-pro", "gemini-2.0-flash", "gemini-2.0-pro"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if d.calls != 1 {
		t.Fatalf("discovery calls = %d, want 1", d.calls)
	}
}

func TestResolver_DiscoveryErrorIsIgnored(t *testing.T) {
	d := &fakeDiscoverer{err: errors.New("boom")}
	r := NewResolver("", []string{"x"}, d)
	got := r.Candidates(context.Background())
	if !reflect.DeepEqual(got, []string{"x"}) {
		t.Fatalf("got %v", got)
	}
}

// blockingDiscoverer never answers before its context ends.
type blockingDiscoverer struct{ hadDeadline bool }

func (b *blockingDiscoverer) ListModels(ctx context.Context) ([]ModelInfo, error) {
	_, b.hadDeadline = ctx.Deadline()
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestResolver_DiscoveryIsBounded(t *testing.T) {
	d := &blockingDiscoverer{}
	r := NewResolver("", []string{"x"}, d)
	r.DiscoveryTimeout = 20 * time.Millisecond

	start := time.Now()
	got := r.Candidates(context.Background())
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("discovery took %v", elapsed)
	}
	if !d.hadDeadline {
		t.Fatalf("ListModels ran without a deadline")
	}
	if !reflect.DeepEqual(got, []string{"x"}) {
		t.Fatalf("got %v", got)
	}
}

func TestResolver_CanBeEmpty(t *testing.T) {
	r := NewResolver("", []string{}, &fakeDiscoverer{})
	if got := r.Candidates(context.Background()); len(got) != 0 {
		t.Fatalf("expected no candidates, got %v", got)
	}
}

func TestTruncateNotes(t *testing.T) {
	if got := TruncateNotes("short", 10); got != "short" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	got := TruncateNotes("héllo world", 5)
	if got != "héllo"+TruncationMarker {
		t.Fatalf("got %q", got)
	}
	if got := TruncateNotes("abc", 0); got != "abc" {
		t.Fatalf("zero budget should disable truncation, got %q", got)
	}
}

func TestBuildPrompt_ContainsHeadingsAndMeta(t *testing.T) {
	p := BuildPrompt("Sync", "2025-03-14", "line one", DefaultPromptNotes)
	for _, want := range []string{"Meeting: Sync", "Date: 2025-03-14", "line one", "# Summary", "## Key Points", "## Decisions Made", "## Action Items", "under 500 words"} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}
