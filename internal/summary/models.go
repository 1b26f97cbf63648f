package summary

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultModels is the static candidate list in preference order: "latest"
// tags, dated revisions, generic names, then legacy names.
var DefaultModels = []string{
	"gemini-1.5-flash-latest",
	"gemini-1.5-pro-latest",
	"gemini-1.5-flash-001",
	"gemini-1.5-pro-001",
	"gemini-1.5-flash",
	"gemini-1.5-flash-8b",
	"gemini-1.5-pro",
	"gemini-pro",
	"gemini-1.0-pro",
}

// ModelInfo describes one model reported by a discovery call.
type ModelInfo struct {
	Name    string   // may carry a "models/" prefix
	Methods []string // supported generation methods/actions
}

// Discoverer is the optional capability of listing available models live.
// Providers that cannot list models simply do not implement it.
type Discoverer interface {
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

// Resolver builds the ordered candidate list for one request. A Resolver
// with a nil Discovery is the basic variant; with one it also consults the
// provider. Either way Candidates never fails.
type Resolver struct {
	Override  string
	Static    []string
	Discovery Discoverer
	// DiscoveryTimeout bounds one ListModels call; <= 0 means
	// DefaultDiscoveryTimeout.
	DiscoveryTimeout time.Duration
}

// DefaultDiscoveryTimeout keeps a slow listing from eating the generation
// budget.
const DefaultDiscoveryTimeout = 5 * time.Second

// NewResolver returns a Resolver. Pass a nil discoverer to disable discovery.
func NewResolver(override string, static []string, d Discoverer) *Resolver {
	if static == nil {
		static = DefaultModels
	}
	return &Resolver{Override: strings.TrimSpace(override), Static: static, Discovery: d}
}

// Candidates returns override, static list and ranked discovered names,
// deduplicated preserving first occurrence. The result may be empty.
func (r *Resolver) Candidates(ctx context.Context) []string {
	all := make([]string, 0, 1+len(r.Static))
	if r.Override != "" {
		all = append(all, r.Override)
	}
	all = append(all, r.Static...)
	all = append(all, r.discover(ctx)...)
	return dedupe(all)
}

// discover is best-effort: failures contribute zero names.
func (r *Resolver) discover(ctx context.Context) []string {
	if r.Discovery == nil {
		return nil
	}
	timeout := r.DiscoveryTimeout
	if timeout <= 0 {
		timeout = DefaultDiscoveryTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	models, err := r.Discovery.ListModels(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("model discovery failed")
		return nil
	}
	names := make([]string, 0, len(models))
	for _, m := range models {
		if m.Name == "" || !supportsGeneration(m.Methods) {
			continue
		}
		names = append(names, strings.TrimPrefix(m.Name, "models/"))
	}
	return RankDiscovered(names)
}

var generationMethodRE = regexp.MustCompile(`(?i)generate(content|text)`)

func supportsGeneration(methods []string) bool {
	for _, m := range methods {
		if generationMethodRE.MatchString(m) {
			return true
		}
	}
	return false
}

var revisionRE = regexp.MustCompile(`latest|-\d{3}\b`)

// Score ranks a discovered model name: flash over pro, 1.5 over others,
// tagged revisions slightly ahead.
func Score(name string) int {
	s := 0
	if strings.Contains(name, "flash") {
		s += 100
	}
	if strings.Contains(name, "pro") {
		s += 50
	}
	if strings.Contains(name, "1.5") {
		s += 10
	}
	if revisionRE.MatchString(name) {
		s += 5
	}
	return s
}

// RankDiscovered sorts names by descending Score, keeping input order on ties.
func RankDiscovered(names []string) []string {
	out := append([]string(nil), names...)
	sort.SliceStable(out, func(i, j int) bool { return Score(out[i]) > Score(out[j]) })
	return out
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
