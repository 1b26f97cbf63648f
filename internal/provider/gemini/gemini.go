// Package gemini adapts the Google Gen AI SDK to the summary pipeline. It is
// the one place where SDK errors are mapped onto summary.Kind.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net"
	"net/http"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/Vinayak2k03/NotedAI/internal/summary"
)

// DefaultAPIVersion is the REST version the client talks to.
const DefaultAPIVersion = "v1"

// modelsAPI is the subset of *genai.Models the adapter uses.
type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	All(ctx context.Context) iter.Seq2[*genai.Model, error]
}

// Config configures the adapter.
type Config struct {
	APIKey     string
	APIVersion string
}

// Client implements summary.Provider and summary.Discoverer on top of genai.
type Client struct {
	models modelsAPI
}

var (
	_ summary.Provider   = (*Client)(nil)
	_ summary.Discoverer = (*Client)(nil)
)

// New builds a Client. An empty API key is an error; callers that want the
// no-credential path should not construct a provider at all.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini: api key is required")
	}
	version := cfg.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{APIVersion: version},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	return &Client{models: c.Models}, nil
}

// Generate issues one GenerateContent call and returns the response text.
func (c *Client) Generate(ctx context.Context, model, prompt string, opts summary.GenerateOptions) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if opts.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = opts.MaxOutputTokens
	}
	if opts.Temperature != nil {
		cfg.Temperature = genai.Ptr(*opts.Temperature)
	}

	resp, err := c.models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	if err != nil {
		return "", classify(ctx, model, err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", summary.NewProviderError(summary.KindOther, model, fmt.Errorf("model %s returned an empty response", model))
	}
	zerolog.Ctx(ctx).Debug().Str("model", model).Int("chars", len(text)).Msg("gemini response")
	return text, nil
}

// ListModels lists models visible to the API key.
func (c *Client) ListModels(ctx context.Context) ([]summary.ModelInfo, error) {
	var out []summary.ModelInfo
	for m, err := range c.models.All(ctx) {
		if err != nil {
			return out, fmt.Errorf("gemini: list models: %w", err)
		}
		if m == nil {
			continue
		}
		out = append(out, summary.ModelInfo{Name: m.Name, Methods: m.SupportedActions})
	}
	return out, nil
}

var unsupportedRE = regexp.MustCompile(`(?i)(not found|not supported|unsupported|is not available)`)

// classify maps an SDK error onto a summary kind.
func classify(ctx context.Context, model string, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return summary.NewProviderError(summary.KindTimeout, model, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return summary.NewProviderError(summary.KindTimeout, model, err)
	}

	apiErr, ok := asAPIError(err)
	if !ok {
		return summary.NewProviderError(summary.KindOther, model, err)
	}
	return summary.NewProviderError(kindFor(apiErr), model, err)
}

func kindFor(e genai.APIError) summary.Kind {
	switch {
	case e.Code == http.StatusTooManyRequests || e.Status == "RESOURCE_EXHAUSTED":
		return summary.KindRateLimited
	case e.Code == http.StatusRequestTimeout || e.Code == http.StatusGatewayTimeout || e.Status == "DEADLINE_EXCEEDED":
		return summary.KindTimeout
	case e.Code == http.StatusNotFound || e.Status == "NOT_FOUND":
		return summary.KindNotFound
	case e.Code == http.StatusBadRequest && unsupportedRE.MatchString(e.Message):
		return summary.KindNotFound
	default:
		return summary.KindOther
	}
}

func asAPIError(err error) (genai.APIError, bool) {
	var v genai.APIError
	if errors.As(err, &v) {
		return v, true
	}
	var p *genai.APIError
	if errors.As(err, &p) && p != nil {
		return *p, true
	}
	return genai.APIError{}, false
}
