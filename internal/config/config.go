// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, storage, the summary pipeline, rate
// limiting, and observability.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	cenv "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/Vinayak2k03/NotedAI/internal/sysutil"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// SummaryConfig configures the summary pipeline and its provider.
type SummaryConfig struct {
	APIKey     string // GOOGLE_API_KEY or GEMINI_API_KEY; empty disables the AI path
	Model      string // explicit model override, tried first
	APIVersion string
	Discovery  bool // consult ListModels for extra candidates

	MaxRequests     int           // admitted AI calls per Window
	Window          time.Duration // sliding window length
	AttemptTimeout  time.Duration // per-candidate bound
	RequestTimeout  time.Duration // end-to-end bound at the HTTP edge
	FallbackReserve time.Duration // carved off RequestTimeout for the fallback path

	MaxNotes        int // HTTP ceiling, runes
	PromptNotes     int // prompt truncation budget, runes
	MaxOutputTokens int32
	Temperature     float32
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // must outlive Summary.RequestTimeout
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// Storage
	DBPath string // SQLite DSN or path

	// Summary pipeline
	Summary SummaryConfig

	// Rate limiting (edge, per identity)
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Idempotency
	IdempotencyTTL       time.Duration // how long a given Idempotency-Key is valid
	IdempotencyPurgeCron string        // cron spec for purging expired keys

	// Observability
	OTEL OTELConfig
}

// envConfig mirrors the environment. Booleans are read as strings so the
// usual yes/on/1 spellings keep working.
type envConfig struct {
	Port              string        `env:"PORT" envDefault:"8080"`
	ReadTimeout       time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"10s"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT" envDefault:"75s"`
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	MaxHeaderBytes    int           `env:"MAX_HEADER_BYTES" envDefault:"1048576"`
	GinMode           string        `env:"GIN_MODE" envDefault:"release"`

	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty      string `env:"LOG_PRETTY" envDefault:"false"`
	SwaggerEnabled string `env:"SWAGGER_ENABLED" envDefault:"false"`
	APIBasePath    string `env:"API_BASE_PATH" envDefault:"/api"`

	DBPath string `env:"DB_PATH" envDefault:"file:notedai?mode=memory&cache=shared"`

	GoogleAPIKey     string        `env:"GOOGLE_API_KEY"`
	GeminiAPIKey     string        `env:"GEMINI_API_KEY"`
	GeminiModel      string        `env:"GEMINI_MODEL"`
	PublicModel      string        `env:"NEXT_PUBLIC_GEMINI_MODEL"`
	GeminiAPIVersion string        `env:"GEMINI_API_VERSION" envDefault:"v1"`
	ModelDiscovery   string        `env:"MODEL_DISCOVERY" envDefault:"true"`
	MaxRequests      int           `env:"SUMMARY_MAX_REQUESTS" envDefault:"8"`
	Window           time.Duration `env:"SUMMARY_WINDOW" envDefault:"60s"`
	AttemptTimeout   time.Duration `env:"SUMMARY_ATTEMPT_TIMEOUT" envDefault:"30s"`
	RequestTimeout   time.Duration `env:"SUMMARY_REQUEST_TIMEOUT" envDefault:"45s"`
	FallbackReserve  time.Duration `env:"SUMMARY_FALLBACK_RESERVE" envDefault:"3s"`
	MaxNotes         int           `env:"SUMMARY_MAX_NOTES" envDefault:"15000"`
	PromptNotes      int           `env:"SUMMARY_PROMPT_NOTES" envDefault:"3000"`
	MaxOutputTokens  int32         `env:"SUMMARY_MAX_OUTPUT_TOKENS" envDefault:"1000"`
	Temperature      float32       `env:"SUMMARY_TEMPERATURE" envDefault:"0.7"`

	RateRPS   float64 `env:"RATE_RPS" envDefault:"5"`
	RateBurst int     `env:"RATE_BURST" envDefault:"10"`

	CORSAllowedOrigins string        `env:"CORS_ALLOWED_ORIGINS"`
	EnableHSTS         string        `env:"ENABLE_HSTS" envDefault:"false"`
	HSTSMaxAge         time.Duration `env:"HSTS_MAX_AGE" envDefault:"4320h"`

	IdempotencyTTL       time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`
	IdempotencyPurgeCron string        `env:"IDEMPOTENCY_PURGE_CRON" envDefault:"@every 10m"`

	OTELEnabled     string  `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`
	OTELInsecure    string  `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
	OTELServiceName string  `env:"OTEL_SERVICE_NAME" envDefault:"notedai"`
	OTELSampleRatio float64 `env:"OTEL_TRACES_SAMPLER_ARG" envDefault:"1.0"`
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads an optional .env file, parses environment variables, applies
// defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	var raw envConfig
	if err := cenv.Parse(&raw); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	cfg := Config{
		Port:              strings.TrimSpace(raw.Port),
		ReadTimeout:       raw.ReadTimeout,
		ReadHeaderTimeout: raw.ReadHeaderTimeout,
		WriteTimeout:      raw.WriteTimeout,
		IdleTimeout:       raw.IdleTimeout,
		MaxHeaderBytes:    raw.MaxHeaderBytes,
		GinMode:           strings.ToLower(strings.TrimSpace(raw.GinMode)),

		LogLevel:       strings.ToLower(strings.TrimSpace(raw.LogLevel)),
		LogPretty:      sysutil.IsTruthy(raw.LogPretty),
		SwaggerEnabled: sysutil.IsTruthy(raw.SwaggerEnabled),
		APIBasePath:    normalizeBasePath(raw.APIBasePath),

		DBPath: strings.TrimSpace(raw.DBPath),

		Summary: SummaryConfig{
			APIKey:          strings.TrimSpace(sysutil.FirstNonEmpty(raw.GoogleAPIKey, raw.GeminiAPIKey)),
			Model:           strings.TrimSpace(sysutil.FirstNonEmpty(raw.GeminiModel, raw.PublicModel)),
			APIVersion:      strings.TrimSpace(raw.GeminiAPIVersion),
			Discovery:       sysutil.IsTruthy(raw.ModelDiscovery),
			MaxRequests:     raw.MaxRequests,
			Window:          raw.Window,
			AttemptTimeout:  raw.AttemptTimeout,
			RequestTimeout:  raw.RequestTimeout,
			FallbackReserve: raw.FallbackReserve,
			MaxNotes:        raw.MaxNotes,
			PromptNotes:     raw.PromptNotes,
			MaxOutputTokens: raw.MaxOutputTokens,
			Temperature:     raw.Temperature,
		},

		RateRPS:   raw.RateRPS,
		RateBurst: raw.RateBurst,

		CORS: CORSConfig{
			AllowedOrigins: splitCSV(raw.CORSAllowedOrigins),
		},
		Security: SecurityConfig{
			EnableHSTS: sysutil.IsTruthy(raw.EnableHSTS),
			HSTSMaxAge: raw.HSTSMaxAge,
		},

		IdempotencyTTL:       raw.IdempotencyTTL,
		IdempotencyPurgeCron: strings.TrimSpace(raw.IdempotencyPurgeCron),

		OTEL: OTELConfig{
			Enabled:     sysutil.IsTruthy(raw.OTELEnabled),
			Endpoint:    strings.TrimSpace(raw.OTELEndpoint),
			Insecure:    sysutil.IsTruthy(raw.OTELInsecure),
			ServiceName: strings.TrimSpace(raw.OTELServiceName),
			SampleRatio: raw.OTELSampleRatio,
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if c.ReadTimeout <= 0 || c.ReadHeaderTimeout <= 0 || c.WriteTimeout <= 0 || c.IdleTimeout <= 0 {
		return errors.New("timeouts must be positive durations")
	}
	if c.MaxHeaderBytes <= 0 {
		return errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if c.DBPath == "" {
		return errors.New("DB_PATH must not be empty")
	}
	if err := c.Summary.validate(); err != nil {
		return err
	}
	if c.WriteTimeout <= c.Summary.RequestTimeout {
		return errors.New("WRITE_TIMEOUT must exceed SUMMARY_REQUEST_TIMEOUT")
	}
	if c.RateRPS < 0 {
		return errors.New("RATE_RPS must be >= 0")
	}
	if c.RateBurst < 1 {
		return errors.New("RATE_BURST must be >= 1")
	}
	if c.Security.HSTSMaxAge < 0 {
		return errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if c.IdempotencyTTL <= 0 {
		return errors.New("IDEMPOTENCY_TTL must be > 0")
	}
	if _, err := cron.ParseStandard(c.IdempotencyPurgeCron); err != nil {
		return fmt.Errorf("IDEMPOTENCY_PURGE_CRON invalid: %w", err)
	}
	if c.OTEL.SampleRatio < 0 || c.OTEL.SampleRatio > 1 {
		return errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}
	return nil
}

func (s SummaryConfig) validate() error {
	if s.MaxRequests < 1 {
		return errors.New("SUMMARY_MAX_REQUESTS must be >= 1")
	}
	if s.Window <= 0 || s.AttemptTimeout <= 0 || s.RequestTimeout <= 0 {
		return errors.New("summary window and timeouts must be positive durations")
	}
	if s.FallbackReserve < 0 || s.FallbackReserve >= s.RequestTimeout {
		return errors.New("SUMMARY_FALLBACK_RESERVE must be in [0, SUMMARY_REQUEST_TIMEOUT)")
	}
	if s.MaxNotes < 1 || s.PromptNotes < 1 {
		return errors.New("SUMMARY_MAX_NOTES and SUMMARY_PROMPT_NOTES must be >= 1")
	}
	if s.MaxOutputTokens < 1 {
		return errors.New("SUMMARY_MAX_OUTPUT_TOKENS must be >= 1")
	}
	if s.Temperature < 0 || s.Temperature > 2 {
		return errors.New("SUMMARY_TEMPERATURE must be in [0,2]")
	}
	return nil
}

// AIEnabled reports whether a provider credential is configured.
func (s SummaryConfig) AIEnabled() bool { return s.APIKey != "" }

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
