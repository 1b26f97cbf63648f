// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, identity, logging/redaction, panic recovery,
// compression, metrics, idempotency, rate limiting, CORS and security
// headers.
package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/Vinayak2k03/NotedAI/internal/assistant"
	"github.com/Vinayak2k03/NotedAI/internal/config"
	"github.com/Vinayak2k03/NotedAI/internal/http/handlers"
	"github.com/Vinayak2k03/NotedAI/internal/http/middleware"
	"github.com/Vinayak2k03/NotedAI/internal/repo"
	"github.com/Vinayak2k03/NotedAI/internal/services"
)

// maxBodyBytes caps request bodies for every endpoint.
const maxBodyBytes = 1 << 20

// Deps are the collaborators RegisterRoutes cannot derive from config.
type Deps struct {
	DB *gorm.DB

	// Generator runs the summary pipeline (normally *summary.Orchestrator).
	Generator services.SummaryGenerator
	// Observer records pipeline outcomes; nil disables it.
	Observer services.SummaryObserver

	// Registry collects HTTP metrics and backs /metrics. Nil means a fresh
	// registry.
	Registry *prometheus.Registry
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine, builds the application services on d.DB, and mounts the public API
// under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Identity: resolve X-User-ID before anything logs or keys on it
//  4. RedactingLogger: structured logs with PII scrubbing
//  5. Recovery: capture panics after logger
//  6. Body size limiter and gzip
//  7. Metrics
//  8. Idempotency validator (before rate limiter to allow bypass on replay)
//  9. Rate limiter (per user/IP, bypass on replay)
//  10. CORS and security headers
func RegisterRoutes(r *gin.Engine, d Deps, cfg config.Config) error {
	r.HandleMethodNotAllowed = true

	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	apiBase := cfg.APIBasePath
	if apiBase == "/" {
		apiBase = ""
	}

	// Services
	events := services.NewEventService(d.DB)
	tasks := services.NewTaskService(d.DB)
	meetings := services.NewMeetingService(d.DB)
	summaries := services.NewSummaryService(d.DB, d.Generator, meetings)
	if cfg.IdempotencyTTL > 0 {
		summaries.IdempotencyTTL = cfg.IdempotencyTTL
	}
	summaries.Observer = d.Observer

	actions := assistant.NewRegistry()
	if err := assistant.RegisterDefaults(actions, assistant.Deps{
		Events:    events,
		Tasks:     tasks,
		Summaries: summaries,
	}); err != nil {
		return err
	}

	h := handlers.New(handlers.Deps{
		Summaries: summaries,
		Events:    events,
		Tasks:     tasks,
		Meetings:  meetings,
		Actions:   actions,
		Stats: func(ctx context.Context, userID, key string) (int, *time.Time, error) {
			return repo.CollectionStats(ctx, d.DB, userID, key)
		},
		SummaryTimeout: cfg.Summary.RequestTimeout,
	})

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Caller identity
	r.Use(middleware.Identity())

	// 4) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key", "X-Goog-Api-Key"},
	}))

	// 5) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 6) Body cap and response compression
	r.Use(limitBody(maxBodyBytes))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.NewHTTPMetrics(reg).Handler())
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	// 8) Idempotency validation (before rate limiting)
	summaryPath := apiBase + "/generate-summary"
	meetingSummaryPath := apiBase + "/meetings/:id/summary"
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
			Scope: func(c *gin.Context) string {
				switch c.FullPath() {
				case summaryPath:
					return services.ScopeGenerateSummary
				case meetingSummaryPath:
					return services.MeetingSummaryScope(c.Param("id"))
				}
				return ""
			},
		},
		func(ctx context.Context, userID, scope, key string, _ time.Time) (bool, error) {
			return summaries.HasReplay(ctx, userID, scope, key), nil
		},
	))

	// 9) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 10) CORS posture (safe defaults: allow all if none configured)
	exposed := []string{"X-Request-ID", "Content-Length", "ETag", "Retry-After", middleware.HeaderIdempotencyReplayed}
	allowHeaders := []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderUserID,
		middleware.HeaderIdempotencyKey, "If-None-Match"}
	methods := []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}

	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     methods,
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    exposed,
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     methods,
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    exposed,
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers. Summaries and assistant results carry meeting
	// content and are never cached; ETag-backed lists stay cacheable.
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:    cfg.Security.EnableHSTS,
		HSTSMaxAge:    cfg.Security.HSTSMaxAge,
		EnablePolicy:  true,
		NoStorePaths:  []string{summaryPath, apiBase + "/assistant"},
		ExposeHeaders: exposed,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "ai": cfg.Summary.AIEnabled()})
	})

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := groupWithPrefix(r, apiBase)
	{
		// Summaries
		api.POST("/generate-summary", h.GenerateSummary)

		// Calendar
		api.GET("/events", h.ListEvents)
		api.POST("/events", h.CreateEvent)
		api.PUT("/events/:id", h.UpdateEvent)
		api.POST("/events/:id/move", h.MoveEvent)
		api.DELETE("/events/:id", h.DeleteEvent)
		api.GET("/calendar/entries", h.CalendarEntries)
		api.GET("/calendar.ics", h.CalendarICS)

		// Tasks
		api.GET("/tasks", h.ListTasks)
		api.POST("/tasks", h.CreateTask)
		api.POST("/tasks/:ref/toggle", h.ToggleTask)
		api.DELETE("/tasks/:ref", h.DeleteTask)

		// Meetings
		api.GET("/meetings", h.ListMeetings)
		api.POST("/meetings", h.CreateMeeting)
		api.GET("/meetings/:id", h.GetMeeting)
		api.PUT("/meetings/:id/notes", h.UpdateMeetingNotes)
		api.DELETE("/meetings/:id", h.DeleteMeeting)
		api.POST("/meetings/:id/summary", h.SummarizeMeeting)

		// Assistant
		api.GET("/assistant/actions", h.ListActions)
		api.POST("/assistant/actions/:name", h.InvokeAction)
	}
	return nil
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return r.Group("")
	}
	return r.Group(prefix)
}
