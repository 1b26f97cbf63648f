// Command server runs the NotedAI HTTP API: meeting summaries, calendar
// events, tasks, meetings and the assistant action bridge.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	_ "github.com/Vinayak2k03/NotedAI/docs"
	"github.com/Vinayak2k03/NotedAI/internal/config"
	httpapi "github.com/Vinayak2k03/NotedAI/internal/http"
	"github.com/Vinayak2k03/NotedAI/internal/jobs"
	"github.com/Vinayak2k03/NotedAI/internal/observability"
	"github.com/Vinayak2k03/NotedAI/internal/provider/gemini"
	"github.com/Vinayak2k03/NotedAI/internal/repo"
	"github.com/Vinayak2k03/NotedAI/internal/summary"
	"github.com/Vinayak2k03/NotedAI/internal/sysutil"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

// @title           NotedAI API
// @version         1.0
// @description     Meeting notes summarization, calendar and task management.
// @BasePath        /api
func main() {
	cfg := config.MustLoad()
	lg := sysutil.SetupLogger(cfg.LogLevel, cfg.LogPretty, cfg.OTEL.ServiceName)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.OTEL, version)
	if err != nil {
		// Tracing is optional; run without it.
		lg.Warn().Err(err).Msg("tracing disabled")
		shutdownTracing = func(context.Context) error { return nil }
	}

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		lg.Fatal().Err(err).Str("db", cfg.DBPath).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		lg.Fatal().Err(err).Msg("migrate database")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	orch, metrics := buildPipeline(ctx, lg, cfg.Summary, reg)

	r := gin.New()
	if err := httpapi.RegisterRoutes(r, httpapi.Deps{
		DB:        db,
		Generator: orch,
		Observer:  metrics,
		Registry:  reg,
	}, cfg); err != nil {
		lg.Fatal().Err(err).Msg("register routes")
	}

	sched := jobs.NewScheduler(lg)
	purger := &jobs.IdempotencyPurger{DB: db, Log: lg.With().Str("job", "idempotency_purge").Logger()}
	if _, err := purger.Schedule(sched, cfg.IdempotencyPurgeCron); err != nil {
		lg.Fatal().Err(err).Str("spec", cfg.IdempotencyPurgeCron).Msg("schedule idempotency purge")
	}
	sched.Start()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info().
			Str("addr", srv.Addr).
			Str("version", version).
			Bool("ai", cfg.Summary.AIEnabled()).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		lg.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			lg.Error().Err(err).Msg("server exited")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("graceful shutdown failed")
	}
	<-sched.Stop().Done()
	if err := shutdownTracing(shutdownCtx); err != nil {
		lg.Warn().Err(err).Msg("tracing shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	lg.Info().Msg("server stopped")
}

// buildPipeline assembles the summary orchestrator. Without a credential the
// orchestrator has no generator and every request takes the fallback path.
func buildPipeline(ctx context.Context, lg zerolog.Logger, sc config.SummaryConfig, reg prometheus.Registerer) (*summary.Orchestrator, *observability.SummaryMetrics) {
	window := summary.NewRateWindow(sc.MaxRequests, sc.Window, nil)
	metrics := observability.NewSummaryMetrics(reg, window)

	var (
		gen        summary.Generator
		candidates summary.CandidateSource
	)
	if sc.AIEnabled() {
		client, err := gemini.New(ctx, gemini.Config{APIKey: sc.APIKey, APIVersion: sc.APIVersion})
		if err != nil {
			lg.Warn().Err(err).Msg("gemini client unavailable, using fallback summaries")
		} else {
			var disc summary.Discoverer
			if sc.Discovery {
				disc = client
			}
			candidates = summary.NewResolver(sc.Model, nil, disc)

			s := summary.NewSummarizer(client)
			s.AttemptTimeout = sc.AttemptTimeout
			temp := sc.Temperature
			s.Options = summary.GenerateOptions{MaxOutputTokens: sc.MaxOutputTokens, Temperature: &temp}
			s.OnAttempt = metrics.ObserveAttempt
			gen = s
		}
	}

	orch := summary.NewOrchestrator(gen, candidates, window, nil)
	orch.MaxNotes = sc.MaxNotes
	orch.PromptNotes = sc.PromptNotes
	orch.FallbackReserve = sc.FallbackReserve
	return orch, metrics
}
