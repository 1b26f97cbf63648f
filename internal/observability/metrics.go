package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Vinayak2k03/NotedAI/internal/summary"
)

// SummaryMetrics instruments the summary pipeline.
//
//   - notedai_summaries_total{method}: finished requests by provenance
//   - notedai_summary_duration_seconds{method}: pipeline latency
//   - notedai_model_attempts_total{model,outcome}: individual model calls
//   - notedai_summary_rate_window_used: admitted calls in the current window
//
// Model names come from a bounded candidate list, so the model label stays
// low-cardinality.
type SummaryMetrics struct {
	summaries *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	attempts  *prometheus.CounterVec
}

// NewSummaryMetrics creates and registers the collectors on reg. window may
// be nil; when set its occupancy is exported as a gauge.
func NewSummaryMetrics(reg prometheus.Registerer, window *summary.RateWindow) *SummaryMetrics {
	m := &SummaryMetrics{
		summaries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notedai_summaries_total",
			Help: "Summary requests completed, by method.",
		}, []string{"method"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "notedai_summary_duration_seconds",
			Help:    "End-to-end summary pipeline latency in seconds.",
			Buckets: []float64{0.01, 0.05, 0.25, 1, 2.5, 5, 10, 20, 30, 45, 60},
		}, []string{"method"}),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notedai_model_attempts_total",
			Help: "Model generation attempts, by model and outcome.",
		}, []string{"model", "outcome"}),
	}
	reg.MustRegister(m.summaries, m.latency, m.attempts)
	if window != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "notedai_summary_rate_window_used",
			Help: "AI calls admitted within the current rate window.",
		}, func() float64 { return float64(window.Len()) }))
	}
	return m
}

// ObserveSummary records one finished request.
func (m *SummaryMetrics) ObserveSummary(method string, elapsed time.Duration) {
	m.summaries.WithLabelValues(method).Inc()
	m.latency.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveAttempt records one model call; err nil counts as "ok". Its
// signature matches summary.Summarizer.OnAttempt.
func (m *SummaryMetrics) ObserveAttempt(model string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = summary.KindOf(err).String()
	}
	m.attempts.WithLabelValues(model, outcome).Inc()
}
