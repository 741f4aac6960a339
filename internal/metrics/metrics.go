// Package metrics exposes prometheus collectors for report generation and
// the HTTP boundary.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReportsTotal counts report generations by analysis source and outcome.
	ReportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "leadership",
		Subsystem: "report",
		Name:      "generated_total",
		Help:      "Total report generations by analysis source and outcome.",
	}, []string{"source", "outcome"})

	// RenderDuration tracks time spent laying out and serialising a PDF.
	RenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "leadership",
		Subsystem: "report",
		Name:      "render_duration_seconds",
		Help:      "PDF render duration in seconds.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"outcome"})

	// ReportPages records the physical page count of rendered reports.
	ReportPages = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "leadership",
		Subsystem: "report",
		Name:      "pages",
		Help:      "Physical page count of rendered reports.",
		Buckets:   prometheus.LinearBuckets(13, 1, 8),
	})

	// AnalysisFallbacks counts analyses served from the deterministic fallback.
	AnalysisFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "leadership",
		Subsystem: "analysis",
		Name:      "fallbacks_total",
		Help:      "Analyses built by the deterministic fallback, by reason.",
	}, []string{"reason"})

	// HTTPRequestsTotal counts requests by route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "leadership",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests by route and status code.",
	}, []string{"route", "status"})

	// HTTPDuration tracks request latency by route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "leadership",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// ObserveRender records one render attempt. pages is ignored unless the
// render succeeded.
func ObserveRender(outcome string, pages int, elapsed time.Duration) {
	RenderDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	if outcome == OutcomeSuccess {
		ReportPages.Observe(float64(pages))
	}
}

// ObserveReport records a finished end-to-end generation.
func ObserveReport(source, outcome string) {
	ReportsTotal.WithLabelValues(source, outcome).Inc()
}

// ObserveFallback records why the builder fell back.
func ObserveFallback(reason string) {
	AnalysisFallbacks.WithLabelValues(reason).Inc()
}

// ObserveHTTP records a served request.
func ObserveHTTP(route string, status int, elapsed time.Duration) {
	HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
