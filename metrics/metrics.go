// Package metrics exposes the Prometheus instruments for the HTTP surface
// and the analysis pipeline.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	AnalysesTotal       *prometheus.CounterVec
	AnalysisDuration    prometheus.Histogram
	EnrichedPostsTotal  prometheus.Counter
)

var initOnce sync.Once

// Init registers the instruments with the default registry. Safe to call
// more than once; registration happens on the first call.
func Init() {
	initOnce.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogdex_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blogdex_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogdex_analyses_total",
			Help: "Total number of blog analyses.",
		},
		[]string{"status"}, // success, failure
	)

	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "blogdex_analysis_duration_seconds",
			Help:    "Duration of full blog analyses.",
			Buckets: []float64{1, 5, 10, 15, 30, 60, 120},
		},
	)

	EnrichedPostsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blogdex_enriched_posts_total",
			Help: "Total number of posts put through detail enrichment.",
		},
	)
}
