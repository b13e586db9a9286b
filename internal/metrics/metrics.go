package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memberqa_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "memberqa_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	QuestionsAnswered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memberqa_questions_answered_total",
			Help: "Total questions answered",
		},
		[]string{"outcome"}, // "generated", "empty_context", "fetch_failed", "generation_failed"
	)

	FetchPagesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "memberqa_fetch_pages_total",
			Help: "Total pages fetched from the messages API",
		},
	)

	FetchErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "memberqa_fetch_errors_total",
			Help: "Total failed fetch attempts against the messages API",
		},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "memberqa_cache_hits_total",
			Help: "Cache reads served from a fresh snapshot",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "memberqa_cache_misses_total",
			Help: "Cache reads that triggered or joined a refresh",
		},
	)

	CacheStaleServes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "memberqa_cache_stale_serves_total",
			Help: "Cache reads served stale data after a failed refresh",
		},
	)

	// Rate limit metrics
	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memberqa_rate_limit_hits_total",
			Help: "Total rate limit hits",
		},
		[]string{"endpoint"},
	)

	// Generation metrics
	GenerationLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "memberqa_generation_latency_seconds",
			Help:    "Generation collaborator call latency",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	GenerationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "memberqa_generation_failures_total",
			Help: "Total failed generation collaborator calls",
		},
	)
)
