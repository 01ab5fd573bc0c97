// Package metrics defines Prometheus metrics for despensa.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "despensa"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Whether the last liveness probe succeeded.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "Whether the last readiness probe succeeded.",
	})
)

// Import metrics.
var (
	ImportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "import_duration_seconds",
		Help:      "Duration of ledger import cycles in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	ImportErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_errors_total",
		Help:      "Total number of failed ledger import cycles.",
	})

	ItemsExtractedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "items_extracted_total",
		Help:      "Total number of cooking items extracted from transactions.",
	})

	ItemsAutoResolvedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "items_auto_resolved_total",
		Help:      "Total number of items resolved automatically via known mappings.",
	})

	StaleMappingSkips = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_mapping_skips_total",
		Help:      "Total number of mapped items skipped because their canonical record is missing from the catalog.",
	})
)

// Resolution metrics.
var (
	ResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resolutions_total",
		Help:      "Total number of manual resolutions by mapping kind.",
	}, []string{"kind"})

	UnknownReportsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unknown_reports_total",
		Help:      "Total number of unknown-item backlog reports.",
	})
)

// Ledger API metrics.
var (
	LedgerAPICallsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_api_calls_total",
		Help:      "Total cumulative ledger API calls.",
	})

	LedgerDailyUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ledger_daily_usage",
		Help:      "Current daily ledger API call count within the rolling 24-hour window.",
	})

	LedgerDailyLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_daily_limit_hits_total",
		Help:      "Total number of times the daily ledger API limit was reached.",
	})
)

// Live feed metrics.
var (
	FeedSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "feed_subscribers",
		Help:      "Current number of live pantry feed subscribers.",
	})

	FeedPushesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_pushes_total",
		Help:      "Total number of pantry snapshots pushed to subscribers.",
	})
)
