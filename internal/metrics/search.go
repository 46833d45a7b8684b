package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobdex",
			Name:      "search_requests_total",
			Help:      "Total number of job search requests",
		},
		[]string{"status"}, // "ok" / "degraded" / "error"
	)

	DegradedDocumentsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "jobdex",
			Name:      "degraded_documents_total",
			Help:      "Documents served with defaulted fields after normalization failed",
		},
	)

	EngineRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jobdex",
			Name:      "engine_request_duration_seconds",
			Help:      "Search engine round-trip duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"driver", "operation"},
	)
)

var registered bool

// Register registers every collector of this package, the HTTP middleware
// ones included, with the default registry. Called once from main; no
// init() registration anywhere in the package.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(
		SearchRequestsTotal,
		DegradedDocumentsTotal,
		EngineRequestDuration,
		httpRequestDuration,
		httpRequestsTotal,
	)
	registered = true
}
