package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and interpretation Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "talentsearch",
			Name:      "search_requests_total",
			Help:      "Total number of chat search requests",
		},
		[]string{"requested_route", "executed_route", "status"},
	)

	SearchPhaseDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "talentsearch",
			Name:      "search_phase_duration_seconds",
			Help:      "Duration of search phases in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"phase"},
	)

	SearchFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "talentsearch",
			Name:      "search_fallbacks_total",
			Help:      "Route fallback transitions taken by the orchestrator",
		},
		[]string{"from", "to", "reason"},
	)

	InterpretationCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "talentsearch",
			Name:      "interpretation_cache_total",
			Help:      "Interpretation cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	InterpretationFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "talentsearch",
			Name:      "interpretation_fallbacks_total",
			Help:      "Classifier failures downgraded to the SEMANTIC fallback",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers search Prometheus metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchPhaseDuration)
	prometheus.MustRegister(SearchFallbacksTotal)
	prometheus.MustRegister(InterpretationCacheTotal)
	prometheus.MustRegister(InterpretationFallbacksTotal)
	searchMetricsRegistered = true
}
