package metrics

import "github.com/prometheus/client_golang/prometheus"

// Note index Prometheus metrics.
var (
	IndexProjectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notedex",
			Name:      "index_projections_total",
			Help:      "Total number of note index projections",
		},
		[]string{"operation", "status"}, // operation: save / delete
	)

	IndexProjectionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "notedex",
			Name:      "index_projection_duration_seconds",
			Help:      "Note index projection duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"operation"},
	)

	SearchQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notedex",
			Name:      "search_queries_total",
			Help:      "Total number of search, filter and facet queries",
		},
		[]string{"kind", "status"}, // kind: search / filter / facet_names / facet_values
	)
)

var indexMetricsRegistered bool

// RegisterIndexMetrics registers note index metrics. Must be called once from main.
func RegisterIndexMetrics() {
	if indexMetricsRegistered {
		return
	}
	prometheus.MustRegister(IndexProjectionsTotal)
	prometheus.MustRegister(IndexProjectionDuration)
	prometheus.MustRegister(SearchQueriesTotal)
	indexMetricsRegistered = true
}
