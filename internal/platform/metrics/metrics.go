// Package metrics registers and exposes the service's Prometheus collectors.
// Counters are package-level so any layer can increment without plumbing a
// registry through constructors; Register is called once from the server
// entry point before the first request.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rangering_requests_total",
		Help: "HTTP requests by path",
	}, []string{"path"})
	RequestDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "rangering_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	RingsGeneratedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rangering_rings_generated_total",
		Help: "Rings computed (cache hits excluded)",
	})
	PointsGeneratedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rangering_points_generated_total",
		Help: "Points emitted across all computed rings",
	})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rangering_cache_hits_total",
		Help: "Ring cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rangering_cache_misses_total",
		Help: "Ring cache misses",
	})
	RingSetsSavedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rangering_ring_sets_saved_total",
		Help: "Ring sets persisted to the repository",
	})
)

// Register installs every collector into the default registry.
func Register() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(RingsGeneratedTotal)
	prometheus.MustRegister(PointsGeneratedTotal)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(RingSetsSavedTotal)
}

// Handler serves the default registry for Prometheus scrapes.
func Handler() http.Handler { return promhttp.Handler() }
