// Package metrics exposes Prometheus instrumentation for the external
// data-service calls and the report store.
package metrics

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SocrataQueries counts upstream queries by outcome ("ok" / "error").
	SocrataQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tramites_socrata_queries_total",
		Help: "Total Socrata API queries by outcome",
	}, []string{"outcome"})

	// SocrataQueryDuration observes upstream query latency.
	SocrataQueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tramites_socrata_query_duration_seconds",
		Help:    "Socrata API query duration",
		Buckets: prometheus.DefBuckets,
	})

	// SocrataCacheHits counts queries answered from the response cache.
	SocrataCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tramites_socrata_cache_hits_total",
		Help: "Socrata queries served from the TTL cache",
	})

	// Searches counts search requests by kind ("radicados" / "suit").
	Searches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tramites_searches_total",
		Help: "Search requests by kind",
	}, []string{"kind"})

	// ReportsSubmitted counts error-report submissions by outcome.
	ReportsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tramites_reports_submitted_total",
		Help: "Error report submissions by outcome",
	}, []string{"outcome"})
)

// ObserveSocrataQuery records one upstream query.
func ObserveSocrataQuery(d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	SocrataQueries.WithLabelValues(outcome).Inc()
	SocrataQueryDuration.Observe(d.Seconds())
}

// Handler returns the /metrics endpoint as a fiber handler.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
