package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Query outcome label values.
const (
	OutcomeOK          = "ok"
	OutcomeBadRequest  = "bad_request"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

// Registry holds the service metrics on a dedicated Prometheus registry.
type Registry struct {
	reg              *prometheus.Registry
	Queries          *prometheus.CounterVec
	QueryLatencySec  *prometheus.HistogramVec
	TableRows        prometheus.Gauge
	RecordsSkipped   prometheus.Counter
	BuildDurationSec prometheus.Gauge
	BuildFailures    prometheus.Counter
}

// NewRegistry creates and registers all service metrics.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	queries := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "pricecomp_queries_total"}, []string{"query_type", "outcome"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pricecomp_query_latency_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"query_type"})
	rows := prometheus.NewGauge(prometheus.GaugeOpts{Name: "pricecomp_table_rows"})
	skipped := prometheus.NewCounter(prometheus.CounterOpts{Name: "pricecomp_records_skipped_total"})
	buildDuration := prometheus.NewGauge(prometheus.GaugeOpts{Name: "pricecomp_table_build_seconds"})
	buildFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "pricecomp_table_build_failures_total"})

	r.MustRegister(queries, latency, rows, skipped, buildDuration, buildFailures)
	return &Registry{
		reg:              r,
		Queries:          queries,
		QueryLatencySec:  latency,
		TableRows:        rows,
		RecordsSkipped:   skipped,
		BuildDurationSec: buildDuration,
		BuildFailures:    buildFailures,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
