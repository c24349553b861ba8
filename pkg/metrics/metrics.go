package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fraud_analyser"

// Metrics groups the application collectors. Create one per registry.
type Metrics struct {
	Analyses       *prometheus.CounterVec
	ReviewsFetched prometheus.Counter
	ReviewsSkipped prometheus.Counter
	FetchDuration  *prometheus.HistogramVec
	CacheRequests  *prometheus.CounterVec
	Reports        *prometheus.CounterVec
	Deliveries     *prometheus.CounterVec
}

// New creates the application metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Total number of app analyses, by outcome.",
		}, []string{"outcome"}),
		ReviewsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_fetched_total",
			Help:      "Total number of reviews read from the review source.",
		}),
		ReviewsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_skipped_total",
			Help:      "Total number of reviews dropped as invalid during scoring.",
		}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "request_duration_seconds",
			Help:      "Latency of review source operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		CacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "requests_total",
			Help:      "Total number of session cache lookups, by kind and result.",
		}, []string{"kind", "result"}),
		Reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_rendered_total",
			Help:      "Total number of rendered reports, by format.",
		}, []string{"format"}),
		Deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_deliveries_total",
			Help:      "Total number of report deliveries, by channel and outcome.",
		}, []string{"channel", "outcome"}),
	}

	reg.MustRegister(m.Analyses, m.ReviewsFetched, m.ReviewsSkipped, m.FetchDuration, m.CacheRequests, m.Reports, m.Deliveries)
	return m
}

// NewRegistry creates a Prometheus registry with Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// Handler returns an http.Handler that serves metrics gathered from g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
