// Package metrics exposes the service's Prometheus instrumentation on a
// private registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Brand lookup outcomes.
const (
	OutcomeHit   = "hit"
	OutcomeMiss  = "miss"
	OutcomeError = "error"
)

// Measurement sources recorded per prediction.
const (
	SourceBrand   = "brand"
	SourceModel   = "model"
	SourceFormula = "formula"
)

var httpDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Metrics holds every instrument the service records.  All instruments live
// on a private registry so tests can create isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPActiveRequests  prometheus.Gauge

	PredictionsTotal    *prometheus.CounterVec
	PredictionSources   *prometheus.CounterVec
	BrandLookupsTotal   *prometheus.CounterVec
	UpdatesTotal        *prometheus.CounterVec
	StoreSaveFailures   prometheus.Counter
	ModelState          prometheus.Gauge
	DatasetChangesTotal prometheus.Counter
	AssistantRequests   *prometheus.CounterVec
}

// New registers all instruments under the given namespace.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := func(name, help string, labels ...string) *prometheus.CounterVec {
		vec := prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, labels)
		registry.MustRegister(vec)
		return vec
	}

	m := &Metrics{
		registry: registry,

		HTTPRequestsTotal: factory("http_requests_total", "Total HTTP requests", "method", "path", "status_code"),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration",
			Buckets:   httpDurationBuckets,
		}, []string{"method", "path"}),
		HTTPActiveRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_active_requests",
			Help:      "In-flight HTTP requests",
		}),

		PredictionsTotal:  factory("predictions_total", "Prediction requests by result", "result"),
		PredictionSources: factory("prediction_sources_total", "Measurement values credited to each source", "source"),
		BrandLookupsTotal: factory("brand_lookups_total", "Brand dataset lookups by outcome", "outcome"),
		UpdatesTotal:      factory("updates_total", "Manual measurement updates by result", "result"),
		StoreSaveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_save_failures_total",
			Help:      "Failed measurement store writes",
		}),
		ModelState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_loaded",
			Help:      "1 when the statistical model is loaded and ready",
		}),
		DatasetChangesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_changes_total",
			Help:      "Observed on-disk changes to the brand dataset",
		}),
		AssistantRequests: factory("assistant_requests_total", "FAQ assistant requests by result", "result"),
	}

	registry.MustRegister(
		m.HTTPRequestDuration,
		m.HTTPActiveRequests,
		m.StoreSaveFailures,
		m.ModelState,
		m.DatasetChangesTotal,
	)
	return m
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
