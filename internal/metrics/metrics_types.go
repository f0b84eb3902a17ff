// Package metrics exposes the service's Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all hospitalops metrics on a private Prometheus registry
type Registry struct {
	registry *prometheus.Registry

	// HTTP
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Layout
	ViewsOpen          prometheus.Gauge
	PointerEventsTotal *prometheus.CounterVec
	DragSessionsTotal  prometheus.Counter
	SceneRenderSeconds prometheus.Histogram
	SceneCards         prometheus.Histogram

	// Operations
	EventsPublishedTotal  *prometheus.CounterVec
	AlertsRaisedTotal     *prometheus.CounterVec
	SSEClients            prometheus.Gauge
	DirectoryEntries      prometheus.Gauge
	DirectoryReloadsTotal *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		registry: reg,
	}

	r.initHTTPMetrics()
	r.initLayoutMetrics()
	r.initOperationsMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
