package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initOperationsMetrics() {
	r.EventsPublishedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "hospitalops_events_published_total",
			Help: "Events published on the event bus",
		},
		[]string{"type"},
	)

	r.AlertsRaisedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "hospitalops_alerts_raised_total",
			Help: "Alerts raised by severity",
		},
		[]string{"severity"},
	)

	r.SSEClients = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "hospitalops_sse_clients",
			Help: "Connected Server-Sent Events clients",
		},
	)

	r.DirectoryEntries = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "hospitalops_directory_seed_entries",
			Help: "Hospitals loaded from the seed directory file",
		},
	)

	r.DirectoryReloadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "hospitalops_directory_reloads_total",
			Help: "Seed directory reloads by outcome",
		},
		[]string{"status"},
	)
}
