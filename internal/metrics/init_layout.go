package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initLayoutMetrics() {
	r.ViewsOpen = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "hospitalops_layout_views_open",
			Help: "Number of mounted layout views",
		},
	)

	r.PointerEventsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "hospitalops_layout_pointer_events_total",
			Help: "Pointer events forwarded to layout views",
		},
		[]string{"type", "scope"},
	)

	r.DragSessionsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "hospitalops_layout_drag_sessions_total",
			Help: "Drag sessions started",
		},
	)

	r.SceneRenderSeconds = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hospitalops_layout_scene_render_seconds",
			Help:    "Time to compute one scene",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		},
	)

	r.SceneCards = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hospitalops_layout_scene_cards",
			Help:    "Cards placed per rendered scene",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
		},
	)
}
