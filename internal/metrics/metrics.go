package metrics

import (
	"time"
)

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordPointerEvent counts a forwarded pointer event; started reports
// whether it began a drag session
func (r *Registry) RecordPointerEvent(eventType, scope string, started bool) {
	r.PointerEventsTotal.WithLabelValues(eventType, scope).Inc()
	if started {
		r.DragSessionsTotal.Inc()
	}
}

// RecordSceneRender records the cost and size of one rendered scene
func (r *Registry) RecordSceneRender(cards int, duration time.Duration) {
	r.SceneRenderSeconds.Observe(duration.Seconds())
	r.SceneCards.Observe(float64(cards))
}

// RecordEvent counts a published event
func (r *Registry) RecordEvent(eventType string) {
	r.EventsPublishedTotal.WithLabelValues(eventType).Inc()
}

// RecordAlert counts a newly raised alert
func (r *Registry) RecordAlert(severity string) {
	r.AlertsRaisedTotal.WithLabelValues(severity).Inc()
}

// RecordDirectoryReload records a seed directory reload
func (r *Registry) RecordDirectoryReload(entries int, err error) {
	if err != nil {
		r.DirectoryReloadsTotal.WithLabelValues("error").Inc()
		return
	}
	r.DirectoryReloadsTotal.WithLabelValues("ok").Inc()
	r.DirectoryEntries.Set(float64(entries))
}
