package handler

import (
	"net/http"

	"go.uber.org/zap"

	"hospitalops/internal/metrics"
)

// Routes registers the REST API on mux
func (h *Handler) Routes(mux *http.ServeMux) {
	// Hospitals and directory
	mux.HandleFunc("GET /api/hospitals", h.ListHospitals)
	mux.HandleFunc("GET /api/hospitals/directory", h.Directory)
	mux.HandleFunc("POST /api/hospitals/ensure", h.EnsureHospital)
	mux.HandleFunc("PUT /api/hospitals/{id}", h.UpdateHospital)
	mux.HandleFunc("GET /api/hospitals/{id}/card", h.HospitalCard)
	mux.HandleFunc("GET /api/export/directory", h.ExportDirectory)
	mux.HandleFunc("POST /api/import/directory", h.ImportDirectory)

	// Beds
	mux.HandleFunc("GET /api/beds", h.ListBeds)
	mux.HandleFunc("POST /api/beds", h.CreateBed)
	mux.HandleFunc("GET /api/beds/stats", h.BedStats)
	mux.HandleFunc("PUT /api/beds/{id}/status", h.UpdateBedStatus)
	mux.HandleFunc("DELETE /api/beds/{id}", h.DeleteBed)

	// Patient profile
	mux.HandleFunc("POST /api/patient/ensure", h.EnsurePatient)
	mux.HandleFunc("PUT /api/patient", h.UpdatePatient)

	// Emergency contacts
	mux.HandleFunc("GET /api/contacts", h.ListContacts)
	mux.HandleFunc("POST /api/contacts", h.CreateContact)
	mux.HandleFunc("DELETE /api/contacts/{id}", h.DeleteContact)

	// Inventory
	mux.HandleFunc("GET /api/inventory", h.ListInventory)
	mux.HandleFunc("POST /api/inventory/forecast", h.Forecast)
	mux.HandleFunc("POST /api/inventory/{id}/order", h.MarkOrdered)
	mux.HandleFunc("POST /api/inventory/{id}/restock", h.Restock)

	// Alerts
	mux.HandleFunc("GET /api/alerts", h.ListAlerts)
	mux.HandleFunc("POST /api/alerts/{id}/resolve", h.ResolveAlert)

	// Layout views
	mux.HandleFunc("POST /api/views", h.OpenView)
	mux.HandleFunc("DELETE /api/views/{id}", h.CloseView)
	mux.HandleFunc("GET /api/views/{id}/scene", h.Scene)
	mux.HandleFunc("GET /api/views/{id}/scene.svg", h.SceneSVG)
	mux.HandleFunc("POST /api/views/{id}/resize", h.Resize)
	mux.HandleFunc("POST /api/views/{id}/pointer", h.Pointer)
}

// RouterOptions carries the endpoints mounted next to the API. Nil fields
// are skipped.
type RouterOptions struct {
	Events  http.Handler
	Static  http.Handler
	Metrics *metrics.Registry
}

// NewRouter builds the complete HTTP handler with middleware applied
func NewRouter(h *Handler, opts RouterOptions, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	h.Routes(mux)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	})
	if opts.Events != nil {
		mux.Handle("GET /events", opts.Events)
	}
	if opts.Static != nil {
		mux.Handle("/", opts.Static)
	}

	mws := []Middleware{Recover(logger), CORS, Logger(logger)}
	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics.Handler())
		mws = append(mws, Metrics(opts.Metrics))
	}
	return Chain(mux, mws...)
}
