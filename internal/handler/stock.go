package handler

import (
	"net/http"

	"hospitalops/internal/domain"
	"hospitalops/internal/validation"
)

// ListInventory returns the inventory, narrowed by the optional category
// query parameter
func (h *Handler) ListInventory(w http.ResponseWriter, r *http.Request) {
	category := domain.InventoryCategory(r.URL.Query().Get("category"))
	items, err := h.svc.Inventory.List(r.Context(), category)
	if err != nil {
		h.fail(w, r, "Failed to list inventory", err)
		return
	}
	writeJSON(w, items, http.StatusOK)
}

// Forecast stores restock recommendations for a patient forecast
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	var req validation.ForecastRequest
	if err := decode(w, r, &req); err != nil {
		badRequest(w, "Invalid request body", err)
		return
	}
	if err := validation.ValidateForecastRequest(&req); err != nil {
		badRequest(w, "Validation failed", err)
		return
	}

	items, err := h.svc.Inventory.Forecast(r.Context(), *req.Patients)
	if err != nil {
		h.fail(w, r, "Failed to apply forecast", err)
		return
	}
	writeJSON(w, items, http.StatusOK)
}

// MarkOrdered records a restock order for an item
func (h *Handler) MarkOrdered(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Inventory.MarkOrdered(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, "Failed to mark item ordered", err)
		return
	}
	writeJSON(w, item, http.StatusOK)
}

// Restock fills an item back to 100%
func (h *Handler) Restock(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Inventory.Restock(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, "Failed to restock item", err)
		return
	}
	writeJSON(w, item, http.StatusOK)
}

// ListAlerts returns alerts, narrowed by the optional status query parameter
func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.svc.Alerts.List(r.Context(), domain.AlertStatus(r.URL.Query().Get("status")))
	if err != nil {
		h.fail(w, r, "Failed to list alerts", err)
		return
	}
	writeJSON(w, alerts, http.StatusOK)
}

// ResolveAlert marks an alert resolved
func (h *Handler) ResolveAlert(w http.ResponseWriter, r *http.Request) {
	alert, err := h.svc.Alerts.Resolve(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, "Failed to resolve alert", err)
		return
	}
	writeJSON(w, alert, http.StatusOK)
}
