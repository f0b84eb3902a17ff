package handler

import (
	"bytes"
	"net/http"

	"hospitalops/internal/layout"
	"hospitalops/internal/service"
	"hospitalops/internal/validation"
)

// OpenView mounts a nearby-hospitals layout for the caller's page
func (h *Handler) OpenView(w http.ResponseWriter, r *http.Request) {
	var req validation.ViewRequest
	if err := decode(w, r, &req); err != nil {
		badRequest(w, "Invalid request body", err)
		return
	}
	if err := validation.ValidateViewRequest(&req); err != nil {
		badRequest(w, "Validation failed", err)
		return
	}

	snap, err := h.svc.Layout.Open(r.Context(), identityFrom(r), service.ViewOptions{
		Width:          req.Width,
		ViewportHeight: req.ViewportHeight,
		AnchorRadius:   req.AnchorRadius,
		Location:       req.Location,
	})
	if err != nil {
		h.fail(w, r, "Failed to open view", err)
		return
	}
	writeJSON(w, snap, http.StatusCreated)
}

// CloseView unmounts a view
func (h *Handler) CloseView(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Layout.Close(r.PathValue("id")); err != nil {
		h.fail(w, r, "Failed to close view", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Scene returns the current frame of a view
func (h *Handler) Scene(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Layout.Scene(r.PathValue("id"))
	if err != nil {
		h.fail(w, r, "Failed to render scene", err)
		return
	}
	writeJSON(w, snap, http.StatusOK)
}

// SceneSVG returns the current frame of a view as an SVG document
func (h *Handler) SceneSVG(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.svc.Layout.WriteSVG(r.PathValue("id"), &buf); err != nil {
		h.fail(w, r, "Failed to render scene", err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	buf.WriteTo(w)
}

// Resize reports a new container width for a view
func (h *Handler) Resize(w http.ResponseWriter, r *http.Request) {
	var req validation.ResizeRequest
	if err := decode(w, r, &req); err != nil {
		badRequest(w, "Invalid request body", err)
		return
	}
	if err := validation.Struct(&req); err != nil {
		badRequest(w, "Validation failed", err)
		return
	}

	snap, err := h.svc.Layout.Resize(r.PathValue("id"), req.Width)
	if err != nil {
		h.fail(w, r, "Failed to resize view", err)
		return
	}
	writeJSON(w, snap, http.StatusOK)
}

// Pointer forwards one pointer event to a view's drag controller
func (h *Handler) Pointer(w http.ResponseWriter, r *http.Request) {
	var req validation.PointerRequest
	if err := decode(w, r, &req); err != nil {
		badRequest(w, "Invalid request body", err)
		return
	}
	if err := validation.Struct(&req); err != nil {
		badRequest(w, "Validation failed", err)
		return
	}

	snap, err := h.svc.Layout.Pointer(r.PathValue("id"), service.PointerInput{
		Type:       req.Type,
		Scope:      service.PointerScope(req.Scope),
		EntityID:   req.EntityID,
		At:         layout.Point{X: req.X, Y: req.Y},
		ButtonHeld: req.ButtonHeld,
	})
	if err != nil {
		h.fail(w, r, "Failed to apply pointer event", err)
		return
	}
	writeJSON(w, snap, http.StatusOK)
}
