package handler

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"hospitalops/internal/codec"
	"hospitalops/internal/domain"
	"hospitalops/internal/render"
	"hospitalops/internal/validation"
)

// ListHospitals returns the hospitals registered under the caller's email
func (h *Handler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	hospitals, err := h.svc.Hospitals.ListForUser(r.Context(), identityFrom(r))
	if err != nil {
		h.fail(w, r, "Failed to list hospitals", err)
		return
	}
	writeJSON(w, hospitals, http.StatusOK)
}

// Directory returns the hospitals shown around a patient, narrowed by the
// optional location query parameter
func (h *Handler) Directory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Hospitals.Directory(r.Context(), r.URL.Query().Get("location"))
	if err != nil {
		h.fail(w, r, "Failed to load directory", err)
		return
	}
	writeJSON(w, entries, http.StatusOK)
}

// EnsureHospital returns the caller's hospital, creating it on first use
func (h *Handler) EnsureHospital(w http.ResponseWriter, r *http.Request) {
	hospital, err := h.svc.Hospitals.EnsureForUser(r.Context(), identityFrom(r))
	if err != nil {
		h.fail(w, r, "Failed to ensure hospital", err)
		return
	}
	writeJSON(w, hospital, http.StatusOK)
}

// UpdateHospital applies a partial update to a hospital the caller owns
func (h *Handler) UpdateHospital(w http.ResponseWriter, r *http.Request) {
	var patch domain.HospitalPatch
	if err := decode(w, r, &patch); err != nil {
		badRequest(w, "Invalid request body", err)
		return
	}
	if err := validation.Struct(&patch); err != nil {
		badRequest(w, "Validation failed", err)
		return
	}

	hospital, err := h.svc.Hospitals.Update(r.Context(), identityFrom(r), r.PathValue("id"), patch)
	if err != nil {
		h.fail(w, r, "Failed to update hospital", err)
		return
	}
	writeJSON(w, hospital, http.StatusOK)
}

// HospitalCard returns the card of a directory entry. Clients accepting
// text/html get the rendered card markup; when the view query parameter
// names an open view the card is positioned where that view draws it.
func (h *Handler) HospitalCard(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	entry, err := h.svc.Hospitals.DirectoryEntry(r.Context(), id)
	if err != nil {
		h.fail(w, r, "Failed to load hospital", err)
		return
	}
	view := render.NewCardView(*entry, cardURL(entry.ID))

	if !strings.Contains(r.Header.Get("Accept"), "text/html") {
		writeJSON(w, view, http.StatusOK)
		return
	}

	var left, top float64
	if viewID := r.URL.Query().Get("view"); viewID != "" {
		l, t, ok := h.svc.Layout.CardPosition(viewID, id)
		if !ok {
			writeError(w, "Not found", "card "+id+" is not placed in view "+viewID, http.StatusNotFound)
			return
		}
		left, top = l, t
	}

	var buf bytes.Buffer
	if err := render.RenderCard(&buf, view, left, top); err != nil {
		h.fail(w, r, "Failed to render card", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// ExportDirectory downloads the full directory as JSON or YAML
func (h *Handler) ExportDirectory(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	c, err := codec.ForFormat(format)
	if err != nil {
		badRequest(w, "Unsupported format", err)
		return
	}

	var buf bytes.Buffer
	if err := h.svc.Hospitals.ExportDirectory(r.Context(), c.Format(), &buf); err != nil {
		h.fail(w, r, "Failed to export directory", err)
		return
	}

	if c.Format() == "yaml" {
		w.Header().Set("Content-Type", "application/x-yaml")
		w.Header().Set("Content-Disposition", "attachment; filename=directory.yaml")
	} else {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", "attachment; filename=directory.json")
	}
	buf.WriteTo(w)
}

// ImportDirectory stores the hospitals of an uploaded directory file. The
// format query parameter selects the codec; a YAML content type implies yaml.
func (h *Handler) ImportDirectory(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		badRequest(w, "Failed to read request body", err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" && strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		format = "yaml"
	}

	result, err := h.svc.Hospitals.ImportDirectory(r.Context(), data, format)
	if err != nil {
		h.fail(w, r, "Failed to import directory", err)
		return
	}
	writeJSON(w, result, http.StatusOK)
}
