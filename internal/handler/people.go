package handler

import (
	"net/http"

	"hospitalops/internal/domain"
	"hospitalops/internal/validation"
)

// EnsurePatient returns the caller's profile, creating it on first use
func (h *Handler) EnsurePatient(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Patients.Ensure(r.Context(), identityFrom(r))
	if err != nil {
		h.fail(w, r, "Failed to ensure patient profile", err)
		return
	}
	writeJSON(w, p, http.StatusOK)
}

// UpdatePatient changes the submitted fields of the caller's profile
func (h *Handler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	var patch domain.PatientPatch
	if err := decode(w, r, &patch); err != nil {
		badRequest(w, "Invalid request body", err)
		return
	}
	if err := validation.Struct(&patch); err != nil {
		badRequest(w, "Validation failed", err)
		return
	}

	p, err := h.svc.Patients.Update(r.Context(), identityFrom(r), patch)
	if err != nil {
		h.fail(w, r, "Failed to update patient profile", err)
		return
	}
	writeJSON(w, p, http.StatusOK)
}

// ListContacts returns all emergency contacts
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.svc.Contacts.List(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to list contacts", err)
		return
	}
	writeJSON(w, contacts, http.StatusOK)
}

// CreateContact adds an emergency contact
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var c domain.Contact
	if err := decode(w, r, &c); err != nil {
		badRequest(w, "Invalid request body", err)
		return
	}
	if err := validation.Struct(&c); err != nil {
		badRequest(w, "Validation failed", err)
		return
	}

	created, err := h.svc.Contacts.Add(r.Context(), c)
	if err != nil {
		h.fail(w, r, "Failed to add contact", err)
		return
	}
	writeJSON(w, created, http.StatusCreated)
}

// DeleteContact removes an emergency contact
func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Contacts.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.fail(w, r, "Failed to delete contact", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
