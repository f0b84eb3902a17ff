package handler

import (
	"net/http"

	"hospitalops/internal/domain"
	"hospitalops/internal/validation"
)

// ListBeds returns the caller's beds
func (h *Handler) ListBeds(w http.ResponseWriter, r *http.Request) {
	beds, err := h.svc.Beds.List(r.Context(), identityFrom(r))
	if err != nil {
		h.fail(w, r, "Failed to list beds", err)
		return
	}
	writeJSON(w, beds, http.StatusOK)
}

// CreateBed registers a bed under the caller's hospital
func (h *Handler) CreateBed(w http.ResponseWriter, r *http.Request) {
	var req validation.BedRequest
	if err := decode(w, r, &req); err != nil {
		badRequest(w, "Invalid request body", err)
		return
	}
	if err := validation.ValidateBedRequest(&req); err != nil {
		badRequest(w, "Validation failed", err)
		return
	}

	bed := &domain.Bed{
		BedType:           domain.BedType(req.BedType),
		HospitalName:      req.HospitalName,
		BedNumber:         *req.BedNumber,
		Status:            domain.BedStatus(req.BedStatus),
		PatientName:       req.PatientName,
		PatientAge:        req.PatientAge,
		PatientAdmittedAt: req.PatientAdmittedAt,
		PatientDischarge:  req.PatientDischarge,
		PatientHeartRate:  req.PatientHeartRate,
		PatientSpO2:       req.PatientSpO2,
		PatientBP:         req.PatientBP,
		PatientConditions: req.PatientConditions,
	}
	created, err := h.svc.Beds.Create(r.Context(), identityFrom(r), bed)
	if err != nil {
		h.fail(w, r, "Failed to create bed", err)
		return
	}
	writeJSON(w, created, http.StatusCreated)
}

// BedStats summarizes the caller's beds
func (h *Handler) BedStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Beds.Stats(r.Context(), identityFrom(r))
	if err != nil {
		h.fail(w, r, "Failed to compute bed stats", err)
		return
	}
	writeJSON(w, stats, http.StatusOK)
}

// UpdateBedStatus changes the status of one of the caller's beds
func (h *Handler) UpdateBedStatus(w http.ResponseWriter, r *http.Request) {
	var req validation.BedStatusRequest
	if err := decode(w, r, &req); err != nil {
		badRequest(w, "Invalid request body", err)
		return
	}
	if err := validation.Struct(&req); err != nil {
		badRequest(w, "Validation failed", err)
		return
	}

	bed, err := h.svc.Beds.UpdateStatus(r.Context(), identityFrom(r), r.PathValue("id"), domain.BedStatus(req.Status))
	if err != nil {
		h.fail(w, r, "Failed to update bed", err)
		return
	}
	writeJSON(w, bed, http.StatusOK)
}

// DeleteBed removes one of the caller's beds
func (h *Handler) DeleteBed(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Beds.Delete(r.Context(), identityFrom(r), r.PathValue("id")); err != nil {
		h.fail(w, r, "Failed to delete bed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
