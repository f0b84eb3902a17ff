package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"hospitalops/internal/domain"
	"hospitalops/internal/service"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

// maxImportBytes bounds directory imports
const maxImportBytes = 8 << 20

// Services groups the services the API exposes
type Services struct {
	Hospitals *service.HospitalService
	Beds      *service.BedService
	Patients  *service.PatientService
	Contacts  *service.ContactService
	Inventory *service.InventoryService
	Alerts    *service.AlertService
	Layout    *service.LayoutService
}

// Handler handles hospitalops API requests
type Handler struct {
	svc    Services
	logger *zap.Logger
}

// New creates a new API handler
func New(svc Services, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// identityFrom reads the caller asserted by the auth proxy
func identityFrom(r *http.Request) domain.Identity {
	return domain.Identity{
		UserID: r.Header.Get("X-User-Id"),
		Email:  r.Header.Get("X-User-Email"),
		Name:   r.Header.Get("X-User-Name"),
	}
}

func writeJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode JSON", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, msg, details string, statusCode int) {
	writeJSON(w, ErrorResponse{Error: msg, Details: details}, statusCode)
}

// decode reads a JSON body into v, rejecting unknown fields
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}

// fail maps a service error to a status code. Unexpected errors are logged
// and reported as 500 with msg.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, "Not found", err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrForbidden):
		writeError(w, "Forbidden", err.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrUnauthenticated):
		writeError(w, "Authentication required", err.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrInvalid):
		writeError(w, msg, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error(msg,
			zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, msg, err.Error(), http.StatusInternalServerError)
	}
}

func badRequest(w http.ResponseWriter, msg string, err error) {
	writeError(w, msg, err.Error(), http.StatusBadRequest)
}

func cardURL(hospitalID string) string {
	return fmt.Sprintf("/api/hospitals/%s/card", hospitalID)
}
