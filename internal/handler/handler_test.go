package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hospitalops/internal/domain"
	"hospitalops/internal/layout"
	"hospitalops/internal/metrics"
	"hospitalops/internal/repository/sqlite"
	"hospitalops/internal/service"
)

var (
	staff   = domain.Identity{UserID: "u-staff", Email: "ops@lilavati.example", Name: "Lilavati Hospital"}
	other   = domain.Identity{UserID: "u-other", Email: "ops@hinduja.example", Name: "Hinduja"}
	visitor = domain.Identity{UserID: "u-patient", Email: "asha@example.com", Name: "Asha"}
)

type testServer struct {
	handler http.Handler
	metrics *metrics.Registry
	svc     Services
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	logger := zap.NewNop()
	m := metrics.NewRegistry()
	bus := service.NewEventBus(m)
	seed := service.NewSeed("", bus, m, logger)
	require.NoError(t, seed.Reload())

	alerts := service.NewAlertService(repo, bus, m, logger)
	hospitals := service.NewHospitalService(repo, bus, seed, logger)
	patients := service.NewPatientService(repo, bus, logger)
	svc := Services{
		Hospitals: hospitals,
		Beds:      service.NewBedService(repo, bus, alerts, logger),
		Patients:  patients,
		Contacts:  service.NewContactService(repo, bus, logger),
		Inventory: service.NewInventoryService(repo, bus, alerts, logger),
		Alerts:    alerts,
		Layout: service.NewLayoutService(layout.NewViews(), layout.DefaultParams(), 56,
			hospitals, patients, bus, m, logger),
	}
	require.NoError(t, svc.Inventory.SeedDefaults(t.Context()))

	h := NewRouter(New(svc, logger), RouterOptions{Metrics: m}, logger)
	return &testServer{handler: h, metrics: m, svc: svc}
}

// do sends a request as id and returns the recorded response
func (s *testServer) do(t *testing.T, id domain.Identity, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, rdr)
	if id.UserID != "" {
		req.Header.Set("X-User-Id", id.UserID)
		req.Header.Set("X-User-Email", id.Email)
		req.Header.Set("X-User-Name", id.Name)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, domain.Identity{}, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, domain.Identity{}, http.MethodGet, "/healthz", nil)

	rec := s.do(t, domain.Identity{}, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hospitalops_http_requests_total{method="GET",path="GET /healthz",status="200"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, domain.Identity{}, http.MethodOptions, "/api/beds", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "X-User-Id")
}

func TestRecoverMiddleware(t *testing.T) {
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), Recover(zap.NewNop()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, "boom", resp.Details)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}), mw("a"), mw("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestErrorMapping(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		id     domain.Identity
		method string
		path   string
		body   any
		want   int
	}{
		{"anonymous beds", domain.Identity{}, http.MethodGet, "/api/beds", nil, http.StatusUnauthorized},
		{"unknown bed", staff, http.MethodDelete, "/api/beds/none", nil, http.StatusNotFound},
		{"bad json", staff, http.MethodPost, "/api/beds", "{", http.StatusBadRequest},
		{"empty body", staff, http.MethodPost, "/api/beds", "", http.StatusBadRequest},
		{"unknown field", staff, http.MethodPost, "/api/beds", `{"bed_type":"ICU","bed_number":1,"color":"red"}`, http.StatusBadRequest},
		{"unknown alert status", staff, http.MethodGet, "/api/alerts?status=muted", nil, http.StatusBadRequest},
		{"unknown category", staff, http.MethodGet, "/api/inventory?category=Snacks", nil, http.StatusBadRequest},
		{"unknown route", staff, http.MethodGet, "/api/nothing", nil, http.StatusNotFound},
		{"wrong method", staff, http.MethodPatch, "/api/beds", nil, http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, tt.id, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}
