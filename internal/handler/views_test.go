package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospitalops/internal/service"
)

func openTestView(t *testing.T, s *testServer) service.ViewSnapshot {
	t.Helper()
	rec := s.do(t, visitor, http.MethodPost, "/api/views", map[string]float64{"width": 1400, "viewport_height": 800})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[service.ViewSnapshot](t, rec)
}

func TestOpenViewValidation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, visitor, http.MethodPost, "/api/views", map[string]float64{"width": 0, "viewport_height": 800})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, visitor, http.MethodPost, "/api/views", map[string]float64{"width": 50000, "viewport_height": 800})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestViewDragOverHTTP(t *testing.T) {
	s := newTestServer(t)
	snap := openTestView(t, s)
	assert.Len(t, snap.Scene.Cards, 6)
	assert.Equal(t, 200.0, snap.MovementLimit)

	base := snap.Scene.Cards[0]
	path := "/api/views/" + snap.ViewID + "/pointer"

	rec := s.do(t, visitor, http.MethodPost, path, map[string]any{"type": "down", "entity_id": base.EntityID, "x": 100, "y": 100})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, base.EntityID, decodeBody[service.ViewSnapshot](t, rec).ActiveID)

	rec = s.do(t, visitor, http.MethodPost, path, map[string]any{"type": "move", "scope": "root", "x": 130, "y": 90})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, visitor, http.MethodPost, path, map[string]any{"type": "up", "scope": "root"})
	require.Equal(t, http.StatusOK, rec.Code)
	after := decodeBody[service.ViewSnapshot](t, rec)
	assert.Empty(t, after.ActiveID)
	assert.InDelta(t, base.Left+30, after.Scene.Cards[0].Left, 1e-9)
	assert.InDelta(t, base.Top-10, after.Scene.Cards[0].Top, 1e-9)

	// down without an entity is rejected
	rec = s.do(t, visitor, http.MethodPost, path, map[string]any{"type": "down"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "entity_id")

	rec = s.do(t, visitor, http.MethodPost, path, map[string]any{"type": "click"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestViewSceneResizeClose(t *testing.T) {
	s := newTestServer(t)
	snap := openTestView(t, s)
	base := "/api/views/" + snap.ViewID

	rec := s.do(t, visitor, http.MethodGet, base+"/scene", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, snap.Scene, decodeBody[service.ViewSnapshot](t, rec).Scene)

	rec = s.do(t, visitor, http.MethodGet, base+"/scene.svg", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "<svg"))

	rec = s.do(t, visitor, http.MethodPost, base+"/resize", map[string]float64{"width": 900})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 900.0, decodeBody[service.ViewSnapshot](t, rec).Scene.Width)

	rec = s.do(t, visitor, http.MethodPost, base+"/resize", map[string]float64{"width": -5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, visitor, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, visitor, http.MethodGet, base+"/scene", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
