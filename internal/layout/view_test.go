package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewRenderCombinesOffsets(t *testing.T) {
	v := NewView("v1", DefaultParams(), 1400, 900)
	v.SetEntities(entitiesFromDistances([]float64{1, 2, 4}))

	v.Drag().PointerDown("h0", Point{X: 0, Y: 0})
	v.Drag().PointerMove(Point{X: 30, Y: -10})
	v.Drag().PointerUp()

	scene := v.Render(64)
	require.Len(t, scene.Cards, 3)
	require.Len(t, scene.Connectors, 3)

	assert.Equal(t, Point{X: 700, Y: 450}, scene.Anchor)
	assert.InDelta(t, 782.5, scene.Cards[0].Left, 1e-9)
	assert.InDelta(t, 360.0, scene.Cards[0].Top, 1e-9)

	base, ok := v.BasePosition("h0")
	require.True(t, ok)
	assert.InDelta(t, 752.5, base.Left, 1e-9, "render must not mutate base positions")

	// connector follows the dragged card
	want := Connect("h0", scene.Anchor, 64, 0, BasePosition{Left: 782.5, Top: 360}, v.Params())
	assert.Equal(t, want, scene.Connectors[0])
}

func TestViewResizeRecomputes(t *testing.T) {
	v := NewView("v1", DefaultParams(), 1400, 900)
	v.SetEntities(entitiesFromDistances([]float64{1, 2, 4}))

	before, _ := v.BasePosition("h0")
	v.Resize(1000)
	after, _ := v.BasePosition("h0")

	assert.Equal(t, 1000.0, v.Width())
	assert.InDelta(t, before.Left-200, after.Left, 1e-9)
	assert.Equal(t, Point{X: 500, Y: 450}, v.Render(64).Anchor)
}

func TestViewSkipsEntitiesWithoutPosition(t *testing.T) {
	v := NewView("v1", DefaultParams(), 1400, 900)
	v.SetEntities(entitiesFromDistances([]float64{1, 2}))

	// the list changed but positions have not been recomputed yet
	v.mu.Lock()
	v.entities = append(v.entities, Entity{ID: "late", Distance: 3})
	v.mu.Unlock()

	scene := v.Render(64)
	assert.Len(t, scene.Cards, 2)
	for _, c := range scene.Cards {
		assert.NotEqual(t, "late", c.EntityID)
	}
}

func TestViewEmpty(t *testing.T) {
	v := NewView("v1", DefaultParams(), 1400, 900)
	scene := v.Render(64)
	assert.Empty(t, scene.Cards)
	assert.Empty(t, scene.Connectors)
}

func TestViewsRegistry(t *testing.T) {
	views := NewViews()

	v, err := views.Open("a", DefaultParams(), 1400, 900)
	require.NoError(t, err)
	_, err = views.Open("a", DefaultParams(), 1400, 900)
	assert.Error(t, err)

	got, ok := views.Get("a")
	require.True(t, ok)
	assert.Same(t, v, got)
	assert.Equal(t, 1, views.Len())

	v.Drag().PointerDown("h0", Point{})
	assert.Equal(t, 1, v.Root().Subscribers())

	assert.True(t, views.Close("a"))
	assert.False(t, views.Close("a"))
	assert.Equal(t, 0, v.Root().Subscribers(), "closing a view ends its drag")
	assert.Equal(t, 0, views.Len())
}
