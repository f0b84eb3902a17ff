package layout

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerDefaults(t *testing.T) {
	c := NewController(800, 0.25, nil)

	assert.Equal(t, 200.0, c.MovementLimit())
	assert.Equal(t, Point{}, c.Offset("never-dragged"))
	_, active := c.ActiveID()
	assert.False(t, active)

	// moves without a session are ignored
	c.PointerMove(Point{X: 50, Y: 50})
	assert.Empty(t, c.Offsets())
}

func TestControllerDragReleaseRedrag(t *testing.T) {
	c := NewController(800, 0.25, nil)

	require.True(t, c.PointerDown("h1", Point{X: 100, Y: 100}))
	c.PointerMove(Point{X: 130, Y: 90})
	assert.Equal(t, Point{X: 30, Y: -10}, c.Offset("h1"))
	c.PointerUp()

	_, active := c.ActiveID()
	assert.False(t, active)
	assert.Equal(t, Point{X: 30, Y: -10}, c.Offset("h1"), "release keeps the offset")

	require.True(t, c.PointerDown("h1", Point{X: 400, Y: 400}))
	c.PointerMove(Point{X: 405, Y: 405})
	c.PointerUp()

	assert.Equal(t, Point{X: 35, Y: -5}, c.Offset("h1"))
}

func TestControllerSingleActiveDrag(t *testing.T) {
	c := NewController(800, 0.25, nil)

	require.True(t, c.PointerDown("h1", Point{}))
	assert.False(t, c.PointerDown("h2", Point{X: 10, Y: 10}))

	id, active := c.ActiveID()
	require.True(t, active)
	assert.Equal(t, "h1", id)

	c.PointerMove(Point{X: 20, Y: 0})
	assert.Equal(t, Point{X: 20}, c.Offset("h1"))
	assert.Equal(t, Point{}, c.Offset("h2"))
}

func TestControllerClampsLargeDeltas(t *testing.T) {
	c := NewController(400, 0.25, nil)

	c.PointerDown("h1", Point{})
	c.PointerMove(Point{X: 10000, Y: -10000})
	assert.Equal(t, Point{X: 100, Y: -100}, c.Offset("h1"))

	// moving back inside the envelope is relative to the session start
	c.PointerMove(Point{X: 40, Y: 0})
	assert.Equal(t, Point{X: 40, Y: 0}, c.Offset("h1"))
}

func TestControllerPointerLeave(t *testing.T) {
	c := NewController(800, 0.25, nil)

	c.PointerDown("h1", Point{})
	c.PointerLeave(true)
	_, active := c.ActiveID()
	assert.True(t, active, "leaving with the button held keeps the drag")

	c.PointerLeave(false)
	_, active = c.ActiveID()
	assert.False(t, active)
}

func TestControllerRootSubscription(t *testing.T) {
	root := NewRootSource()
	c := NewController(800, 0.25, root)

	assert.Equal(t, 0, root.Subscribers())

	c.PointerDown("h1", Point{X: 10, Y: 10})
	assert.Equal(t, 1, root.Subscribers(), "session subscribes at root scope")

	// pointer left the card: root scope still drives the drag
	root.Dispatch(PointerEvent{Type: PointerMove, At: Point{X: 60, Y: 30}, ButtonHeld: true})
	assert.Equal(t, Point{X: 50, Y: 20}, c.Offset("h1"))

	root.Dispatch(PointerEvent{Type: PointerUp, At: Point{X: 60, Y: 30}})
	_, active := c.ActiveID()
	assert.False(t, active, "release outside any card ends the drag")
	assert.Equal(t, 0, root.Subscribers(), "subscription released with the session")

	// no session, no effect
	root.Dispatch(PointerEvent{Type: PointerMove, At: Point{X: 500, Y: 500}})
	assert.Equal(t, Point{X: 50, Y: 20}, c.Offset("h1"))
}

func TestOffsetClampingProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("offsets never leave the movement envelope", prop.ForAll(
		func(xs, ys []float64, viewport float64) bool {
			c := NewController(viewport, 0.25, nil)
			limit := c.MovementLimit()

			n := len(xs)
			if len(ys) < n {
				n = len(ys)
			}
			for i := 0; i < n; i++ {
				c.PointerDown("h1", Point{})
				c.PointerMove(Point{X: xs[i], Y: ys[i]})
				c.PointerUp()

				o := c.Offset("h1")
				if math.Abs(o.X) > limit || math.Abs(o.Y) > limit {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(-1e6, 1e6)),
		gen.SliceOf(gen.Float64Range(-1e6, 1e6)),
		gen.Float64Range(100, 2000),
	))

	properties.Property("sessions compose", prop.ForAll(
		func(dx1, dy1, dx2, dy2 float64) bool {
			c := NewController(10000, 0.25, nil)
			limit := c.MovementLimit()

			c.PointerDown("h1", Point{})
			c.PointerMove(Point{X: dx1, Y: dy1})
			c.PointerUp()
			prev := c.Offset("h1")

			c.PointerDown("h1", Point{X: 7, Y: 7})
			c.PointerMove(Point{X: 7 + dx2, Y: 7 + dy2})
			c.PointerUp()
			got := c.Offset("h1")

			want := Point{
				X: Clamp(prev.X+dx2, -limit, limit),
				Y: Clamp(prev.Y+dy2, -limit, limit),
			}
			return math.Abs(got.X-want.X) < 1e-9 && math.Abs(got.Y-want.Y) < 1e-9
		},
		gen.Float64Range(-3000, 3000),
		gen.Float64Range(-3000, 3000),
		gen.Float64Range(-3000, 3000),
		gen.Float64Range(-3000, 3000),
	))

	properties.TestingRun(t)
}
