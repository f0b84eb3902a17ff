package layout

import "sync"

// dragSession is the transient state of the one open drag
type dragSession struct {
	entityID     string
	startPointer Point
	startOffset  Point
	sub          Subscription
}

// Controller owns the per-entity drag offsets of one view. At most one drag
// session is open at a time; offsets survive across sessions and are never
// reset for the life of the controller.
type Controller struct {
	mu      sync.Mutex
	limit   float64
	offsets map[string]Point
	active  *dragSession
	root    PointerSource
}

// NewController creates a controller whose movement envelope is the given
// fraction of the viewport height. root may be nil when no root-scoped events
// are available.
func NewController(viewportHeight, fraction float64, root PointerSource) *Controller {
	limit := viewportHeight * fraction
	if limit < 0 {
		limit = -limit
	}
	return &Controller{
		limit:   limit,
		offsets: make(map[string]Point),
		root:    root,
	}
}

// MovementLimit returns the per-axis bound of every offset
func (c *Controller) MovementLimit() float64 {
	return c.limit
}

// PointerDown opens a drag session for entityID. It is ignored, returning
// false, while another session is open.
func (c *Controller) PointerDown(entityID string, at Point) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil {
		return false
	}

	c.active = &dragSession{
		entityID:     entityID,
		startPointer: at,
		startOffset:  c.offsets[entityID],
	}
	if c.root != nil {
		c.active.sub = c.root.Subscribe(c.handleRoot)
	}
	return true
}

// PointerMove moves the dragged card. Without an open session it does nothing.
func (c *Controller) PointerMove(at Point) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		return
	}

	delta := at.Sub(c.active.startPointer)
	next := c.active.startOffset.Add(delta)
	c.offsets[c.active.entityID] = Point{
		X: Clamp(next.X, -c.limit, c.limit),
		Y: Clamp(next.Y, -c.limit, c.limit),
	}
}

// PointerUp ends the open session, keeping the offset it produced
func (c *Controller) PointerUp() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endLocked()
}

// PointerLeave ends the session when the pointer leaves the interactive
// surface with no button held
func (c *Controller) PointerLeave(buttonHeld bool) {
	if buttonHeld {
		return
	}
	c.PointerUp()
}

func (c *Controller) endLocked() {
	if c.active == nil {
		return
	}
	if c.active.sub != nil {
		c.active.sub.Close()
	}
	c.active = nil
}

func (c *Controller) handleRoot(ev PointerEvent) {
	switch ev.Type {
	case PointerMove:
		c.PointerMove(ev.At)
	case PointerUp:
		c.PointerUp()
	case PointerLeave:
		c.PointerLeave(ev.ButtonHeld)
	}
}

// ActiveID returns the entity being dragged, if any
func (c *Controller) ActiveID() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		return "", false
	}
	return c.active.entityID, true
}

// Offset returns the accumulated offset of entityID, zero if never dragged
func (c *Controller) Offset(entityID string) Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offsets[entityID]
}

// Offsets returns a copy of every recorded offset
func (c *Controller) Offsets() map[string]Point {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]Point, len(c.offsets))
	for id, o := range c.offsets {
		out[id] = o
	}
	return out
}
