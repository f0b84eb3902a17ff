package layout

import "sync"

// PlacedCard is the final screen position of one card
type PlacedCard struct {
	EntityID string  `json:"entity_id"`
	Angle    float64 `json:"angle"`
	Left     float64 `json:"left"`
	Top      float64 `json:"top"`
}

// Scene is everything needed to draw one frame of a view
type Scene struct {
	Width        float64      `json:"width"`
	Height       float64      `json:"height"`
	Anchor       Point        `json:"anchor"`
	AnchorRadius float64      `json:"anchor_radius"`
	Cards        []PlacedCard `json:"cards"`
	Connectors   []Connector  `json:"connectors"`
}

// View is one mounted layout: the entity list, the container size, the base
// positions derived from them, and the drag controller layered on top.
type View struct {
	ID     string
	params Params
	root   *RootSource
	drag   *Controller

	mu        sync.RWMutex
	entities  []Entity
	width     float64
	positions map[string]BasePosition
}

// NewView mounts a view. The movement limit is fixed here from the viewport
// height, once per mount.
func NewView(id string, params Params, containerWidth, viewportHeight float64) *View {
	root := NewRootSource()
	return &View{
		ID:        id,
		params:    params,
		root:      root,
		drag:      NewController(viewportHeight, params.MovementLimitFraction, root),
		width:     containerWidth,
		positions: make(map[string]BasePosition),
	}
}

// Params returns the layout constants of the view
func (v *View) Params() Params {
	return v.params
}

// Drag returns the drag controller of the view
func (v *View) Drag() *Controller {
	return v.drag
}

// Root returns the root-scoped pointer source of the view
func (v *View) Root() *RootSource {
	return v.root
}

// SetEntities replaces the entity list and recomputes base positions
func (v *View) SetEntities(entities []Entity) {
	list := make([]Entity, len(entities))
	copy(list, entities)

	v.mu.Lock()
	defer v.mu.Unlock()

	v.entities = list
	v.positions = GeneratePositions(list, v.width, v.params)
}

// Resize records a new container width and recomputes base positions
func (v *View) Resize(containerWidth float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.width = containerWidth
	v.positions = GeneratePositions(v.entities, containerWidth, v.params)
}

// Width returns the current container width
func (v *View) Width() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width
}

// Entities returns a copy of the current entity list
func (v *View) Entities() []Entity {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]Entity, len(v.entities))
	copy(out, v.entities)
	return out
}

// BasePosition returns the base position of an entity, if computed
func (v *View) BasePosition(entityID string) (BasePosition, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	pos, ok := v.positions[entityID]
	return pos, ok
}

// Render produces the current frame. Entities without a base position are
// skipped for this frame.
func (v *View) Render(anchorRadius float64) Scene {
	v.mu.RLock()
	entities := v.entities
	positions := v.positions
	width := v.width
	v.mu.RUnlock()

	anchor := v.params.Center(width)
	scene := Scene{
		Width:        width,
		Height:       v.params.ContainerHeight,
		Anchor:       anchor,
		AnchorRadius: anchorRadius,
		Cards:        make([]PlacedCard, 0, len(entities)),
		Connectors:   make([]Connector, 0, len(entities)),
	}

	for i, e := range entities {
		base, ok := positions[e.ID]
		if !ok {
			continue
		}
		angle := AngleFor(i, len(entities))
		final := base.Offset(v.drag.Offset(e.ID))

		scene.Cards = append(scene.Cards, PlacedCard{
			EntityID: e.ID,
			Angle:    angle,
			Left:     final.Left,
			Top:      final.Top,
		})
		scene.Connectors = append(scene.Connectors,
			Connect(e.ID, anchor, anchorRadius, angle, final, v.params))
	}

	return scene
}
