package layout

import "math"

// Params holds the tunable constants of the radial layout
type Params struct {
	ContainerHeight       float64 `json:"container_height" yaml:"container_height"`
	CardWidth             float64 `json:"card_width" yaml:"card_width"`
	CardHeight            float64 `json:"card_height" yaml:"card_height"`
	BaseRadius            float64 `json:"base_radius" yaml:"base_radius"`
	RadiusSpread          float64 `json:"radius_spread" yaml:"radius_spread"`
	MovementLimitFraction float64 `json:"movement_limit_fraction" yaml:"movement_limit_fraction"`
	ConnectorBow          float64 `json:"connector_bow" yaml:"connector_bow"`
}

// DefaultParams returns the constants used by the hospitals view
func DefaultParams() Params {
	return Params{
		ContainerHeight:       900,
		CardWidth:             320,
		CardHeight:            160,
		BaseRadius:            150,
		RadiusSpread:          250,
		MovementLimitFraction: 0.25,
		ConnectorBow:          30,
	}
}

// HalfCard returns half the card width and height
func (p Params) HalfCard() (float64, float64) {
	return p.CardWidth / 2, p.CardHeight / 2
}

// Center returns the anchor position for a container of the given width
func (p Params) Center(containerWidth float64) Point {
	return Point{X: containerWidth / 2, Y: p.ContainerHeight / 2}
}

// Entity is the part of a hospital the layout cares about
type Entity struct {
	ID       string  `json:"id"`
	Distance float64 `json:"distance"`
}

// BasePosition is the top-left corner of a card before any drag offset
type BasePosition struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
}

// Offset returns the position moved by a drag offset
func (b BasePosition) Offset(o Point) BasePosition {
	return BasePosition{Left: b.Left + o.X, Top: b.Top + o.Y}
}

// AngleFor returns the angular slot of entity i out of n
func AngleFor(i, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(i) / float64(n) * 2 * math.Pi
}

// MaxDistance returns the largest distance in the list, or 0 for an empty list
func MaxDistance(entities []Entity) float64 {
	maxDistance := 0.0
	for i, e := range entities {
		if i == 0 || e.Distance > maxDistance {
			maxDistance = e.Distance
		}
	}
	return maxDistance
}

// Radius maps a distance to a placement radius. A non-positive maxDistance
// places everything at the outer ring instead of dividing by zero.
func (p Params) Radius(distance, maxDistance float64) float64 {
	ratio := 1.0
	if maxDistance > 0 {
		ratio = distance / maxDistance
	}
	return p.BaseRadius + ratio*p.RadiusSpread
}

// GeneratePositions computes the clamped base position of every entity for a
// container of the given width. The result is a fresh map on every call.
func GeneratePositions(entities []Entity, containerWidth float64, p Params) map[string]BasePosition {
	positions := make(map[string]BasePosition, len(entities))
	if len(entities) == 0 {
		return positions
	}

	center := p.Center(containerWidth)
	maxDistance := MaxDistance(entities)
	halfW, halfH := p.HalfCard()

	for i, e := range entities {
		angle := AngleFor(i, len(entities))
		radius := p.Radius(e.Distance, maxDistance)
		pt := PointOnCircle(center, angle, radius)

		positions[e.ID] = BasePosition{
			Left: Clamp(pt.X-halfW, 0, containerWidth-p.CardWidth),
			Top:  Clamp(pt.Y-halfH, 0, p.ContainerHeight-p.CardHeight),
		}
	}

	return positions
}
