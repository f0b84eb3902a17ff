package layout

import (
	"fmt"
	"math"
	"strconv"
)

// Connector is the curve joining the anchor to one card
type Connector struct {
	EntityID string `json:"entity_id"`
	Start    Point  `json:"start"`
	Control  Point  `json:"control"`
	End      Point  `json:"end"`
	Path     string `json:"path"`
}

// Connect builds the connector for a card at its final (base + offset)
// position. anchorRadius is the measured radius of the rendered anchor.
func Connect(entityID string, anchor Point, anchorRadius, angle float64, final BasePosition, p Params) Connector {
	halfW, halfH := p.HalfCard()

	start := PointOnCircle(anchor, angle, anchorRadius)
	cardCenter := Point{X: final.Left + halfW, Y: final.Top + halfH}
	end := RectBoundaryPoint(cardCenter, halfW, halfH, start)
	control := PointOnCircle(Midpoint(start, end), angle+math.Pi/2, p.ConnectorBow)

	return Connector{
		EntityID: entityID,
		Start:    start,
		Control:  control,
		End:      end,
		Path:     quadPath(start, control, end),
	}
}

func quadPath(start, control, end Point) string {
	return fmt.Sprintf("M %s %s Q %s %s %s %s",
		num(start.X), num(start.Y),
		num(control.X), num(control.Y),
		num(end.X), num(end.Y))
}

// num formats a coordinate with the shortest exact representation
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
