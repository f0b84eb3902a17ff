package layout

import "math"

// epsilon below which a vector component is treated as zero
const epsilon = 1e-6

// Point is a position in container-local pixels
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p+q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p*s
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Midpoint returns the point halfway between p and q
func Midpoint(p, q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// PointOnCircle converts an angle (radians) and radius to a point around center
func PointOnCircle(center Point, angle, radius float64) Point {
	return Point{
		X: center.X + math.Cos(angle)*radius,
		Y: center.Y + math.Sin(angle)*radius,
	}
}

// RectBoundaryPoint returns where the ray from center toward target crosses the
// edge of the axis-aligned rectangle with the given half extents. When target
// coincides with center the center itself is returned.
func RectBoundaryPoint(center Point, halfW, halfH float64, target Point) Point {
	v := target.Sub(center)
	ax, ay := math.Abs(v.X), math.Abs(v.Y)

	if ax < epsilon && ay < epsilon {
		return center
	}

	var s float64
	switch {
	case ax < epsilon:
		s = halfH / ay
	case ay < epsilon:
		s = halfW / ax
	default:
		s = math.Min(halfW/ax, halfH/ay)
	}

	return center.Add(v.Scale(s))
}

// Clamp limits v to [lo, hi]. If hi < lo the lower bound wins.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
