// Package geom provides the geometric primitives and stroke preprocessing
// used by the recognition engine: plane projection, resampling,
// normalization and polyline simplification.
package geom

import "math"

// minScale is the floor applied to every scale denominator so degenerate
// (zero-extent) strokes never divide by zero.
const minScale = 1e-6

// Vec3 represents a 3D point in application space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Point represents a 2D point in the projected stroke plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Add returns a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Scale returns a scaled by s.
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

// Dot returns the dot product of a and b.
func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product of a and b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Norm returns the Euclidean length of a.
func (a Vec3) Norm() float64 {
	return math.Sqrt(a.Dot(a))
}

// Distance returns the Euclidean distance between two 2D points.
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// PathLength returns the total polyline length of the point sequence.
func PathLength(pts []Point) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += Distance(pts[i-1], pts[i])
	}
	return total
}

// Centroid returns the arithmetic mean of the points.
// Returns the zero point for an empty sequence.
func Centroid(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(pts))
	return Point{X: sx / n, Y: sy / n}
}

// Bounds represents an axis-aligned bounding box.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent of the bounds.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent of the bounds.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Center returns the center of the bounds.
func (b Bounds) Center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// BoundingBox returns the axis-aligned bounding box of the points.
// Returns the zero bounds for an empty sequence.
func BoundingBox(pts []Point) Bounds {
	if len(pts) == 0 {
		return Bounds{}
	}
	b := Bounds{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		if p.X < b.MinX {
			b.MinX = p.X
		}
		if p.X > b.MaxX {
			b.MaxX = p.X
		}
		if p.Y < b.MinY {
			b.MinY = p.Y
		}
		if p.Y > b.MaxY {
			b.MaxY = p.Y
		}
	}
	return b
}

// PathScale returns the larger bounding-box dimension of the points,
// clamped to a minimum epsilon so it is always safe as a denominator.
func PathScale(pts []Point) float64 {
	b := BoundingBox(pts)
	s := math.Max(b.Width(), b.Height())
	if s < minScale {
		return minScale
	}
	return s
}

// SignedArea returns the signed area enclosed by the polyline via the
// shoelace formula. Negative area means the stroke runs clockwise when the
// y-axis points up in the projected basis.
func SignedArea(pts []Point) float64 {
	if len(pts) < 3 {
		return 0
	}
	var area float64
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return area / 2
}
