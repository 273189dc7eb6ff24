// Package testutil provides synthetic stroke fixtures shared by tests.
package testutil

import (
	"math"
	"math/rand"

	"github.com/nileshs31/Project-ARMagic/internal/geom"
)

// Circle returns n points tracing a circle of the given radius once
// counter-clockwise in the XY plane, first and last point coinciding.
func Circle(n int, radius float64) []geom.Vec3 {
	pts := make([]geom.Vec3, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n-1)
		pts[i] = geom.Vec3{X: radius * math.Cos(a), Y: radius * math.Sin(a)}
	}
	return pts
}

// Square returns a closed axis-aligned square stroke with side length s,
// corners first: (0,0) -> (0,s) -> (s,s) -> (s,0) -> (0,0).
func Square(s float64) []geom.Vec3 {
	return []geom.Vec3{
		{X: 0, Y: 0},
		{X: 0, Y: s},
		{X: s, Y: s},
		{X: s, Y: 0},
		{X: 0, Y: 0},
	}
}

// SquareDense returns the square stroke subdivided into roughly n points,
// the way a sampled hand stroke would arrive.
func SquareDense(s float64, n int) []geom.Vec3 {
	return Dense(Square(s), n)
}

// Dense subdivides a polyline into roughly n evenly spread points,
// preserving the original vertices.
func Dense(stroke []geom.Vec3, n int) []geom.Vec3 {
	segments := len(stroke) - 1
	if segments < 1 || n <= len(stroke) {
		return stroke
	}
	perSegment := n / segments
	out := make([]geom.Vec3, 0, n+segments)
	for s := 0; s < segments; s++ {
		a, b := stroke[s], stroke[s+1]
		for i := 0; i < perSegment; i++ {
			t := float64(i) / float64(perSegment)
			out = append(out, a.Add(b.Sub(a).Scale(t)))
		}
	}
	return append(out, stroke[len(stroke)-1])
}

// Triangle returns a closed triangle stroke with base s.
func Triangle(s float64) []geom.Vec3 {
	return []geom.Vec3{
		{X: 0, Y: 0},
		{X: s, Y: 0},
		{X: s / 2, Y: 0.9 * s},
		{X: 0, Y: 0},
	}
}

// Spiral returns n points tracing an outward archimedean spiral over the
// given number of revolutions.
func Spiral(n int, revolutions float64) []geom.Vec3 {
	pts := make([]geom.Vec3, n)
	for i := range pts {
		t := float64(i) / float64(n-1)
		a := 2 * math.Pi * revolutions * t
		r := 0.2 + 0.8*t
		pts[i] = geom.Vec3{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
	return pts
}

// Line returns n points on a straight diagonal stroke of the given length.
func Line(n int, length float64) []geom.Vec3 {
	pts := make([]geom.Vec3, n)
	for i := range pts {
		t := float64(i) / float64(n-1) * length
		pts[i] = geom.Vec3{X: t, Y: 0.5 * t}
	}
	return pts
}

// Jitter returns a copy of the stroke with deterministic noise of the
// given amplitude added to every coordinate.
func Jitter(stroke []geom.Vec3, amplitude float64, seed int64) []geom.Vec3 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]geom.Vec3, len(stroke))
	for i, p := range stroke {
		out[i] = geom.Vec3{
			X: p.X + amplitude*(2*rng.Float64()-1),
			Y: p.Y + amplitude*(2*rng.Float64()-1),
			Z: p.Z + amplitude*(2*rng.Float64()-1),
		}
	}
	return out
}

// Translate returns a copy of the stroke shifted by the given offset.
func Translate(stroke []geom.Vec3, offset geom.Vec3) []geom.Vec3 {
	out := make([]geom.Vec3, len(stroke))
	for i, p := range stroke {
		out[i] = p.Add(offset)
	}
	return out
}
