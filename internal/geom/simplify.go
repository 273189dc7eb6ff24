package geom

import "math"

// Simplify reduces a polyline with the Ramer-Douglas-Peucker algorithm.
// The point with the maximum perpendicular distance from the chord between
// the first and last point splits the span recursively; spans whose maximum
// deviation stays within epsilon collapse to their two endpoints. Inputs
// with fewer than 3 points are returned unchanged.
func Simplify(pts []Point, epsilon float64) []Point {
	if len(pts) < 3 {
		return pts
	}

	first, last := pts[0], pts[len(pts)-1]
	maxDist := 0.0
	maxIdx := 0
	for i := 1; i < len(pts)-1; i++ {
		d := perpendicularDistance(pts[i], first, last)
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist <= epsilon {
		return []Point{first, last}
	}

	left := Simplify(pts[:maxIdx+1], epsilon)
	right := Simplify(pts[maxIdx:], epsilon)
	// Drop the joint point duplicated between the two halves.
	return append(left[:len(left):len(left)], right[1:]...)
}

// perpendicularDistance returns the distance from p to the segment [a, b].
// When a and b coincide the chord is degenerate and the plain point
// distance is used instead.
func perpendicularDistance(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq < minScale*minScale {
		return Distance(p, a)
	}
	// Perpendicular distance via the cross product magnitude.
	return math.Abs(dx*(a.Y-p.Y)-dy*(a.X-p.X)) / math.Sqrt(lenSq)
}
