package geom

import "math"

// defaultUp is the fallback plane normal for strokes whose segment
// cross-products cancel out (collinear or near-collinear input).
var defaultUp = Vec3{X: 0, Y: 1, Z: 0}

// ProjectToPlane projects a 3D stroke onto its best-fit plane and returns
// the stroke as 2D points in that plane.
//
// The plane normal is estimated by summing the cross products of
// consecutive segment pairs. The in-plane basis u follows the stroke's
// overall direction (first point to last point) with its normal component
// removed; v completes the right-handed basis as normal x u. Degenerate
// inputs fall back to the default up-vector and an arbitrary perpendicular.
func ProjectToPlane(pts []Vec3) []Point {
	if len(pts) == 0 {
		return nil
	}

	normal := Vec3{}
	for i := 0; i+2 < len(pts); i++ {
		a := pts[i+1].Sub(pts[i])
		b := pts[i+2].Sub(pts[i+1])
		normal = normal.Add(a.Cross(b))
	}
	if normal.Norm() < minScale {
		normal = defaultUp
	} else {
		normal = normal.Scale(1 / normal.Norm())
	}

	// Overall stroke direction, flattened into the plane. A closed stroke
	// has a near-zero overall direction, so fall back to normal x up.
	dir := pts[len(pts)-1].Sub(pts[0])
	u := dir.Sub(normal.Scale(dir.Dot(normal)))
	if u.Norm() < minScale {
		u = normal.Cross(defaultUp)
		if u.Norm() < minScale {
			u = normal.Cross(Vec3{X: 1, Y: 0, Z: 0})
		}
	}
	u = u.Scale(1 / u.Norm())
	v := normal.Cross(u)

	origin := pts[0]
	out := make([]Point, len(pts))
	for i, p := range pts {
		rel := p.Sub(origin)
		out[i] = Point{X: rel.Dot(u), Y: rel.Dot(v)}
	}
	return out
}

// distance3D returns the Euclidean distance between two 3D points.
func distance3D(a, b Vec3) float64 {
	d := a.Sub(b)
	return math.Sqrt(d.Dot(d))
}

// PathLength3D returns the total polyline length of a 3D point sequence.
func PathLength3D(pts []Vec3) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += distance3D(pts[i-1], pts[i])
	}
	return total
}
