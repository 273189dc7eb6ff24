package geom

import (
	"math"
	"testing"
)

// circleXY returns n points on a circle of the given radius in the XY plane.
func circleXY(n int, radius float64) []Vec3 {
	pts := make([]Vec3, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n-1)
		pts[i] = Vec3{X: radius * math.Cos(a), Y: radius * math.Sin(a)}
	}
	return pts
}

func TestProjectToPlane_PreservesDistances(t *testing.T) {
	// Points already in a plane must keep their pairwise distances after
	// projection, whatever basis is chosen.
	pts := []Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0.5, Y: 0.25, Z: 0},
		{X: 0.25, Y: 0.75, Z: 0},
	}

	out := ProjectToPlane(pts)

	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			want := distance3D(pts[i], pts[j])
			got := Distance(out[i], out[j])
			if math.Abs(got-want) > 1e-9 {
				t.Fatalf("pair (%d, %d): expected distance %f, got %f", i, j, want, got)
			}
		}
	}
}

func TestProjectToPlane_TiltedPlane(t *testing.T) {
	// A circle drawn in a tilted plane must flatten back into a circle.
	flat := circleXY(32, 1)
	tilt := math.Pi / 3
	tilted := make([]Vec3, len(flat))
	for i, p := range flat {
		// Rotate about the X axis.
		tilted[i] = Vec3{
			X: p.X,
			Y: p.Y*math.Cos(tilt) - p.Z*math.Sin(tilt),
			Z: p.Y*math.Sin(tilt) + p.Z*math.Cos(tilt),
		}
	}

	out := ProjectToPlane(tilted)

	// The fixture closes by duplicating its first point, which would pull
	// the centroid off the circle center; take it over the distinct points.
	c := Centroid(out[:len(out)-1])
	for i, p := range out {
		r := Distance(p, c)
		if math.Abs(r-1) > 1e-6 {
			t.Fatalf("point %d: expected radius 1, got %f", i, r)
		}
	}
}

func TestProjectToPlane_TranslationInvariance(t *testing.T) {
	base := circleXY(24, 2)
	shift := Vec3{X: 100, Y: -40, Z: 17}
	moved := make([]Vec3, len(base))
	for i, p := range base {
		moved[i] = p.Add(shift)
	}

	a := NormalizeCentroid(ProjectToPlane(base))
	b := NormalizeCentroid(ProjectToPlane(moved))

	for i := range a {
		if math.Abs(a[i].X-b[i].X) > 1e-9 || math.Abs(a[i].Y-b[i].Y) > 1e-9 {
			t.Fatalf("point %d: expected %v, got %v", i, a[i], b[i])
		}
	}
}

func TestProjectToPlane_CollinearFallback(t *testing.T) {
	// Collinear points have no usable cross products; projection must fall
	// back to the default normal and stay finite.
	pts := []Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 2, Y: 0, Z: 0},
		{X: 3, Y: 0, Z: 0},
		{X: 4, Y: 0, Z: 0},
		{X: 5, Y: 0, Z: 0},
	}

	out := ProjectToPlane(pts)

	if len(out) != len(pts) {
		t.Fatalf("expected %d points, got %d", len(pts), len(out))
	}
	for i, p := range out {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Errorf("point %d: expected finite output, got %v", i, p)
		}
	}
	// The line should survive as a line of the same length.
	if got := PathLength(out); math.Abs(got-5) > 1e-9 {
		t.Errorf("expected projected path length 5, got %f", got)
	}
}

func TestProjectToPlane_ShortInput(t *testing.T) {
	out := ProjectToPlane([]Vec3{{X: 1, Y: 2, Z: 3}})
	if len(out) != 1 {
		t.Fatalf("expected 1 point, got %d", len(out))
	}

	if out := ProjectToPlane(nil); out != nil {
		t.Errorf("expected nil for empty input, got %v", out)
	}
}
