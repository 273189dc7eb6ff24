package gesture

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/nileshs31/Project-ARMagic/internal/geom"
)

// ShapeKind identifies the shape classes produced by the geometric
// heuristic classifier.
type ShapeKind string

const (
	ShapeUnknown  ShapeKind = "Unknown"
	ShapeTooShort ShapeKind = "TooShort"
	ShapeCircle   ShapeKind = "Circle"
	ShapeTriangle ShapeKind = "Triangle"
	ShapeSquare   ShapeKind = "Square"
	ShapeQuad     ShapeKind = "Quad"
	ShapeLine     ShapeKind = "Line"
	ShapeSpiral   ShapeKind = "Spiral"
)

// Shape is the result of a heuristic classification. Confidence runs 0..1,
// higher is better. Revolutions and Radius are populated for circular and
// spiral shapes, Corners for polygonal ones.
type Shape struct {
	Kind        ShapeKind `json:"kind"`
	Clockwise   bool      `json:"clockwise"`
	Revolutions float64   `json:"revolutions"`
	Radius      float64   `json:"radius"`
	Corners     int       `json:"corners"`
	Confidence  float64   `json:"confidence"`
}

// HeuristicConfig holds the tunable thresholds of the geometric classifier.
// Everything distance-like is expressed as a fraction of the stroke's path
// scale (with an absolute floor), so the classifier is invariant to stroke
// size.
type HeuristicConfig struct {
	// MinSampleDistance and MaxPoints control the initial downsampling.
	MinSampleDistance float64
	MaxPoints         int
	// SmoothMinPoints gates the Chaikin pass: smoothing a sparse, near-raw
	// polygon would cut away the very corners being counted.
	SmoothMinPoints int

	// ClosedFraction/ClosedFloor define the endpoint distance under which
	// a stroke counts as closed.
	ClosedFraction float64
	ClosedFloor    float64

	// SimplifyFraction with the Min/Max clamp sets the RDP tolerance for
	// the polygon path; LooseSimplifyFraction is the fallback tolerance.
	SimplifyFraction      float64
	SimplifyMin           float64
	SimplifyMax           float64
	LooseSimplifyFraction float64

	// CornerAngle and LooseCornerAngle are turn-angle thresholds in
	// degrees; corners closer than the merge distance collapse into one.
	CornerAngle         float64
	LooseCornerAngle    float64
	CornerMergeFraction float64
	CornerMergeFloor    float64

	// SquareAspectMin/Max bound the bounding-box aspect ratio that turns a
	// 4-corner quad into a square.
	SquareAspectMin float64
	SquareAspectMax float64

	// Circle acceptance: endpoint gap, minimum unwrapped revolutions,
	// radial coefficient of variation, angular monotonicity, and the
	// spiral-correlation gate that rejects strokes drifting outward.
	CircleEndFloor        float64
	CircleEndRadiusFrac   float64
	MinCircleRevolutions  float64
	MaxRadialVariation    float64
	MinMonotonicity       float64
	SpiralGateCorrelation float64
	SpiralGateRevolutions float64

	// Spiral acceptance thresholds for the fallback test.
	MinSpiralRevolutions float64
	MinSpiralCorrelation float64
}

// DefaultHeuristicConfig returns the tuned defaults.
func DefaultHeuristicConfig() HeuristicConfig {
	return HeuristicConfig{
		MinSampleDistance:     0.004,
		MaxPoints:             256,
		SmoothMinPoints:       32,
		ClosedFraction:        0.18,
		ClosedFloor:           0.03,
		SimplifyFraction:      0.12,
		SimplifyMin:           0.007,
		SimplifyMax:           0.2,
		LooseSimplifyFraction: 0.06,
		CornerAngle:           30,
		LooseCornerAngle:      20,
		CornerMergeFraction:   0.08,
		CornerMergeFloor:      0.02,
		SquareAspectMin:       0.7,
		SquareAspectMax:       1.4,
		CircleEndFloor:        0.06,
		CircleEndRadiusFrac:   0.35,
		MinCircleRevolutions:  0.95,
		MaxRadialVariation:    0.12,
		MinMonotonicity:       0.72,
		SpiralGateCorrelation: 0.2,
		SpiralGateRevolutions: 0.3,
		MinSpiralRevolutions:  0.6,
		MinSpiralCorrelation:  0.25,
	}
}

// Heuristic is the geometric decision-tree classifier. It operates on the
// plane-projected stroke directly, not on the fixed-length DTW form.
type Heuristic struct {
	cfg HeuristicConfig
}

// NewHeuristic creates a Heuristic classifier. A zero config is replaced by
// the defaults.
func NewHeuristic(cfg HeuristicConfig) *Heuristic {
	if cfg == (HeuristicConfig{}) {
		cfg = DefaultHeuristicConfig()
	}
	return &Heuristic{cfg: cfg}
}

// Classify projects a raw 3D stroke onto its best-fit plane and classifies
// the planar shape.
func (h *Heuristic) Classify(stroke []geom.Vec3) Shape {
	if len(stroke) < MinStrokePoints {
		return Shape{Kind: ShapeTooShort}
	}
	return h.ClassifyProjected(geom.ProjectToPlane(stroke))
}

// ClassifyProjected classifies an already-projected 2D stroke. The tests
// run in order; the first match wins.
func (h *Heuristic) ClassifyProjected(pts []geom.Point) Shape {
	if len(pts) < MinStrokePoints {
		return Shape{Kind: ShapeTooShort}
	}

	cfg := h.cfg
	pts = geom.ResampleByDistance(pts, cfg.MinSampleDistance, cfg.MaxPoints)
	if len(pts) >= cfg.SmoothMinPoints {
		pts = geom.Smooth(pts)
	}

	scale := geom.PathScale(pts)
	endGap := geom.Distance(pts[0], pts[len(pts)-1])
	closed := endGap <= math.Max(cfg.ClosedFraction*scale, cfg.ClosedFloor)
	clockwise := geom.SignedArea(pts) < 0
	epsilon := clamp(scale*cfg.SimplifyFraction, cfg.SimplifyMin, cfg.SimplifyMax)

	if closed {
		if shape, ok := h.classifyPolygon(pts, scale, epsilon, clockwise); ok {
			return shape
		}
	} else {
		// A non-closed stroke that simplifies to its two endpoints is a
		// straight line.
		if simp := geom.Simplify(pts, epsilon); len(simp) == 2 {
			return Shape{Kind: ShapeLine, Confidence: 0.9}
		}
	}

	st := newAngleStats(pts)

	if h.isCircle(st, endGap) {
		return Shape{
			Kind:        ShapeCircle,
			Clockwise:   st.totalRotation < 0,
			Revolutions: st.revolutions,
			Radius:      st.meanRadius,
			Confidence:  0.9,
		}
	}

	if st.revolutions >= cfg.MinSpiralRevolutions && math.Abs(st.spiralCorrelation) > cfg.MinSpiralCorrelation {
		return Shape{
			Kind:        ShapeSpiral,
			Clockwise:   st.totalRotation < 0,
			Revolutions: st.revolutions,
			Radius:      st.meanRadius,
			Confidence:  0.7,
		}
	}

	if closed {
		loose := geom.Simplify(pts, clamp(scale*cfg.LooseSimplifyFraction, cfg.SimplifyMin, cfg.SimplifyMax))
		corners := countCorners(loose, cfg.LooseCornerAngle, mergeDistance(cfg, scale), true)
		if corners >= 3 && corners <= 6 {
			kind := ShapeQuad
			if corners == 3 {
				kind = ShapeTriangle
			}
			return Shape{Kind: kind, Clockwise: clockwise, Corners: corners, Confidence: 0.55}
		}
	}

	return Shape{Kind: ShapeUnknown, Confidence: 0.12}
}

// classifyPolygon runs the strict polygon path on a closed stroke.
func (h *Heuristic) classifyPolygon(pts []geom.Point, scale, epsilon float64, clockwise bool) (Shape, bool) {
	cfg := h.cfg
	simplified := geom.Simplify(pts, epsilon)
	merge := mergeDistance(cfg, scale)
	corners := countCorners(simplified, cfg.CornerAngle, merge, true)

	switch corners {
	case 3:
		return Shape{Kind: ShapeTriangle, Clockwise: clockwise, Corners: 3, Confidence: 0.95}, true
	case 4:
		// Re-simplify and drop the duplicated closing vertex before
		// measuring the aspect ratio.
		quad := geom.Simplify(simplified, epsilon)
		if len(quad) > 1 && geom.Distance(quad[0], quad[len(quad)-1]) < merge {
			quad = quad[:len(quad)-1]
		}
		b := geom.BoundingBox(quad)
		h2 := b.Height()
		if h2 < 1e-9 {
			h2 = 1e-9
		}
		ratio := b.Width() / h2

		kind := ShapeQuad
		if ratio >= cfg.SquareAspectMin && ratio <= cfg.SquareAspectMax {
			kind = ShapeSquare
		}
		return Shape{Kind: kind, Clockwise: clockwise, Corners: 4, Confidence: 0.9}, true
	}
	return Shape{}, false
}

func (h *Heuristic) isCircle(st angleStats, endGap float64) bool {
	cfg := h.cfg
	if endGap > math.Max(cfg.CircleEndFloor, st.meanRadius*cfg.CircleEndRadiusFrac) {
		return false
	}
	if st.revolutions < cfg.MinCircleRevolutions {
		return false
	}
	if st.radialVariation > cfg.MaxRadialVariation {
		return false
	}
	if st.monotonicity < cfg.MinMonotonicity {
		return false
	}
	// A radius that tracks the unwrapped angle is a spiral, not a circle.
	if math.Abs(st.spiralCorrelation) > cfg.SpiralGateCorrelation && st.revolutions > cfg.SpiralGateRevolutions {
		return false
	}
	return true
}

func mergeDistance(cfg HeuristicConfig, scale float64) float64 {
	return math.Max(cfg.CornerMergeFraction*scale, cfg.CornerMergeFloor)
}

// countCorners counts vertices of a simplified polyline whose turn angle
// exceeds the threshold (in degrees). On a closed stroke the joint between
// the last and first segment is also a corner candidate, so a polygon drawn
// corner-first keeps its starting corner. Consecutive corners closer than
// mergeDist collapse into one.
func countCorners(pts []geom.Point, angleDeg, mergeDist float64, closed bool) int {
	if len(pts) < 3 {
		return 0
	}

	threshold := angleDeg * math.Pi / 180
	var corners []geom.Point

	for i := 1; i < len(pts)-1; i++ {
		if turnAngle(pts[i-1], pts[i], pts[i+1]) > threshold {
			corners = append(corners, pts[i])
		}
	}

	if closed {
		// Wrap-around joint: treat the shared endpoint as an interior
		// vertex between the last and first segment.
		last := len(pts) - 1
		if turnAngle(pts[last-1], pts[0], pts[1]) > threshold {
			corners = append(corners, pts[0])
		}
	}

	if len(corners) == 0 {
		return 0
	}

	merged := 1
	prev := corners[0]
	for _, c := range corners[1:] {
		if geom.Distance(prev, c) >= mergeDist {
			merged++
			prev = c
		}
	}
	// The merge also wraps: first and last surviving corners of a closed
	// stroke may be the same physical corner.
	if closed && merged > 1 && geom.Distance(corners[0], prev) < mergeDist {
		merged--
	}
	return merged
}

// turnAngle returns the direction change at b along the path a -> b -> c,
// in radians. Degenerate segments turn by zero.
func turnAngle(a, b, c geom.Point) float64 {
	v1x, v1y := b.X-a.X, b.Y-a.Y
	v2x, v2y := c.X-b.X, c.Y-b.Y
	l1 := math.Hypot(v1x, v1y)
	l2 := math.Hypot(v2x, v2y)
	if l1 < 1e-12 || l2 < 1e-12 {
		return 0
	}
	cos := (v1x*v2x + v1y*v2y) / (l1 * l2)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

// angleStats holds the polar statistics of a stroke around its centroid.
type angleStats struct {
	meanRadius        float64
	radialVariation   float64
	totalRotation     float64
	revolutions       float64
	monotonicity      float64
	spiralCorrelation float64
}

// newAngleStats computes per-point radius and unwrapped angle around the
// centroid, the total signed rotation, the angular monotonicity and the
// Pearson correlation between angle and radius (the spiral signature).
func newAngleStats(pts []geom.Point) angleStats {
	c := geom.Centroid(pts)

	radii := make([]float64, len(pts))
	angles := make([]float64, len(pts))
	for i, p := range pts {
		radii[i] = geom.Distance(p, c)
		angles[i] = math.Atan2(p.Y-c.Y, p.X-c.X)
	}

	// Unwrap: remove the 2-pi discontinuities so the angle sequence is
	// continuous and the total rotation is signed.
	for i := 1; i < len(angles); i++ {
		for angles[i]-angles[i-1] > math.Pi {
			angles[i] -= 2 * math.Pi
		}
		for angles[i]-angles[i-1] < -math.Pi {
			angles[i] += 2 * math.Pi
		}
	}

	var pos, neg int
	for i := 1; i < len(angles); i++ {
		switch d := angles[i] - angles[i-1]; {
		case d > 0:
			pos++
		case d < 0:
			neg++
		}
	}

	st := angleStats{}
	st.totalRotation = angles[len(angles)-1] - angles[0]
	st.revolutions = math.Abs(st.totalRotation) / (2 * math.Pi)

	if steps := len(angles) - 1; steps > 0 {
		st.monotonicity = float64(maxInt(pos, neg)) / float64(steps)
	}

	st.meanRadius = stat.Mean(radii, nil)
	if st.meanRadius > 1e-12 {
		st.radialVariation = stat.StdDev(radii, nil) / st.meanRadius
	}

	if corr := stat.Correlation(angles, radii, nil); !math.IsNaN(corr) {
		st.spiralCorrelation = corr
	}
	return st
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
