package gesture

import (
	"math"

	"github.com/nileshs31/Project-ARMagic/internal/geom"
)

// cloudSize is the fixed point count both sides of a cloud match are
// resampled to. The greedy correspondence assumes equal lengths.
const cloudSize = 32

// defaultCloudThreshold is the rejection cutoff for cloud distances in
// normalized units.
const defaultCloudThreshold = 2.5

// CloudMatcher matches strokes against a small fixed library of shape
// templates using a start- and rotation-invariant greedy point
// correspondence. Unlike the DTW recognizer it needs no training.
type CloudMatcher struct {
	templates []cloudTemplate
	threshold float64
}

type cloudTemplate struct {
	name   string
	points []geom.Point
}

// NewCloudMatcher creates a CloudMatcher with the built-in circle, square
// and triangle templates, normalized once up front.
func NewCloudMatcher() *CloudMatcher {
	m := &CloudMatcher{threshold: defaultCloudThreshold}
	m.add("circle", circleSeed())
	m.add("square", []geom.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}})
	m.add("triangle", []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0.5, Y: 0.87}, {X: 0, Y: 0}})
	return m
}

func circleSeed() []geom.Point {
	pts := make([]geom.Point, cloudSize)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(cloudSize-1)
		pts[i] = geom.Point{X: math.Cos(a), Y: math.Sin(a)}
	}
	return pts
}

func (m *CloudMatcher) add(name string, seed []geom.Point) {
	m.templates = append(m.templates, cloudTemplate{
		name:   name,
		points: normalizeCloud(seed),
	})
}

// normalizeCloud runs the cloud-match canonical form: fixed-count resample
// plus bounding-box normalization.
func normalizeCloud(pts []geom.Point) []geom.Point {
	return geom.NormalizeBounds(geom.ResampleToFixedCount(pts, cloudSize))
}

// Classify matches a projected 2D stroke against the template library and
// returns the best label with its distance. Distances above the threshold
// classify as LabelUnknown.
func (m *CloudMatcher) Classify(pts []geom.Point) CloudResult {
	if len(pts) < MinStrokePoints {
		return CloudResult{Label: LabelTooShort, Distance: math.Inf(1)}
	}

	query := normalizeCloud(pts)

	best := CloudResult{Label: LabelUnknown, Distance: math.Inf(1)}
	for _, t := range m.templates {
		if d := cloudDistance(query, t.points); d < best.Distance {
			best = CloudResult{Label: t.name, Distance: d}
		}
	}

	if best.Distance > m.threshold {
		best.Label = LabelUnknown
	}
	return best
}

// cloudDistance is the symmetric greedy correspondence distance between two
// equal-length point sequences: the minimum over both matching directions
// and a set of evenly spaced start offsets.
func cloudDistance(a, b []geom.Point) float64 {
	n := len(a)
	if n == 0 || len(b) != n {
		return math.Inf(1)
	}

	step := int(math.Floor(math.Sqrt(float64(n))))
	if step < 1 {
		step = 1
	}

	best := math.Inf(1)
	for start := 0; start < n; start += step {
		if d := greedyMatch(a, b, start); d < best {
			best = d
		}
		if d := greedyMatch(b, a, start); d < best {
			best = d
		}
	}
	return best
}

// greedyMatch walks sequence a in index order from the given start offset,
// pairing each point with its nearest still-unmatched point of b, and
// accumulates the pair distances.
func greedyMatch(a, b []geom.Point, start int) float64 {
	n := len(a)
	matched := make([]bool, n)
	var sum float64

	for i := 0; i < n; i++ {
		p := a[(start+i)%n]
		bestDist := math.Inf(1)
		bestIdx := -1
		for j := 0; j < n; j++ {
			if matched[j] {
				continue
			}
			if d := geom.Distance(p, b[j]); d < bestDist {
				bestDist = d
				bestIdx = j
			}
		}
		matched[bestIdx] = true
		sum += bestDist
	}
	return sum
}
