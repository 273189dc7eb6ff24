// Package gesture implements stroke classification: a template-based DTW
// recognizer with k-NN voting, a training-free cloud matcher and a geometric
// heuristic classifier, all fed by the shared preparation pipeline in geom.
package gesture

import (
	"github.com/nileshs31/Project-ARMagic/internal/geom"
)

// MinStrokePoints is the minimum raw stroke length any classifier accepts.
const MinStrokePoints = 6

// Reserved labels returned by the classifiers alongside user template names.
const (
	LabelUnknown     = "unknown"
	LabelTooShort    = "too_short"
	LabelNoTemplates = "no_templates"
)

// Strategy selects which classifier the application runs on a stroke.
type Strategy string

const (
	StrategyHeuristic Strategy = "heuristic"
	StrategyCloud     Strategy = "cloud"
	StrategyKNN       Strategy = "knn"
)

// Config holds the tunable parameters of the DTW recognizer.
type Config struct {
	// ResampleLength is the fixed point count templates and queries are
	// resampled to before matching.
	ResampleLength int
	// MinSampleDistance is the minimum spacing kept by the initial
	// downsampling pass, in normalized units.
	MinSampleDistance float64
	// SakoeRatio sets the DTW band width as a fraction of ResampleLength.
	SakoeRatio float64
	// K is the number of nearest templates that vote on the label.
	K int
	// AcceptThreshold is the maximum winning score still accepted as a
	// match; above it the result label becomes LabelUnknown.
	AcceptThreshold float64
}

// DefaultConfig returns the recognizer defaults.
func DefaultConfig() Config {
	return Config{
		ResampleLength:    64,
		MinSampleDistance: 0.004,
		SakoeRatio:        0.2,
		K:                 3,
		AcceptThreshold:   2.5,
	}
}

// prepare runs the shared canonical pipeline on a raw 3D stroke: plane
// projection, distance downsampling, fixed-count resampling and centroid
// normalization. Templates and queries must go through the same pipeline or
// their DTW distances are meaningless.
func (c Config) prepare(stroke []geom.Vec3) []geom.Point {
	pts := geom.ProjectToPlane(stroke)
	pts = geom.ResampleByDistance(pts, c.MinSampleDistance, 1024)
	pts = geom.ResampleToFixedCount(pts, c.ResampleLength)
	return geom.NormalizeCentroid(pts)
}

// Result is the outcome of a DTW recognition: the winning label, its mean
// distance within the top k, and the gap to the runner-up group.
type Result struct {
	Label  string  `json:"label"`
	Score  float64 `json:"score"`
	Margin float64 `json:"margin"`
}

// CloudResult is the outcome of a cloud match.
type CloudResult struct {
	Label    string  `json:"label"`
	Distance float64 `json:"distance"`
}
