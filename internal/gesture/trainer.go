package gesture

import (
	"encoding/json"
	"fmt"

	"github.com/nileshs31/Project-ARMagic/internal/geom"
)

// Trainer averages several recorded stroke samples into a single exemplar
// stroke suitable for AddTemplate.
type Trainer struct{}

// NewTrainer creates a new Trainer instance.
func NewTrainer() *Trainer {
	return &Trainer{}
}

// StrokeSample is one recorded stroke as stored by the sample repository.
type StrokeSample struct {
	Points    []geom.Vec3 `json:"points"`
	Timestamp int64       `json:"timestamp"`
}

// Train parses the raw samples and averages them pointwise into one stroke.
// Samples of different lengths are aligned by linear-index resampling to
// the length of the first sample.
func (t *Trainer) Train(samples []json.RawMessage) ([]geom.Vec3, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples provided")
	}

	var strokes [][]geom.Vec3
	for i, raw := range samples {
		var sample StrokeSample
		if err := json.Unmarshal(raw, &sample); err != nil {
			return nil, fmt.Errorf("failed to parse sample %d: %w", i, err)
		}
		if len(sample.Points) < MinStrokePoints {
			return nil, fmt.Errorf("sample %d has %d points, need at least %d", i, len(sample.Points), MinStrokePoints)
		}
		strokes = append(strokes, sample.Points)
	}

	targetLength := len(strokes[0])
	averaged := make([]geom.Vec3, targetLength)
	n := float64(len(strokes))

	for _, stroke := range strokes {
		resampled := resampleLinear(stroke, targetLength)
		for i, p := range resampled {
			averaged[i] = averaged[i].Add(p.Scale(1 / n))
		}
	}
	return averaged, nil
}

// resampleLinear maps a stroke to exactly targetLength points by linear
// interpolation over the point index (not arc length; index alignment is
// what makes pointwise averaging meaningful across takes).
func resampleLinear(stroke []geom.Vec3, targetLength int) []geom.Vec3 {
	if len(stroke) == 1 || targetLength <= 1 {
		return []geom.Vec3{stroke[0]}
	}

	out := make([]geom.Vec3, targetLength)
	for i := 0; i < targetLength; i++ {
		pos := float64(i) / float64(targetLength-1) * float64(len(stroke)-1)
		idx := int(pos)
		if idx >= len(stroke)-1 {
			idx = len(stroke) - 2
		}
		frac := pos - float64(idx)

		p1 := stroke[idx]
		p2 := stroke[idx+1]
		out[i] = p1.Add(p2.Sub(p1).Scale(frac))
	}
	return out
}
