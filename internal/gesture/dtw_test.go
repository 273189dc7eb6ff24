package gesture

import (
	"math"
	"testing"

	"github.com/nileshs31/Project-ARMagic/internal/geom"
)

func sinePath(n int, phase float64) []geom.Point {
	pts := make([]geom.Point, n)
	for i := range pts {
		t := float64(i) / float64(n-1)
		pts[i] = geom.Point{X: t, Y: math.Sin(2*math.Pi*t + phase)}
	}
	return pts
}

func TestDTWDistanceIdentical(t *testing.T) {
	a := sinePath(32, 0)

	if d := DTWDistance(a, a, 4); d != 0 {
		t.Errorf("expected zero distance for identical sequences, got %f", d)
	}
}

func TestDTWDistanceEmpty(t *testing.T) {
	a := sinePath(16, 0)

	if d := DTWDistance(nil, a, 4); !math.IsInf(d, 1) {
		t.Errorf("expected +Inf for empty first sequence, got %f", d)
	}
	if d := DTWDistance(a, nil, 4); !math.IsInf(d, 1) {
		t.Errorf("expected +Inf for empty second sequence, got %f", d)
	}
}

func TestDTWDistanceSymmetricUnbanded(t *testing.T) {
	a := sinePath(32, 0)
	b := sinePath(32, 0.4)

	ab := DTWDistance(a, b, len(a))
	ba := DTWDistance(b, a, len(a))
	if math.Abs(ab-ba) > 1e-12 {
		t.Errorf("expected symmetric distance with full band, got %f and %f", ab, ba)
	}
	if ab <= 0 {
		t.Errorf("expected positive distance for distinct sequences, got %f", ab)
	}
}

func TestDTWDistanceWindowMonotonic(t *testing.T) {
	a := sinePath(48, 0)
	b := sinePath(48, 0.8)

	narrow := DTWDistance(a, b, 2)
	wide := DTWDistance(a, b, 24)
	if wide > narrow {
		t.Errorf("expected wider band to never increase distance: narrow=%f wide=%f", narrow, wide)
	}
}

func TestDTWDistanceUnequalLengths(t *testing.T) {
	a := sinePath(40, 0)
	b := sinePath(25, 0)

	// The band widens to cover the length difference, so the path always
	// reaches the final cell.
	d := DTWDistance(a, b, 1)
	if math.IsInf(d, 1) {
		t.Error("expected finite distance for unequal lengths with a narrow band")
	}
}
