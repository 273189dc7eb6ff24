package gesture

import (
	"math"

	"github.com/nileshs31/Project-ARMagic/internal/geom"
)

// DTWDistance calculates the Dynamic Time Warping distance between two
// point sequences, restricted to a Sakoe-Chiba band of the given width.
// Cell cost is the Euclidean distance between the two points at those
// timesteps; the final distance is normalized by the longer sequence
// length. Returns infinity if either sequence is empty.
func DTWDistance(a, b []geom.Point, window int) float64 {
	n := len(a)
	m := len(b)

	if n == 0 || m == 0 {
		return math.Inf(1)
	}

	// The band must at least cover the length difference or no alignment
	// path can reach the final cell.
	if d := n - m; d > window {
		window = d
	} else if -d > window {
		window = -d
	}
	if window < 1 {
		window = 1
	}

	dtw := make([][]float64, n+1)
	for i := range dtw {
		dtw[i] = make([]float64, m+1)
		for j := range dtw[i] {
			dtw[i][j] = math.Inf(1)
		}
	}
	dtw[0][0] = 0

	for i := 1; i <= n; i++ {
		lo := i - window
		if lo < 1 {
			lo = 1
		}
		hi := i + window
		if hi > m {
			hi = m
		}
		for j := lo; j <= hi; j++ {
			cost := geom.Distance(a[i-1], b[j-1])
			dtw[i][j] = cost + min3(dtw[i-1][j], dtw[i][j-1], dtw[i-1][j-1])
		}
	}

	longer := n
	if m > longer {
		longer = m
	}
	return dtw[n][m] / float64(longer)
}

// min3 returns the minimum of three float64 values.
func min3(a, b, c float64) float64 {
	if a <= b && a <= c {
		return a
	}
	if b <= c {
		return b
	}
	return c
}
