package geom

// ResampleByDistance downsamples a stroke with a greedy forward scan.
// The first point is always kept; subsequent points are kept only when at
// least minDist away from the last kept point. The final input point is
// force-appended so the stroke endpoint survives downsampling. The result
// is truncated once maxCount points have been kept.
func ResampleByDistance(pts []Point, minDist float64, maxCount int) []Point {
	if len(pts) == 0 || maxCount <= 0 {
		return nil
	}

	out := make([]Point, 0, min(len(pts), maxCount))
	out = append(out, pts[0])
	for _, p := range pts[1:] {
		if len(out) >= maxCount {
			break
		}
		if Distance(out[len(out)-1], p) >= minDist {
			out = append(out, p)
		}
	}

	last := pts[len(pts)-1]
	if out[len(out)-1] != last && len(out) < maxCount {
		out = append(out, last)
	}
	return out
}

// ResampleToFixedCount resamples a stroke to exactly n points spaced evenly
// along its arc length. When the accumulated distance crosses an interval
// boundary the exact boundary point is interpolated, emitted, and written
// back over the previous vertex of a working copy so the walk continues
// along the remainder of the same segment. This keeps the walk correct for
// inputs with far fewer vertices than n. The output is padded with the last
// point or truncated so the count invariant holds exactly. A zero-length
// path yields n copies of the first point.
func ResampleToFixedCount(pts []Point, n int) []Point {
	if len(pts) == 0 || n <= 0 {
		return nil
	}
	if n == 1 {
		return []Point{pts[0]}
	}

	total := PathLength(pts)
	if total < minScale {
		out := make([]Point, n)
		for i := range out {
			out[i] = pts[0]
		}
		return out
	}

	interval := total / float64(n-1)
	work := make([]Point, len(pts))
	copy(work, pts)

	out := make([]Point, 0, n)
	out = append(out, work[0])

	var accum float64
	i := 1
	for i < len(work) && len(out) < n {
		seg := Distance(work[i-1], work[i])
		if accum+seg >= interval && seg > 0 {
			t := (interval - accum) / seg
			q := Point{
				X: work[i-1].X + t*(work[i].X-work[i-1].X),
				Y: work[i-1].Y + t*(work[i].Y-work[i-1].Y),
			}
			out = append(out, q)
			work[i-1] = q
			accum = 0
			continue
		}
		accum += seg
		i++
	}

	for len(out) < n {
		out = append(out, work[len(work)-1])
	}
	return out[:n]
}

// Smooth applies one pass of Chaikin corner cutting: each interior edge is
// replaced by points a quarter and three quarters of the way along it. The
// stroke endpoints are preserved so closedness tests keep working.
func Smooth(pts []Point) []Point {
	if len(pts) < 3 {
		return pts
	}
	out := make([]Point, 0, 2*len(pts))
	out = append(out, pts[0])
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		out = append(out,
			Point{X: a.X + 0.25*(b.X-a.X), Y: a.Y + 0.25*(b.Y-a.Y)},
			Point{X: a.X + 0.75*(b.X-a.X), Y: a.Y + 0.75*(b.Y-a.Y)},
		)
	}
	out = append(out, pts[len(pts)-1])
	return out
}

// NormalizeBounds translates the stroke so the bounding-box center sits at
// the origin and scales uniformly so the larger bounding-box dimension is 1.
func NormalizeBounds(pts []Point) []Point {
	return normalize(pts, BoundingBox(pts).Center())
}

// NormalizeCentroid translates the stroke so its centroid sits at the
// origin and scales uniformly so the larger bounding-box dimension is 1.
func NormalizeCentroid(pts []Point) []Point {
	return normalize(pts, Centroid(pts))
}

func normalize(pts []Point, center Point) []Point {
	if len(pts) == 0 {
		return nil
	}
	scale := PathScale(pts)
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{X: (p.X - center.X) / scale, Y: (p.Y - center.Y) / scale}
	}
	return out
}
