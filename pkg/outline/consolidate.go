package outline

import (
	"math"

	"github.com/gohanda11/step-to-dxf/pkg/geom"
	"github.com/gohanda11/step-to-dxf/pkg/vector"
)

// arcGroupKey groups arcs that can plausibly belong to one circle:
// same class tag and same radius rounded to 3 decimals.
type arcGroupKey struct {
	tag    vector.Class
	radius float64
}

// consolidateArcs replaces each group of arcs that together cover a
// (near) complete circle with a single circle primitive. Non-arc
// primitives pass through in their original order; groups that fail
// the agreement or coverage tests keep their original arcs.
func consolidateArcs(prims []vector.Primitive, cfg Config) []vector.Primitive {
	var out []vector.Primitive
	groups := make(map[arcGroupKey][]vector.Arc)
	var order []arcGroupKey

	for _, p := range prims {
		arc, ok := p.(vector.Arc)
		if !ok {
			out = append(out, p)
			continue
		}
		key := arcGroupKey{tag: arc.Tag, radius: geom.Round3(arc.Radius)}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], arc)
	}

	for _, key := range order {
		arcs := groups[key]
		if len(arcs) < 2 {
			for _, a := range arcs {
				out = append(out, a)
			}
			continue
		}

		center, ok := commonArcCenter(arcs, cfg.CenterClusterTolerance)
		if ok && estimatedCoverage(arcs) >= cfg.CoverageThreshold {
			out = append(out, vector.Circle{
				Tag:    key.tag,
				Center: center,
				Radius: key.radius,
			})
			continue
		}
		for _, a := range arcs {
			out = append(out, a)
		}
	}

	return out
}

// commonArcCenter estimates candidate centers for every arc from its
// chord via the perpendicular-bisector construction, clusters them,
// and accepts the largest cluster only when it is at least as big as
// the arc group, meaning every arc agrees on one center. The returned
// center is the cluster average.
func commonArcCenter(arcs []vector.Arc, tol float64) (geom.Point, bool) {
	var candidates []geom.Point
	for _, a := range arcs {
		c1, c2, ok := chordCenters(a.Start, a.End, a.Radius)
		if !ok {
			continue
		}
		candidates = append(candidates, c1, c2)
	}
	if len(candidates) == 0 {
		return geom.Point{}, false
	}

	var clusters [][]geom.Point
	for _, c := range candidates {
		placed := false
		for i, cluster := range clusters {
			anchor := cluster[0]
			if math.Abs(c.X-anchor.X) < tol && math.Abs(c.Y-anchor.Y) < tol {
				clusters[i] = append(clusters[i], c)
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, []geom.Point{c})
		}
	}

	largest := clusters[0]
	for _, cluster := range clusters[1:] {
		if len(cluster) > len(largest) {
			largest = cluster
		}
	}
	if len(largest) < len(arcs) {
		return geom.Point{}, false
	}

	var sumX, sumY float64
	for _, c := range largest {
		sumX += c.X
		sumY += c.Y
	}
	n := float64(len(largest))
	return geom.Point{X: sumX / n, Y: sumY / n}, true
}

// chordCenters returns the two circle centers consistent with a chord
// (start, end) and radius, offset from the chord midpoint along its
// perpendicular. A diameter chord, the semicircle case, pins both
// candidates at the chord midpoint. ok is false when the chord is
// longer than the diameter, which means the radius cannot be right.
func chordCenters(start, end geom.Point, radius float64) (c1, c2 geom.Point, ok bool) {
	chordHalf := start.Distance(end) / 2
	if chordHalf > radius*(1+1e-9) {
		return geom.Point{}, geom.Point{}, false
	}
	var offset float64
	if sq := radius*radius - chordHalf*chordHalf; sq > 0 {
		offset = math.Sqrt(sq)
	}

	var perpX, perpY float64
	if math.Abs(end.X-start.X) > 0.001 {
		perpX = -(end.Y - start.Y)
		perpY = end.X - start.X
	} else {
		perpX, perpY = 1, 0
	}
	l := math.Hypot(perpX, perpY)
	if l > 0 {
		perpX /= l
		perpY /= l
	}

	mid := start.Midpoint(end)
	c1 = geom.Point{X: mid.X + perpX*offset, Y: mid.Y + perpY*offset}
	c2 = geom.Point{X: mid.X - perpX*offset, Y: mid.Y - perpY*offset}
	return c1, c2, true
}

// estimatedCoverage is a coarse angular-coverage estimate: each
// large arc counts 180 degrees and each small arc 90. It deliberately
// avoids exact angle arithmetic; swapping in a precise computation
// only requires replacing this function.
func estimatedCoverage(arcs []vector.Arc) float64 {
	var total float64
	for _, a := range arcs {
		if a.LargeArc {
			total += 180
		} else {
			total += 90
		}
	}
	return total
}
