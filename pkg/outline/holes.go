package outline

import (
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/gohanda11/step-to-dxf/pkg/geom"
)

// Hole is a cluster of interior mesh points hypothesized to lie on one
// hole boundary. IsCircle selects between the circle fields and the
// raw point loop.
type Hole struct {
	IsCircle bool
	Center   geom.Point
	Radius   float64
	Points   []geom.Point
}

// pointEntry adapts an interior point for r-tree indexing.
type pointEntry struct {
	idx int
	p   geom.Point
}

func (e *pointEntry) Bounds() rtreego.Rect {
	return rtreego.Point{e.p.X, e.p.Y}.ToRect(1e-6)
}

// detectHoles clusters interior mesh points into candidate circular
// holes. Interior points are selected by ray casting against the
// boundary polygon, then scanned greedily in lexicographic order: each
// unused point is tried as a hole center, gathering unused neighbors
// whose distance falls inside the configured radius band and keeping
// the tightest common-distance ring of at least MinHolePoints members.
// The scan order is fixed so results do not depend on input ordering.
func detectHoles(all []geom.Point, boundary []geom.Point, cfg Config) []Hole {
	if len(all) < 10 || len(boundary) < 3 {
		return nil
	}

	var interior []geom.Point
	for _, p := range all {
		if pointInPolygon(p, boundary) {
			interior = append(interior, p)
		}
	}
	if len(interior) < cfg.MinHolePoints {
		return nil
	}

	sort.Slice(interior, func(i, j int) bool {
		if interior[i].X != interior[j].X {
			return interior[i].X < interior[j].X
		}
		return interior[i].Y < interior[j].Y
	})

	tree := rtreego.NewTree(2, 25, 50)
	for i, p := range interior {
		tree.Insert(&pointEntry{idx: i, p: p})
	}

	used := make([]bool, len(interior))
	var holes []Hole

	for i, center := range interior {
		if used[i] {
			continue
		}

		ring := ringCandidates(tree, interior, used, i, center, cfg)
		if len(ring) < cfg.MinHolePoints {
			continue
		}

		sort.Slice(ring, func(a, b int) bool { return ring[a].dist < ring[b].dist })

		for _, candidate := range ring {
			d := candidate.dist
			tol := d * cfg.HoleDistanceTolerance

			var members []ringPoint
			for _, rp := range ring {
				if abs(rp.dist-d) <= tol {
					members = append(members, rp)
				}
			}
			if len(members) < cfg.MinHolePoints {
				continue
			}

			pts := make([]geom.Point, len(members))
			for j, m := range members {
				used[m.idx] = true
				pts[j] = m.p
			}
			holes = append(holes, classifyHole(pts, cfg))
			break
		}
	}

	return holes
}

// ringPoint is an interior point paired with its distance from a
// candidate hole center.
type ringPoint struct {
	idx  int
	p    geom.Point
	dist float64
}

// ringCandidates returns the unused points whose distance from the
// candidate center lies within the hole radius band, in index order.
// The r-tree prunes the search to the band's bounding square.
func ringCandidates(tree *rtreego.Rtree, interior []geom.Point, used []bool, centerIdx int, center geom.Point, cfg Config) []ringPoint {
	r := cfg.HoleMaxRadius
	bbox, err := rtreego.NewRect(rtreego.Point{center.X - r, center.Y - r}, []float64{2 * r, 2 * r})
	if err != nil {
		return nil
	}

	hits := tree.SearchIntersect(bbox)
	ring := make([]ringPoint, 0, len(hits))
	for _, h := range hits {
		e := h.(*pointEntry)
		if e.idx == centerIdx || used[e.idx] {
			continue
		}
		d := center.Distance(e.p)
		if d < cfg.HoleMinRadius || d > cfg.HoleMaxRadius {
			continue
		}
		ring = append(ring, ringPoint{idx: e.idx, p: e.p, dist: d})
	}
	sort.Slice(ring, func(i, j int) bool { return ring[i].idx < ring[j].idx })
	return ring
}

// classifyHole decides whether a cluster is circular: if at least
// CircleFitFraction of its points sit within CircleFitTolerance of the
// mean radial distance from the centroid, it becomes a circle with
// that centroid and mean radius; otherwise it stays a closed point
// loop.
func classifyHole(points []geom.Point, cfg Config) Hole {
	var cx, cy float64
	for _, p := range points {
		cx += p.X
		cy += p.Y
	}
	n := float64(len(points))
	centroid := geom.Point{X: cx / n, Y: cy / n}

	dists := make([]float64, len(points))
	var mean float64
	for i, p := range points {
		dists[i] = centroid.Distance(p)
		mean += dists[i]
	}
	mean /= n

	onCircle := 0
	tol := mean * cfg.CircleFitTolerance
	for _, d := range dists {
		if abs(d-mean) <= tol {
			onCircle++
		}
	}

	if float64(onCircle) >= n*cfg.CircleFitFraction {
		return Hole{IsCircle: true, Center: centroid, Radius: mean, Points: points}
	}
	return Hole{Points: points}
}

// pointInPolygon applies the even-odd crossing rule: a horizontal ray
// from p crosses the polygon's edges an odd number of times iff p is
// inside.
func pointInPolygon(p geom.Point, polygon []geom.Point) bool {
	inside := false
	n := len(polygon)
	p1 := polygon[0]
	for i := 1; i <= n; i++ {
		p2 := polygon[i%n]
		if p.Y > min(p1.Y, p2.Y) && p.Y <= max(p1.Y, p2.Y) && p.X <= max(p1.X, p2.X) {
			xIntersect := p1.X
			if p1.Y != p2.Y {
				xIntersect = (p.Y-p1.Y)*(p2.X-p1.X)/(p2.Y-p1.Y) + p1.X
			}
			if p1.X == p2.X || p.X <= xIntersect {
				inside = !inside
			}
		}
		p1 = p2
	}
	return inside
}
