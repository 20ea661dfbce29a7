package outline

import (
	"sort"

	"github.com/gohanda11/step-to-dxf/pkg/brep"
	"github.com/gohanda11/step-to-dxf/pkg/geom"
)

// meshEdge is an undirected vertex-index pair, stored min-first so the
// two directed uses of a shared edge collapse to one key.
type meshEdge struct {
	a, b int
}

func newMeshEdge(i, j int) meshEdge {
	if i > j {
		i, j = j, i
	}
	return meshEdge{a: i, b: j}
}

// meshBoundary reconstructs the face outline from projected mesh
// vertices. Edges used by exactly one triangle form the boundary of a
// manifold mesh; these are chained into a path. Meshes without
// boundary edges (or without triangles) degrade to the convex hull of
// the point set.
func meshBoundary(mesh *brep.Mesh, points []geom.Point, cfg Config) []geom.Point {
	edges := boundaryEdges(mesh.Triangles)
	if len(edges) > 0 {
		if path := edgesToPath(edges, points); len(path) >= 3 {
			return path
		}
	}
	return convexHull(dedupPoints(points, cfg.DuplicateTolerance))
}

// boundaryEdges returns the mesh edges used by exactly one triangle,
// in a deterministic order.
func boundaryEdges(triangles [][3]int) []meshEdge {
	counts := make(map[meshEdge]int)
	for _, t := range triangles {
		counts[newMeshEdge(t[0], t[1])]++
		counts[newMeshEdge(t[1], t[2])]++
		counts[newMeshEdge(t[2], t[0])]++
	}

	var edges []meshEdge
	for e, n := range counts {
		if n == 1 {
			edges = append(edges, e)
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].a != edges[j].a {
			return edges[i].a < edges[j].a
		}
		return edges[i].b < edges[j].b
	})
	return edges
}

// edgesToPath chains boundary edges into an ordered point path. The
// walk starts at a vertex of degree ≤2 when one exists, repeatedly
// moves to an unvisited neighbor other than the previous vertex, and
// stops on returning to the start (loop closed) or running out of
// neighbors. Total steps are capped at edgeCount+1 to survive
// malformed topology.
func edgesToPath(edges []meshEdge, points []geom.Point) []geom.Point {
	if len(edges) == 0 {
		return nil
	}

	adjacency := make(map[int][]int)
	var vertices []int
	for _, e := range edges {
		if _, ok := adjacency[e.a]; !ok {
			vertices = append(vertices, e.a)
		}
		if _, ok := adjacency[e.b]; !ok {
			vertices = append(vertices, e.b)
		}
		adjacency[e.a] = append(adjacency[e.a], e.b)
		adjacency[e.b] = append(adjacency[e.b], e.a)
	}

	start := -1
	for _, v := range vertices {
		if len(adjacency[v]) <= 2 {
			start = v
			break
		}
	}
	if start < 0 {
		start = vertices[0]
	}

	path := []int{start}
	current, previous := start, -1
	for len(path) <= len(edges) {
		next := -1
		for _, n := range adjacency[current] {
			if n != previous {
				next = n
				break
			}
		}
		if next < 0 {
			break
		}
		if next == start && len(path) > 2 {
			break
		}
		path = append(path, next)
		previous, current = current, next
	}

	out := make([]geom.Point, 0, len(path))
	for _, idx := range path {
		if idx >= 0 && idx < len(points) {
			out = append(out, points[idx])
		}
	}
	return out
}

// dedupPoints removes points within tol of an already kept point.
func dedupPoints(points []geom.Point, tol float64) []geom.Point {
	var unique []geom.Point
	for _, p := range points {
		dup := false
		for _, u := range unique {
			if abs(p.X-u.X) < tol && abs(p.Y-u.Y) < tol {
				dup = true
				break
			}
		}
		if !dup {
			unique = append(unique, p)
		}
	}
	return unique
}

// convexHull computes the convex hull with the monotone-chain
// algorithm: sort lexicographically, then build the lower and upper
// chains with a cross-product turn test, dropping the duplicated
// endpoints on concatenation. Fewer than 3 points are returned as-is.
func convexHull(points []geom.Point) []geom.Point {
	if len(points) < 3 {
		return points
	}

	pts := make([]geom.Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	var lower []geom.Point
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	var upper []geom.Point
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

// cross returns the z-component of (a-o)×(b-o); positive means a left
// turn from oa to ob.
func cross(o, a, b geom.Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
