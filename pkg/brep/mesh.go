package brep

import "github.com/gohanda11/step-to-dxf/pkg/geom"

// Mesh is a triangle mesh approximation of a face: a vertex list and
// triangle index triples. It is the fallback representation when exact
// curve walking is unavailable or fails.
type Mesh struct {
	Vertices  []geom.Vec3 `json:"vertices"`
	Triangles [][3]int    `json:"triangles"`
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Normal estimates a unit face normal from the first triangle's edge
// cross product. An empty or degenerate mesh yields the +Z axis.
func (m *Mesh) Normal() geom.Vec3 {
	if len(m.Triangles) == 0 || len(m.Vertices) < 3 {
		return geom.Vec3{Z: 1}
	}
	t := m.Triangles[0]
	for _, idx := range t {
		if idx < 0 || idx >= len(m.Vertices) {
			return geom.Vec3{Z: 1}
		}
	}
	v1 := m.Vertices[t[0]]
	e1 := m.Vertices[t[1]].Sub(v1)
	e2 := m.Vertices[t[2]].Sub(v1)
	n := e1.Cross(e2)
	if n.Length() == 0 {
		return geom.Vec3{Z: 1}
	}
	return n.Normalize()
}
