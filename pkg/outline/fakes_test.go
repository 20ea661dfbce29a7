package outline

import (
	"math"

	"github.com/gohanda11/step-to-dxf/pkg/brep"
	"github.com/gohanda11/step-to-dxf/pkg/geom"
)

// fakeEdge is a scriptable brep.Edge for pipeline tests.
type fakeEdge struct {
	kind        brep.CurveKind
	first, last float64
	at          func(float64) (geom.Vec3, error)

	center     geom.Vec3
	radius     float64
	circleErr  error
	majorDir   geom.Vec3
	major      float64
	minor      float64
	ellipseErr error
}

func (e *fakeEdge) CurveKind() brep.CurveKind      { return e.kind }
func (e *fakeEdge) Domain() (first, last float64)  { return e.first, e.last }
func (e *fakeEdge) PointAt(p float64) (geom.Vec3, error) {
	return e.at(p)
}
func (e *fakeEdge) Circle() (geom.Vec3, float64, error) {
	return e.center, e.radius, e.circleErr
}
func (e *fakeEdge) Ellipse() (geom.Vec3, geom.Vec3, float64, float64, error) {
	return e.center, e.majorDir, e.major, e.minor, e.ellipseErr
}

// lineEdge builds a line edge interpolating p1..p2 over [0, 1].
func lineEdge(p1, p2 geom.Vec3) *fakeEdge {
	return &fakeEdge{
		kind: brep.CurveLine,
		last: 1,
		at: func(t float64) (geom.Vec3, error) {
			return p1.Add(p2.Sub(p1).Scale(t)), nil
		},
	}
}

// circleEdge builds a circular edge in the z=0 plane parameterized by
// angle in radians over [first, last].
func circleEdge(center geom.Vec3, radius, first, last float64) *fakeEdge {
	return &fakeEdge{
		kind:   brep.CurveCircle,
		first:  first,
		last:   last,
		center: center,
		radius: radius,
		at: func(a float64) (geom.Vec3, error) {
			return geom.Vec3{
				X: center.X + radius*math.Cos(a),
				Y: center.Y + radius*math.Sin(a),
				Z: center.Z,
			}, nil
		},
	}
}

type fakeWire struct {
	edges     []brep.Edge
	edgesErr  error
	length    float64
	lengthErr error
}

func (w *fakeWire) Edges() ([]brep.Edge, error) { return w.edges, w.edgesErr }
func (w *fakeWire) Length() (float64, error)    { return w.length, w.lengthErr }

type fakeFace struct {
	kind     brep.SurfaceKind
	normal   geom.Vec3
	wires    []brep.Wire
	wiresErr error
	mesh     *brep.Mesh
	meshErr  error
}

func (f *fakeFace) SurfaceKind() brep.SurfaceKind { return f.kind }
func (f *fakeFace) Normal() geom.Vec3             { return f.normal }
func (f *fakeFace) Wires() ([]brep.Wire, error)   { return f.wires, f.wiresErr }
func (f *fakeFace) Triangulation() (*brep.Mesh, error) {
	if f.meshErr != nil {
		return nil, f.meshErr
	}
	if f.mesh == nil {
		return &brep.Mesh{}, nil
	}
	return f.mesh, nil
}

// squareMesh is a 10x10 square in the z=0 plane split into two
// triangles sharing the diagonal.
func squareMesh() *brep.Mesh {
	return &brep.Mesh{
		Vertices: []geom.Vec3{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		},
		Triangles: [][3]int{{0, 1, 2}, {0, 2, 3}},
	}
}
