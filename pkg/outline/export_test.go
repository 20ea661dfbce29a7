package outline

import (
	"errors"
	"math"
	"testing"

	"github.com/gohanda11/step-to-dxf/pkg/brep"
	"github.com/gohanda11/step-to-dxf/pkg/geom"
	"github.com/gohanda11/step-to-dxf/pkg/vector"
)

// plateFace is a planar face with a square boundary wire and a circular
// hole wire, the canonical exact-pipeline input.
func plateFace() *fakeFace {
	square := &fakeWire{
		length: 40,
		edges: []brep.Edge{
			lineEdge(geom.Vec3{X: 0, Y: 0}, geom.Vec3{X: 10, Y: 0}),
			lineEdge(geom.Vec3{X: 10, Y: 0}, geom.Vec3{X: 10, Y: 10}),
			lineEdge(geom.Vec3{X: 10, Y: 10}, geom.Vec3{X: 0, Y: 10}),
			lineEdge(geom.Vec3{X: 0, Y: 10}, geom.Vec3{X: 0, Y: 0}),
		},
	}
	hole := &fakeWire{
		length: 2 * math.Pi * 2,
		edges: []brep.Edge{
			circleEdge(geom.Vec3{X: 5, Y: 5}, 2, 0, 2*math.Pi),
		},
	}
	return &fakeFace{
		kind:   brep.SurfacePlane,
		normal: geom.Vec3{Z: 1},
		wires:  []brep.Wire{square, hole},
		mesh:   squareMesh(),
	}
}

func TestExportExact(t *testing.T) {
	result := Export(plateFace(), DefaultConfig())

	if result.Source != SourceExact {
		t.Fatalf("Source: got %v, want exact", result.Source)
	}
	if result.WireCount != 2 {
		t.Errorf("WireCount: got %d, want 2", result.WireCount)
	}
	if len(result.Primitives) != 5 {
		t.Fatalf("got %d primitives, want 4 lines + 1 circle", len(result.Primitives))
	}

	lines, circles := 0, 0
	for _, p := range result.Primitives {
		switch prim := p.(type) {
		case vector.Line:
			lines++
			if prim.Class() != vector.ClassBoundary {
				t.Errorf("line class: got %v, want boundary", prim.Class())
			}
		case vector.Circle:
			circles++
			if prim.Class() != vector.ClassHole {
				t.Errorf("circle class: got %v, want hole", prim.Class())
			}
			if math.Abs(prim.Radius-2) > 1e-9 {
				t.Errorf("circle radius: got %v, want 2", prim.Radius)
			}
		default:
			t.Errorf("unexpected primitive %T", p)
		}
	}
	if lines != 4 || circles != 1 {
		t.Errorf("got %d lines and %d circles, want 4 and 1", lines, circles)
	}
}

func TestExportMeshFallback(t *testing.T) {
	face := &fakeFace{
		kind:     brep.SurfacePlane,
		normal:   geom.Vec3{Z: 1},
		wiresErr: brep.ErrNoExactCurves,
		mesh:     squareMesh(),
	}

	result := Export(face, DefaultConfig())
	if result.Source != SourceMesh {
		t.Fatalf("Source: got %v, want mesh", result.Source)
	}
	if len(result.Primitives) != 1 {
		t.Fatalf("got %d primitives, want 1", len(result.Primitives))
	}
	poly, ok := result.Primitives[0].(vector.Polyline)
	if !ok {
		t.Fatalf("got %T, want Polyline", result.Primitives[0])
	}
	if !poly.Closed {
		t.Error("boundary polyline not closed")
	}
	if len(poly.Points) != 4 {
		t.Errorf("got %d boundary points, want 4", len(poly.Points))
	}
	if poly.Class() != vector.ClassBoundary {
		t.Errorf("class: got %v, want boundary", poly.Class())
	}
}

func TestExportPlaceholder(t *testing.T) {
	face := &fakeFace{
		kind:     brep.SurfaceUnknown,
		normal:   geom.Vec3{Z: 1},
		wiresErr: errors.New("kernel exploded"),
		meshErr:  errors.New("no triangulation"),
	}

	result := Export(face, DefaultConfig())
	if result.Source != SourcePlaceholder {
		t.Fatalf("Source: got %v, want placeholder", result.Source)
	}
	if len(result.Primitives) != 1 {
		t.Fatalf("got %d primitives, want 1", len(result.Primitives))
	}
	poly, ok := result.Primitives[0].(vector.Polyline)
	if !ok || !poly.Closed || len(poly.Points) != 4 {
		t.Errorf("placeholder: got %#v", result.Primitives[0])
	}
}

// A face with a degenerate normal still exports, using the default
// projection plane.
func TestExportDegenerateNormal(t *testing.T) {
	face := &fakeFace{
		kind:     brep.SurfacePlane,
		normal:   geom.Vec3{},
		wiresErr: brep.ErrNoExactCurves,
		mesh:     squareMesh(),
	}
	result := Export(face, DefaultConfig())
	if result.Source != SourceMesh {
		t.Errorf("Source: got %v, want mesh", result.Source)
	}
}

func TestSourceString(t *testing.T) {
	tests := []struct {
		source Source
		want   string
	}{
		{SourceExact, "exact"},
		{SourceMesh, "mesh"},
		{SourcePlaceholder, "placeholder"},
	}
	for _, tt := range tests {
		if got := tt.source.String(); got != tt.want {
			t.Errorf("Source(%d): got %q, want %q", tt.source, got, tt.want)
		}
	}
}
