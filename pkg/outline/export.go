package outline

import (
	"errors"
	"log"

	"github.com/gohanda11/step-to-dxf/pkg/brep"
	"github.com/gohanda11/step-to-dxf/pkg/geom"
	"github.com/gohanda11/step-to-dxf/pkg/vector"
)

// Source records which pipeline stage produced an export result.
type Source int

const (
	// SourceExact: primitives came from walking the face's wires.
	SourceExact Source = iota
	// SourceMesh: the outline was reconstructed from the triangle mesh.
	SourceMesh
	// SourcePlaceholder: both stages failed; the fixed square was
	// substituted.
	SourcePlaceholder
)

func (s Source) String() string {
	switch s {
	case SourceExact:
		return "exact"
	case SourceMesh:
		return "mesh"
	default:
		return "placeholder"
	}
}

// Result is the outcome of exporting one face: the ordered primitive
// list, the face's wire count (1 for reconstructed outlines), and the
// stage that produced it.
type Result struct {
	Primitives []vector.Primitive
	WireCount  int
	Source     Source
	Basis      geom.Basis
}

// placeholderSquare is the never-fail default emitted when no usable
// boundary can be recovered.
func placeholderSquare() []vector.Primitive {
	return []vector.Primitive{vector.Polyline{
		Tag: vector.ClassBoundary,
		Points: []geom.Point{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		},
		Closed: true,
	}}
}

// Export runs the export pipeline for one face: exact curve walking
// first, mesh reconstruction when curve data is missing or fails, and
// the placeholder square when neither stage yields at least a
// 3-point boundary. It never returns an empty result.
func Export(face brep.Face, cfg Config) Result {
	basis := geom.BasisOrDefault(face.Normal())

	prims, wireCount, err := traceFace(face, basis, cfg)
	if err == nil {
		return Result{Primitives: prims, WireCount: wireCount, Source: SourceExact, Basis: basis}
	}
	if !errors.Is(err, brep.ErrNoExactCurves) {
		log.Printf("outline: exact pipeline failed, trying mesh: %v", err)
	}

	if prims := meshOutline(face, basis, cfg); prims != nil {
		return Result{Primitives: prims, WireCount: 1, Source: SourceMesh, Basis: basis}
	}

	log.Printf("outline: mesh reconstruction failed, emitting placeholder")
	return Result{Primitives: placeholderSquare(), WireCount: 1, Source: SourcePlaceholder, Basis: basis}
}

// meshOutline reconstructs a closed boundary polyline from the face's
// triangulation, or nil when fewer than 3 boundary points survive.
func meshOutline(face brep.Face, basis geom.Basis, cfg Config) []vector.Primitive {
	mesh, err := face.Triangulation()
	if err != nil {
		log.Printf("outline: triangulation unavailable: %v", err)
		return nil
	}
	if mesh.IsEmpty() || mesh.VertexCount() < 3 {
		return nil
	}

	points := basis.ProjectAll(mesh.Vertices)
	boundary := meshBoundary(mesh, points, cfg)
	if len(boundary) < 3 {
		return nil
	}

	return []vector.Primitive{vector.Polyline{
		Tag:    vector.ClassBoundary,
		Points: boundary,
		Closed: true,
	}}
}
