// Package brep defines the boundary-representation contract consumed by
// the outline pipeline. Implementations (an exchange-file kernel, the
// stub reader, test fakes) provide faces, wires, and edges behind these
// interfaces; the rest of the system never depends on a concrete kernel.
package brep

import (
	"errors"

	"github.com/gohanda11/step-to-dxf/pkg/geom"
)

// SurfaceKind classifies the underlying surface of a face.
type SurfaceKind int

const (
	SurfacePlane SurfaceKind = iota
	SurfaceCurved
	SurfaceUnknown
)

func (k SurfaceKind) String() string {
	switch k {
	case SurfacePlane:
		return "Plane"
	case SurfaceCurved:
		return "Curved"
	default:
		return "Unknown"
	}
}

// CurveKind classifies the underlying curve of an edge.
type CurveKind int

const (
	CurveLine CurveKind = iota
	CurveCircle
	CurveEllipse
	CurveOther // b-splines, bezier, offset curves
)

func (k CurveKind) String() string {
	switch k {
	case CurveLine:
		return "line"
	case CurveCircle:
		return "circle"
	case CurveEllipse:
		return "ellipse"
	default:
		return "other"
	}
}

// ErrNoExactCurves is returned by Face.Wires when the face carries only
// a triangulated approximation and no exact curve data. The exporter
// falls back to the mesh pipeline.
var ErrNoExactCurves = errors.New("brep: face has no exact curve data")

// ErrNoGeometry is returned when a face yields an empty wire or point
// set.
var ErrNoGeometry = errors.New("brep: no geometry found for face")

// Face is a bounded surface extracted from an exchange file. It is a
// read-only view into kernel state, valid for the owning session's
// lifetime.
type Face interface {
	// SurfaceKind reports whether the face is planar.
	SurfaceKind() SurfaceKind

	// Normal returns the unit surface normal at the face midpoint.
	// A zero-length result is possible for degenerate faces; callers
	// substitute +Z.
	Normal() geom.Vec3

	// Wires returns the face's bounding loops, outer boundary and
	// holes in unspecified order. Implementations without exact curve
	// data return ErrNoExactCurves.
	Wires() ([]Wire, error)

	// Triangulation returns the face's triangle mesh approximation,
	// used for visualization and as the fallback export path.
	Triangulation() (*Mesh, error)
}

// Wire is an ordered, cyclic sequence of edges bounding a face.
type Wire interface {
	// Edges returns the wire's edges in loop order.
	Edges() ([]Edge, error)

	// Length returns the wire's total arc length.
	Length() (float64, error)
}

// Edge is a single curve segment of a wire.
type Edge interface {
	// CurveKind classifies the underlying curve.
	CurveKind() CurveKind

	// Domain returns the curve parameter range [first, last].
	Domain() (first, last float64)

	// PointAt evaluates the curve at the given parameter. Kernel
	// evaluation failures surface here; the caller skips the edge.
	PointAt(param float64) (geom.Vec3, error)

	// Circle returns center and radius for CurveCircle edges.
	Circle() (center geom.Vec3, radius float64, err error)

	// Ellipse returns center, major-axis direction, and the two radii
	// for CurveEllipse edges.
	Ellipse() (center, majorDir geom.Vec3, major, minor float64, err error)
}
