package outline

import (
	"fmt"
	"log"
	"math"

	"github.com/gohanda11/step-to-dxf/pkg/brep"
	"github.com/gohanda11/step-to-dxf/pkg/geom"
	"github.com/gohanda11/step-to-dxf/pkg/vector"
)

// traceFace walks every wire of a face and classifies each edge into
// vector primitives, all projected with the single per-face basis.
// Edge failures are skipped so one malformed curve never aborts the
// face; an error is returned only when the face yields no usable
// geometry at all.
func traceFace(face brep.Face, basis geom.Basis, cfg Config) ([]vector.Primitive, int, error) {
	wires, err := face.Wires()
	if err != nil {
		return nil, 0, err
	}
	if len(wires) == 0 {
		return nil, 0, brep.ErrNoGeometry
	}

	boundary := boundaryWireIndex(wires)

	var prims []vector.Primitive
	for i, wire := range wires {
		tag := vector.ClassHole
		if i == boundary {
			tag = vector.ClassBoundary
		}

		edges, err := wire.Edges()
		if err != nil {
			log.Printf("outline: wire %d edges failed, skipping: %v", i+1, err)
			continue
		}
		for _, edge := range edges {
			ps, err := traceEdge(edge, tag, basis, cfg)
			if err != nil {
				log.Printf("outline: skipping edge: %v", err)
				continue
			}
			prims = append(prims, ps...)
		}
	}

	if len(prims) == 0 {
		return nil, 0, brep.ErrNoGeometry
	}
	return consolidateArcs(prims, cfg), len(wires), nil
}

// traceEdge converts one edge to primitives based on its curve kind.
func traceEdge(edge brep.Edge, tag vector.Class, basis geom.Basis, cfg Config) ([]vector.Primitive, error) {
	first, last := edge.Domain()

	switch edge.CurveKind() {
	case brep.CurveLine:
		p1, err := edge.PointAt(first)
		if err != nil {
			return nil, fmt.Errorf("line start: %w", err)
		}
		p2, err := edge.PointAt(last)
		if err != nil {
			return nil, fmt.Errorf("line end: %w", err)
		}
		return []vector.Primitive{vector.Line{
			Tag: tag,
			P1:  basis.Project(p1),
			P2:  basis.Project(p2),
		}}, nil

	case brep.CurveCircle:
		return traceCircleEdge(edge, tag, basis, cfg, first, last)

	case brep.CurveEllipse:
		return traceEllipseEdge(edge, tag, basis, cfg, first, last)

	default:
		p, err := samplePolyline(edge, tag, basis, cfg.CurveSamples, cfg.DuplicateTolerance)
		if err != nil {
			return nil, err
		}
		return []vector.Primitive{p}, nil
	}
}

// fullTurn reports whether a parameter range spans a complete circle
// or ellipse revolution.
func fullTurn(first, last, tol float64) bool {
	return math.Abs(math.Abs(last-first)-2*math.Pi) < tol
}

// traceCircleEdge emits a full circle, an arc with resolved direction,
// or a sampled polyline when the circle data cannot be evaluated.
func traceCircleEdge(edge brep.Edge, tag vector.Class, basis geom.Basis, cfg Config, first, last float64) ([]vector.Primitive, error) {
	center3, radius, err := edge.Circle()
	if err != nil {
		return fallbackPolyline(edge, tag, basis, cfg, fmt.Errorf("circle data: %w", err))
	}
	center := basis.Project(center3)

	if fullTurn(first, last, cfg.FullCircleTolerance) {
		return []vector.Primitive{vector.Circle{Tag: tag, Center: center, Radius: radius}}, nil
	}

	startP, err := edge.PointAt(first)
	if err != nil {
		return fallbackPolyline(edge, tag, basis, cfg, fmt.Errorf("arc start: %w", err))
	}
	endP, err := edge.PointAt(last)
	if err != nil {
		return fallbackPolyline(edge, tag, basis, cfg, fmt.Errorf("arc end: %w", err))
	}
	midP, err := edge.PointAt((first + last) / 2)
	if err != nil {
		return fallbackPolyline(edge, tag, basis, cfg, fmt.Errorf("arc midpoint: %w", err))
	}

	arc := resolveArc(tag, center, radius,
		basis.Project(startP), basis.Project(endP), basis.Project(midP))
	return []vector.Primitive{arc}, nil
}

// traceEllipseEdge emits a full ellipse or, for elliptical arcs and on
// evaluation failure, a sampled polyline. There is no elliptical-arc
// primitive.
func traceEllipseEdge(edge brep.Edge, tag vector.Class, basis geom.Basis, cfg Config, first, last float64) ([]vector.Primitive, error) {
	center3, majorDir, major, minor, err := edge.Ellipse()
	if err != nil {
		return fallbackPolyline(edge, tag, basis, cfg, fmt.Errorf("ellipse data: %w", err))
	}

	if fullTurn(first, last, cfg.FullCircleTolerance) && major > 0 {
		return []vector.Primitive{vector.Ellipse{
			Tag:      tag,
			Center:   basis.Project(center3),
			MajorDir: basis.Project(majorDir),
			Major:    major,
			Ratio:    minor / major,
		}}, nil
	}

	p, err := samplePolyline(edge, tag, basis, cfg.FallbackCurveSamples, cfg.DuplicateTolerance)
	if err != nil {
		return nil, err
	}
	return []vector.Primitive{p}, nil
}

// fallbackPolyline degrades a failed circle/ellipse edge to a coarse
// polyline; when even sampling fails, the original cause is reported.
func fallbackPolyline(edge brep.Edge, tag vector.Class, basis geom.Basis, cfg Config, cause error) ([]vector.Primitive, error) {
	p, err := samplePolyline(edge, tag, basis, cfg.FallbackCurveSamples, cfg.DuplicateTolerance)
	if err != nil {
		return nil, fmt.Errorf("%v (polyline fallback: %w)", cause, err)
	}
	log.Printf("outline: %v, approximated as polyline", cause)
	return []vector.Primitive{p}, nil
}

// samplePolyline evaluates n+1 evenly spaced parameters along the edge
// and projects them, suppressing points that land within dupTol of the
// previous sample.
func samplePolyline(edge brep.Edge, tag vector.Class, basis geom.Basis, n int, dupTol float64) (vector.Polyline, error) {
	first, last := edge.Domain()

	var pts []geom.Point
	for i := 0; i <= n; i++ {
		param := first + (last-first)*float64(i)/float64(n)
		p3, err := edge.PointAt(param)
		if err != nil {
			return vector.Polyline{}, fmt.Errorf("sample %d/%d: %w", i, n, err)
		}
		p := basis.Project(p3)
		if len(pts) > 0 && p.Distance(pts[len(pts)-1]) <= dupTol {
			continue
		}
		pts = append(pts, p)
	}

	if len(pts) < 2 {
		return vector.Polyline{}, fmt.Errorf("degenerate curve: %d distinct points", len(pts))
	}
	return vector.Polyline{Tag: tag, Points: pts}, nil
}
