// Package vector defines the closed set of 2-D drawing primitives
// produced by the outline pipeline. The primitive list is the sole
// contract between the geometry core and the output renderers.
package vector

import "github.com/gohanda11/step-to-dxf/pkg/geom"

// Class tags a primitive as part of the outer boundary or a hole.
// Renderers map the class to layers (DXF) or stroke styles (SVG).
type Class int

const (
	ClassBoundary Class = iota
	ClassHole
)

func (c Class) String() string {
	if c == ClassHole {
		return "hole"
	}
	return "boundary"
}

// Kind identifies the concrete primitive variant.
type Kind int

const (
	KindLine Kind = iota
	KindCircle
	KindArc
	KindEllipse
	KindPolyline
)

// Primitive is one 2-D vector shape. It is implemented only by the
// types in this package.
type Primitive interface {
	Kind() Kind
	Class() Class
}

// Line is a straight segment.
type Line struct {
	Tag    Class
	P1, P2 geom.Point
}

func (l Line) Kind() Kind   { return KindLine }
func (l Line) Class() Class { return l.Tag }

// Circle is a full circle.
type Circle struct {
	Tag    Class
	Center geom.Point
	Radius float64
}

func (c Circle) Kind() Kind   { return KindCircle }
func (c Circle) Class() Class { return c.Tag }

// Arc is a circular arc. Start and End are the endpoints in curve
// order. StartAngle and EndAngle are degrees about the center, stored
// so that travel from StartAngle to EndAngle is counter-clockwise
// regardless of the curve's own direction; Sweep records the original
// direction (true = CCW) and LargeArc whether the swept angle exceeds
// 180 degrees.
type Arc struct {
	Tag        Class
	Center     geom.Point
	Radius     float64
	Start, End geom.Point
	StartAngle float64
	EndAngle   float64
	Sweep      bool
	LargeArc   bool
}

func (a Arc) Kind() Kind   { return KindArc }
func (a Arc) Class() Class { return a.Tag }

// Ellipse is a full ellipse. MajorDir is the projected major-axis
// direction and Ratio the minor/major radius ratio in (0, 1].
type Ellipse struct {
	Tag      Class
	Center   geom.Point
	MajorDir geom.Point
	Major    float64
	Ratio    float64
}

func (e Ellipse) Kind() Kind   { return KindEllipse }
func (e Ellipse) Class() Class { return e.Tag }

// Polyline is a point chain, closed or open. It approximates free-form
// curves and carries reconstructed mesh boundaries.
type Polyline struct {
	Tag    Class
	Points []geom.Point
	Closed bool
}

func (p Polyline) Kind() Kind   { return KindPolyline }
func (p Polyline) Class() Class { return p.Tag }

// Bounds returns the axis-aligned bounding box of a primitive list.
// Circles and arcs contribute their full extents. ok is false when the
// list yields no points.
func Bounds(prims []Primitive) (minX, minY, maxX, maxY float64, ok bool) {
	grow := func(x, y float64) {
		if !ok {
			minX, maxX, minY, maxY = x, x, y, y
			ok = true
			return
		}
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}

	for _, p := range prims {
		switch v := p.(type) {
		case Line:
			grow(v.P1.X, v.P1.Y)
			grow(v.P2.X, v.P2.Y)
		case Circle:
			grow(v.Center.X-v.Radius, v.Center.Y-v.Radius)
			grow(v.Center.X+v.Radius, v.Center.Y+v.Radius)
		case Arc:
			grow(v.Start.X, v.Start.Y)
			grow(v.End.X, v.End.Y)
		case Ellipse:
			grow(v.Center.X-v.Major, v.Center.Y-v.Major)
			grow(v.Center.X+v.Major, v.Center.Y+v.Major)
		case Polyline:
			for _, pt := range v.Points {
				grow(pt.X, pt.Y)
			}
		}
	}
	return minX, minY, maxX, maxY, ok
}
