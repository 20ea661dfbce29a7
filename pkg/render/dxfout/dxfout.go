// Package dxfout renders primitive lists into DXF drawings using the
// yofu/dxf writer. Boundary and hole primitives land on separate
// layers so downstream CAM tooling can style or filter them.
package dxfout

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	dxfcolor "github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/gohanda11/step-to-dxf/pkg/geom"
	"github.com/gohanda11/step-to-dxf/pkg/vector"
)

// Layer names by primitive class.
const (
	LayerBoundary = "BOUNDARY"
	LayerHoles    = "HOLES"
)

// Writer converts primitive lists to DXF files.
type Writer struct {
	// EllipseSegments is the segment count used to discretize
	// ellipses, which the underlying DXF library has no entity for.
	// The full ellipse data survives in the primitive list.
	EllipseSegments int
}

// New returns a Writer with default discretization.
func New() *Writer {
	return &Writer{EllipseSegments: 48}
}

// layerFor maps a primitive class to its DXF layer.
func layerFor(c vector.Class) string {
	if c == vector.ClassHole {
		return LayerHoles
	}
	return LayerBoundary
}

// Write renders the primitive list to a DXF file at path.
func (w *Writer) Write(path string, prims []vector.Primitive) error {
	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerBoundary, dxfcolor.Red, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("dxfout: add layer: %w", err)
	}
	if _, err := d.AddLayer(LayerHoles, dxfcolor.Yellow, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("dxfout: add layer: %w", err)
	}

	for _, p := range prims {
		if err := d.ChangeLayer(layerFor(p.Class())); err != nil {
			return fmt.Errorf("dxfout: change layer: %w", err)
		}
		if err := w.writePrimitive(d, p); err != nil {
			return fmt.Errorf("dxfout: %w", err)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("dxfout: save %s: %w", path, err)
	}
	return nil
}

func (w *Writer) writePrimitive(d *drawing.Drawing, p vector.Primitive) error {
	switch v := p.(type) {
	case vector.Line:
		_, err := d.Line(v.P1.X, v.P1.Y, 0, v.P2.X, v.P2.Y, 0)
		return err

	case vector.Circle:
		_, err := d.Circle(v.Center.X, v.Center.Y, 0, v.Radius)
		return err

	case vector.Arc:
		// StartAngle and EndAngle are already normalized to CCW
		// order, the direction DXF arcs are defined in.
		_, err := d.Arc(v.Center.X, v.Center.Y, 0, v.Radius, v.StartAngle, v.EndAngle)
		return err

	case vector.Ellipse:
		_, err := d.LwPolyline(true, ellipseVertices(v, w.EllipseSegments)...)
		return err

	case vector.Polyline:
		verts := make([][]float64, len(v.Points))
		for i, pt := range v.Points {
			verts[i] = []float64{pt.X, pt.Y}
		}
		_, err := d.LwPolyline(v.Closed, verts...)
		return err

	default:
		return fmt.Errorf("unknown primitive %T", p)
	}
}

// ellipseVertices samples a full ellipse, orienting it along the
// projected major-axis direction.
func ellipseVertices(e vector.Ellipse, segments int) [][]float64 {
	u := e.MajorDir
	l := math.Hypot(u.X, u.Y)
	if l == 0 {
		u = geom.Point{X: 1}
	} else {
		u = geom.Point{X: u.X / l, Y: u.Y / l}
	}
	v := geom.Point{X: -u.Y, Y: u.X}
	minor := e.Major * e.Ratio

	verts := make([][]float64, 0, segments)
	for i := 0; i < segments; i++ {
		t := 2 * math.Pi * float64(i) / float64(segments)
		ca := e.Major * math.Cos(t)
		sa := minor * math.Sin(t)
		verts = append(verts, []float64{
			e.Center.X + u.X*ca + v.X*sa,
			e.Center.Y + u.Y*ca + v.Y*sa,
		})
	}
	return verts
}
