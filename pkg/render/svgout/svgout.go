// Package svgout renders primitive lists into SVG documents sized in
// real-world millimeters. Boundary and hole primitives get distinct
// stroke classes; arcs are emitted as true path arcs with sweep and
// large-arc flags.
package svgout

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	svg "github.com/ajstarks/svgo/float"

	"github.com/gohanda11/step-to-dxf/pkg/geom"
	"github.com/gohanda11/step-to-dxf/pkg/vector"
)

// stylesheet maps the class tags to strokes: black boundary, red
// holes, no fill.
const stylesheet = `
      .boundary { fill: none; stroke: #000000; stroke-width: 0.1mm; }
      .hole { fill: none; stroke: #ff0000; stroke-width: 0.05mm; }
`

// paddingFraction expands the content bounding box on each side by
// this fraction of the larger span.
const paddingFraction = 0.1

// Writer converts primitive lists to SVG documents.
type Writer struct{}

// New returns a Writer.
func New() *Writer {
	return &Writer{}
}

func classAttr(c vector.Class) string {
	return fmt.Sprintf(`class="%s"`, c)
}

// Write renders the primitive list as a complete SVG document. The
// document width/height carry mm units and the viewBox matches the
// padded content bounds, so a 40mm part measures 40mm on paper.
func (w *Writer) Write(out io.Writer, prims []vector.Primitive) error {
	minX, minY, maxX, maxY, ok := vector.Bounds(prims)
	if !ok {
		return fmt.Errorf("svgout: no geometry to render")
	}

	padding := math.Max(maxX-minX, maxY-minY) * paddingFraction
	minX -= padding
	minY -= padding
	maxX += padding
	maxY += padding
	width := maxX - minX
	height := maxY - minY

	canvas := svg.New(out)
	canvas.StartviewUnit(width, height, "mm", minX, minY, width, height)
	canvas.Def()
	canvas.Style("text/css", stylesheet)
	canvas.DefEnd()

	for _, p := range prims {
		writePrimitive(canvas, p)
	}

	canvas.End()
	return nil
}

// WriteFile renders the primitive list to a file at path.
func (w *Writer) WriteFile(path string, prims []vector.Primitive) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("svgout: create %s: %w", path, err)
	}
	if err := w.Write(f, prims); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("svgout: close %s: %w", path, err)
	}
	return nil
}

func writePrimitive(canvas *svg.SVG, p vector.Primitive) {
	attr := classAttr(p.Class())

	switch v := p.(type) {
	case vector.Line:
		canvas.Line(v.P1.X, v.P1.Y, v.P2.X, v.P2.Y, attr)

	case vector.Circle:
		canvas.Circle(v.Center.X, v.Center.Y, v.Radius, attr)

	case vector.Arc:
		canvas.Path(arcPath(v), attr)

	case vector.Ellipse:
		rotation := math.Atan2(v.MajorDir.Y, v.MajorDir.X) * 180 / math.Pi
		transform := fmt.Sprintf(`transform="rotate(%.3f %.3f %.3f)"`,
			rotation, v.Center.X, v.Center.Y)
		canvas.Ellipse(v.Center.X, v.Center.Y, v.Major, v.Major*v.Ratio, attr+" "+transform)

	case vector.Polyline:
		pts := v.Points
		if v.Closed && len(pts) > 0 && pts[0] != pts[len(pts)-1] {
			closed := make([]geom.Point, 0, len(pts)+1)
			closed = append(closed, pts...)
			pts = append(closed, pts[0])
		}
		xs := make([]float64, len(pts))
		ys := make([]float64, len(pts))
		for i, pt := range pts {
			xs[i] = pt.X
			ys[i] = pt.Y
		}
		canvas.Polyline(xs, ys, attr)
	}
}

// arcPath builds the SVG path command for an arc: move to the start
// point, then an elliptical-arc segment with equal radii and the
// resolved large-arc and sweep flags.
func arcPath(a vector.Arc) string {
	var b strings.Builder
	fmt.Fprintf(&b, "M %.3f %.3f ", a.Start.X, a.Start.Y)
	fmt.Fprintf(&b, "A %.3f %.3f 0 %d %d %.3f %.3f",
		a.Radius, a.Radius, flag(a.LargeArc), flag(a.Sweep), a.End.X, a.End.Y)
	return b.String()
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
