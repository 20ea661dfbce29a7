package outline

import (
	"math"

	"github.com/gohanda11/step-to-dxf/pkg/geom"
	"github.com/gohanda11/step-to-dxf/pkg/vector"
)

// mod360 normalizes an angle in degrees to [0, 360).
func mod360(deg float64) float64 {
	return math.Mod(math.Mod(deg, 360)+360, 360)
}

// angleBetweenCCW reports whether mid lies on the counter-clockwise
// path from start to end. All angles are degrees and reduced mod 360;
// an interval that wraps past 0° is handled by the disjunction.
func angleBetweenCCW(start, end, mid float64) bool {
	start, end, mid = mod360(start), mod360(end), mod360(mid)
	if start <= end {
		return start <= mid && mid <= end
	}
	return mid >= start || mid <= end
}

// resolveArc builds an arc primitive from the projected start, end, and
// sampled midpoint of a circular edge. The midpoint disambiguates the
// travel direction: if it lies CCW between start and end the arc is
// CCW, otherwise CW, in which case the stored angles are swapped so
// consumers always read StartAngle..EndAngle in CCW order.
func resolveArc(tag vector.Class, center geom.Point, radius float64, start, end, mid geom.Point) vector.Arc {
	startAngle := start.AngleAbout(center)
	endAngle := end.AngleAbout(center)
	midAngle := mid.AngleAbout(center)

	ccw := angleBetweenCCW(startAngle, endAngle, midAngle)

	var diff float64
	if ccw {
		diff = mod360(endAngle - startAngle)
	} else {
		diff = mod360(startAngle - endAngle)
		startAngle, endAngle = endAngle, startAngle
	}

	return vector.Arc{
		Tag:        tag,
		Center:     center,
		Radius:     radius,
		Start:      start,
		End:        end,
		StartAngle: startAngle,
		EndAngle:   endAngle,
		Sweep:      ccw,
		LargeArc:   diff > 180,
	}
}
