package geom

import "errors"

// ErrDegenerateNormal is returned by ComputeBasis when the face normal
// has (near) zero length and no projection plane can be derived from it.
// Callers substitute the +Z axis.
var ErrDegenerateNormal = errors.New("geom: degenerate face normal")

// degenerateLength is the squared-length floor below which a normal is
// considered zero.
const degenerateLength = 1e-12

// Basis is an orthonormal 2-D coordinate frame embedded in 3-D space,
// derived from a face normal. The same basis must be used for every
// point belonging to one face so that projected coordinates are
// mutually consistent.
type Basis struct {
	U Vec3
	V Vec3
}

// globalAxes are the candidate reference axes for basis construction.
var globalAxes = [3]Vec3{
	{X: 1}, {Y: 1}, {Z: 1},
}

// ComputeBasis derives an orthonormal (U, V) pair spanning the plane
// perpendicular to normal. The reference axis is the global axis least
// aligned with the normal, which keeps the Gram-Schmidt subtraction
// well conditioned; a second axis is then orthogonalized against both
// the normal and U.
func ComputeBasis(normal Vec3) (Basis, error) {
	if normal.Dot(normal) < degenerateLength {
		return Basis{}, ErrDegenerateNormal
	}
	n := normal.Normalize()

	// Pick the axis with the smallest |dot| against the normal.
	ref := globalAxes[0]
	best := abs(n.Dot(ref))
	for _, axis := range globalAxes[1:] {
		if d := abs(n.Dot(axis)); d < best {
			best = d
			ref = axis
		}
	}

	u := ref.Sub(n.Scale(n.Dot(ref))).Normalize()

	// Second reference: try the remaining axes in cyclic order and keep
	// the first whose residual is well away from the nu-plane.
	var v Vec3
	for i := 1; i <= 2; i++ {
		second := globalAxes[(axisIndex(ref)+i)%3]
		residual := second.Sub(n.Scale(n.Dot(second))).Sub(u.Scale(u.Dot(second)))
		if residual.Length() > 1e-9 {
			v = residual.Normalize()
			break
		}
	}

	return Basis{U: u, V: v}, nil
}

// BasisOrDefault computes a basis for normal, substituting the +Z axis
// when the normal is degenerate.
func BasisOrDefault(normal Vec3) Basis {
	b, err := ComputeBasis(normal)
	if err != nil {
		b, _ = ComputeBasis(Vec3{Z: 1})
	}
	return b
}

// Project maps a 3-D point into the basis plane as (p·U, p·V).
func (b Basis) Project(p Vec3) Point {
	return Point{X: p.Dot(b.U), Y: p.Dot(b.V)}
}

// ProjectAll projects a slice of points with the same basis.
func (b Basis) ProjectAll(pts []Vec3) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = b.Project(p)
	}
	return out
}

func axisIndex(axis Vec3) int {
	switch {
	case axis.X != 0:
		return 0
	case axis.Y != 0:
		return 1
	default:
		return 2
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
