package geom_test

import (
	"math"
	"testing"

	"github.com/gohanda11/step-to-dxf/pkg/geom"
)

const eps = 1e-9

func TestVec3Ops(t *testing.T) {
	a := geom.Vec3{X: 1, Y: 2, Z: 3}
	b := geom.Vec3{X: 4, Y: -5, Z: 6}

	if got := a.Add(b); got != (geom.Vec3{X: 5, Y: -3, Z: 9}) {
		t.Errorf("Add: got %v", got)
	}
	if got := a.Sub(b); got != (geom.Vec3{X: -3, Y: 7, Z: -3}) {
		t.Errorf("Sub: got %v", got)
	}
	if got := a.Dot(b); got != 12 {
		t.Errorf("Dot: got %v, want 12", got)
	}
	if got := a.Scale(2); got != (geom.Vec3{X: 2, Y: 4, Z: 6}) {
		t.Errorf("Scale: got %v", got)
	}
}

func TestVec3Cross(t *testing.T) {
	tests := []struct {
		name string
		a, b geom.Vec3
		want geom.Vec3
	}{
		{"XxY", geom.Vec3{X: 1}, geom.Vec3{Y: 1}, geom.Vec3{Z: 1}},
		{"YxZ", geom.Vec3{Y: 1}, geom.Vec3{Z: 1}, geom.Vec3{X: 1}},
		{"ZxX", geom.Vec3{Z: 1}, geom.Vec3{X: 1}, geom.Vec3{Y: 1}},
		{"parallel", geom.Vec3{X: 2}, geom.Vec3{X: 3}, geom.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cross(tt.b); got != tt.want {
				t.Errorf("Cross: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Normalize(t *testing.T) {
	v := geom.Vec3{X: 3, Y: 4}.Normalize()
	if math.Abs(v.Length()-1) > eps {
		t.Errorf("Normalize: length %v, want 1", v.Length())
	}
	// Zero vector stays zero rather than dividing by zero.
	if got := (geom.Vec3{}).Normalize(); got != (geom.Vec3{}) {
		t.Errorf("Normalize zero: got %v", got)
	}
}

func TestPointDistanceMidpoint(t *testing.T) {
	a := geom.Pt(0, 0)
	b := geom.Pt(3, 4)
	if got := a.Distance(b); math.Abs(got-5) > eps {
		t.Errorf("Distance: got %v, want 5", got)
	}
	if got := a.Midpoint(b); got != geom.Pt(1.5, 2) {
		t.Errorf("Midpoint: got %v", got)
	}
}

func TestAngleAbout(t *testing.T) {
	center := geom.Pt(1, 1)
	tests := []struct {
		name string
		p    geom.Point
		want float64
	}{
		{"east", geom.Pt(2, 1), 0},
		{"north", geom.Pt(1, 2), 90},
		{"west", geom.Pt(0, 1), 180},
		{"south", geom.Pt(1, 0), 270},
		{"diagonal", geom.Pt(2, 2), 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.AngleAbout(center); math.Abs(got-tt.want) > eps {
				t.Errorf("AngleAbout: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRound3(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.23456, 1.235},
		{1.2344, 1.234},
		{-2.7184, -2.718},
		{2, 2},
	}
	for _, tt := range tests {
		if got := geom.Round3(tt.in); got != tt.want {
			t.Errorf("Round3(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}
}
