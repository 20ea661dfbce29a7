// Package stubstep is a degraded exchange-file reader used when no
// real B-rep kernel is linked in. It does not parse the STEP grammar:
// it counts geometric keywords in the file, synthesizes a plate solid
// with a matching number of drilled holes using sdfx CSG, meshes it
// with marching cubes, and partitions the triangles into planar faces.
// The resulting faces expose only a triangulation, which drives the
// mesh fallback path of the outline pipeline.
package stubstep

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/gohanda11/step-to-dxf/pkg/brep"
	"github.com/gohanda11/step-to-dxf/pkg/geom"
)

// Plate dimensions for the synthesized demo part, in mm.
const (
	plateX = 80.0
	plateY = 50.0
	plateZ = 6.0

	holeRadius = 4.0
	maxHoles   = 4

	// meshCells controls marching cubes resolution; the stub favors
	// speed over surface quality.
	meshCells = 64

	// normalSnap is the minimum |dominant component| for a triangle
	// normal to join an axis-aligned face group. Triangles on hole
	// walls and chamfered cube edges fall below it and are dropped.
	normalSnap = 0.9

	// weldPrecision quantizes vertex coordinates so coincident
	// marching-cubes vertices share an index; shared indices are what
	// make boundary-edge counting meaningful.
	weldPrecision = 1e4
)

// Counts summarizes the keyword scan of an exchange file.
type Counts struct {
	Faces   int
	Circles int
	Lines   int
}

// Read scans the file at path and returns synthesized faces
// approximating a part with the scanned complexity.
func Read(path string) ([]brep.Face, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("stubstep: open: %w", err)
	}
	defer f.Close()

	counts, err := scan(f)
	if err != nil {
		return nil, fmt.Errorf("stubstep: scan %s: %w", path, err)
	}
	return Synthesize(counts)
}

// scan counts geometric keywords line by line.
func scan(f *os.File) (Counts, error) {
	var c Counts
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.ToUpper(sc.Text())
		switch {
		case strings.Contains(line, "FACE"):
			c.Faces++
		case strings.Contains(line, "CIRCLE"):
			c.Circles++
		case strings.Contains(line, "LINE"):
			c.Lines++
		}
	}
	return c, sc.Err()
}

// Synthesize builds the demo plate and splits its mesh into planar
// faces. One hole is drilled per counted circle, up to maxHoles.
func Synthesize(counts Counts) ([]brep.Face, error) {
	holes := counts.Circles
	if holes > maxHoles {
		holes = maxHoles
	}

	solid, err := plateSolid(holes)
	if err != nil {
		return nil, err
	}

	mesh := toMesh(solid)
	faces := partition(mesh)
	if len(faces) == 0 {
		return nil, brep.ErrNoGeometry
	}
	return faces, nil
}

// plateSolid builds the plate with evenly spaced through-holes.
func plateSolid(holes int) (sdf.SDF3, error) {
	plate, err := sdf.Box3D(v3.Vec{X: plateX, Y: plateY, Z: plateZ}, 0)
	if err != nil {
		return nil, fmt.Errorf("stubstep: box: %w", err)
	}

	solid := plate
	for i := 0; i < holes; i++ {
		drill, err := sdf.Cylinder3D(plateZ*2, holeRadius, 0)
		if err != nil {
			return nil, fmt.Errorf("stubstep: cylinder: %w", err)
		}
		// Spread hole centers along the plate's long axis.
		x := plateX * (float64(i+1)/float64(holes+1) - 0.5)
		m := sdf.Translate3d(v3.Vec{X: x})
		solid = sdf.Difference3D(solid, sdf.Transform3D(drill, m))
	}
	return solid, nil
}

// toMesh runs marching cubes and welds coincident vertices so
// triangles share indices.
func toMesh(solid sdf.SDF3) *brep.Mesh {
	renderer := render.NewMarchingCubesUniform(meshCells)
	triangles := render.ToTriangles(solid, renderer)

	mesh := &brep.Mesh{}
	index := make(map[[3]int64]int)

	vertexIndex := func(v v3.Vec) int {
		key := [3]int64{
			int64(math.Round(v.X * weldPrecision)),
			int64(math.Round(v.Y * weldPrecision)),
			int64(math.Round(v.Z * weldPrecision)),
		}
		if idx, ok := index[key]; ok {
			return idx
		}
		idx := len(mesh.Vertices)
		index[key] = idx
		mesh.Vertices = append(mesh.Vertices, geom.Vec3{X: v.X, Y: v.Y, Z: v.Z})
		return idx
	}

	for _, tri := range triangles {
		t := [3]int{vertexIndex(tri[0]), vertexIndex(tri[1]), vertexIndex(tri[2])}
		if t[0] == t[1] || t[1] == t[2] || t[2] == t[0] {
			continue // degenerate after welding
		}
		mesh.Triangles = append(mesh.Triangles, t)
	}
	return mesh
}

// axisBin identifies one of the six axis-aligned face orientations.
type axisBin struct {
	axis int // 0=X 1=Y 2=Z
	sign int // +1 or -1
}

func (b axisBin) normal() geom.Vec3 {
	var n geom.Vec3
	s := float64(b.sign)
	switch b.axis {
	case 0:
		n.X = s
	case 1:
		n.Y = s
	default:
		n.Z = s
	}
	return n
}

// partition groups triangles by dominant normal direction and builds
// one planar face per populated group, largest first.
func partition(mesh *brep.Mesh) []brep.Face {
	groups := make(map[axisBin][][3]int)

	for _, t := range mesh.Triangles {
		v1 := mesh.Vertices[t[0]]
		n := mesh.Vertices[t[1]].Sub(v1).Cross(mesh.Vertices[t[2]].Sub(v1)).Normalize()

		comps := [3]float64{n.X, n.Y, n.Z}
		axis, dominant := 0, math.Abs(comps[0])
		for i := 1; i < 3; i++ {
			if a := math.Abs(comps[i]); a > dominant {
				axis, dominant = i, a
			}
		}
		if dominant < normalSnap {
			continue
		}
		sign := 1
		if comps[axis] < 0 {
			sign = -1
		}
		groups[axisBin{axis: axis, sign: sign}] = append(groups[axisBin{axis: axis, sign: sign}], t)
	}

	bins := make([]axisBin, 0, len(groups))
	for b := range groups {
		bins = append(bins, b)
	}
	sort.Slice(bins, func(i, j int) bool {
		if len(groups[bins[i]]) != len(groups[bins[j]]) {
			return len(groups[bins[i]]) > len(groups[bins[j]])
		}
		if bins[i].axis != bins[j].axis {
			return bins[i].axis < bins[j].axis
		}
		return bins[i].sign > bins[j].sign
	})

	faces := make([]brep.Face, 0, len(bins))
	for _, b := range bins {
		sub := submesh(mesh, groups[b])
		faces = append(faces, &stubFace{mesh: sub, normal: b.normal()})
	}
	return faces
}

// submesh extracts the given triangles with a compact vertex list.
func submesh(mesh *brep.Mesh, triangles [][3]int) *brep.Mesh {
	out := &brep.Mesh{}
	remap := make(map[int]int)
	for _, t := range triangles {
		var nt [3]int
		for i, idx := range t {
			ni, ok := remap[idx]
			if !ok {
				ni = len(out.Vertices)
				remap[idx] = ni
				out.Vertices = append(out.Vertices, mesh.Vertices[idx])
			}
			nt[i] = ni
		}
		out.Triangles = append(out.Triangles, nt)
	}
	return out
}

// stubFace is a synthesized planar face backed only by a mesh.
type stubFace struct {
	mesh   *brep.Mesh
	normal geom.Vec3
}

func (f *stubFace) SurfaceKind() brep.SurfaceKind { return brep.SurfacePlane }
func (f *stubFace) Normal() geom.Vec3             { return f.normal }

// Wires always reports missing curve data; stub faces only carry a
// triangulation.
func (f *stubFace) Wires() ([]brep.Wire, error) {
	return nil, brep.ErrNoExactCurves
}

func (f *stubFace) Triangulation() (*brep.Mesh, error) {
	return f.mesh, nil
}
