package outline

import (
	"github.com/gohanda11/step-to-dxf/pkg/brep"
	"github.com/gohanda11/step-to-dxf/pkg/geom"
)

// Preview is the JSON payload describing a face's flattened geometry
// for on-screen inspection before export. All coordinates are rounded
// to 3 decimals. The preview always runs the mesh pipeline, which is
// the one representation every face carries.
type Preview struct {
	FaceID      int          `json:"face_id"`
	FaceType    string       `json:"face_type"`
	Boundary    PathEntity   `json:"boundary"`
	Holes       []HoleEntity `json:"holes"`
	Dimensions  Dimensions   `json:"dimensions"`
	EntityCount int          `json:"entity_count"`
}

// PathEntity is a closed or open point path in preview coordinates.
type PathEntity struct {
	Type   string       `json:"type"`
	Points [][2]float64 `json:"points"`
	Closed bool         `json:"closed"`
}

// HoleEntity is a detected hole: a circle (Center/Radius set) or a
// closed point loop (Points set).
type HoleEntity struct {
	Type   string       `json:"type"`
	Center *[2]float64  `json:"center,omitempty"`
	Radius float64      `json:"radius,omitempty"`
	Points [][2]float64 `json:"points,omitempty"`
	Closed bool         `json:"closed,omitempty"`
}

// Dimensions is the boundary's bounding box.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Bounds Bounds  `json:"bounds"`
}

// Bounds are the boundary extents.
type Bounds struct {
	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
}

// defaultPreview is the placeholder square payload used when a face
// has no recoverable boundary.
func defaultPreview(faceID int, faceType string) Preview {
	return Preview{
		FaceID:   faceID,
		FaceType: faceType,
		Boundary: PathEntity{
			Type:   "LWPOLYLINE",
			Points: [][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
			Closed: true,
		},
		Holes:       []HoleEntity{},
		EntityCount: 1,
		Dimensions: Dimensions{
			Width:  10,
			Height: 10,
			Bounds: Bounds{XMin: 0, XMax: 10, YMin: 0, YMax: 10},
		},
	}
}

// BuildPreview flattens a face's triangulation into the preview
// payload: the reconstructed boundary, detected holes, and the
// bounding dimensions.
func BuildPreview(faceID int, face brep.Face, cfg Config) Preview {
	faceType := face.SurfaceKind().String()

	mesh, err := face.Triangulation()
	if err != nil || mesh.IsEmpty() || mesh.VertexCount() < 3 {
		return defaultPreview(faceID, faceType)
	}

	basis := geom.BasisOrDefault(face.Normal())
	points := basis.ProjectAll(mesh.Vertices)

	boundary := meshBoundary(mesh, points, cfg)
	if len(boundary) < 3 {
		return defaultPreview(faceID, faceType)
	}

	preview := Preview{
		FaceID:   faceID,
		FaceType: faceType,
		Holes:    []HoleEntity{},
	}

	xMin, xMax := boundary[0].X, boundary[0].X
	yMin, yMax := boundary[0].Y, boundary[0].Y
	for _, p := range boundary[1:] {
		xMin, xMax = min(xMin, p.X), max(xMax, p.X)
		yMin, yMax = min(yMin, p.Y), max(yMax, p.Y)
	}
	preview.Dimensions = Dimensions{
		Width:  geom.Round3(max(xMax-xMin, 0.1)),
		Height: geom.Round3(max(yMax-yMin, 0.1)),
		Bounds: Bounds{
			XMin: geom.Round3(xMin), XMax: geom.Round3(xMax),
			YMin: geom.Round3(yMin), YMax: geom.Round3(yMax),
		},
	}

	preview.Boundary = closedPath(boundary)
	preview.EntityCount++

	for _, hole := range detectHoles(points, boundary, cfg) {
		if hole.IsCircle {
			center := [2]float64{geom.Round3(hole.Center.X), geom.Round3(hole.Center.Y)}
			preview.Holes = append(preview.Holes, HoleEntity{
				Type:   "CIRCLE",
				Center: &center,
				Radius: geom.Round3(hole.Radius),
			})
		} else {
			if len(hole.Points) < 3 {
				continue
			}
			loop := closedPath(hole.Points)
			preview.Holes = append(preview.Holes, HoleEntity{
				Type:   "LWPOLYLINE",
				Points: loop.Points,
				Closed: true,
			})
		}
		preview.EntityCount++
	}

	return preview
}

// closedPath rounds a point loop to preview precision and appends the
// first point when the loop is not already closed.
func closedPath(points []geom.Point) PathEntity {
	out := make([][2]float64, 0, len(points)+1)
	for _, p := range points {
		out = append(out, [2]float64{geom.Round3(p.X), geom.Round3(p.Y)})
	}
	if len(out) > 0 && out[0] != out[len(out)-1] {
		out = append(out, out[0])
	}
	return PathEntity{Type: "LWPOLYLINE", Points: out, Closed: true}
}
