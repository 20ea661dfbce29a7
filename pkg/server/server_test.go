package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gohanda11/step-to-dxf/pkg/brep"
	"github.com/gohanda11/step-to-dxf/pkg/geom"
	"github.com/gohanda11/step-to-dxf/pkg/session"
)

// testFace is a minimal planar face backed by a square mesh.
type testFace struct{}

func (testFace) SurfaceKind() brep.SurfaceKind { return brep.SurfacePlane }
func (testFace) Normal() geom.Vec3             { return geom.Vec3{Z: 1} }
func (testFace) Wires() ([]brep.Wire, error)   { return nil, brep.ErrNoExactCurves }
func (testFace) Triangulation() (*brep.Mesh, error) {
	return &brep.Mesh{
		Vertices: []geom.Vec3{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		},
		Triangles: [][3]int{{0, 1, 2}, {0, 2, 3}},
	}, nil
}

func newTestServer(t *testing.T) (*Server, *session.Store) {
	t.Helper()
	store := session.NewStore(time.Hour)
	t.Cleanup(store.Close)

	srv := New(store)
	srv.SetReader(func(path string) ([]brep.Face, error) {
		return []brep.Face{testFace{}, testFace{}}, nil
	})
	return srv, store
}

// uploadRequest builds a multipart upload with the given filename.
func uploadRequest(t *testing.T, filename string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte("ISO-10303-21;\nADVANCED_FACE\nENDSEC;\n")); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// doUpload uploads a file and returns the session id.
func doUpload(t *testing.T, srv *Server) string {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, uploadRequest(t, "bracket.step"))
	if rec.Code != http.StatusOK {
		t.Fatalf("upload status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success   bool   `json:"success"`
		SessionID string `json:"session_id"`
		FaceCount int    `json:"face_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if !resp.Success || resp.SessionID == "" {
		t.Fatalf("upload response: %+v", resp)
	}
	if resp.FaceCount != 2 {
		t.Fatalf("face count: got %d, want 2", resp.FaceCount)
	}
	return resp.SessionID
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d", rec.Code)
	}
}

func TestStatusReportsSessions(t *testing.T) {
	srv, _ := newTestServer(t)
	doUpload(t, srv)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var resp struct {
		ActiveSessions int `json:"active_sessions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.ActiveSessions != 1 {
		t.Errorf("active_sessions: got %d, want 1", resp.ActiveSessions)
	}
}

func TestUploadRejectsWrongExtension(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, uploadRequest(t, "model.obj"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestUploadMissingFile(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestExportFaceDXF(t *testing.T) {
	srv, _ := newTestServer(t)
	id := doUpload(t, srv)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/export-face/"+id+"/0?format=dxf", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	if rec.Body.Len() == 0 {
		t.Error("empty DXF attachment")
	}
	// Download names number faces from 1.
	cd := rec.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "bracket_face_1.dxf") {
		t.Errorf("Content-Disposition: got %q, want bracket_face_1.dxf", cd)
	}
}

func TestExportFaceSVG(t *testing.T) {
	srv, _ := newTestServer(t)
	id := doUpload(t, srv)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/export-face/"+id+"/1?format=svg", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("<svg")) {
		t.Error("attachment is not an SVG document")
	}
}

func TestExportFaceErrors(t *testing.T) {
	srv, _ := newTestServer(t)
	id := doUpload(t, srv)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"unknown session", "/api/export-face/nope/0", http.StatusNotFound},
		{"face out of range", "/api/export-face/" + id + "/99", http.StatusBadRequest},
		{"negative face", "/api/export-face/" + id + "/-1", http.StatusBadRequest},
		{"bad format", "/api/export-face/" + id + "/0?format=pdf", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestFaceInfo(t *testing.T) {
	srv, _ := newTestServer(t)
	id := doUpload(t, srv)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/face-info/"+id+"/0", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var resp struct {
		Success bool `json:"success"`
		Face    struct {
			ID      int    `json:"id"`
			Type    string `json:"type"`
			IsPlane bool   `json:"is_plane"`
			Mesh    *struct {
				Vertices  int `json:"vertices"`
				Triangles int `json:"triangles"`
			} `json:"mesh"`
		} `json:"face"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || !resp.Face.IsPlane || resp.Face.Type != "Plane" {
		t.Errorf("face info: %+v", resp.Face)
	}
	if resp.Face.Mesh == nil || resp.Face.Mesh.Vertices != 4 || resp.Face.Mesh.Triangles != 2 {
		t.Errorf("mesh info: %+v", resp.Face.Mesh)
	}
}

func TestPreview(t *testing.T) {
	srv, _ := newTestServer(t)
	id := doUpload(t, srv)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/preview-dxf/"+id+"/0", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var resp struct {
		Success bool `json:"success"`
		Preview struct {
			FaceID     int `json:"face_id"`
			Dimensions struct {
				Width  float64 `json:"width"`
				Height float64 `json:"height"`
			} `json:"dimensions"`
			EntityCount int `json:"entity_count"`
		} `json:"preview"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success {
		t.Fatal("preview not successful")
	}
	if resp.Preview.Dimensions.Width != 10 || resp.Preview.Dimensions.Height != 10 {
		t.Errorf("dimensions: got %vx%v, want 10x10",
			resp.Preview.Dimensions.Width, resp.Preview.Dimensions.Height)
	}
	if resp.Preview.EntityCount < 1 {
		t.Errorf("entity_count: got %d", resp.Preview.EntityCount)
	}
}

func TestTestDXF(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/test-dxf", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	if rec.Body.Len() == 0 {
		t.Error("empty test drawing")
	}
}
