// Package server exposes the conversion pipeline over HTTP. Uploads
// create a session holding the parsed faces; later requests export or
// preview individual faces by session and face index.
package server

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/gohanda11/step-to-dxf/pkg/brep"
	"github.com/gohanda11/step-to-dxf/pkg/brep/stubstep"
	"github.com/gohanda11/step-to-dxf/pkg/outline"
	"github.com/gohanda11/step-to-dxf/pkg/render/dxfout"
	"github.com/gohanda11/step-to-dxf/pkg/render/svgout"
	"github.com/gohanda11/step-to-dxf/pkg/session"
)

const maxUploadSize = "16M"

// Reader parses an exchange file into faces. The default is the
// stubstep reader; tests substitute fakes.
type Reader func(path string) ([]brep.Face, error)

// Server wires the HTTP routes to the session store and pipeline.
type Server struct {
	echo   *echo.Echo
	store  *session.Store
	reader Reader
	cfg    outline.Config
}

// New builds a Server around the given store.
func New(store *session.Store) *Server {
	s := &Server{
		echo:   echo.New(),
		store:  store,
		reader: stubstep.Read,
		cfg:    outline.DefaultConfig(),
	}
	s.echo.HideBanner = true

	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())
	s.echo.Use(middleware.BodyLimit(maxUploadSize))

	s.routes()
	return s
}

// SetReader overrides the exchange-file reader.
func (s *Server) SetReader(r Reader) { s.reader = r }

// Handler returns the root http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.echo }

// Start listens on addr until the server is shut down.
func (s *Server) Start(addr string) error { return s.echo.Start(addr) }

// Echo exposes the underlying echo instance for graceful shutdown.
func (s *Server) Echo() *echo.Echo { return s.echo }

func (s *Server) routes() {
	s.echo.GET("/", s.handleIndex)
	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/status", s.handleStatus)
	s.echo.POST("/api/upload", s.handleUpload)
	s.echo.GET("/api/export-face/:session_id/:face_id", s.handleExportFace)
	s.echo.GET("/api/face-info/:session_id/:face_id", s.handleFaceInfo)
	s.echo.GET("/api/preview-dxf/:session_id/:face_id", s.handlePreview)
	s.echo.GET("/api/test-dxf", s.handleTestDXF)
}

func (s *Server) handleIndex(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service": "step-to-dxf",
		"endpoints": []string{
			"/api/health",
			"/api/status",
			"/api/upload",
			"/api/export-face/{session_id}/{face_id}",
			"/api/face-info/{session_id}/{face_id}",
			"/api/preview-dxf/{session_id}/{face_id}",
			"/api/test-dxf",
		},
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":          "ok",
		"active_sessions": s.store.Len(),
		"formats":         []string{"dxf", "svg"},
		"exact_outlines":  true,
		"mesh_fallback":   true,
	})
}

// faceInfo is the per-face summary returned by the upload handler.
type faceInfo struct {
	ID      int        `json:"id"`
	Type    string     `json:"type"`
	IsPlane bool       `json:"is_plane"`
	Normal  [3]float64 `json:"normal"`
	Mesh    *meshInfo  `json:"mesh,omitempty"`
}

type meshInfo struct {
	Vertices  int `json:"vertices"`
	Triangles int `json:"triangles"`
}

func (s *Server) handleUpload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "no file provided")
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".step" && ext != ".stp" {
		return jsonError(c, http.StatusBadRequest, "unsupported file type "+ext)
	}

	src, err := fh.Open()
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "cannot read upload")
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "temp file")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return jsonError(c, http.StatusInternalServerError, "saving upload")
	}
	tmp.Close()

	faces, err := s.reader(tmpPath)
	if err != nil {
		log.Printf("upload: parse %s: %v", fh.Filename, err)
		return jsonError(c, http.StatusUnprocessableEntity, "could not parse file")
	}

	sess := s.store.Put(fh.Filename, faces)
	log.Printf("upload: session %s, %d faces from %s", sess.ID, len(faces), fh.Filename)

	infos := make([]faceInfo, len(faces))
	for i, f := range faces {
		infos[i] = describeFace(i, f)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":    true,
		"session_id": sess.ID,
		"face_count": len(faces),
		"faces":      infos,
	})
}

func describeFace(id int, f brep.Face) faceInfo {
	n := f.Normal()
	info := faceInfo{
		ID:      id,
		Type:    f.SurfaceKind().String(),
		IsPlane: f.SurfaceKind() == brep.SurfacePlane,
		Normal:  [3]float64{n.X, n.Y, n.Z},
	}
	if mesh, err := f.Triangulation(); err == nil && mesh != nil {
		info.Mesh = &meshInfo{Vertices: mesh.VertexCount(), Triangles: mesh.TriangleCount()}
	}
	return info
}

// lookupFace resolves the session/face path parameters. A nil face
// with a nil error means the response has already been written.
func (s *Server) lookupFace(c echo.Context) (*session.Session, brep.Face, int, error) {
	sess, err := s.store.Get(c.Param("session_id"))
	if err != nil {
		return nil, nil, 0, jsonError(c, http.StatusNotFound, "session not found")
	}
	id, err := strconv.Atoi(c.Param("face_id"))
	if err != nil || id < 0 || id >= len(sess.Faces) {
		return nil, nil, 0, jsonError(c, http.StatusBadRequest, "invalid face id")
	}
	return sess, sess.Faces[id], id, nil
}

func (s *Server) handleExportFace(c echo.Context) error {
	sess, face, id, err := s.lookupFace(c)
	if face == nil {
		return err
	}

	format := c.QueryParam("format")
	if format == "" {
		format = "dxf"
	}
	if format != "dxf" && format != "svg" {
		return jsonError(c, http.StatusBadRequest, "unsupported format "+format)
	}

	result := outline.Export(face, s.cfg)
	log.Printf("export: session %s face %d, %d primitives via %s",
		sess.ID, id, len(result.Primitives), result.Source)

	tmp, err := os.CreateTemp("", "export-*."+format)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "temp file")
	}
	path := tmp.Name()
	tmp.Close()
	defer func() {
		if err := os.Remove(path); err != nil {
			log.Printf("export: cleanup %s: %v", path, err)
		}
	}()

	switch format {
	case "dxf":
		err = dxfout.New().Write(path, result.Primitives)
	case "svg":
		err = svgout.New().WriteFile(path, result.Primitives)
	}
	if err != nil {
		log.Printf("export: render session %s face %d: %v", sess.ID, id, err)
		return jsonError(c, http.StatusInternalServerError, "render failed")
	}

	// Face numbers in download names are 1-based for users.
	base := strings.TrimSuffix(sess.Filename, filepath.Ext(sess.Filename))
	name := fmt.Sprintf("%s_face_%d.%s", base, id+1, format)
	return c.Attachment(path, name)
}

func (s *Server) handleFaceInfo(c echo.Context) error {
	_, face, id, err := s.lookupFace(c)
	if face == nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"face":    describeFace(id, face),
	})
}

func (s *Server) handlePreview(c echo.Context) error {
	_, face, id, err := s.lookupFace(c)
	if face == nil {
		return err
	}
	preview := outline.BuildPreview(id, face, s.cfg)
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"preview": preview,
	})
}

func (s *Server) handleTestDXF(c echo.Context) error {
	tmp, err := os.CreateTemp("", "test-*.dxf")
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "temp file")
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	n, err := dxfout.WriteTestDrawing(path)
	if err != nil {
		log.Printf("test-dxf: %v", err)
		return jsonError(c, http.StatusInternalServerError, "render failed")
	}
	log.Printf("test-dxf: wrote %d entities", n)
	return c.Attachment(path, "test_drawing.dxf")
}

func jsonError(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]any{"success": false, "error": msg})
}
