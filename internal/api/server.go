// Package api exposes the layout pipeline over HTTP. It serves a small
// JSON API: health checks, layout computation, and artifact rendering.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/treekit/tidytree/pkg/buildinfo"
	"github.com/treekit/tidytree/pkg/layout"
	"github.com/treekit/tidytree/pkg/pipeline"
)

// contentTypes maps output formats to their response Content-Type.
var contentTypes = map[string]string{
	"json": "application/json",
	"svg":  "image/svg+xml",
	"dot":  "text/vnd.graphviz",
	"png":  "image/png",
}

// Server handles HTTP requests by delegating to a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates a server around the given runner.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Router builds the chi router with middleware and routes mounted.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
	})
	return r
}

// ListenAndServe runs the server on addr until ctx is canceled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	s.logger.Info("listening", "addr", addr)
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// layoutRequest is the request body for /v1/layout and /v1/render.
type layoutRequest struct {
	Words          []string `json:"words"`
	DepthLimit     int      `json:"depth_limit,omitempty"`
	KeepRoot       bool     `json:"keep_root,omitempty"`
	Direction      string   `json:"direction,omitempty"`
	SiblingSpacing float64  `json:"sibling_spacing,omitempty"`
	LevelSpacing   float64  `json:"level_spacing,omitempty"`
	Format         string   `json:"format,omitempty"`
	Refresh        bool     `json:"refresh,omitempty"`
}

func (req *layoutRequest) options() pipeline.Options {
	return pipeline.Options{
		Words:          req.Words,
		DepthLimit:     req.DepthLimit,
		KeepRoot:       req.KeepRoot,
		Direction:      req.Direction,
		SiblingSpacing: req.SiblingSpacing,
		LevelSpacing:   req.LevelSpacing,
		Refresh:        req.Refresh,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	opts := req.options()
	opts.Formats = []string{"json"}
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}

	w.Header().Set("ETag", `"`+res.DocHash+`"`)
	writeJSON(w, http.StatusOK, map[string]any{
		"layout": res.Doc,
		"stats":  res.Stats,
		"cache":  res.CacheInfo,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if req.Format == "" {
		req.Format = "svg"
	}

	opts := req.options()
	opts.Formats = []string{req.Format}
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}

	ct := contentTypes[req.Format]
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("ETag", `"`+res.DocHash+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[req.Format])
}

// statusFor maps pipeline and layout validation errors to 400; anything
// else is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrNoWords),
		errors.Is(err, pipeline.ErrUnknownFormat),
		errors.Is(err, layout.ErrInvalidDepthLimit),
		errors.Is(err, layout.ErrInvalidSpacing),
		errors.Is(err, layout.ErrUnknownDirection),
		errors.Is(err, layout.ErrDuplicateNodeID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestID assigns a UUID to each request and echoes it in the
// X-Request-ID header, honoring an incoming value if present.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type requestIDKey struct{}

// RequestID returns the request's assigned ID, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"id", RequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}
