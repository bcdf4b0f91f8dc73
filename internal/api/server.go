// Package api serves the layout pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz            liveness probe
//	POST /v1/layout          scene document → layout JSON
//	POST /v1/render?format=  scene document → rendered artifact
//
// Scene documents are JSON by default; send Content-Type application/yaml
// or application/toml (or ?scene_format=) for the other formats. Layout and
// render options are query parameters named like the CLI flags.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/flexline/pkg/pipeline"
)

const (
	// DefaultAddr is the listen address used when none is given.
	DefaultAddr = ":8080"

	// DefaultMaxBodyBytes caps scene document uploads.
	DefaultMaxBodyBytes = 1 << 20

	// shutdownTimeout bounds graceful shutdown.
	shutdownTimeout = 5 * time.Second
)

// Config configures a Server.
type Config struct {
	// AllowScripts lets scene documents carry script content. Scripts run
	// in an interpreter with a per-call timeout, but are off by default
	// for untrusted input.
	AllowScripts bool

	// ScriptTimeout bounds one measure call when scripts are allowed.
	ScriptTimeout time.Duration

	// MaxBodyBytes caps the request body; zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// Server exposes a pipeline.Runner over HTTP.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	cfg    Config
}

// New creates a server. A nil logger discards output.
func New(runner *pipeline.Runner, logger *log.Logger, cfg Config) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Server{runner: runner, logger: logger, cfg: cfg}
}

// Handler returns the router with all middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "no route for "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path)
	})
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
