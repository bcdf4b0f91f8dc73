package api

import (
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/flexline/pkg/buildinfo"
	"github.com/matzehuels/flexline/pkg/errors"
	"github.com/matzehuels/flexline/pkg/pipeline"
	"github.com/matzehuels/flexline/pkg/scene"
)

// contentTypes maps output formats to response media types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

// sceneFormats maps request media types to scene document formats.
var sceneFormats = map[string]string{
	"":                   scene.FormatJSON,
	"application/json":   scene.FormatJSON,
	"application/toml":   scene.FormatTOML,
	"application/yaml":   scene.FormatYAML,
	"application/x-yaml": scene.FormatYAML,
	"text/yaml":          scene.FormatYAML,
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, `{"status":"ok","version":"`+buildinfo.Version+`"}`+"\n")
}

// handleLayout computes the layout of the posted scene.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	doc, opts, err := s.readRequest(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	l, hit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), doc, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	data, err := scene.MarshalLayout(l)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[pipeline.FormatJSON])
	w.Header().Set("X-Layout-ID", l.ID)
	w.Header().Set("X-Cache", cacheStatus(hit))
	_, _ = w.Write(data)
}

// handleRender lays out the posted scene and renders one artifact.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	doc, opts, err := s.readRequest(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.respondError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), doc, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Layout-ID", res.Layout.ID)
	w.Header().Set("X-Cache", cacheStatus(res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit))
	_, _ = w.Write(res.Artifacts[format])
}

// readRequest decodes the scene body and the option query parameters.
func (s *Server) readRequest(w http.ResponseWriter, r *http.Request) (*scene.Document, pipeline.Options, error) {
	opts, err := s.parseOptions(r)
	if err != nil {
		return nil, opts, err
	}

	format := r.URL.Query().Get("scene_format")
	if format == "" {
		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		var ok bool
		if format, ok = sceneFormats[mediaType]; !ok {
			return nil, opts, errors.New(errors.ErrCodeInvalidFormat, "unsupported content type %q", mediaType)
		}
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		return nil, opts, err
	}
	doc, err := pipeline.ParseScene(r.Context(), body, format)
	if err != nil {
		return nil, opts, err
	}
	return doc, opts, nil
}

// parseOptions reads pipeline options from the query string.
func (s *Server) parseOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Width:          q.Get("width"),
		Height:         q.Get("height"),
		View:           q.Get("view"),
		Style:          q.Get("style"),
		DisableScripts: !s.cfg.AllowScripts,
		ScriptTimeout:  s.cfg.ScriptTimeout,
		Logger:         s.logger,
	}

	var err error
	if opts.LineBounds, err = boolParam(q.Get("line_bounds")); err != nil {
		return opts, err
	}
	if opts.NoLabels, err = boolParam(q.Get("no_labels")); err != nil {
		return opts, err
	}
	if opts.Detailed, err = boolParam(q.Get("detailed")); err != nil {
		return opts, err
	}
	if opts.Refresh, err = boolParam(q.Get("refresh")); err != nil {
		return opts, err
	}
	if v := q.Get("scale"); v != "" {
		if opts.Scale, err = strconv.ParseFloat(v, 64); err != nil || opts.Scale <= 0 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", v)
		}
	}
	return opts, nil
}

func boolParam(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "invalid boolean %q", v)
	}
	return b, nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
