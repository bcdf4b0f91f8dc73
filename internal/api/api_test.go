package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/flexline/pkg/cache"
	"github.com/matzehuels/flexline/pkg/observability"
	"github.com/matzehuels/flexline/pkg/pipeline"
	"github.com/matzehuels/flexline/pkg/scene"
)

const demoScene = `{
  "id": "demo",
  "container": {"wrap": "wrap"},
  "width": {"mode": "exact", "size": 120},
  "items": [
    {"id": "a", "content": {"width": 50, "height": 20}},
    {"id": "b", "content": {"width": 50, "height": 20}},
    {"id": "c", "content": {"width": 50, "height": 20}}
  ]
}`

const demoYAML = `
id: demo
container:
  wrap: wrap
width:
  mode: exact
  size: 120
items:
  - id: a
    content: {width: 50, height: 20}
  - id: b
    content: {width: 50, height: 20}
  - id: c
    content: {width: 50, height: 20}
`

const scriptScene = `{
  "items": [
    {"id": "s", "content": {"kind": "script", "script": "function measure(w, h) { return {width: 10, height: 10}; }"}}
  ]
}`

func newTestServer(cfg Config) *Server {
	return New(pipeline.NewRunner(cache.NewNullCache(), nil, nil), nil, cfg)
}

func do(t *testing.T, s *Server, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(Config{}), http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
	if rec.Header().Get("Server") == "" {
		t.Error("Server header not set")
	}
}

func TestLayout(t *testing.T) {
	s := newTestServer(Config{})

	tests := []struct {
		name        string
		target      string
		contentType string
		body        string
		width       int
		height      int
		lines       int
	}{
		{"json", "/v1/layout", "application/json", demoScene, 120, 40, 2},
		{"json charset", "/v1/layout", "application/json; charset=utf-8", demoScene, 120, 40, 2},
		{"yaml", "/v1/layout", "application/yaml", demoYAML, 120, 40, 2},
		{"format param", "/v1/layout?scene_format=yaml", "text/plain", demoYAML, 120, 40, 2},
		{"width override", "/v1/layout?width=exact:200&height=exact:50", "", demoScene, 200, 50, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.target, tt.contentType, tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			l, err := scene.UnmarshalLayout(rec.Body.Bytes())
			if err != nil {
				t.Fatalf("UnmarshalLayout() error = %v", err)
			}
			if l.Width != tt.width || l.Height != tt.height || len(l.ContentLines()) != tt.lines {
				t.Errorf("layout = %dx%d with %d lines, want %dx%d with %d",
					l.Width, l.Height, len(l.ContentLines()), tt.width, tt.height, tt.lines)
			}
			if got := rec.Header().Get("X-Layout-ID"); got != l.ID {
				t.Errorf("X-Layout-ID = %q, want %q", got, l.ID)
			}
			if got := rec.Header().Get("X-Cache"); got != "miss" {
				t.Errorf("X-Cache = %q, want miss", got)
			}
		})
	}
}

func TestLayoutErrors(t *testing.T) {
	s := newTestServer(Config{})

	tests := []struct {
		name        string
		target      string
		contentType string
		body        string
		status      int
		code        string
	}{
		{"syntax", "/v1/layout", "", `{"items": [`, http.StatusBadRequest, "INVALID_SCENE"},
		{"bad direction", "/v1/layout", "", `{"container": {"direction": "diagonal"}}`, http.StatusBadRequest, "INVALID_CONFIGURATION"},
		{"content type", "/v1/layout", "application/xml", `<scene/>`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad width", "/v1/layout?width=huge", "", demoScene, http.StatusBadRequest, "INVALID_CONFIGURATION"},
		{"bad bool", "/v1/layout?refresh=maybe", "", demoScene, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad scale", "/v1/layout?scale=-1", "", demoScene, http.StatusBadRequest, "INVALID_INPUT"},
		{"scripts disabled", "/v1/layout", "", scriptScene, http.StatusUnprocessableEntity, "UNSUPPORTED"},
		{"unknown route", "/v1/nothing", "", "", http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.target, tt.contentType, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			body := decodeError(t, rec)
			if body.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Code, tt.code)
			}
			if body.RequestID == "" {
				t.Error("request_id missing from error body")
			}
		})
	}
}

func TestLayoutMethodNotAllowed(t *testing.T) {
	rec := do(t, newTestServer(Config{}), http.MethodGet, "/v1/layout", "", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decodeError(t, rec).Code; got != "METHOD_NOT_ALLOWED" {
		t.Errorf("code = %q", got)
	}
}

func TestLayoutScriptsAllowed(t *testing.T) {
	rec := do(t, newTestServer(Config{AllowScripts: true}), http.MethodPost, "/v1/layout", "", scriptScene)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	l, err := scene.UnmarshalLayout(rec.Body.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if l.Frames[0].Rect.Width != 10 || l.Frames[0].Rect.Height != 10 {
		t.Errorf("frame = %+v, want 10x10", l.Frames[0].Rect)
	}
}

func TestBodyLimit(t *testing.T) {
	s := newTestServer(Config{MaxBodyBytes: 16})
	rec := do(t, s, http.MethodPost, "/v1/layout", "", demoScene)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestRender(t *testing.T) {
	s := newTestServer(Config{})

	tests := []struct {
		target      string
		contentType string
		prefix      string
	}{
		{"/v1/render", "image/svg+xml", "<svg"},
		{"/v1/render?format=svg&style=outline&line_bounds=true", "image/svg+xml", "<svg"},
		{"/v1/render?format=png", "image/png", "\x89PNG"},
		{"/v1/render?format=json", "application/json", "{"},
		{"/v1/render?format=dot", "text/vnd.graphviz; charset=utf-8", "digraph"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.target, "", demoScene)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			if got := rec.Header().Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if !strings.HasPrefix(rec.Body.String(), tt.prefix) {
				t.Errorf("body starts %q, want prefix %q", head(rec.Body.String()), tt.prefix)
			}
		})
	}
}

func TestRenderErrors(t *testing.T) {
	s := newTestServer(Config{})
	tests := []struct {
		target string
		code   string
	}{
		{"/v1/render?format=gif", "INVALID_FORMAT"},
		{"/v1/render?style=neon", "INVALID_STYLE"},
		{"/v1/render?view=galaxy", "INVALID_INPUT"},
	}
	for _, tt := range tests {
		rec := do(t, s, http.MethodPost, tt.target, "", demoScene)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tt.target, rec.Code)
			continue
		}
		if got := decodeError(t, rec).Code; got != tt.code {
			t.Errorf("%s: code = %q, want %q", tt.target, got, tt.code)
		}
	}
}

func TestRequestID(t *testing.T) {
	s := newTestServer(Config{})

	rec := do(t, s, http.MethodGet, "/healthz", "", "")
	if _, err := uuid.Parse(rec.Header().Get(RequestIDHeader)); err != nil {
		t.Errorf("generated request id %q: %v", rec.Header().Get(RequestIDHeader), err)
	}

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != id {
		t.Errorf("request id = %q, want echoed %q", got, id)
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "not a uuid")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got == "not a uuid" || got == "" {
		t.Errorf("invalid incoming id kept: %q", got)
	}
}

type recordingHTTPHooks struct {
	mu       sync.Mutex
	requests int
	statuses []int
	errors   int
}

func (h *recordingHTTPHooks) OnRequest(context.Context, string, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests++
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func (h *recordingHTTPHooks) OnError(context.Context, string, string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors++
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	s := newTestServer(Config{})
	do(t, s, http.MethodPost, "/v1/layout", "", demoScene)
	do(t, s, http.MethodPost, "/v1/render?format=gif", "", demoScene)

	if hooks.requests != 2 {
		t.Errorf("requests = %d, want 2", hooks.requests)
	}
	if len(hooks.statuses) != 2 || hooks.statuses[0] != http.StatusOK || hooks.statuses[1] != http.StatusBadRequest {
		t.Errorf("statuses = %v, want [200 400]", hooks.statuses)
	}
	if hooks.errors != 1 {
		t.Errorf("errors = %d, want 1", hooks.errors)
	}
}

func TestStatusFor(t *testing.T) {
	if got := statusFor(http.ErrAbortHandler); got != http.StatusInternalServerError {
		t.Errorf("plain error status = %d", got)
	}
}

func head(s string) string {
	if len(s) > 20 {
		return s[:20]
	}
	return s
}
