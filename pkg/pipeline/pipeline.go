// Package pipeline provides the scene → layout → render pipeline shared by
// the CLI and the HTTP API.
//
// Centralizing the stages here keeps defaults, validation and caching
// identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a scene document (JSON, TOML or YAML)
//  2. Layout: Build the scene and run the flex engine, producing a [scene.Layout]
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	doc, err := pipeline.LoadScene(ctx, "card.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, doc, pipeline.Options{
//	    Width:   "exact:320",
//	    Formats: []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout only
//	layout, err := runner.ComputeLayout(ctx, doc, opts)
//
//	// Render an existing layout
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flexline/pkg/cache"
	"github.com/matzehuels/flexline/pkg/errors"
	"github.com/matzehuels/flexline/pkg/render"
	"github.com/matzehuels/flexline/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultScale is the PNG pixel density.
	DefaultScale = render.DefaultPNGScale

	// DefaultStyle is the default visual style.
	DefaultStyle = render.StyleSimple

	// DefaultView is the default visualization.
	DefaultView = ViewFrames
)

// Views select what is drawn from a layout.
const (
	// ViewFrames draws the placed item rectangles.
	ViewFrames = "frames"
	// ViewTree draws the container → line → item structure with Graphviz.
	ViewTree = "tree"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	render.StyleSimple:  true,
	render.StyleOutline: true,
}

// ValidViews is the set of supported views.
var ValidViews = map[string]bool{
	ViewFrames: true,
	ViewTree:   true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Width          string `json:"width,omitempty"`  // Constraint override, e.g. "exact:320"
	Height         string `json:"height,omitempty"` // Constraint override, e.g. "at-most:200"
	DisableScripts bool   `json:"disable_scripts,omitempty"`
	Refresh        bool   `json:"refresh,omitempty"`

	// Render options
	View       string   `json:"view,omitempty"`
	Formats    []string `json:"formats,omitempty"`
	Style      string   `json:"style,omitempty"`
	LineBounds bool     `json:"line_bounds,omitempty"`
	NoLabels   bool     `json:"no_labels,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"` // Tree view: geometry labels and spacer nodes

	// Runtime options (not serialized)
	Logger        *log.Logger   `json:"-"`
	ScriptTimeout time.Duration `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed layout.
	Layout scene.Layout

	// SceneHash is the content hash of the scene document.
	SceneHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount  int
	LineCount  int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: simple, outline)", style)
	}
	return nil
}

// ValidateView checks that a view is valid.
func ValidateView(view string) error {
	if !ValidViews[view] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid view: %q (must be one of: frames, tree)", view)
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks and defaults options for the full pipeline.
// Calling it more than once has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.ScriptTimeout <= 0 {
		o.ScriptTimeout = scene.DefaultScriptTimeout
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
// Constraint overrides must parse.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	for _, c := range []string{o.Width, o.Height} {
		if c == "" {
			continue
		}
		if _, err := scene.ParseSpecString(c); err != nil {
			return err
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.View == "" {
		o.View = DefaultView
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateView(o.View); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	return nil
}

// IsTree returns true if this is a tree visualization.
func (o *Options) IsTree() bool {
	return o.View == ViewTree
}

// BuildOptions returns the scene build options.
func (o *Options) BuildOptions() scene.BuildOptions {
	return scene.BuildOptions{
		DisableScripts: o.DisableScripts,
		Script:         scene.ScriptOptions{Timeout: o.ScriptTimeout},
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:          o.Width,
		Height:         o.Height,
		DisableScripts: o.DisableScripts,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		View:       o.View,
		Style:      o.Style,
		LineBounds: o.LineBounds,
		NoLabels:   o.NoLabels,
		Scale:      o.Scale,
		Detailed:   o.Detailed,
	}
}
