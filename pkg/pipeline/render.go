package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/flexline/pkg/render"
	"github.com/matzehuels/flexline/pkg/scene"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, l scene.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if opts.IsTree() {
		return renderTree(ctx, l, opts)
	}
	return renderFrames(ctx, l, opts)
}

// renderFrames draws the placed item rectangles.
func renderFrames(ctx context.Context, l scene.Layout, opts Options) (map[string][]byte, error) {
	style, err := render.ParseStyle(opts.Style)
	if err != nil {
		return nil, err
	}
	svgOpts := buildSVGOptions(style, opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = render.RenderSVG(l, svgOpts...)
		case FormatPNG:
			data, err = render.RenderPNG(l, buildPNGOptions(style, opts)...)
		case FormatPDF:
			data, err = render.RenderPDF(l, svgOpts...)
		case FormatJSON:
			data, err = render.RenderJSON(l, render.WithJSONStyle(opts.Style))
		case FormatDOT:
			data = []byte(render.ToDOT(l, render.DOTOptions{Detailed: opts.Detailed}))
		default:
			return nil, fmt.Errorf("unsupported frames format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderTree draws the container → line → item structure with Graphviz.
func renderTree(ctx context.Context, l scene.Layout, opts Options) (map[string][]byte, error) {
	dot := render.ToDOT(l, render.DOTOptions{Detailed: opts.Detailed})
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = render.RenderDOTSVG(ctx, dot)
		case FormatPNG:
			data, err = render.RenderDOTPNG(ctx, dot, opts.Scale)
		case FormatPDF:
			data, err = render.RenderDOTPDF(ctx, dot)
		case FormatJSON:
			data, err = render.RenderJSON(l, render.WithJSONStyle(opts.Style))
		case FormatDOT:
			data = []byte(dot)
		default:
			return nil, fmt.Errorf("unsupported tree format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(style render.Style, opts Options) []render.SVGOption {
	svgOpts := []render.SVGOption{render.WithStyle(style)}
	if opts.LineBounds {
		svgOpts = append(svgOpts, render.WithLineBounds())
	}
	if opts.NoLabels {
		svgOpts = append(svgOpts, render.WithoutLabels())
	}
	return svgOpts
}

// buildPNGOptions mirrors buildSVGOptions for the raster renderer.
func buildPNGOptions(style render.Style, opts Options) []render.PNGOption {
	pngOpts := []render.PNGOption{
		render.WithScale(opts.Scale),
		render.WithPNGStyle(style),
		render.WithPNGLabels(!opts.NoLabels),
	}
	if opts.LineBounds {
		pngOpts = append(pngOpts, render.WithPNGLineBounds())
	}
	return pngOpts
}

// RenderFromLayoutData renders output from serialized layout data, such as
// a layout.json written by an earlier run.
func RenderFromLayoutData(ctx context.Context, layoutData []byte, opts Options) (map[string][]byte, error) {
	l, err := scene.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return Render(ctx, l, opts)
}
