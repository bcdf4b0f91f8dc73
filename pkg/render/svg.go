package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/flexline/pkg/scene"
)

const frameInteractionCSS = `
    .frame { transition: stroke-width 0.2s ease; }
    .frame.highlight { stroke-width: 3; }
    .line.highlight { stroke: #333; }`

const frameInteractionJS = `
    function highlightLine(line) {
      document.querySelectorAll('.frame').forEach(f => f.classList.toggle('highlight', f.dataset.line === line));
      document.querySelectorAll('.line').forEach(l => l.classList.toggle('highlight', l.id === 'line-' + line));
    }
    function clearHighlight() {
      document.querySelectorAll('.frame, .line').forEach(el => el.classList.remove('highlight'));
    }
    document.querySelectorAll('.frame').forEach(el => {
      el.addEventListener('mouseenter', () => highlightLine(el.dataset.line));
      el.addEventListener('mouseleave', clearHighlight);
    });`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       Style
	lineBounds  bool
	labels      bool
	interaction bool
}

// WithStyle selects the visual style (default [Simple]).
func WithStyle(s Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithLineBounds draws each content line's bounding box.
func WithLineBounds() SVGOption { return func(r *svgRenderer) { r.lineBounds = true } }

// WithoutLabels omits frame labels.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// WithoutInteraction omits the hover CSS and script, for static output
// such as PDF conversion.
func WithoutInteraction() SVGOption { return func(r *svgRenderer) { r.interaction = false } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: Simple{}, labels: true, interaction: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.style == nil {
		r.style = Simple{}
	}
	return r
}

// RenderSVG draws the layout's visible frames as an SVG document sized to
// the container. Gone items are skipped.
func RenderSVG(l scene.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	w, h := float64(l.Width), float64(l.Height)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)

	r.style.RenderDefs(&buf)
	r.style.RenderContainer(&buf, w, h)
	if r.lineBounds {
		for _, b := range buildBands(l) {
			r.style.RenderBand(&buf, b)
		}
	}

	boxes := buildBoxes(l)
	for _, b := range boxes {
		r.style.RenderBox(&buf, b)
	}
	if r.labels {
		for _, b := range boxes {
			r.style.RenderText(&buf, b)
		}
	}
	if r.interaction {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", frameInteractionCSS)
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", frameInteractionJS)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func buildBoxes(l scene.Layout) []Box {
	visible := l.Visible()
	boxes := make([]Box, 0, len(visible))
	for _, f := range visible {
		x, y := float64(f.Rect.X), float64(f.Rect.Y)
		w, h := float64(f.Rect.Width), float64(f.Rect.Height)
		label := f.Label
		if label == "" {
			label = f.ID
		}
		boxes = append(boxes, Box{
			ID: f.ID, Label: label, Line: f.Line,
			X: x, Y: y, W: w, H: h,
			CX: x + w/2, CY: y + h/2,
		})
	}
	return boxes
}

func buildBands(l scene.Layout) []Band {
	var bands []Band
	for _, ln := range l.ContentLines() {
		if ln.Bounds == nil {
			continue
		}
		b := ln.Bounds
		bands = append(bands, Band{
			Index: ln.Index,
			X:     float64(b.X), Y: float64(b.Y),
			W: float64(b.Width), H: float64(b.Height),
		})
	}
	return bands
}
