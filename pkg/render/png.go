package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/flexline/pkg/scene"
)

// DefaultPNGScale renders at 2x for high-DPI displays.
const DefaultPNGScale = 2.0

// PNGOption configures [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	style      Style
	lineBounds bool
	labels     bool
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption { return func(r *pngRenderer) { r.scale = s } }

// WithPNGStyle selects the style; only its fill policy applies to rasters.
func WithPNGStyle(s Style) PNGOption { return func(r *pngRenderer) { r.style = s } }

// WithPNGLineBounds draws each content line's bounding box.
func WithPNGLineBounds() PNGOption { return func(r *pngRenderer) { r.lineBounds = true } }

// WithPNGLabels toggles frame labels (default on).
func WithPNGLabels(on bool) PNGOption { return func(r *pngRenderer) { r.labels = on } }

// RenderPNG rasterises the layout with gg. Unlike PDF output it needs no
// external tools. Labels use gg's built-in bitmap face.
func RenderPNG(l scene.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultPNGScale, style: Simple{}, labels: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || math.IsNaN(r.scale) || math.IsInf(r.scale, 0) {
		return nil, fmt.Errorf("invalid png scale %v", r.scale)
	}

	// A zero-sized image cannot be encoded.
	w := max(1, int(math.Ceil(float64(l.Width)*r.scale)))
	h := max(1, int(math.Ceil(float64(l.Height)*r.scale)))
	dc := gg.NewContext(w, h)
	dc.Scale(r.scale, r.scale)

	_, outline := r.style.(Outline)

	dc.SetHexColor("#fafafa")
	if outline {
		dc.SetHexColor("#ffffff")
	}
	dc.Clear()

	if r.lineBounds {
		dc.SetLineWidth(1)
		dc.SetHexColor("#999999")
		for _, b := range buildBands(l) {
			if outline {
				dc.SetDash(4, 3)
			}
			dc.DrawRectangle(b.X+0.5, b.Y+0.5, b.W-1, b.H-1)
			dc.Stroke()
			dc.SetDash()
		}
	}

	boxes := buildBoxes(l)
	for _, b := range boxes {
		dc.DrawRectangle(b.X, b.Y, b.W, b.H)
		if outline {
			dc.SetHexColor("#ffffff")
		} else {
			dc.SetHexColor(LineColor(b.Line))
		}
		dc.FillPreserve()
		dc.SetHexColor("#333333")
		dc.SetLineWidth(1)
		dc.Stroke()
	}

	if r.labels {
		dc.SetHexColor("#222222")
		for _, b := range boxes {
			_, fh := dc.MeasureString("M")
			if b.W <= 0 || fh > b.H {
				continue
			}
			label := fitLabel(dc, b.Label, b.W-4)
			if label == "" {
				continue
			}
			dc.DrawStringAnchored(label, b.CX, b.CY, 0.5, 0.5)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// fitLabel shortens label with ".." until it fits width, or returns ""
// when not even that fits.
func fitLabel(dc *gg.Context, label string, width float64) string {
	if w, _ := dc.MeasureString(label); w <= width {
		return label
	}
	runes := []rune(label)
	for n := len(runes) - 1; n > 0; n-- {
		s := string(runes[:n]) + ".."
		if w, _ := dc.MeasureString(s); w <= width {
			return s
		}
	}
	return ""
}
