package render

import "github.com/matzehuels/flexline/pkg/scene"

// RenderPDF renders the layout as PDF via SVG conversion. The hover script
// is left out since PDF viewers ignore it.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(l scene.Layout, opts ...SVGOption) ([]byte, error) {
	opts = append(opts[:len(opts):len(opts)], WithoutInteraction())
	return ToPDF(RenderSVG(l, opts...))
}
