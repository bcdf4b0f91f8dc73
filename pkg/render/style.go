package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/flexline/pkg/errors"
)

// Style names accepted by [ParseStyle].
const (
	StyleSimple  = "simple"
	StyleOutline = "outline"
)

// Style defines the visual appearance of a frame diagram. Implementations
// control how the container, lines, frames and labels are drawn.
type Style interface {
	// Name is the style's name as accepted by ParseStyle.
	Name() string
	// RenderDefs writes SVG <defs> content (markers, patterns).
	RenderDefs(buf *bytes.Buffer)
	// RenderContainer writes the container background.
	RenderContainer(buf *bytes.Buffer, w, h float64)
	// RenderBand writes the bounds of one line.
	RenderBand(buf *bytes.Buffer, b Band)
	// RenderBox writes the shape of one frame.
	RenderBox(buf *bytes.Buffer, b Box)
	// RenderText writes a frame's label.
	RenderText(buf *bytes.Buffer, b Box)
}

// Box contains all data needed to draw a single placed item.
type Box struct {
	ID         string  // Item identifier
	Label      string  // Display text
	Line       int     // Content line index
	X, Y, W, H float64 // Position and dimensions
	CX, CY     float64 // Center coordinates (for text)
}

// Band is the bounding box of one content line.
type Band struct {
	Index      int
	X, Y, W, H float64
}

// ParseStyle returns the style with the given name.
func ParseStyle(name string) (Style, error) {
	switch name {
	case "", StyleSimple:
		return Simple{}, nil
	case StyleOutline:
		return Outline{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: simple, outline)", name)
}

// palette holds the fill colours cycled through per line.
var palette = []string{"#cfe8fc", "#fde2c8", "#d7f5d3", "#f3d6f5", "#fff4c2", "#d9e0ea"}

// LineColor returns the fill colour for items on the given line.
func LineColor(line int) string {
	if line < 0 {
		return "#eeeeee"
	}
	return palette[line%len(palette)]
}

// =============================================================================
// Simple
// =============================================================================

// Simple draws filled frames coloured by line, with labels centred.
type Simple struct{}

func (Simple) Name() string { return StyleSimple }

func (Simple) RenderDefs(*bytes.Buffer) {}

func (Simple) RenderContainer(buf *bytes.Buffer, w, h float64) {
	fmt.Fprintf(buf, `  <rect class="container" x="0" y="0" width="%.2f" height="%.2f" fill="#fafafa" stroke="#999"/>`+"\n", w, h)
}

func (Simple) RenderBand(buf *bytes.Buffer, b Band) {
	fmt.Fprintf(buf, `  <rect id="line-%d" class="line" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="#bbb" stroke-width="1"/>`+"\n",
		b.Index, b.X, b.Y, b.W, b.H)
}

func (Simple) RenderBox(buf *bytes.Buffer, b Box) {
	fmt.Fprintf(buf, `  <rect id="frame-%s" class="frame" data-line="%d" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="#333" stroke-width="1"/>`+"\n",
		EscapeXML(b.ID), b.Line, b.X, b.Y, b.W, b.H, LineColor(b.Line))
}

func (Simple) RenderText(buf *bytes.Buffer, b Box) {
	renderLabel(buf, b, "#222")
}

// =============================================================================
// Outline
// =============================================================================

// Outline draws unfilled frames and dashed line bounds, for diagrams that
// are printed or overlaid on other content.
type Outline struct{}

func (Outline) Name() string { return StyleOutline }

func (Outline) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <defs>
    <pattern id="hatch" width="6" height="6" patternUnits="userSpaceOnUse" patternTransform="rotate(45)">
      <line x1="0" y1="0" x2="0" y2="6" stroke="#ccc" stroke-width="1"/>
    </pattern>
  </defs>
`)
}

func (Outline) RenderContainer(buf *bytes.Buffer, w, h float64) {
	fmt.Fprintf(buf, `  <rect class="container" x="0" y="0" width="%.2f" height="%.2f" fill="url(#hatch)" stroke="#000"/>`+"\n", w, h)
}

func (Outline) RenderBand(buf *bytes.Buffer, b Band) {
	fmt.Fprintf(buf, `  <rect id="line-%d" class="line" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="#666" stroke-dasharray="4 3"/>`+"\n",
		b.Index, b.X, b.Y, b.W, b.H)
}

func (Outline) RenderBox(buf *bytes.Buffer, b Box) {
	fmt.Fprintf(buf, `  <rect id="frame-%s" class="frame" data-line="%d" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="white" stroke="#000" stroke-width="1.5"/>`+"\n",
		EscapeXML(b.ID), b.Line, b.X, b.Y, b.W, b.H)
}

func (Outline) RenderText(buf *bytes.Buffer, b Box) {
	renderLabel(buf, b, "#000")
}

func renderLabel(buf *bytes.Buffer, b Box, color string) {
	if b.W <= 0 || b.H <= 0 || b.Label == "" {
		return
	}
	size := FontSize(b)
	fmt.Fprintf(buf, `  <text class="frame-text" data-frame="%s" x="%.2f" y="%.2f" font-family="monospace" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		EscapeXML(b.ID), b.CX, b.CY, size, color, EscapeXML(TruncateLabel(b)))
}
