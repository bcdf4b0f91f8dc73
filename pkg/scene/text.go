package scene

import (
	"math"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/flexline/pkg/flex"
)

// DefaultLineSpacing multiplies the font height to get the line advance.
const DefaultLineSpacing = 1.0

// Text is content that wraps words to the available width. Without a font
// file it measures with the built-in 7x13 bitmap face, which keeps layouts
// reproducible across machines.
type Text struct {
	Value       string
	LineSpacing float64

	dc     *gg.Context
	ascent int
}

// NewText returns Text content for value. fontPath selects a TrueType
// face loaded at size points; an empty path uses the bitmap face and
// ignores size.
func NewText(value, fontPath string, size float64) (*Text, error) {
	var face font.Face = basicfont.Face7x13
	if fontPath != "" {
		if size <= 0 {
			size = 12
		}
		f, err := gg.LoadFontFace(fontPath, size)
		if err != nil {
			return nil, err
		}
		face = f
	}
	dc := gg.NewContext(1, 1)
	dc.SetFontFace(face)
	return &Text{
		Value:       value,
		LineSpacing: DefaultLineSpacing,
		dc:          dc,
		ascent:      face.Metrics().Ascent.Ceil(),
	}, nil
}

// Lines returns the text broken for a maximum line width; a negative
// width disables wrapping.
func (t *Text) Lines(maxWidth float64) []string {
	if t.Value == "" {
		return nil
	}
	if maxWidth < 0 {
		return strings.Split(t.Value, "\n")
	}
	return t.dc.WordWrap(t.Value, maxWidth)
}

// Measure implements flex.Measurable. The width spec bounds the line
// width, except when it is unspecified; the height spec is left to the
// engine. Words longer than the bound overflow rather than break.
func (t *Text) Measure(width, _ flex.Spec) flex.Measured {
	limit := -1.0
	if width.Mode != flex.Unspecified {
		limit = float64(width.Size)
	}
	lines := t.Lines(limit)
	if len(lines) == 0 {
		return flex.Measured{Baseline: -1}
	}
	widest := 0.0
	for _, l := range lines {
		w, _ := t.dc.MeasureString(l)
		widest = math.Max(widest, w)
	}
	h := float64(len(lines)) * t.dc.FontHeight() * t.LineSpacing
	return flex.Measured{
		Width:    int(math.Ceil(widest)),
		Height:   int(math.Ceil(h)),
		Baseline: t.ascent,
	}
}
