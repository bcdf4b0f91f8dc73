package render

import (
	"bytes"
	"encoding/xml"
)

const (
	fontHeightRatio = 0.6
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.6
	fontSizeMin     = 6.0
	fontSizeMax     = 18.0
)

// FontSize picks a label size that fits the box, clamped to a readable
// range. Labels are drawn in a monospace face, so width scales with rune
// count.
func FontSize(b Box) float64 {
	n := max(1, len([]rune(b.Label)))
	byHeight := b.H * fontHeightRatio
	byWidth := (b.W * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// TruncateLabel shortens the label with ".." when it does not fit the box
// at the size FontSize chose.
func TruncateLabel(b Box) string {
	label := []rune(b.Label)
	charWidth := FontSize(b) * fontCharWidth
	maxChars := max(3, int(b.W*fontWidthRatio/charWidth))
	if len(label) <= maxChars {
		return b.Label
	}
	return string(label[:maxChars-2]) + ".."
}

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
