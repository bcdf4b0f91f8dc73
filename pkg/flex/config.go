package flex

import "github.com/matzehuels/flexline/pkg/errors"

// Config is the container configuration. The zero value is a valid
// single-line row container aligned to the start on both axes.
type Config struct {
	Direction      Direction
	Wrap           Wrap
	JustifyContent Justify
	AlignItems     AlignItems
	AlignContent   AlignContent

	// MaxLine caps the number of lines; 0 means unlimited. Once the cap is
	// reached, remaining items stay on the last line.
	MaxLine int

	LayoutDirection LayoutDirection
	Padding         Edges

	// Decoration reserves space for dividers; nil reserves none.
	Decoration Decoration
}

// Validate fails fast on enum values and lengths the engine does not know
// how to lay out.
func (c Config) Validate() error {
	switch {
	case !c.Direction.valid():
		return errors.New(errors.ErrCodeInvalidConfiguration, "unknown direction %d", c.Direction)
	case !c.Wrap.valid():
		return errors.New(errors.ErrCodeInvalidConfiguration, "unknown wrap %d", c.Wrap)
	case !c.JustifyContent.valid():
		return errors.New(errors.ErrCodeInvalidConfiguration, "unknown justify-content %d", c.JustifyContent)
	case !c.AlignItems.valid():
		return errors.New(errors.ErrCodeInvalidConfiguration, "unknown align-items %d", c.AlignItems)
	case !c.AlignContent.valid():
		return errors.New(errors.ErrCodeInvalidConfiguration, "unknown align-content %d", c.AlignContent)
	case !c.LayoutDirection.valid():
		return errors.New(errors.ErrCodeInvalidConfiguration, "unknown layout direction %d", c.LayoutDirection)
	case c.MaxLine < 0:
		return errors.New(errors.ErrCodeInvalidConfiguration, "max line must be non-negative, got %d", c.MaxLine)
	}
	p := c.Padding
	if p.Left < 0 || p.Top < 0 || p.Right < 0 || p.Bottom < 0 || p.Start < 0 || p.End < 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "padding must be non-negative")
	}
	if d, ok := c.Decoration.(Dividers); ok {
		if err := d.validate(); err != nil {
			return err
		}
	}
	return nil
}

// Decoration reserves space around items and lines, typically for dividers.
// All lengths are along the axis named by the method.
type Decoration interface {
	// ItemBefore is the main-axis length before the item at reordered
	// index i. leading is true when no visible item precedes it in its line.
	ItemBefore(i int, leading bool) int
	// LineEnd is the main-axis length after the last item of every line.
	LineEnd() int
	// LineBefore is the cross-axis length before a line. leading is true for
	// the first line.
	LineBefore(leading bool) int
	// LinesEnd is the cross-axis length after the last line.
	LinesEnd() int
	// ItemCross is the cross-axis length reserved by the item at reordered
	// index i, on top of its margins.
	ItemCross(i int) int
}

// Show selects where dividers are drawn.
type Show uint8

const (
	ShowBeginning Show = 1 << iota
	ShowMiddle
	ShowEnd

	ShowNone Show = 0
	ShowAll       = ShowBeginning | ShowMiddle | ShowEnd
)

// Dividers draws fixed-thickness dividers between items (Main) and between
// lines (Cross).
type Dividers struct {
	Main      int
	Cross     int
	ShowMain  Show
	ShowCross Show
}

func (d Dividers) validate() error {
	if d.Main < 0 || d.Cross < 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "divider thickness must be non-negative")
	}
	return nil
}

func (d Dividers) show(s Show, leading bool) bool {
	if leading {
		return s&ShowBeginning != 0
	}
	return s&ShowMiddle != 0
}

// ItemBefore implements Decoration.
func (d Dividers) ItemBefore(_ int, leading bool) int {
	if d.show(d.ShowMain, leading) {
		return d.Main
	}
	return 0
}

// LineEnd implements Decoration.
func (d Dividers) LineEnd() int {
	if d.ShowMain&ShowEnd != 0 {
		return d.Main
	}
	return 0
}

// LineBefore implements Decoration.
func (d Dividers) LineBefore(leading bool) int {
	if d.show(d.ShowCross, leading) {
		return d.Cross
	}
	return 0
}

// LinesEnd implements Decoration.
func (d Dividers) LinesEnd() int {
	if d.ShowCross&ShowEnd != 0 {
		return d.Cross
	}
	return 0
}

// ItemCross implements Decoration. Dividers never reserve cross space
// around single items.
func (Dividers) ItemCross(int) int { return 0 }

type noDecoration struct{}

func (noDecoration) ItemBefore(int, bool) int { return 0 }
func (noDecoration) LineEnd() int             { return 0 }
func (noDecoration) LineBefore(bool) int      { return 0 }
func (noDecoration) LinesEnd() int            { return 0 }
func (noDecoration) ItemCross(int) int        { return 0 }
