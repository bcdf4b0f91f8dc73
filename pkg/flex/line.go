package flex

// Line is one entry of a resolved container: either a *FlexLine holding
// items or a Spacer inserted by AlignContent distribution.
type Line interface {
	// CrossExtent is the line's thickness along the cross axis.
	CrossExtent() int
	isLine()
}

// FlexLine is a contiguous run of items sharing one main-axis pass.
// Indices are positions in the reordered sequence.
type FlexLine struct {
	FirstIndex int
	// LastIndex is inclusive.
	LastIndex     int
	ItemCount     int
	GoneItemCount int

	// MainSize covers item sizes, margins, decorations and the container's
	// main-axis padding.
	MainSize  int
	CrossSize int

	TotalFlexGrow   float64
	TotalFlexShrink float64
	AnyFlexGrow     bool
	AnyFlexShrink   bool

	// MaxBaseline is the largest baseline offset (baseline plus leading
	// margin) among baseline-aligned items.
	MaxBaseline int

	// StretchIndices lists items whose own AlignSelf is stretch.
	StretchIndices []int

	// SumCrossSizeBefore is the cross size used by earlier lines.
	SumCrossSizeBefore int

	// DividerMainSize is the part of MainSize taken by decorations.
	DividerMainSize int

	// Bounds encloses the placed items and their margins. It is set by
	// PlaceItems.
	Bounds Rect
}

// CrossExtent implements Line.
func (l *FlexLine) CrossExtent() int { return l.CrossSize }
func (*FlexLine) isLine()            {}

// VisibleCount returns the number of items in the line that are not gone.
func (l *FlexLine) VisibleCount() int { return l.ItemCount - l.GoneItemCount }

// Contains reports whether reordered index i belongs to the line.
func (l *FlexLine) Contains(i int) bool { return i >= l.FirstIndex && i <= l.LastIndex }

// Spacer is empty cross-axis space between lines.
type Spacer struct {
	Size int
}

// CrossExtent implements Line.
func (s Spacer) CrossExtent() int { return s.Size }
func (Spacer) isLine()            {}

// Rect is an axis-aligned rectangle in container coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Right returns X + Width.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns Y + Height.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.Right(), o.Right()), max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Frame is the placed geometry of one item.
type Frame struct {
	// Index is the item's position in the sequence passed to Measure.
	Index int
	ID    string
	Rect  Rect
	// Line is the index of the item's line among FlexLines, or -1 when the
	// item is gone or was never reached.
	Line int
	Gone bool
}
