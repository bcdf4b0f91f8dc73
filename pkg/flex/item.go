package flex

import (
	"math"

	"github.com/matzehuels/flexline/pkg/errors"
)

// Requested size sentinels for Item.Width and Item.Height.
const (
	// SizeMatchParent fills the space the container offers on that axis.
	SizeMatchParent = -1
	// SizeWrapContent uses the content's natural size.
	SizeWrapContent = -2
)

// DefaultOrder is the Order of items created by NewItem.
const DefaultOrder = 1

// unbounded stands in for a zero (unset) maximum size.
const unbounded = math.MaxInt32

// Edges holds per-side lengths for margins and padding.
//
// Start and End, when non-zero, replace Left and Right according to the
// container's LayoutDirection (Start is Left in LTR and Right in RTL).
type Edges struct {
	Left, Top, Right, Bottom int
	Start, End               int
}

// Uniform returns Edges with the same length on all four sides.
func Uniform(n int) Edges { return Edges{Left: n, Top: n, Right: n, Bottom: n} }

// resolve folds Start/End into Left/Right.
func (e Edges) resolve(rtl bool) Edges {
	left, right := e.Start, e.End
	if rtl {
		left, right = e.End, e.Start
	}
	if left != 0 {
		e.Left = left
	}
	if right != 0 {
		e.Right = right
	}
	e.Start, e.End = 0, 0
	return e
}

// Item is one entry in the sequence a container lays out.
//
// The zero value is not a sensible item: it has FlexShrink 0 and a 0x0
// requested size. Use NewItem for the CSS defaults.
type Item struct {
	// ID names the item in frames, logs and serialized layouts.
	ID string
	// Content reports the natural size. A nil Content measures as 0x0.
	Content Measurable

	// Order is the primary sort key; ties keep the original sequence.
	Order int

	// Width and Height are the requested size: a length >= 0,
	// SizeMatchParent or SizeWrapContent.
	Width, Height int

	FlexGrow   float64
	FlexShrink float64
	// BasisPercent, when > 0 and the container main size is Exact, sets the
	// initial main size to that fraction of the container main size.
	BasisPercent float64

	AlignSelf AlignSelf

	MinWidth, MinHeight int
	// MaxWidth and MaxHeight of zero mean unbounded.
	MaxWidth, MaxHeight int

	// WrapBefore forces a new line to start at this item (ignored by
	// NoWrap containers).
	WrapBefore bool

	Margin Edges

	// Gone items take no space and receive no geometry, but still count
	// towards their line's ItemCount.
	Gone bool
}

// NewItem returns an item with content c and the CSS defaults: order 1,
// shrink 1, wrap-content size on both axes.
func NewItem(id string, c Measurable) Item {
	return Item{
		ID:         id,
		Content:    c,
		Order:      DefaultOrder,
		Width:      SizeWrapContent,
		Height:     SizeWrapContent,
		FlexShrink: 1,
	}
}

func (it *Item) maxWidth() int {
	if it.MaxWidth <= 0 {
		return unbounded
	}
	return it.MaxWidth
}

func (it *Item) maxHeight() int {
	if it.MaxHeight <= 0 {
		return unbounded
	}
	return it.MaxHeight
}

func validSize(n int) bool {
	return n >= 0 || n == SizeMatchParent || n == SizeWrapContent
}

// Validate checks an item for values the engine cannot lay out.
func (it *Item) Validate() error {
	if err := errors.ValidateWeight("flex grow", it.FlexGrow); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidItem, err, "item %q", it.ID)
	}
	if err := errors.ValidateWeight("flex shrink", it.FlexShrink); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidItem, err, "item %q", it.ID)
	}
	if math.IsNaN(it.BasisPercent) || math.IsInf(it.BasisPercent, 0) {
		return errors.New(errors.ErrCodeInvalidItem, "item %q: basis percent must be finite", it.ID)
	}
	if !validSize(it.Width) || !validSize(it.Height) {
		return errors.New(errors.ErrCodeInvalidItem, "item %q: invalid requested size %dx%d", it.ID, it.Width, it.Height)
	}
	if it.MinWidth < 0 || it.MinHeight < 0 || it.MaxWidth < 0 || it.MaxHeight < 0 {
		return errors.New(errors.ErrCodeInvalidItem, "item %q: min/max sizes must be non-negative", it.ID)
	}
	if it.MinWidth > it.maxWidth() || it.MinHeight > it.maxHeight() {
		return errors.New(errors.ErrCodeInvalidItem, "item %q: min size exceeds max size", it.ID)
	}
	if !it.AlignSelf.valid() {
		return errors.New(errors.ErrCodeInvalidItem, "item %q: unknown align-self %d", it.ID, it.AlignSelf)
	}
	return nil
}
