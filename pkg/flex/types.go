package flex

import (
	"strings"

	"github.com/matzehuels/flexline/pkg/errors"
)

// Direction is the direction in which items are laid out along the main axis.
//
// https://www.w3.org/TR/css-flexbox-1/#flex-direction-property
type Direction uint8

const (
	Row Direction = iota
	RowReverse
	Column
	ColumnReverse
)

// Horizontal reports whether the main axis runs left to right or right to left.
func (d Direction) Horizontal() bool { return d == Row || d == RowReverse }

// Wrap controls whether the container is single- or multi-line, and the
// direction in which lines are stacked.
//
// https://www.w3.org/TR/css-flexbox-1/#flex-wrap-property
type Wrap uint8

const (
	NoWrap Wrap = iota
	WrapNormal
	WrapReverse
)

// Justify aligns items along the main axis.
//
// https://www.w3.org/TR/css-flexbox-1/#justify-content-property
type Justify uint8

const (
	JustifyFlexStart Justify = iota
	JustifyFlexEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

// AlignItems aligns items along the cross axis of their line.
//
// https://www.w3.org/TR/css-flexbox-1/#align-items-property
type AlignItems uint8

const (
	AlignItemsFlexStart AlignItems = iota
	AlignItemsFlexEnd
	AlignItemsCenter
	AlignItemsBaseline
	AlignItemsStretch
)

// AlignSelf overrides the container's AlignItems for a single item.
// AlignSelfAuto inherits the container value.
//
// https://www.w3.org/TR/css-flexbox-1/#propdef-align-self
type AlignSelf uint8

const (
	AlignSelfAuto AlignSelf = iota
	AlignSelfFlexStart
	AlignSelfFlexEnd
	AlignSelfCenter
	AlignSelfBaseline
	AlignSelfStretch
)

// Resolve returns the effective alignment of an item inside a container
// whose AlignItems is parent.
func (a AlignSelf) Resolve(parent AlignItems) AlignItems {
	if a == AlignSelfAuto {
		return parent
	}
	return AlignItems(a - 1)
}

// AlignContent aligns a container's lines when there is extra space
// along the cross axis.
//
// https://www.w3.org/TR/css-flexbox-1/#align-content-property
type AlignContent uint8

const (
	AlignContentFlexStart AlignContent = iota
	AlignContentFlexEnd
	AlignContentCenter
	AlignContentSpaceBetween
	AlignContentSpaceAround
	AlignContentStretch
)

// LayoutDirection is the inline base direction of the container.
type LayoutDirection uint8

const (
	LTR LayoutDirection = iota
	RTL
)

var (
	directionNames       = []string{"row", "row-reverse", "column", "column-reverse"}
	wrapNames            = []string{"nowrap", "wrap", "wrap-reverse"}
	justifyNames         = []string{"flex-start", "flex-end", "center", "space-between", "space-around", "space-evenly"}
	alignItemsNames      = []string{"flex-start", "flex-end", "center", "baseline", "stretch"}
	alignSelfNames       = []string{"auto", "flex-start", "flex-end", "center", "baseline", "stretch"}
	alignContentNames    = []string{"flex-start", "flex-end", "center", "space-between", "space-around", "stretch"}
	layoutDirectionNames = []string{"ltr", "rtl"}
)

func name(names []string, v uint8) string {
	if int(v) < len(names) {
		return names[v]
	}
	return "invalid"
}

func (d Direction) String() string       { return name(directionNames, uint8(d)) }
func (w Wrap) String() string            { return name(wrapNames, uint8(w)) }
func (j Justify) String() string         { return name(justifyNames, uint8(j)) }
func (a AlignItems) String() string      { return name(alignItemsNames, uint8(a)) }
func (a AlignSelf) String() string       { return name(alignSelfNames, uint8(a)) }
func (a AlignContent) String() string    { return name(alignContentNames, uint8(a)) }
func (l LayoutDirection) String() string { return name(layoutDirectionNames, uint8(l)) }

func (d Direction) valid() bool       { return int(d) < len(directionNames) }
func (w Wrap) valid() bool            { return int(w) < len(wrapNames) }
func (j Justify) valid() bool         { return int(j) < len(justifyNames) }
func (a AlignItems) valid() bool      { return int(a) < len(alignItemsNames) }
func (a AlignSelf) valid() bool       { return int(a) < len(alignSelfNames) }
func (a AlignContent) valid() bool    { return int(a) < len(alignContentNames) }
func (l LayoutDirection) valid() bool { return int(l) < len(layoutDirectionNames) }

// parse looks s up in names. Matching ignores case and accepts underscores
// in place of dashes so that "SPACE_BETWEEN" and "space-between" agree.
func parse(kind string, names []string, s string) (uint8, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for i, n := range names {
		if n == key {
			return uint8(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidConfiguration,
		"unknown %s %q (valid: %s)", kind, s, strings.Join(names, ", "))
}

// ParseDirection parses a CSS-style direction keyword.
func ParseDirection(s string) (Direction, error) {
	v, err := parse("direction", directionNames, s)
	return Direction(v), err
}

// ParseWrap parses a CSS-style flex-wrap keyword.
func ParseWrap(s string) (Wrap, error) {
	v, err := parse("wrap", wrapNames, s)
	return Wrap(v), err
}

// ParseJustify parses a CSS-style justify-content keyword.
func ParseJustify(s string) (Justify, error) {
	v, err := parse("justify-content", justifyNames, s)
	return Justify(v), err
}

// ParseAlignItems parses a CSS-style align-items keyword.
func ParseAlignItems(s string) (AlignItems, error) {
	v, err := parse("align-items", alignItemsNames, s)
	return AlignItems(v), err
}

// ParseAlignSelf parses a CSS-style align-self keyword.
func ParseAlignSelf(s string) (AlignSelf, error) {
	v, err := parse("align-self", alignSelfNames, s)
	return AlignSelf(v), err
}

// ParseAlignContent parses a CSS-style align-content keyword.
func ParseAlignContent(s string) (AlignContent, error) {
	v, err := parse("align-content", alignContentNames, s)
	return AlignContent(v), err
}

// ParseLayoutDirection parses "ltr" or "rtl".
func ParseLayoutDirection(s string) (LayoutDirection, error) {
	v, err := parse("layout direction", layoutDirectionNames, s)
	return LayoutDirection(v), err
}
