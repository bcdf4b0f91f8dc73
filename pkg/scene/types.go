package scene

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Content kinds.
const (
	ContentBox    = "box"
	ContentText   = "text"
	ContentScript = "script"
)

// Line kinds in serialized layouts.
const (
	LineKindContent = "line"
	LineKindSpacer  = "spacer"
)

// Constraint modes.
const (
	ModeExact       = "exact"
	ModeAtMost      = "at-most"
	ModeUnspecified = "unspecified"
)

// Divider show modes.
const (
	ShowBeginning = "beginning"
	ShowMiddle    = "middle"
	ShowEnd       = "end"
)

// =============================================================================
// Document - Scene Description
// =============================================================================

// Document describes one flex container and its items. It is the on-disk
// format read from JSON, TOML and YAML files.
type Document struct {
	ID        string     `json:"id,omitempty" toml:"id,omitempty" yaml:"id,omitempty"`
	Container Container  `json:"container" toml:"container" yaml:"container"`
	Width     Constraint `json:"width" toml:"width" yaml:"width"`
	Height    Constraint `json:"height" toml:"height" yaml:"height"`
	Items     []ItemDoc  `json:"items" toml:"items" yaml:"items"`
}

// Container holds the flex container properties as CSS keywords. Empty
// strings select the CSS initial value.
type Container struct {
	Direction       string       `json:"direction,omitempty" toml:"direction,omitempty" yaml:"direction,omitempty"`
	Wrap            string       `json:"wrap,omitempty" toml:"wrap,omitempty" yaml:"wrap,omitempty"`
	JustifyContent  string       `json:"justify_content,omitempty" toml:"justify_content,omitempty" yaml:"justify_content,omitempty"`
	AlignItems      string       `json:"align_items,omitempty" toml:"align_items,omitempty" yaml:"align_items,omitempty"`
	AlignContent    string       `json:"align_content,omitempty" toml:"align_content,omitempty" yaml:"align_content,omitempty"`
	MaxLine         int          `json:"max_line,omitempty" toml:"max_line,omitempty" yaml:"max_line,omitempty"`
	LayoutDirection string       `json:"layout_direction,omitempty" toml:"layout_direction,omitempty" yaml:"layout_direction,omitempty"`
	Padding         Edges        `json:"padding,omitempty" toml:"padding,omitempty" yaml:"padding,omitempty"`
	Dividers        *DividersDoc `json:"dividers,omitempty" toml:"dividers,omitempty" yaml:"dividers,omitempty"`
}

// Edges are per-side lengths. All applies to every side not set
// explicitly.
type Edges struct {
	All    int `json:"all,omitempty" toml:"all,omitempty" yaml:"all,omitempty"`
	Left   int `json:"left,omitempty" toml:"left,omitempty" yaml:"left,omitempty"`
	Top    int `json:"top,omitempty" toml:"top,omitempty" yaml:"top,omitempty"`
	Right  int `json:"right,omitempty" toml:"right,omitempty" yaml:"right,omitempty"`
	Bottom int `json:"bottom,omitempty" toml:"bottom,omitempty" yaml:"bottom,omitempty"`
	Start  int `json:"start,omitempty" toml:"start,omitempty" yaml:"start,omitempty"`
	End    int `json:"end,omitempty" toml:"end,omitempty" yaml:"end,omitempty"`
}

// DividersDoc reserves space for dividers between items and lines.
type DividersDoc struct {
	Main      int      `json:"main,omitempty" toml:"main,omitempty" yaml:"main,omitempty"`
	Cross     int      `json:"cross,omitempty" toml:"cross,omitempty" yaml:"cross,omitempty"`
	ShowMain  []string `json:"show_main,omitempty" toml:"show_main,omitempty" yaml:"show_main,omitempty"`
	ShowCross []string `json:"show_cross,omitempty" toml:"show_cross,omitempty" yaml:"show_cross,omitempty"`
}

// Constraint is a size constraint for one container axis.
type Constraint struct {
	// Mode is "exact", "at-most" or "unspecified" (the default).
	Mode string `json:"mode,omitempty" toml:"mode,omitempty" yaml:"mode,omitempty"`
	Size int    `json:"size,omitempty" toml:"size,omitempty" yaml:"size,omitempty"`
}

// ItemDoc describes one item. Zero values follow the CSS initial values,
// except Order and Shrink whose defaults (1) need a pointer to tell apart
// from an explicit 0.
type ItemDoc struct {
	ID    string `json:"id" toml:"id" yaml:"id"`
	Label string `json:"label,omitempty" toml:"label,omitempty" yaml:"label,omitempty"`
	Order *int   `json:"order,omitempty" toml:"order,omitempty" yaml:"order,omitempty"`

	Width  Size `json:"width,omitempty" toml:"width,omitempty" yaml:"width,omitempty"`
	Height Size `json:"height,omitempty" toml:"height,omitempty" yaml:"height,omitempty"`

	Grow         float64  `json:"grow,omitempty" toml:"grow,omitempty" yaml:"grow,omitempty"`
	Shrink       *float64 `json:"shrink,omitempty" toml:"shrink,omitempty" yaml:"shrink,omitempty"`
	BasisPercent float64  `json:"basis_percent,omitempty" toml:"basis_percent,omitempty" yaml:"basis_percent,omitempty"`
	AlignSelf    string   `json:"align_self,omitempty" toml:"align_self,omitempty" yaml:"align_self,omitempty"`

	MinWidth  int `json:"min_width,omitempty" toml:"min_width,omitempty" yaml:"min_width,omitempty"`
	MinHeight int `json:"min_height,omitempty" toml:"min_height,omitempty" yaml:"min_height,omitempty"`
	MaxWidth  int `json:"max_width,omitempty" toml:"max_width,omitempty" yaml:"max_width,omitempty"`
	MaxHeight int `json:"max_height,omitempty" toml:"max_height,omitempty" yaml:"max_height,omitempty"`

	WrapBefore bool  `json:"wrap_before,omitempty" toml:"wrap_before,omitempty" yaml:"wrap_before,omitempty"`
	Margin     Edges `json:"margin,omitempty" toml:"margin,omitempty" yaml:"margin,omitempty"`
	Gone       bool  `json:"gone,omitempty" toml:"gone,omitempty" yaml:"gone,omitempty"`

	Content ContentDoc `json:"content" toml:"content" yaml:"content"`
}

// ContentDoc selects how an item is measured.
//
//	box     fixed natural Width x Height, optional Baseline
//	text    Text wrapped to the available width
//	script  JavaScript source defining measure(width, height)
type ContentDoc struct {
	Kind string `json:"kind,omitempty" toml:"kind,omitempty" yaml:"kind,omitempty"`

	Width    int  `json:"width,omitempty" toml:"width,omitempty" yaml:"width,omitempty"`
	Height   int  `json:"height,omitempty" toml:"height,omitempty" yaml:"height,omitempty"`
	Baseline *int `json:"baseline,omitempty" toml:"baseline,omitempty" yaml:"baseline,omitempty"`

	Text     string  `json:"text,omitempty" toml:"text,omitempty" yaml:"text,omitempty"`
	Font     string  `json:"font,omitempty" toml:"font,omitempty" yaml:"font,omitempty"`
	FontSize float64 `json:"font_size,omitempty" toml:"font_size,omitempty" yaml:"font_size,omitempty"`

	Script string `json:"script,omitempty" toml:"script,omitempty" yaml:"script,omitempty"`
}
