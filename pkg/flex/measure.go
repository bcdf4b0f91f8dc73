package flex

import "fmt"

// Mode says how a Spec's size constrains a measurement.
type Mode uint8

const (
	// Unspecified places no constraint on the measured size.
	Unspecified Mode = iota
	// Exact forces the measured size to equal Spec.Size.
	Exact
	// AtMost allows any measured size up to Spec.Size.
	AtMost
)

func (m Mode) String() string {
	switch m {
	case Unspecified:
		return "unspecified"
	case Exact:
		return "exact"
	case AtMost:
		return "at-most"
	}
	return "invalid"
}

// Spec is a one-axis size constraint.
type Spec struct {
	Mode Mode
	Size int
}

// ExactSpec returns a Spec forcing size.
func ExactSpec(size int) Spec { return Spec{Mode: Exact, Size: size} }

// AtMostSpec returns a Spec bounding the measured size by size.
func AtMostSpec(size int) Spec { return Spec{Mode: AtMost, Size: size} }

// UnspecifiedSpec returns an unconstrained Spec.
func UnspecifiedSpec() Spec { return Spec{Mode: Unspecified} }

func (s Spec) String() string {
	if s.Mode == Unspecified {
		return s.Mode.String()
	}
	return fmt.Sprintf("%s(%d)", s.Mode, s.Size)
}

// resolve applies the spec to a natural size. tooSmall is set when an
// AtMost spec had to cut the natural size.
func (s Spec) resolve(natural int) (size int, tooSmall bool) {
	switch s.Mode {
	case Exact:
		return s.Size, false
	case AtMost:
		if natural > s.Size {
			return s.Size, true
		}
	}
	return max(natural, 0), false
}

// State carries measurement flags, OR-combined across items.
type State uint8

const (
	// StateWidthTooSmall is set when a width constraint was smaller than the
	// content wanted.
	StateWidthTooSmall State = 1 << iota
	// StateHeightTooSmall is set when a height constraint was smaller than
	// the content wanted.
	StateHeightTooSmall
)

// Measured is the natural size a Measurable reports under a pair of specs.
//
// Baseline is the distance from the top edge to the first text baseline;
// a negative value means the content has none and the bottom edge is used.
type Measured struct {
	Width    int
	Height   int
	Baseline int
	State    State
}

// Measurable is the content of an item. Measure must be idempotent: the
// engine re-measures after grow, shrink and stretch and expects identical
// results for identical specs.
//
// Implementations report their natural size; the engine applies the specs
// (Exact wins, AtMost clamps) on top of the result.
type Measurable interface {
	Measure(width, height Spec) Measured
}

// MeasureFunc adapts a function to the Measurable interface.
type MeasureFunc func(width, height Spec) Measured

// Measure calls f(width, height).
func (f MeasureFunc) Measure(width, height Spec) Measured { return f(width, height) }

// Fixed is content with a constant natural size.
type Fixed struct {
	Width, Height int
	// Baseline is reported as-is; zero means "top edge", negative means none.
	Baseline int
}

// Box returns Fixed content without a baseline.
func Box(w, h int) Fixed { return Fixed{Width: w, Height: h, Baseline: -1} }

// Measure implements Measurable.
func (f Fixed) Measure(Spec, Spec) Measured {
	return Measured{Width: f.Width, Height: f.Height, Baseline: f.Baseline}
}
