package flex

import (
	"testing"

	"github.com/matzehuels/flexline/pkg/errors"
)

func TestParseKeywords(t *testing.T) {
	if d, err := ParseDirection("ROW_REVERSE"); err != nil || d != RowReverse {
		t.Errorf("ParseDirection = %v, %v", d, err)
	}
	if w, err := ParseWrap(" wrap-reverse "); err != nil || w != WrapReverse {
		t.Errorf("ParseWrap = %v, %v", w, err)
	}
	if j, err := ParseJustify("space_evenly"); err != nil || j != JustifySpaceEvenly {
		t.Errorf("ParseJustify = %v, %v", j, err)
	}
	if a, err := ParseAlignItems("baseline"); err != nil || a != AlignItemsBaseline {
		t.Errorf("ParseAlignItems = %v, %v", a, err)
	}
	if a, err := ParseAlignSelf("auto"); err != nil || a != AlignSelfAuto {
		t.Errorf("ParseAlignSelf = %v, %v", a, err)
	}
	if a, err := ParseAlignContent("Stretch"); err != nil || a != AlignContentStretch {
		t.Errorf("ParseAlignContent = %v, %v", a, err)
	}
	if l, err := ParseLayoutDirection("rtl"); err != nil || l != RTL {
		t.Errorf("ParseLayoutDirection = %v, %v", l, err)
	}

	if _, err := ParseJustify("space-sideways"); !errors.Is(err, errors.ErrCodeInvalidConfiguration) {
		t.Errorf("ParseJustify(unknown) error = %v", err)
	}
}

func TestKeywordRoundTrip(t *testing.T) {
	for d := Row; d <= ColumnReverse; d++ {
		if got, err := ParseDirection(d.String()); err != nil || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), got, err)
		}
	}
	for a := AlignSelfAuto; a <= AlignSelfStretch; a++ {
		if got, err := ParseAlignSelf(a.String()); err != nil || got != a {
			t.Errorf("ParseAlignSelf(%q) = %v, %v", a.String(), got, err)
		}
	}
	if got := Direction(9).String(); got != "invalid" {
		t.Errorf("Direction(9).String() = %q", got)
	}
}

func TestAlignSelfResolve(t *testing.T) {
	tests := []struct {
		self   AlignSelf
		parent AlignItems
		want   AlignItems
	}{
		{AlignSelfAuto, AlignItemsCenter, AlignItemsCenter},
		{AlignSelfFlexStart, AlignItemsStretch, AlignItemsFlexStart},
		{AlignSelfFlexEnd, AlignItemsStretch, AlignItemsFlexEnd},
		{AlignSelfCenter, AlignItemsFlexStart, AlignItemsCenter},
		{AlignSelfBaseline, AlignItemsFlexStart, AlignItemsBaseline},
		{AlignSelfStretch, AlignItemsFlexStart, AlignItemsStretch},
	}
	for _, tt := range tests {
		if got := tt.self.Resolve(tt.parent); got != tt.want {
			t.Errorf("%v.Resolve(%v) = %v, want %v", tt.self, tt.parent, got, tt.want)
		}
	}
}

func TestSpecResolve(t *testing.T) {
	tests := []struct {
		spec     Spec
		natural  int
		want     int
		tooSmall bool
	}{
		{ExactSpec(40), 10, 40, false},
		{ExactSpec(40), 90, 40, false},
		{AtMostSpec(40), 10, 10, false},
		{AtMostSpec(40), 90, 40, true},
		{UnspecifiedSpec(), 90, 90, false},
		{UnspecifiedSpec(), -3, 0, false},
	}
	for _, tt := range tests {
		got, tooSmall := tt.spec.resolve(tt.natural)
		if got != tt.want || tooSmall != tt.tooSmall {
			t.Errorf("%v.resolve(%d) = %d, %v, want %d, %v", tt.spec, tt.natural, got, tooSmall, tt.want, tt.tooSmall)
		}
	}
	if got := AtMostSpec(12).String(); got != "at-most(12)" {
		t.Errorf("String() = %q", got)
	}
}

func TestEdgesResolve(t *testing.T) {
	e := Edges{Left: 1, Right: 2, Start: 5}
	if got := e.resolve(false); got.Left != 5 || got.Right != 2 {
		t.Errorf("ltr = %+v", got)
	}
	if got := e.resolve(true); got.Left != 1 || got.Right != 5 {
		t.Errorf("rtl = %+v", got)
	}
}
