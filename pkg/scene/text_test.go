package scene

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/flexline/pkg/flex"
)

func TestTextMeasure(t *testing.T) {
	txt, err := NewText("hello world", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name  string
		width flex.Spec
		want  flex.Measured
	}{
		{"unspecified", flex.UnspecifiedSpec(), flex.Measured{Width: 77, Height: 13, Baseline: 11}},
		{"roomy", flex.AtMostSpec(200), flex.Measured{Width: 77, Height: 13, Baseline: 11}},
		{"wrapped", flex.AtMostSpec(40), flex.Measured{Width: 35, Height: 26, Baseline: 11}},
		{"exact wrapped", flex.ExactSpec(40), flex.Measured{Width: 35, Height: 26, Baseline: 11}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := txt.Measure(tt.width, flex.UnspecifiedSpec())
			if got != tt.want {
				t.Errorf("Measure(%v) = %+v, want %+v", tt.width, got, tt.want)
			}
		})
	}
}

func TestTextLines(t *testing.T) {
	txt, err := NewText("one two\nthree", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"one two", "three"}, txt.Lines(-1)); diff != "" {
		t.Errorf("unwrapped lines mismatch (-want +got):\n%s", diff)
	}

	txt.LineSpacing = 1.5
	got := txt.Measure(flex.UnspecifiedSpec(), flex.UnspecifiedSpec())
	// 2 lines * 13px * 1.5
	if got.Height != 39 || got.Width != 49 {
		t.Errorf("Measure() = %+v, want 49x39", got)
	}
}

func TestTextEmpty(t *testing.T) {
	txt, err := NewText("", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := txt.Measure(flex.AtMostSpec(10), flex.UnspecifiedSpec()); got != (flex.Measured{Baseline: -1}) {
		t.Errorf("Measure() = %+v, want empty", got)
	}
}

func TestTextInFlexLine(t *testing.T) {
	doc := &Document{
		Container: Container{AlignItems: "baseline"},
		Width:     Constraint{Mode: ModeExact, Size: 100},
		Items: []ItemDoc{
			{ID: "box", Content: ContentDoc{Width: 20, Height: 30}},
			{ID: "label", Content: ContentDoc{Kind: ContentText, Text: "hi"}},
		},
	}
	sc, err := Build(doc, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	_, frames, err := sc.Compute()
	if err != nil {
		t.Fatal(err)
	}
	// The box has no baseline, so its bottom edge (30) is the line baseline.
	if got := frames[1].Rect; got != (flex.Rect{X: 20, Y: 19, Width: 14, Height: 13}) {
		t.Errorf("label = %+v", got)
	}
}
