package flex

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mainSizes(e *Engine, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i], _ = e.ItemSize(i)
	}
	return out
}

func TestResolveMainAxis(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		items func() []Item
		width Spec
		want  []int
	}{
		{
			name: "grow splits free space by weight",
			items: func() []Item {
				items := boxes(10, 50, 50)
				items[0].FlexGrow, items[1].FlexGrow = 1, 1
				return items
			},
			width: ExactSpec(200),
			want:  []int{100, 100},
		},
		{
			name: "grow weights are proportional",
			items: func() []Item {
				items := boxes(10, 0, 0)
				items[0].FlexGrow, items[1].FlexGrow = 1, 3
				return items
			},
			width: ExactSpec(100),
			want:  []int{25, 75},
		},
		{
			name: "zero weight does not grow",
			items: func() []Item {
				items := boxes(10, 50, 50)
				items[1].FlexGrow = 1
				return items
			},
			width: ExactSpec(200),
			want:  []int{50, 150},
		},
		{
			name: "grow freezes at max",
			items: func() []Item {
				items := boxes(10, 50, 50)
				items[0].FlexGrow, items[1].FlexGrow = 1, 1
				items[0].MaxWidth = 60
				return items
			},
			width: ExactSpec(200),
			want:  []int{60, 140},
		},
		{
			name: "shrink freezes at min",
			items: func() []Item {
				items := boxes(10, 100, 100)
				items[0].MinWidth = 80
				return items
			},
			width: ExactSpec(150),
			want:  []int{80, 70},
		},
		{
			name: "shrink stops at the floor",
			items: func() []Item {
				items := boxes(10, 100, 100)
				items[0].MinWidth, items[1].MinWidth = 80, 80
				return items
			},
			width: ExactSpec(150),
			want:  []int{80, 80},
		},
		{
			name: "shrink continues after a pass that freezes without moving the line",
			items: func() []Item {
				items := boxes(10, 64, 16, 44)
				items[0].FlexShrink, items[1].FlexShrink, items[2].FlexShrink = 1, 3, 2
				items[2].MinWidth, items[2].MaxWidth = 4, 52
				return items
			},
			width: ExactSpec(5),
			want:  []int{1, 0, 4},
		},
		{
			name: "rounding error lands on the last item",
			items: func() []Item {
				items := boxes(10, 0, 0, 0)
				for i := range items {
					items[i].FlexGrow = 1
				}
				return items
			},
			width: ExactSpec(100),
			want:  []int{33, 33, 34},
		},
		{
			name: "no shrink weight keeps overflow",
			items: func() []Item {
				items := boxes(10, 100, 100)
				items[0].FlexShrink, items[1].FlexShrink = 0, 0
				return items
			},
			width: ExactSpec(150),
			want:  []int{100, 100},
		},
		{
			name: "at-most grows short lines to the longest",
			cfg:  Config{Wrap: WrapNormal},
			items: func() []Item {
				items := boxes(10, 50, 50, 50)
				items[2].FlexGrow = 1
				return items
			},
			width: AtMostSpec(120),
			want:  []int{50, 50, 100},
		},
		{
			name: "unspecified single line does not grow",
			items: func() []Item {
				items := boxes(10, 50, 30)
				items[1].FlexGrow = 1
				return items
			},
			width: UnspecifiedSpec(),
			want:  []int{50, 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := tt.items()
			e, err := New(tt.cfg)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := e.Measure(items, tt.width, UnspecifiedSpec()); err != nil {
				t.Fatalf("Measure() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, mainSizes(e, len(items))); diff != "" {
				t.Errorf("widths mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveMainAxisColumnHeights(t *testing.T) {
	items := []Item{NewItem("a", Box(10, 20)), NewItem("b", Box(10, 20))}
	items[1].FlexGrow = 1

	e := mustEngine(t, Config{Direction: Column}, items)
	if _, err := e.Measure(items, AtMostSpec(50), ExactSpec(100)); err != nil {
		t.Fatal(err)
	}
	if _, h := e.ItemSize(0); h != 20 {
		t.Errorf("height[0] = %d, want 20", h)
	}
	if _, h := e.ItemSize(1); h != 80 {
		t.Errorf("height[1] = %d, want 80", h)
	}
}

func TestResolveMainAxisLineReachesTarget(t *testing.T) {
	items := boxes(10, 7, 11, 13, 17)
	for i := range items {
		items[i].FlexGrow = float64(i + 1)
	}
	e := mustEngine(t, Config{}, items)
	if _, err := e.Measure(items, ExactSpec(101), UnspecifiedSpec()); err != nil {
		t.Fatal(err)
	}
	sum := 0
	for _, w := range mainSizes(e, len(items)) {
		sum += w
	}
	if sum != 101 {
		t.Errorf("sum of widths = %d, want 101", sum)
	}
	if got := e.FlexLines()[0].MainSize; got != 101 {
		t.Errorf("MainSize = %d, want 101", got)
	}
}

func TestResolveMainAxisIdempotent(t *testing.T) {
	tests := []struct {
		name  string
		setup func([]Item)
	}{
		{"floor reached", func(items []Item) { items[0].MinWidth, items[1].MinWidth = 80, 80 }},
		{"partial freeze", func(items []Item) { items[0].MinWidth = 80 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := boxes(10, 100, 100)
			tt.setup(items)
			e := mustEngine(t, Config{}, items)
			if _, err := e.Measure(items, ExactSpec(150), UnspecifiedSpec()); err != nil {
				t.Fatal(err)
			}
			first := mainSizes(e, 2)
			e.ResolveMainAxis(ExactSpec(150), UnspecifiedSpec(), 0)
			if diff := cmp.Diff(first, mainSizes(e, 2)); diff != "" {
				t.Errorf("second pass changed sizes (-first +second):\n%s", diff)
			}
		})
	}
}

func TestResolveMainAxisFromIndex(t *testing.T) {
	items := boxes(10, 50, 50, 50)
	items[0].FlexGrow = 1
	items[2].FlexGrow = 1

	e := mustEngine(t, Config{Wrap: WrapNormal}, items)
	e.BuildLines(ExactSpec(120), UnspecifiedSpec())
	e.ResolveMainAxis(ExactSpec(120), UnspecifiedSpec(), 2)

	if w, _ := e.ItemSize(0); w != 50 {
		t.Errorf("width[0] = %d, want 50 (line before fromIndex untouched)", w)
	}
	if w, _ := e.ItemSize(2); w != 120 {
		t.Errorf("width[2] = %d, want 120", w)
	}
}
