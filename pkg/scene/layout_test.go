package scene

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/flexline/pkg/errors"
	"github.com/matzehuels/flexline/pkg/flex"
)

func exportWrapDoc(t *testing.T) Layout {
	t.Helper()
	sc, err := Build(wrapDoc(), BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	res, frames, err := sc.Compute()
	if err != nil {
		t.Fatal(err)
	}
	return Export(sc, res, frames)
}

func TestExport(t *testing.T) {
	l := exportWrapDoc(t)

	if l.Scene != "wrap" || l.Width != 120 || l.Height != 40 || l.Direction != "row" || l.Wrap != "wrap" {
		t.Errorf("layout header = %+v", l)
	}
	if l.ID == "" {
		t.Error("layout has no id")
	}
	want := []LineInfo{
		{Kind: LineKindContent, CrossSize: 20, Index: 0, First: 0, Last: 1, ItemCount: 2, MainSize: 100,
			Bounds: &Rect{X: 0, Y: 0, Width: 100, Height: 20}},
		{Kind: LineKindContent, CrossSize: 20, Index: 1, First: 2, Last: 2, ItemCount: 1, MainSize: 120,
			Bounds: &Rect{X: 0, Y: 20, Width: 120, Height: 20}},
	}
	if diff := cmp.Diff(want, l.Lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	wantFrames := []FrameInfo{
		{ID: "a", Label: "a", Rect: Rect{0, 0, 50, 20}, Line: 0},
		{ID: "b", Label: "Bee", Rect: Rect{50, 0, 50, 20}, Line: 0},
		{ID: "c", Label: "c", Rect: Rect{0, 20, 120, 20}, Line: 1},
	}
	if diff := cmp.Diff(wantFrames, l.Frames); diff != "" {
		t.Errorf("frames mismatch (-want +got):\n%s", diff)
	}

	if again := exportWrapDoc(t); again.ID != l.ID {
		t.Errorf("ids differ for equal layouts: %s vs %s", l.ID, again.ID)
	}
}

func TestExportSpacersAndState(t *testing.T) {
	doc := wrapDoc()
	doc.Container.AlignContent = "center"
	doc.Height = Constraint{Mode: ModeExact, Size: 30}
	sc, err := Build(doc, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	res, frames, err := sc.Compute()
	if err != nil {
		t.Fatal(err)
	}
	l := Export(sc, res, frames)

	if len(l.ContentLines()) != 2 {
		t.Fatalf("content lines = %d, want 2", len(l.ContentLines()))
	}
	spacers := 0
	for _, ln := range l.Lines {
		if ln.IsSpacer() {
			spacers++
			if ln.CrossSize != -5 {
				t.Errorf("spacer cross size = %d, want -5", ln.CrossSize)
			}
		}
	}
	if spacers != 2 {
		t.Errorf("spacers = %d, want 2", spacers)
	}
	if l.Frames[0].Rect.Y != -5 {
		t.Errorf("first line y = %d, want -5", l.Frames[0].Rect.Y)
	}
}

func TestExportGone(t *testing.T) {
	doc := wrapDoc()
	doc.Items[1].Gone = true
	sc, err := Build(doc, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	res, frames, err := sc.Compute()
	if err != nil {
		t.Fatal(err)
	}
	l := Export(sc, res, frames)
	if !l.Frames[1].Gone || l.Frames[1].Line != -1 {
		t.Errorf("gone frame = %+v", l.Frames[1])
	}
	visible := l.Visible()
	if len(visible) != 2 || visible[0].ID != "a" || visible[1].ID != "c" {
		t.Errorf("visible = %+v", visible)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	l := exportWrapDoc(t)
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile() error = %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error = %v", err)
	}
	if diff := cmp.Diff(l, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	_, err = ReadLayoutFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestUnmarshalLayoutInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":        `{"width": `,
		"negative size": `{"width": -1, "height": 10}`,
		"frame no id":   `{"width": 1, "height": 1, "lines": [{"kind": "line"}], "frames": [{"line": 0}]}`,
		"frame line":    `{"width": 1, "height": 1, "lines": [{"kind": "line"}, {"kind": "spacer"}], "frames": [{"id": "a", "line": 1}]}`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := UnmarshalLayout([]byte(data))
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("UnmarshalLayout() error = %v, want INVALID_FORMAT", err)
			}
		})
	}

	if _, err := UnmarshalLayout([]byte(`{"width": 0, "height": 0, "lines": [], "frames": [{"id": "g", "line": -1, "gone": true}]}`)); err != nil {
		t.Errorf("gone frame rejected: %v", err)
	}
}

func TestStateNames(t *testing.T) {
	got := stateNames(flex.StateWidthTooSmall | flex.StateHeightTooSmall)
	if diff := cmp.Diff([]string{"width-too-small", "height-too-small"}, got); diff != "" {
		t.Errorf("stateNames mismatch (-want +got):\n%s", diff)
	}
	if stateNames(0) != nil {
		t.Error("stateNames(0) != nil")
	}
}
