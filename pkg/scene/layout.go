package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/matzehuels/flexline/pkg/errors"
	"github.com/matzehuels/flexline/pkg/flex"
)

// =============================================================================
// Layout - Serialized Layout Result
// =============================================================================

// Layout is the serialization format for a computed layout. It is what the
// CLI writes to layout.json, what the API returns and what the cache
// stores. Renderers work from a Layout alone, without the scene.
type Layout struct {
	ID    string `json:"id" bson:"id"`
	Scene string `json:"scene,omitempty" bson:"scene,omitempty"`

	Width  int `json:"width" bson:"width"`
	Height int `json:"height" bson:"height"`

	Direction string   `json:"direction" bson:"direction"`
	Wrap      string   `json:"wrap" bson:"wrap"`
	State     []string `json:"state,omitempty" bson:"state,omitempty"`

	// Lines lists resolved lines in cross order, spacers included.
	Lines  []LineInfo  `json:"lines" bson:"lines"`
	Frames []FrameInfo `json:"frames" bson:"frames"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      int `json:"x" bson:"x"`
	Y      int `json:"y" bson:"y"`
	Width  int `json:"width" bson:"width"`
	Height int `json:"height" bson:"height"`
}

// LineInfo describes one resolved line.
type LineInfo struct {
	Kind      string `json:"kind" bson:"kind"`
	CrossSize int    `json:"cross_size" bson:"cross_size"`

	// Content lines only.
	Index     int   `json:"index,omitempty" bson:"index,omitempty"`
	First     int   `json:"first,omitempty" bson:"first,omitempty"`
	Last      int   `json:"last,omitempty" bson:"last,omitempty"`
	ItemCount int   `json:"item_count,omitempty" bson:"item_count,omitempty"`
	MainSize  int   `json:"main_size,omitempty" bson:"main_size,omitempty"`
	Bounds    *Rect `json:"bounds,omitempty" bson:"bounds,omitempty"`
}

// IsSpacer reports whether the line is empty cross-axis space.
func (l LineInfo) IsSpacer() bool { return l.Kind == LineKindSpacer }

// FrameInfo is the placed geometry of one item, in original item order.
type FrameInfo struct {
	ID    string `json:"id" bson:"id"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
	Rect  Rect   `json:"rect" bson:"rect"`
	Line  int    `json:"line" bson:"line"`
	Gone  bool   `json:"gone,omitempty" bson:"gone,omitempty"`
}

// Visible returns the frames of items that are not gone.
func (l *Layout) Visible() []FrameInfo {
	out := make([]FrameInfo, 0, len(l.Frames))
	for _, f := range l.Frames {
		if !f.Gone {
			out = append(out, f)
		}
	}
	return out
}

// ContentLines returns the lines that hold items.
func (l *Layout) ContentLines() []LineInfo {
	out := make([]LineInfo, 0, len(l.Lines))
	for _, ln := range l.Lines {
		if !ln.IsSpacer() {
			out = append(out, ln)
		}
	}
	return out
}

// =============================================================================
// Export - Engine Result to Layout
// =============================================================================

// layoutNamespace seeds deterministic layout ids.
var layoutNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/flexline/layout"))

// Export converts a computed result into a Layout. The id is derived from
// the geometry, so identical layouts get identical ids.
func Export(sc *Scene, res *flex.Result, frames []flex.Frame) Layout {
	out := Layout{
		Scene:     sc.ID,
		Width:     res.Width,
		Height:    res.Height,
		Direction: sc.Config.Direction.String(),
		Wrap:      sc.Config.Wrap.String(),
		State:     stateNames(res.State),
		Lines:     make([]LineInfo, 0, len(res.Lines)),
		Frames:    make([]FrameInfo, len(frames)),
	}

	idx := 0
	for _, l := range res.Lines {
		fl, ok := l.(*flex.FlexLine)
		if !ok {
			out.Lines = append(out.Lines, LineInfo{Kind: LineKindSpacer, CrossSize: l.CrossExtent()})
			continue
		}
		b := rect(fl.Bounds)
		out.Lines = append(out.Lines, LineInfo{
			Kind:      LineKindContent,
			CrossSize: fl.CrossSize,
			Index:     idx,
			First:     fl.FirstIndex,
			Last:      fl.LastIndex,
			ItemCount: fl.ItemCount,
			MainSize:  fl.MainSize,
			Bounds:    &b,
		})
		idx++
	}

	for i, f := range frames {
		label := f.ID
		if i < len(sc.Labels) {
			label = sc.Labels[i]
		}
		out.Frames[i] = FrameInfo{ID: f.ID, Label: label, Rect: rect(f.Rect), Line: f.Line, Gone: f.Gone}
	}

	data, _ := json.Marshal(out)
	out.ID = uuid.NewSHA1(layoutNamespace, data).String()
	return out
}

func rect(r flex.Rect) Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

func stateNames(s flex.State) []string {
	var out []string
	if s&flex.StateWidthTooSmall != 0 {
		out = append(out, "width-too-small")
	}
	if s&flex.StateHeightTooSmall != 0 {
		out = append(out, "height-too-small")
	}
	return out
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and checks that it
// is usable by the renderers.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if l.Width < 0 || l.Height < 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidFormat, "layout size must be non-negative, got %dx%d", l.Width, l.Height)
	}
	content := len(l.ContentLines())
	for i, f := range l.Frames {
		if f.ID == "" {
			return Layout{}, errors.New(errors.ErrCodeInvalidFormat, "frame %d has no id", i)
		}
		if f.Line >= content {
			return Layout{}, errors.New(errors.ErrCodeInvalidFormat, "frame %q references line %d of %d", f.ID, f.Line, content)
		}
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout %s", path)
		}
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
