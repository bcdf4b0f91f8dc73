package render

import (
	"encoding/json"

	"github.com/matzehuels/flexline/pkg/scene"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style string
}

// WithJSONStyle records the style name in the output so the layout can be
// re-rendered with the same look.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

type jsonOutput struct {
	scene.Layout
	Style string `json:"style,omitempty"`
}

// RenderJSON exports the layout as a pretty-printed JSON document. The
// output is a superset of the layout.json format, so [scene.UnmarshalLayout]
// reads it back.
func RenderJSON(l scene.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	return json.MarshalIndent(jsonOutput{Layout: l, Style: r.style}, "", "  ")
}
