package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/flexline/pkg/errors"
)

const sceneJSON = `{
  "id": "demo",
  "container": {
    "direction": "row",
    "wrap": "wrap",
    "justify_content": "space-between",
    "padding": {"all": 4}
  },
  "width": {"mode": "exact", "size": 120},
  "height": {"mode": "at-most", "size": 80},
  "items": [
    {"id": "a", "width": 50, "content": {"width": 50, "height": 20}},
    {"id": "b", "width": "match", "order": 2, "shrink": 0, "content": {"kind": "text", "text": "hi"}}
  ]
}`

const sceneTOML = `
id = "demo"

[container]
direction = "row"
wrap = "wrap"
justify_content = "space-between"

[container.padding]
all = 4

[width]
mode = "exact"
size = 120

[height]
mode = "at-most"
size = 80

[[items]]
id = "a"
width = 50

[items.content]
width = 50
height = 20

[[items]]
id = "b"
width = "match"
order = 2
shrink = 0.0

[items.content]
kind = "text"
text = "hi"
`

const sceneYAML = `
id: demo
container:
  direction: row
  wrap: wrap
  justify_content: space-between
  padding:
    all: 4
width:
  mode: exact
  size: 120
height:
  mode: at-most
  size: 80
items:
  - id: a
    width: 50
    content:
      width: 50
      height: 20
  - id: b
    width: match
    order: 2
    shrink: 0
    content:
      kind: text
      text: hi
`

func TestReadDocumentFormatsAgree(t *testing.T) {
	want, err := ParseDocument([]byte(sceneJSON), FormatJSON)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if want.Items[1].Width.Kind != SizeMatch || *want.Items[1].Order != 2 || *want.Items[1].Shrink != 0 {
		t.Fatalf("json item b = %+v", want.Items[1])
	}

	for _, tt := range []struct {
		format string
		data   string
	}{
		{FormatTOML, sceneTOML},
		{FormatYAML, sceneYAML},
	} {
		t.Run(tt.format, func(t *testing.T) {
			got, err := ParseDocument([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("ParseDocument() error = %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("document mismatch (-json +%s):\n%s", tt.format, diff)
			}
		})
	}
}

func TestReadDocumentErrors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		data   string
	}{
		{"json unknown field", FormatJSON, `{"items": [{"id": "a", "flex_grow": 1}]}`},
		{"json bad size", FormatJSON, `{"items": [{"id": "a", "width": "huge"}]}`},
		{"json negative size", FormatJSON, `{"items": [{"id": "a", "width": -4}]}`},
		{"json fractional size", FormatJSON, `{"items": [{"id": "a", "width": 1.5}]}`},
		{"json syntax", FormatJSON, `{"items": [`},
		{"toml unknown field", FormatTOML, "[container]\ndirektion = \"row\"\n"},
		{"toml bad size", FormatTOML, "[[items]]\nid = \"a\"\nwidth = \"huge\"\n"},
		{"yaml unknown field", FormatYAML, "container:\n  direktion: row\n"},
		{"yaml bad size", FormatYAML, "items:\n  - id: a\n    width: huge\n"},
		{"unknown format", "xml", "<scene/>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.data), tt.format)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsValidation(err) {
				t.Errorf("error %v is not a validation error", err)
			}
		})
	}
}

func TestReadDocumentEmptyYAML(t *testing.T) {
	doc, err := ParseDocument(nil, FormatYAML)
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	if len(doc.Items) != 0 {
		t.Errorf("items = %v", doc.Items)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"scene.json":     FormatJSON,
		"dir/scene.TOML": FormatTOML,
		"scene.yaml":     FormatYAML,
		"/abs/scene.yml": FormatYAML,
		"scene.txt":      "",
		"no-extension":   "",
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		if got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
		if want == "" && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("FormatFromPath(%q) error = %v", path, err)
		}
	}
}

func TestReadDocumentFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte(sceneYAML), 0644); err != nil {
		t.Fatal(err)
	}
	doc, err := ReadDocumentFile(path)
	if err != nil {
		t.Fatalf("ReadDocumentFile() error = %v", err)
	}
	if doc.ID != "demo" || len(doc.Items) != 2 {
		t.Errorf("doc = %+v", doc)
	}

	_, err = ReadDocumentFile(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestSizeJSON(t *testing.T) {
	tests := []struct {
		in   string
		want Size
	}{
		{`120`, Fixed(120)},
		{`"120"`, Fixed(120)},
		{`"wrap"`, Size{}},
		{`"Match-Parent"`, Size{Kind: SizeMatch}},
		{`null`, Size{}},
	}
	for _, tt := range tests {
		var s Size
		if err := s.UnmarshalJSON([]byte(tt.in)); err != nil {
			t.Errorf("UnmarshalJSON(%s) error = %v", tt.in, err)
			continue
		}
		if s != tt.want {
			t.Errorf("UnmarshalJSON(%s) = %+v, want %+v", tt.in, s, tt.want)
		}
	}

	data, err := MarshalDocument(&Document{Items: []ItemDoc{{ID: "a", Width: Fixed(3), Height: Size{Kind: SizeMatch}}}})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"width":3`) || !strings.Contains(string(data), `"height":"match"`) {
		t.Errorf("MarshalDocument() = %s", data)
	}
}
