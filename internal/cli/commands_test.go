package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/flexline/pkg/cache"
	"github.com/matzehuels/flexline/pkg/errors"
	"github.com/matzehuels/flexline/pkg/scene"
)

const demoScene = `{
  "id": "demo",
  "container": {"wrap": "wrap"},
  "width": {"mode": "exact", "size": 120},
  "items": [
    {"id": "a", "content": {"width": 50, "height": 20}},
    {"id": "b", "content": {"width": 50, "height": 20}},
    {"id": "c", "content": {"width": 50, "height": 20}}
  ]
}`

// writeScene writes the demo scene into a fresh directory.
func writeScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := os.WriteFile(path, []byte(demoScene), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"layout", "render", "visualize", "inspect", "serve", "cache", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestLayoutCommand(t *testing.T) {
	input := writeScene(t)
	if _, err := execute(t, "layout", input, "--no-cache"); err != nil {
		t.Fatalf("layout error = %v", err)
	}

	l, err := scene.ReadLayoutFile(strings.TrimSuffix(input, ".json") + layoutSuffix)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error = %v", err)
	}
	if l.Width != 120 || l.Height != 40 || len(l.ContentLines()) != 2 {
		t.Errorf("layout = %dx%d with %d lines", l.Width, l.Height, len(l.ContentLines()))
	}
}

func TestLayoutCommandOverrides(t *testing.T) {
	input := writeScene(t)
	output := filepath.Join(filepath.Dir(input), "wide.json")
	if _, err := execute(t, "layout", input, "--no-cache", "--width", "exact:200", "-o", output); err != nil {
		t.Fatalf("layout error = %v", err)
	}
	l, err := scene.ReadLayoutFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if l.Width != 200 || len(l.ContentLines()) != 1 {
		t.Errorf("layout = %dx%d with %d lines, want one line at width 200", l.Width, l.Height, len(l.ContentLines()))
	}
}

func TestLayoutCommandErrors(t *testing.T) {
	input := writeScene(t)

	_, err := execute(t, "layout", input, "--no-cache", "--width", "huge")
	if !errors.Is(err, errors.ErrCodeInvalidConfiguration) {
		t.Errorf("bad width error = %v", err)
	}

	_, err = execute(t, "layout", filepath.Join(t.TempDir(), "missing.json"), "--no-cache")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing scene error = %v", err)
	}
}

func TestVisualizeCommand(t *testing.T) {
	input := writeScene(t)
	if _, err := execute(t, "layout", input, "--no-cache"); err != nil {
		t.Fatal(err)
	}
	layoutPath := strings.TrimSuffix(input, ".json") + layoutSuffix

	if _, err := execute(t, "visualize", layoutPath, "--no-cache", "-f", "svg,dot", "--style", "outline"); err != nil {
		t.Fatalf("visualize error = %v", err)
	}
	base := strings.TrimSuffix(input, ".json")
	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte(`id="frame-c"`)) {
		t.Error("svg has no frame for item c")
	}
	dot, err := os.ReadFile(base + ".dot")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(dot, []byte("digraph")) {
		t.Errorf("dot output = %.20s", dot)
	}
}

func TestVisualizeCommandInvalidStyle(t *testing.T) {
	input := writeScene(t)
	if _, err := execute(t, "visualize", input, "--style", "neon"); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("error = %v, want INVALID_STYLE", err)
	}
}

func TestRenderCommand(t *testing.T) {
	input := writeScene(t)
	output := filepath.Join(filepath.Dir(input), "out.png")
	if _, err := execute(t, "render", input, "--no-cache", "-f", "png", "-o", output, "--scale", "1"); err != nil {
		t.Fatalf("render error = %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestRenderCommandUsesCache(t *testing.T) {
	input := writeScene(t)
	dir := t.TempDir()

	for i := 0; i < 2; i++ {
		if _, err := execute(t, "render", input, "--cache", dir, "-f", "svg"); err != nil {
			t.Fatalf("run %d: render error = %v", i, err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) == 0 {
		t.Error("cache directory is empty after render")
	}
}

func TestRenderCommandInvalidFormat(t *testing.T) {
	input := writeScene(t)
	if _, err := execute(t, "render", input, "--no-cache", "-f", "gif"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestInspectPlain(t *testing.T) {
	input := writeScene(t)
	if _, err := execute(t, "inspect", input, "--no-cache", "--plain"); err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	if _, err := execute(t, "layout", input, "--no-cache"); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "inspect", strings.TrimSuffix(input, ".json")+layoutSuffix, "--plain"); err != nil {
		t.Fatalf("inspect layout error = %v", err)
	}
}

func TestCachePathAndClear(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir, err := cache.DefaultDir()
	if err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error = %v", err)
	}
	if strings.TrimSpace(out) != dir {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), dir)
	}

	// nothing cached yet
	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear (empty) error = %v", err)
	}

	input := writeScene(t)
	if _, err := execute(t, "render", input, "-f", "svg"); err != nil {
		t.Fatal(err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear error = %v", err)
	}
	if n, err := fc.Clear(); err != nil || n != 0 {
		t.Errorf("entries left after clear = %d (err %v)", n, err)
	}
}
