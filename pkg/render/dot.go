package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flexline/pkg/scene"
)

// DOTOptions configures tree diagram generation.
type DOTOptions struct {
	// Detailed adds geometry to labels and shows spacer lines.
	Detailed bool
}

// ToDOT converts a layout to a Graphviz tree: container, then its lines in
// cross order, then each line's items. Gone items hang off the container
// with dashed outlines.
func ToDOT(l scene.Layout, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	root := "container"
	rootLabel := fmt.Sprintf("%s %s\n%dx%d", l.Direction, l.Wrap, l.Width, l.Height)
	if l.Scene != "" {
		rootLabel = l.Scene + "\n" + rootLabel
	}
	fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=\"#eeeeee\"];\n", root, rootLabel)

	spacer := 0
	for _, ln := range l.Lines {
		if ln.IsSpacer() {
			if opts.Detailed {
				id := fmt.Sprintf("spacer-%d", spacer)
				fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,dashed\"];\n", id, fmt.Sprintf("spacer %d", ln.CrossSize))
				fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", root, id)
			}
			spacer++
			continue
		}
		id := lineNode(ln.Index)
		label := fmt.Sprintf("line %d", ln.Index)
		if opts.Detailed {
			label += fmt.Sprintf("\nmain %d, cross %d", ln.MainSize, ln.CrossSize)
		}
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n", id, label, LineColor(ln.Index))
		fmt.Fprintf(&buf, "  %q -> %q;\n", root, id)
	}

	buf.WriteString("\n")
	for _, f := range l.Frames {
		id := "item:" + f.ID
		attrs := []string{fmt.Sprintf("label=%q", frameLabel(f, opts.Detailed))}
		parent := root
		if f.Gone || f.Line < 0 {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
		} else {
			parent = lineNode(f.Line)
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
		fmt.Fprintf(&buf, "  %q -> %q;\n", parent, id)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func lineNode(i int) string { return "line:" + strconv.Itoa(i) }

func frameLabel(f scene.FrameInfo, detailed bool) string {
	label := f.Label
	if label == "" {
		label = f.ID
	}
	if !detailed {
		return label
	}
	if f.Gone {
		return label + "\ngone"
	}
	r := f.Rect
	return fmt.Sprintf("%s\n%d,%d %dx%d", label, r.X, r.Y, r.Width, r.Height)
}

// RenderDOTSVG renders a DOT graph to SVG using Graphviz.
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with a
// pixel-sized one.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// RenderDOTPDF renders a DOT graph as PDF via SVG conversion.
func RenderDOTPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderDOTSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return ToPDF(svg)
}

// RenderDOTPNG renders a DOT graph as PNG via SVG conversion.
func RenderDOTPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderDOTSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return ToPNG(svg, scale)
}
