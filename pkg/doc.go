// Package pkg provides the core libraries for flexline, a flexbox layout
// engine.
//
// # Overview
//
// flexline places a container's items the way CSS flexbox does: items are
// measured, broken into flex lines, grown or shrunk along the main axis and
// aligned across the cross axis. The pkg directory is organized into:
//
//  1. [flex] - The layout engine (lines, flexible lengths, alignment)
//  2. [scene] - Scene documents in, serialized layouts out
//  3. [render] - Output sinks (SVG, PNG, PDF, JSON, DOT)
//  4. [pipeline] - Orchestration (scene → layout → render) with caching
//  5. [cache] - Cache backends (file, Redis, MongoDB) and key derivation
//
// # Architecture
//
// The typical data flow through flexline:
//
//	Scene document (JSON, TOML, YAML)
//	         ↓
//	    [scene] package (decode + build flex.Config and items)
//	         ↓
//	    [flex] package (measure, split lines, resolve, align)
//	         ↓
//	    [scene] package (export Layout)
//	         ↓
//	    [render] package (SVG/PNG/PDF/JSON/DOT)
//
// # Quick Start
//
// Lay out three boxes in a wrapping row:
//
//	import (
//	    "github.com/matzehuels/flexline/pkg/flex"
//	)
//
//	items := []flex.Item{
//	    flex.NewItem("a", flex.Box(50, 20)),
//	    flex.NewItem("b", flex.Box(50, 20)),
//	    flex.NewItem("c", flex.Box(50, 20)),
//	}
//	res, frames, _ := flex.Compute(flex.Config{Wrap: flex.WrapNormal},
//	    items, flex.ExactSpec(120), flex.UnspecifiedSpec())
//
// Or run the whole pipeline from a scene file:
//
//	doc, _ := pipeline.LoadScene(ctx, "scene.yaml")
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, _ := runner.Execute(ctx, doc, pipeline.Options{Formats: []string{"svg"}})
//
// # Main Packages
//
// [flex] - The engine. [flex.Engine] computes flex lines from an ordered,
// measured item list, resolves flexible lengths with an iterative freeze
// loop, positions items along both axes and reports frames. Measurements
// are memoised per item and pass.
//
// [scene] - Scene documents and layout serialization. Content is measured
// as fixed boxes, wrapped text (gg font metrics) or JavaScript measure
// functions (goja).
//
// [render] - Frame diagrams as SVG and PNG, PDF through rsvg-convert, JSON
// and a Graphviz view of the container → line → item structure.
//
// [pipeline] - Complete pipeline (scene → layout → render) used by the CLI
// and the HTTP API. Ensures consistent behavior across entry points.
//
// [cache] - Cache interface with file, null, Redis and MongoDB backends,
// plus the keyers that derive layout and artifact keys.
//
// [observability] - Hook interfaces for pipeline, cache and HTTP events.
//
// [errors] - Structured error codes shared by all packages.
//
// [buildinfo] - Version information injected at build time.
package pkg
