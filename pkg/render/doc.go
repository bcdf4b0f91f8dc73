// Package render draws computed layouts.
//
// # Overview
//
// Every renderer works from a [scene.Layout] alone, so layouts read back
// from layout.json files or the cache render the same way as fresh ones:
//
//   - SVG frame diagrams ([RenderSVG]) in the [Simple] or [Outline] style
//   - PNG rasters drawn with gg ([RenderPNG]), no external tools needed
//   - PDF via rsvg-convert ([RenderPDF])
//   - JSON export ([RenderJSON]), readable by [scene.UnmarshalLayout]
//   - Graphviz tree diagrams ([ToDOT], [RenderDOTSVG]) showing which items
//     landed on which line
//
// # Frame Diagrams
//
//	svg := render.RenderSVG(layout,
//	    render.WithStyle(render.Outline{}),
//	    render.WithLineBounds(),
//	)
//	png, err := render.RenderPNG(layout, render.WithScale(2))
//
// Frames are coloured by line ([LineColor]); hovering a frame in a browser
// highlights the rest of its line.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert (librsvg):
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [scene.Layout]: github.com/matzehuels/flexline/pkg/scene.Layout
// [scene.UnmarshalLayout]: github.com/matzehuels/flexline/pkg/scene.UnmarshalLayout
package render
