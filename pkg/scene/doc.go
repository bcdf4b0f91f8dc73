// Package scene provides the file formats around the flex engine: scene
// documents going in, serialized layouts coming out.
//
// # Scene Documents
//
// A [Document] describes one container, its size constraints and its items.
// Documents are read from JSON, TOML or YAML; the format is picked from the
// file extension by [ReadDocumentFile]:
//
//	{
//	  "container": {"direction": "row", "wrap": "wrap", "justify_content": "space-between"},
//	  "width":  {"mode": "exact", "size": 320},
//	  "height": {"mode": "at-most", "size": 200},
//	  "items": [
//	    {"id": "logo", "content": {"width": 64, "height": 64}},
//	    {"id": "title", "grow": 1, "content": {"kind": "text", "text": "Hello, flexbox"}},
//	    {"id": "badge", "width": "wrap", "content": {"kind": "script", "script": "function measure(w, h) { return {width: 40, height: 16}; }"}}
//	  ]
//	}
//
// Property values are CSS keywords ("row-reverse", "space-evenly",
// "flex-end"). Item sizes are a length, "wrap" (the default) or "match".
//
// # Content
//
// Each item's content decides how it is measured:
//
//   - box: a fixed natural size with an optional baseline
//   - text: words wrapped to the offered width ([Text], measured with gg)
//   - script: a JavaScript measure(width, height) function ([Script], run
//     with goja)
//
// [Build] turns a document into a [Scene] holding the flex.Config, items
// and constraints. Script failures cannot surface through the Measurable
// interface, so [Scene.Compute] checks [Scene.Err] after the pass.
//
// # Layout Serialization
//
// [Export] converts an engine result into a [Layout], the format shared by
// layout.json files, API responses, the cache and the renderers:
//
//	sc, _ := scene.Build(doc, scene.BuildOptions{})
//	res, frames, _ := sc.Compute()
//	layout := scene.Export(sc, res, frames)
//	scene.WriteLayoutFile(layout, "layout.json")
//
// Layout ids are derived from the content, so equal layouts share an id.
package scene
