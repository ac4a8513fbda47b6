// Package nodelink renders concept graphs as node-link diagrams.
//
// # Overview
//
// The graph produced for a subtree of the catalogue is turned into
// Graphviz DOT source by [ToDOT] and laid out in-process by [Render]. Nodes
// are concepts, edges point from the broader concept to the narrower one.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{RankDir: "LR", Tooltips: true})
//	png, err := nodelink.Render(ctx, dot, nodelink.FormatPNG)
//
// # Options
//
//   - RankDir: layout direction, "LR" by default
//   - Shape: node shape, "plaintext" by default
//   - Style: optional node style ("rounded" for boxes)
//   - Tooltips: definition (or example) as the SVG tooltip
//   - Detailed: level and metadata appended to each label
//
// # Dependencies
//
// Layout and encoding use [github.com/goccy/go-graphviz], which embeds
// Graphviz, so no dot binary is required at runtime.
package nodelink
