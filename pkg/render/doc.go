// Package render groups the output backends for concept graphs.
//
// # Overview
//
// Three renderers share the same inputs (a parsed catalogue, a hierarchy
// built from it, or a [dag.DAG] induced from a subtree):
//
//   - [nodelink]: Graphviz node-link diagrams (PNG, SVG, JPG or raw DOT)
//   - [htmltree]: a standalone HTML page with the hierarchy as nested lists
//     and definition/example tooltips
//   - [network]: a standalone HTML page with an interactive force-directed
//     network (vis-network)
//
// None of the renderers log or read files; they write to an [io.Writer] or
// return bytes, and the caller decides where output lands.
//
// [dag.DAG]: github.com/FPannach/Fanfiction-Annotation-Project/pkg/dag.DAG
// [io.Writer]: https://pkg.go.dev/io#Writer
package render
