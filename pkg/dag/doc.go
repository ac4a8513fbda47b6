// Package dag provides the directed concept graph that renderers consume.
//
// # Overview
//
// The taxonomy package decides which concepts belong in a picture (a root and
// everything narrower, or the whole catalogue). This package holds the
// result: one [Node] per concept and one [Edge] per broader -> narrower
// relation, with deterministic iteration order so that DOT files, JSON
// exports and HTML pages are byte-for-byte reproducible.
//
// # Basic Usage
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "modeOfDemise", Label: "Mode of Demise"})
//	g.AddNode(dag.Node{ID: "poison", Label: "Poison"})
//	g.AddEdge(dag.Edge{From: "modeOfDemise", To: "poison"})
//	dag.AssignLevels(g)
//
// Query the structure with [DAG.Children], [DAG.Parents], [DAG.Sources] and
// [DAG.Levels]. [DAG.Validate] reports dangling edges and cycles.
//
// # Metadata
//
// Nodes carry a [Metadata] map; concept nodes store the definition and
// example under [MetaDefinition] and [MetaExample]. Metadata maps are never
// nil after a node has been added.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. A fully built graph may be
// read from multiple goroutines as long as nobody writes to it.
package dag
