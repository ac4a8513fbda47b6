package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/dag"
)

// ReadJSON decodes a JSON concept graph from r.
//
// Each node must have an "id"; "label", "level" and "meta" are optional.
// Each edge must have "from" and "to" fields that reference node ids.
//
// ReadJSON returns an error if the JSON is malformed, a node id is empty or
// repeated, an edge is repeated, or an edge references an unknown node.
// Errors are wrapped with the offending node or edge; use errors.Is with the
// dag sentinel errors to tell them apart. Cycles are accepted, as they are
// for graphs built from a catalogue.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*dag.DAG, error) {
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := dag.New(data.Meta)
	for _, n := range data.Nodes {
		nd := dag.Node{ID: n.ID, Label: n.Label, Meta: n.Meta}
		if n.Level != nil {
			nd.Level = *n.Level
		}
		if err := g.AddNode(nd); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, e := range data.Edges {
		if err := g.AddEdge(dag.Edge{From: e.From, To: e.To}); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}

	return g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
// It returns the same validation errors as [ReadJSON], wrapped with the
// path when the file cannot be opened.
func ImportJSON(path string) (*dag.DAG, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
