package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/dag"
)

type graph struct {
	Meta  dag.Metadata `json:"meta,omitempty"`
	Nodes []node       `json:"nodes"`
	Edges []edge       `json:"edges"`
}

type node struct {
	ID    string       `json:"id"`
	Label string       `json:"label,omitempty"`
	Level *int         `json:"level,omitempty"`
	Meta  dag.Metadata `json:"meta,omitempty"`
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WriteJSON encodes a concept graph as JSON and writes it to w.
// Nodes are written sorted by id and edges in insertion order, so the
// output for a given graph is stable. Empty metadata values are omitted.
func WriteJSON(g *dag.DAG, w io.Writer) error {
	out := graph{
		Meta:  compact(g.Meta()),
		Nodes: make([]node, 0, g.NodeCount()),
		Edges: make([]edge, 0, g.EdgeCount()),
	}

	for _, n := range g.Nodes() {
		nd := node{ID: n.ID, Label: n.Label, Meta: compact(n.Meta)}
		if n.Level != 0 {
			level := n.Level
			nd.Level = &level
		}
		out.Nodes = append(out.Nodes, nd)
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, edge{From: e.From, To: e.To})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a concept graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *dag.DAG, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// compact drops empty-string values so absent definitions do not clutter
// the output.
func compact(m dag.Metadata) dag.Metadata {
	out := dag.Metadata{}
	for k, v := range m {
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
