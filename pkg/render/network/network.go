// Package network writes a concept graph as an interactive network page.
//
// The page loads vis-network and embeds the graph as JSON: one node per
// concept (hover shows the definition and example) and one directed edge
// per broader -> narrower link.
package network

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/dag"
)

// DefaultScript is the vis-network bundle the page loads.
const DefaultScript = "https://unpkg.com/vis-network@9.1.9/standalone/umd/vis-network.min.js"

//go:embed page.html.tmpl
var pageSource string

var pageTmpl = template.Must(template.New("network").Parse(pageSource))

// Node is a network vertex as vis-network expects it.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Title string `json:"title"`
	Level int    `json:"level"`
}

// Edge is a directed network link.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Network is the JSON payload embedded in the page.
type Network struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Build converts g into a Network. Nodes are in id order, edges in the
// graph's insertion order.
func Build(g *dag.DAG) Network {
	net := Network{
		Nodes: make([]Node, 0, g.NodeCount()),
		Edges: make([]Edge, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		net.Nodes = append(net.Nodes, Node{
			ID:    n.ID,
			Label: n.DisplayLabel(),
			Title: Title(n.MetaString(dag.MetaDefinition), n.MetaString(dag.MetaExample)),
			Level: n.Level,
		})
	}
	for _, e := range g.Edges() {
		net.Edges = append(net.Edges, Edge{From: e.From, To: e.To})
	}
	return net
}

// Title formats the hover text for a node: the definition ("N/A" when
// missing), followed by the example when there is one.
func Title(definition, example string) string {
	if definition == "" {
		definition = "N/A"
	}
	title := "Definition: " + definition
	if example != "" {
		title += "\n\nExample: " + example
	}
	return title
}

// Options configures the generated page.
type Options struct {
	Title  string // <title>; "Modes of Demise network" when empty
	Height string // CSS height of the canvas; "800px" when empty
	Script string // vis-network bundle URL; DefaultScript when empty
}

// Write renders net as a standalone HTML page.
func Write(w io.Writer, net Network, opts Options) error {
	if opts.Title == "" {
		opts.Title = "Modes of Demise network"
	}
	if opts.Height == "" {
		opts.Height = "800px"
	}
	if opts.Script == "" {
		opts.Script = DefaultScript
	}

	data := struct {
		Options
		Height template.CSS
		Nodes  []Node
		Edges  []Edge
	}{opts, template.CSS(opts.Height), net.Nodes, net.Edges}
	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render network page: %w", err)
	}
	return nil
}
