package nodelink

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/dag"
)

// Options configures node-link diagram generation.
type Options struct {
	// RankDir is the Graphviz layout direction ("LR", "TB", "RL", "BT").
	// Empty means "LR".
	RankDir string

	// Shape is the node shape. Empty means "plaintext".
	Shape string

	// Style is an optional node style such as "rounded".
	Style string

	// Tooltips attaches the concept definition (or, failing that, the
	// example) to each node as an SVG tooltip.
	Tooltips bool

	// Detailed appends the level and non-empty metadata to node labels.
	Detailed bool
}

// Layout directions accepted by [Options.RankDir].
var RankDirs = []string{"LR", "TB", "RL", "BT"}

func (o Options) withDefaults() Options {
	if o.RankDir == "" {
		o.RankDir = "LR"
	}
	if o.Shape == "" {
		o.Shape = "plaintext"
	}
	return o
}

// ToDOT converts a concept graph to Graphviz DOT source.
//
// Nodes are written in id order and edges in the graph's insertion order,
// so the same graph always yields the same text. Node ids are concept ids;
// labels are display labels.
func ToDOT(g *dag.DAG, opts Options) string {
	opts = opts.withDefaults()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", opts.RankDir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  node [%s];\n", strings.Join(nodeDefaults(opts), ", "))
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := fmtAttrs(*n, opts)
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(n.ID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %s -> %s;\n", quote(e.From), quote(e.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeDefaults(opts Options) []string {
	attrs := []string{"shape=" + quote(opts.Shape)}
	if opts.Style != "" {
		attrs = append(attrs, "style="+quote(opts.Style))
	}
	return append(attrs, "fontname=\"Helvetica\"")
}

func fmtLabel(n dag.Node, detailed bool) string {
	label := n.DisplayLabel()
	if !detailed {
		return label
	}

	parts := []string{fmt.Sprintf("level: %d", n.Level)}
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		v := fmt.Sprint(n.Meta[k])
		if v == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", k, v))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n dag.Node, opts Options) []string {
	attrs := []string{"label=" + quote(fmtLabel(n, opts.Detailed))}
	if opts.Tooltips {
		if tip := tooltip(n); tip != "" {
			attrs = append(attrs, "tooltip="+quote(tip))
		}
	}
	return attrs
}

func tooltip(n dag.Node) string {
	if d := n.MetaString(dag.MetaDefinition); d != "" {
		return d
	}
	return n.MetaString(dag.MetaExample)
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r\n", `\n`, "\n", `\n`)

// quote renders s as a DOT double-quoted string.
func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}
