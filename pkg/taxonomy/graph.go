package taxonomy

import (
	"errors"
	"fmt"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/dag"
)

// Edge is a broader -> narrower pair.
type Edge struct {
	Parent string
	Child  string
}

// Edges returns the edges of the subgraph induced by allowed in subset-walk
// order (see [WalkSubset]). Each pair appears once.
func Edges(cat Catalogue, allowed Set) []Edge {
	var edges []Edge
	for _, v := range SubsetPairs(cat, allowed, "") {
		if v.ParentID != "" {
			edges = append(edges, Edge{Parent: v.ParentID, Child: v.Concept.ID})
		}
	}
	return edges
}

// All returns the set of every concept id in the catalogue.
func All(cat Catalogue) Set {
	return NewSet(cat.IDs()...)
}

// graphBuilder is a [Visitor] that copies a walk into a dag.DAG.
type graphBuilder struct {
	g *dag.DAG
}

func (b *graphBuilder) Enter(v Visit) error {
	if !v.Repeat {
		n := dag.Node{
			ID:    v.Concept.ID,
			Label: v.Concept.Label,
			Meta: dag.Metadata{
				dag.MetaDefinition: v.Concept.Definition,
				dag.MetaExample:    v.Concept.Example,
			},
		}
		if err := b.g.AddNode(n); err != nil && !errors.Is(err, dag.ErrDuplicateNodeID) {
			return fmt.Errorf("node %s: %w", v.Concept.ID, err)
		}
	}
	if v.ParentID == "" {
		return nil
	}
	if err := b.g.AddEdge(dag.Edge{From: v.ParentID, To: v.Concept.ID}); err != nil && !errors.Is(err, dag.ErrDuplicateEdge) {
		return fmt.Errorf("edge %s->%s: %w", v.ParentID, v.Concept.ID, err)
	}
	return nil
}

func (b *graphBuilder) Leave(Visit) error { return nil }

// ToDAG converts the subgraph induced by allowed into a [dag.DAG] for the
// renderers. start is the walk's preferred entry point (usually the root
// the subset was computed from) and is recorded as graph metadata. Node
// levels are assigned with [dag.AssignLevels].
func ToDAG(cat Catalogue, allowed Set, start string) (*dag.DAG, error) {
	g := dag.New(nil)
	if start != "" {
		g.Meta()[dag.MetaRoot] = start
	}
	if err := WalkSubset(cat, allowed, start, &graphBuilder{g: g}); err != nil {
		return nil, err
	}
	dag.AssignLevels(g)
	return g, nil
}

// TreeToDAG converts hierarchy trees from [Build] into a [dag.DAG]. Tree
// positions that repeat a concept collapse onto one node.
func TreeToDAG(roots []*Node) (*dag.DAG, error) {
	g := dag.New(nil)
	if err := Walk(roots, &graphBuilder{g: g}); err != nil {
		return nil, err
	}
	dag.AssignLevels(g)
	return g, nil
}
