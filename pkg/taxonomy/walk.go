package taxonomy

import "errors"

// SkipChildren may be returned from [Visitor.Enter] to leave a concept's
// children unvisited. The matching Leave call still happens.
var SkipChildren = errors.New("skip children")

// Visit describes one step of a pre-order walk.
type Visit struct {
	// ParentID is the concept this one was reached from; empty for a root.
	ParentID string
	Concept  Concept
	// Depth is 0 for roots.
	Depth int
	// Repeat is set when the concept was already entered earlier in the
	// same walk. In a tree walk repeated concepts are expanded again; in a
	// subset walk they only contribute the edge from ParentID.
	Repeat bool
}

// Visitor receives a deterministic pre-order traversal. Enter is called
// for a concept before any of its children, Leave after all of them.
type Visitor interface {
	Enter(v Visit) error
	Leave(v Visit) error
}

// VisitFunc adapts a function to a [Visitor] that ignores Leave.
type VisitFunc func(v Visit) error

// Enter calls f.
func (f VisitFunc) Enter(v Visit) error { return f(v) }

// Leave does nothing.
func (f VisitFunc) Leave(Visit) error { return nil }

// Walk traverses hierarchy trees produced by [Build] in pre-order: each
// root, then its children in their stored order, recursively. Every tree
// position is visited, so a concept with two parents is entered twice.
func Walk(roots []*Node, v Visitor) error {
	seen := map[string]bool{}
	for _, r := range roots {
		if err := walkNode(r, "", 0, seen, v); err != nil {
			return err
		}
	}
	return nil
}

func walkNode(n *Node, parentID string, depth int, seen map[string]bool, v Visitor) error {
	visit := Visit{ParentID: parentID, Concept: n.Concept, Depth: depth, Repeat: seen[n.Concept.ID]}
	seen[n.Concept.ID] = true

	err := v.Enter(visit)
	if err != nil && !errors.Is(err, SkipChildren) {
		return err
	}
	if err == nil {
		for _, c := range n.Children {
			if err := walkNode(c, n.Concept.ID, depth+1, seen, v); err != nil {
				return err
			}
		}
	}
	return v.Leave(visit)
}

// WalkSubset traverses the subgraph induced by allowed: its members and the
// broader -> narrower edges between them.
//
// Walk starts from start when it is a member, then from members without an
// allowed parent, then (for members only reachable through a cycle) from
// whatever is left, each group ordered with [Compare]. Every member is
// entered exactly once with Repeat unset; every edge inside the subset is
// reported exactly once, either as the first entry of its child or as a
// Repeat visit that is not expanded.
func WalkSubset(cat Catalogue, allowed Set, start string, v Visitor) error {
	children := ChildrenMap(cat)
	inSubset := func(id string) bool { return allowed.Has(id) && cat.Has(id) }

	var roots []string
	if inSubset(start) {
		roots = append(roots, start)
	}
	var parentless, rest []string
	for _, id := range allowed.Sorted() {
		if !inSubset(id) || id == start {
			continue
		}
		hasParent := false
		for _, p := range Parents(cat, id) {
			if allowed.Has(p) {
				hasParent = true
				break
			}
		}
		if hasParent {
			rest = append(rest, id)
		} else {
			parentless = append(parentless, id)
		}
	}
	cat.sortIDs(parentless)
	cat.sortIDs(rest)
	roots = append(roots, parentless...)
	roots = append(roots, rest...)

	seen := map[string]bool{}
	var visit func(id, parentID string, depth int) error
	visit = func(id, parentID string, depth int) error {
		vis := Visit{ParentID: parentID, Concept: cat[id], Depth: depth, Repeat: seen[id]}
		if vis.Repeat {
			if err := v.Enter(vis); err != nil && !errors.Is(err, SkipChildren) {
				return err
			}
			return v.Leave(vis)
		}
		seen[id] = true

		err := v.Enter(vis)
		if err != nil && !errors.Is(err, SkipChildren) {
			return err
		}
		if err == nil {
			for _, child := range children[id] {
				if !inSubset(child) {
					continue
				}
				if err := visit(child, id, depth+1); err != nil {
					return err
				}
			}
		}
		return v.Leave(vis)
	}

	for _, id := range roots {
		if seen[id] {
			continue
		}
		if err := visit(id, "", 0); err != nil {
			return err
		}
	}
	return nil
}

// Pairs flattens a tree walk into its (parent, concept) sequence.
func Pairs(roots []*Node) []Visit {
	var out []Visit
	_ = Walk(roots, VisitFunc(func(v Visit) error {
		out = append(out, v)
		return nil
	}))
	return out
}

// SubsetPairs flattens a subset walk into its (parent, concept) sequence.
func SubsetPairs(cat Catalogue, allowed Set, start string) []Visit {
	var out []Visit
	_ = WalkSubset(cat, allowed, start, VisitFunc(func(v Visit) error {
		out = append(out, v)
		return nil
	}))
	return out
}
