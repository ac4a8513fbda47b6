package taxonomy

import "slices"

// Relation names used in diagnostics.
const (
	RelationBroader  = "broader"
	RelationNarrower = "narrower"
)

// Reference is a relation from one concept to another.
type Reference struct {
	From     string
	To       string
	Relation string
}

// ChildrenMap inverts broader references into a parent -> children
// adjacency. Every concept has an entry (possibly empty). Broader targets
// missing from the catalogue are dropped, repeated references collapse to
// one edge, and each child list is ordered with [Compare].
func ChildrenMap(cat Catalogue) map[string][]string {
	children := make(map[string][]string, len(cat))
	for id := range cat {
		children[id] = nil
	}
	for _, id := range cat.IDs() {
		for _, parent := range cat[id].Broader {
			if !cat.Has(parent) || slices.Contains(children[parent], id) {
				continue
			}
			children[parent] = append(children[parent], id)
		}
	}
	for _, kids := range children {
		cat.sortIDs(kids)
	}
	return children
}

// Parents returns the broader concepts of id that exist in the catalogue,
// ordered with [Compare].
func Parents(cat Catalogue, id string) []string {
	var parents []string
	for _, p := range cat[id].Broader {
		if cat.Has(p) && !slices.Contains(parents, p) {
			parents = append(parents, p)
		}
	}
	cat.sortIDs(parents)
	return parents
}

// IsRootCandidate reports whether a concept has no broader parent inside
// the catalogue.
func IsRootCandidate(cat Catalogue, id string) bool {
	return len(Parents(cat, id)) == 0
}

// Reachable returns every id reachable from start in breadth-first order.
// Each id appears once; already visited ids are never enqueued again, which
// makes the walk safe on cycles. start is the first element when
// includeStart is set and is omitted otherwise, even if a cycle leads back
// to it. A start absent from children yields nil.
func Reachable(children map[string][]string, start string, includeStart bool) []string {
	if _, ok := children[start]; !ok {
		return nil
	}

	visited := map[string]bool{start: true}
	queue := []string{start}
	var order []string
	if includeStart {
		order = append(order, start)
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, child := range children[curr] {
			if visited[child] {
				continue
			}
			visited[child] = true
			order = append(order, child)
			queue = append(queue, child)
		}
	}
	return order
}

// Set is an unordered collection of concept ids.
type Set map[string]struct{}

// NewSet builds a set from ids.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ReachableSet is [Reachable] collected into a [Set].
func ReachableSet(children map[string][]string, start string, includeStart bool) Set {
	return NewSet(Reachable(children, start, includeStart)...)
}

// Descendants returns every concept narrower than root, directly or
// transitively. root itself is never included. An unknown root yields an
// empty set.
func Descendants(cat Catalogue, root string) Set {
	return ReachableSet(ChildrenMap(cat), root, false)
}

// Subset returns root together with all of its descendants: the node set of
// the subgraph induced by root. An unknown root yields an empty set.
func Subset(cat Catalogue, root string) Set {
	return ReachableSet(ChildrenMap(cat), root, true)
}

// CountDescendants returns len(Descendants(cat, root)).
func CountDescendants(cat Catalogue, root string) int {
	return len(Descendants(cat, root))
}

// Dangling lists broader and narrower references whose target is missing
// from the catalogue, ordered by source id, relation and target.
func Dangling(cat Catalogue) []Reference {
	var refs []Reference
	for _, id := range cat.IDs() {
		c := cat[id]
		for _, b := range c.Broader {
			if !cat.Has(b) {
				refs = append(refs, Reference{From: id, To: b, Relation: RelationBroader})
			}
		}
		for _, n := range c.Narrower {
			if !cat.Has(n) {
				refs = append(refs, Reference{From: id, To: n, Relation: RelationNarrower})
			}
		}
	}
	return refs
}

// NarrowerMismatches lists declared narrower relations that are not backed
// by a broader reference on the target concept. These edges are ignored
// when building the hierarchy.
func NarrowerMismatches(cat Catalogue) []Reference {
	var refs []Reference
	for _, id := range cat.IDs() {
		for _, n := range cat[id].Narrower {
			target, ok := cat[n]
			if !ok || slices.Contains(target.Broader, id) {
				continue
			}
			refs = append(refs, Reference{From: id, To: n, Relation: RelationNarrower})
		}
	}
	return refs
}
