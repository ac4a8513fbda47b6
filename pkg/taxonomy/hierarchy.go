package taxonomy

// Node is one position of a concept in a hierarchy view. A concept with
// several broader parents gets a separate Node under each of them; Nodes are
// never shared between positions.
type Node struct {
	Concept  Concept
	Children []*Node
}

// BuildOptions configures [Build].
type BuildOptions struct {
	// RootID names the concept that, when it is a root candidate, is
	// returned as the only root. Empty means [WellKnownRoot].
	RootID string
}

// Build assembles the catalogue into ordered hierarchy trees.
//
// Root candidates are concepts without a broader parent in the catalogue.
// When the designated root is among them it is returned alone, otherwise
// every candidate is returned. Children at every level are ordered with
// [Compare]. A concept whose broader chain loops back on itself is not
// expanded again beneath its own position, so a malformed catalogue cannot
// make the tree infinite.
func Build(cat Catalogue, opts BuildOptions) []*Node {
	rootID := opts.RootID
	if rootID == "" {
		rootID = WellKnownRoot
	}

	children := ChildrenMap(cat)
	var candidates []string
	for _, id := range cat.IDs() {
		if IsRootCandidate(cat, id) {
			candidates = append(candidates, id)
		}
	}
	if cat.Has(rootID) && IsRootCandidate(cat, rootID) {
		candidates = []string{rootID}
	}
	cat.sortIDs(candidates)

	roots := make([]*Node, 0, len(candidates))
	for _, id := range candidates {
		roots = append(roots, buildNode(cat, children, id, map[string]bool{}))
	}
	return roots
}

// BuildFrom returns the hierarchy below a single concept, regardless of
// whether it has broader parents. ok is false when id is unknown.
func BuildFrom(cat Catalogue, id string) (root *Node, ok bool) {
	if !cat.Has(id) {
		return nil, false
	}
	return buildNode(cat, ChildrenMap(cat), id, map[string]bool{}), true
}

func buildNode(cat Catalogue, children map[string][]string, id string, path map[string]bool) *Node {
	n := &Node{Concept: cat[id]}
	path[id] = true
	for _, child := range children[id] {
		if path[child] {
			continue
		}
		n.Children = append(n.Children, buildNode(cat, children, child, path))
	}
	delete(path, id)
	return n
}

// Size returns the number of positions in the tree rooted at n.
func (n *Node) Size() int {
	size := 1
	for _, c := range n.Children {
		size += c.Size()
	}
	return size
}

// Find returns the first node for id in pre-order, or nil.
func (n *Node) Find(id string) *Node {
	if n.Concept.ID == id {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}
