// Package taxonomy models the Modes of Demise concept scheme and derives
// everything the renderers need from it.
//
// A [Catalogue] is the flat id -> [Concept] map produced by the ttl package.
// It is treated as read-only: every derived structure (children adjacency,
// nested hierarchy views, induced subgraphs) is built alongside it rather
// than by attaching fields to the parsed records.
//
// # Parent/child relation
//
// The authoritative hierarchy comes from skos:broader. [ChildrenMap] inverts
// broader references, silently dropping targets that are not in the
// catalogue. Declared skos:narrower values are kept on the concept for
// diagnostics ([NarrowerMismatches]) but never used to build edges.
//
// # Ordering
//
// Siblings are always ordered with [Compare]: display label first, then id.
// No result in this package depends on map iteration order, so the same
// catalogue always yields the same trees, walks and edge lists.
//
// # Traversal
//
// [Reachable] is a breadth-first walk with a visited set, so cycles and
// diamond shapes terminate without double counting. [Descendants] excludes
// the starting concept, [Subset] includes it; both return an empty set for an
// unknown root.
//
// # Serialization
//
// [Walk] and [WalkSubset] drive a [Visitor] in deterministic pre-order. The
// HTML hierarchy writer and the graph builder ([ToDAG]) are both visitors.
package taxonomy
