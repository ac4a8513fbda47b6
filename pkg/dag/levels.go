package dag

import (
	"maps"
	"slices"
)

// AssignLevels sets every node's Level to its shortest distance from a
// source node, walking edges breadth-first.
//
// Unlike a longest-path layering this never needs the graph to be acyclic:
// each node is dequeued once. Nodes reachable only through a cycle (no
// source above them) are seeded at level 0 in ID order after the sources
// are exhausted, so every node ends up with a level.
func AssignLevels(g *DAG) {
	level := make(map[string]int, len(g.nodes))
	seen := make(map[string]bool, len(g.nodes))

	bfs := func(seeds []string) {
		queue := slices.Clone(seeds)
		for _, s := range seeds {
			seen[s] = true
			level[s] = 0
		}
		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			for _, child := range g.outgoing[curr] {
				if seen[child] {
					continue
				}
				seen[child] = true
				level[child] = level[curr] + 1
				queue = append(queue, child)
			}
		}
	}

	bfs(NodeIDs(g.Sources()))
	for _, id := range slices.Sorted(maps.Keys(g.nodes)) {
		if !seen[id] {
			bfs([]string{id})
		}
	}

	for id, n := range g.nodes {
		n.Level = level[id]
	}
}

// Levels groups node IDs by level. IDs within a level are sorted.
func (d *DAG) Levels() map[int][]string {
	out := make(map[int][]string)
	for _, n := range d.Nodes() {
		out[n.Level] = append(out[n.Level], n.ID)
	}
	return out
}

// MaxLevel returns the deepest level, or 0 for an empty graph.
func (d *DAG) MaxLevel() int {
	maxLevel := 0
	for _, n := range d.nodes {
		maxLevel = max(maxLevel, n.Level)
	}
	return maxLevel
}
