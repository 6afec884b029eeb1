package depsolve

import "sort"

// Reduce computes the transitive reduction of the "waits-on" edge set: the
// minimal edge set whose transitive closure equals the closure of edges.
// Because encoder indices are already a valid topological order (an encoder
// can only depend on encoders that preceded it), the reduction reduces to,
// for each node, dropping any edge to a node reachable through another edge.
// The emitted fence set never exceeds the full dependency matrix, and is
// usually far smaller.
func Reduce(n int, edges []Edge) []Edge {
	adj := make([][]int, n)
	for _, e := range edges {
		adj[e.From] = append(adj[e.From], e.To)
	}
	for i := range adj {
		sort.Ints(adj[i])
	}

	// reachable[i] holds every node reachable from i by following one or
	// more edges (i.e. excludes i itself unless a cycle exists, which
	// shouldn't occur for a DAG of submission-ordered encoders).
	// Edges always point to an earlier encoder (To < From), so walking
	// upward guarantees reachable[to] is complete before node i reads it.
	reachable := make([]map[int]bool, n)
	for i := 0; i < n; i++ {
		set := make(map[int]bool)
		for _, to := range adj[i] {
			set[to] = true
			for r := range reachable[to] {
				set[r] = true
			}
		}
		reachable[i] = set
	}

	var reduced []Edge
	for from := 0; from < n; from++ {
		for _, to := range adj[from] {
			redundant := false
			for _, mid := range adj[from] {
				if mid != to && reachable[mid][to] {
					redundant = true
					break
				}
			}
			if !redundant {
				reduced = append(reduced, Edge{From: from, To: to})
			}
		}
	}
	return reduced
}
