package transform

import "github.com/proofgraph/proofgraph/pkg/depgraph"

// TransitiveReduction returns the edges that survive removal of redundant
// dependencies: an edge (a, b) is dropped when a path a → … → b of length
// at least two exists through the other edges. If A→B, B→C, and A→C all
// exist, A→C is implied by the longer path and removed.
//
// Each edge's removal decision tests reachability through an intermediate
// node, so decisions are independent of one another and the output is
// stable regardless of input order. Input order is preserved for the
// surviving edges and the input slice is not mutated.
//
// Worst case cost is O(V·E): one reachability probe per distinct source.
// That is acceptable for realistic proof-library sizes behind a user
// toggle, but is the first candidate for incremental evaluation if graphs
// grow very large.
func TransitiveReduction(edges []depgraph.Edge) []depgraph.Edge {
	if len(edges) == 0 {
		return edges
	}

	adjacency := make(map[string][]string, len(edges))
	for _, e := range edges {
		adjacency[e.From] = append(adjacency[e.From], e.To)
	}

	// Lazily computed full reachability per source node.
	reachable := make(map[string]map[string]bool)
	reachFrom := func(id string) map[string]bool {
		if r, ok := reachable[id]; ok {
			return r
		}
		r := make(map[string]bool)
		stack := []string{id}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, next := range adjacency[cur] {
				if !r[next] {
					r[next] = true
					stack = append(stack, next)
				}
			}
		}
		reachable[id] = r
		return r
	}

	out := make([]depgraph.Edge, 0, len(edges))
	for _, e := range edges {
		redundant := false
		for _, intermediate := range adjacency[e.From] {
			if intermediate != e.To && reachFrom(intermediate)[e.To] {
				redundant = true
				break
			}
		}
		if !redundant {
			out = append(out, e)
		}
	}
	return out
}
