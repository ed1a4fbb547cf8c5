package transform

import "github.com/proofgraph/proofgraph/pkg/depgraph"

// PruneOrphans returns the nodes that have at least one incident edge
// (incoming or outgoing) in edges, preserving input order, along with the
// number of orphans removed. The input slices are not mutated.
//
// A single pass suffices: removing a degree-zero node cannot change any
// other node's degree, so no fixpoint loop is needed.
func PruneOrphans(nodes []depgraph.Node, edges []depgraph.Edge) ([]depgraph.Node, int) {
	incident := make(map[string]bool, len(edges)*2)
	for _, e := range edges {
		incident[e.From] = true
		incident[e.To] = true
	}

	kept := make([]depgraph.Node, 0, len(nodes))
	orphaned := 0
	for _, n := range nodes {
		if incident[n.ID] {
			kept = append(kept, n)
		} else {
			orphaned++
		}
	}
	return kept, orphaned
}
