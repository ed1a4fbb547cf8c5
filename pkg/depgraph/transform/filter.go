package transform

import (
	"fmt"

	"github.com/proofgraph/proofgraph/pkg/depgraph"
	"github.com/proofgraph/proofgraph/pkg/depgraph/classify"
)

// Filter converts a raw proof-dependency snapshot into a display-ready
// graph according to opts. The input slices are never mutated.
//
// Filter is total: edges referencing unknown node IDs are dropped rather
// than reported, and empty input yields an empty well-formed result. See
// the package documentation for the pass pipeline.
func Filter(nodes []depgraph.Node, edges []depgraph.Edge, opts Options) Result {
	classifier := opts.Classifier
	if classifier == nil {
		classifier = classify.Default()
	}

	nodeByID := make(map[string]depgraph.Node, len(nodes))
	for _, n := range nodes {
		nodeByID[n.ID] = n
	}

	// Dangling endpoints are upstream bugs, not ours to surface.
	valid := edges[:0:0]
	for _, e := range edges {
		if _, ok := nodeByID[e.From]; !ok {
			continue
		}
		if _, ok := nodeByID[e.To]; !ok {
			continue
		}
		valid = append(valid, e)
	}

	var result Result
	var created map[string]bool
	if opts.HideTechnical {
		result, created = elideTechnical(nodes, valid, classifier)
	} else {
		result = Result{Nodes: append([]depgraph.Node(nil), nodes...), Edges: valid}
	}

	if opts.TransitiveReduction {
		result.Edges = TransitiveReduction(result.Edges)
	}

	if opts.HideOrphaned {
		kept, orphaned := PruneOrphans(result.Nodes, result.Edges)
		result.Nodes = kept
		result.Stats.OrphanedNodes = orphaned
	}

	// Count only edges synthesized by this call that survived the later
	// passes. Synthetic edges from a previous filtering that merely pass
	// through are not "created" again, which keeps Filter idempotent.
	for _, e := range result.Edges {
		if e.Synthetic && created[e.ID] {
			result.Stats.VirtualEdgesCreated++
		}
	}

	return result
}

// elideTechnical removes technical nodes and rewires reachability with
// synthetic edges. Edges sourced at a technical node are dropped outright:
// the source cannot appear in the output, and its contribution to
// reachability is already captured when the node is resolved as a target.
func elideTechnical(nodes []depgraph.Node, edges []depgraph.Edge, classifier classify.Classifier) (Result, map[string]bool) {
	technical := make(map[string]bool)
	kept := make([]depgraph.Node, 0, len(nodes))
	for _, n := range nodes {
		if classifier.IsTechnical(n) {
			technical[n.ID] = true
		} else {
			kept = append(kept, n)
		}
	}

	adjacency := make(map[string][]string, len(edges))
	for _, e := range edges {
		adjacency[e.From] = append(adjacency[e.From], e.To)
	}
	res := newResolver(adjacency, technical)

	type pair struct{ from, to string }
	seen := make(map[pair]bool, len(edges))
	out := make([]depgraph.Edge, 0, len(edges))
	created := make(map[string]bool)

	// Originals first so a synthetic edge can never displace a parsed one
	// covering the same pair, regardless of input order.
	for _, e := range edges {
		if technical[e.From] || technical[e.To] {
			continue
		}
		if p := (pair{e.From, e.To}); !seen[p] {
			seen[p] = true
			out = append(out, e)
		}
	}

	for _, e := range edges {
		if technical[e.From] || !technical[e.To] {
			continue
		}
		for _, dep := range res.effectiveDeps(e.To) {
			// A technical cycle folding back onto the dependent itself
			// would fabricate a self-loop; skip it.
			if dep == e.From {
				continue
			}
			p := pair{e.From, dep}
			if seen[p] {
				continue
			}
			seen[p] = true
			id := fmt.Sprintf("virtual:%s->%s", e.From, dep)
			created[id] = true
			out = append(out, depgraph.Edge{
				ID:        id,
				From:      e.From,
				To:        dep,
				Synthetic: true,
				Origin:    e.To,
			})
		}
	}

	return Result{
		Nodes: kept,
		Edges: out,
		Stats: Stats{RemovedNodes: len(technical)},
	}, created
}
