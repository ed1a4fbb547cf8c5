package transform

import (
	"testing"

	"github.com/proofgraph/proofgraph/pkg/depgraph"
	"github.com/proofgraph/proofgraph/pkg/depgraph/classify"
)

func node(id string, kind depgraph.Kind) depgraph.Node {
	return depgraph.Node{ID: id, Kind: kind}
}

func edge(from, to string) depgraph.Edge {
	return depgraph.Edge{ID: from + "->" + to, From: from, To: to}
}

func displayOptions() Options {
	opts := DefaultOptions()
	opts.HideTechnical = true
	return opts
}

func hasEdge(edges []depgraph.Edge, from, to string) bool {
	for _, e := range edges {
		if e.From == from && e.To == to {
			return true
		}
	}
	return false
}

func nodeIDs(nodes []depgraph.Node) map[string]bool {
	ids := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		ids[n.ID] = true
	}
	return ids
}

func TestFilter_ElidesInstanceBetweenTheoremAndDefinition(t *testing.T) {
	nodes := []depgraph.Node{
		node("A", depgraph.KindTheorem),
		node("B", depgraph.KindInstance),
		node("C", depgraph.KindDefinition),
	}
	edges := []depgraph.Edge{edge("A", "B"), edge("B", "C")}

	result := Filter(nodes, edges, displayOptions())

	ids := nodeIDs(result.Nodes)
	if len(ids) != 2 || !ids["A"] || !ids["C"] {
		t.Errorf("result nodes = %v, want {A, C}", result.Nodes)
	}
	if len(result.Edges) != 1 || !hasEdge(result.Edges, "A", "C") {
		t.Fatalf("result edges = %v, want a single A→C", result.Edges)
	}
	e := result.Edges[0]
	if !e.Synthetic {
		t.Error("edge A→C should be synthetic")
	}
	if e.Origin != "B" {
		t.Errorf("edge A→C origin = %q, want B", e.Origin)
	}

	want := Stats{RemovedNodes: 1, OrphanedNodes: 0, VirtualEdgesCreated: 1}
	if result.Stats != want {
		t.Errorf("stats = %+v, want %+v", result.Stats, want)
	}
}

func TestFilter_DeadEndInstanceOrphansDependent(t *testing.T) {
	nodes := []depgraph.Node{
		node("A", depgraph.KindTheorem),
		node("B", depgraph.KindInstance),
	}
	edges := []depgraph.Edge{edge("A", "B")}

	result := Filter(nodes, edges, displayOptions())

	if len(result.Nodes) != 0 {
		t.Errorf("result nodes = %v, want none", result.Nodes)
	}
	want := Stats{RemovedNodes: 1, OrphanedNodes: 1, VirtualEdgesCreated: 0}
	if result.Stats != want {
		t.Errorf("stats = %+v, want %+v", result.Stats, want)
	}
}

func TestFilter_TechnicalChainWithDeadEnd(t *testing.T) {
	nodes := []depgraph.Node{
		node("P", depgraph.KindTheorem),
		node("Q", depgraph.KindInstance),
		node("R", depgraph.KindInstance),
	}
	edges := []depgraph.Edge{edge("P", "Q"), edge("Q", "R")}

	result := Filter(nodes, edges, displayOptions())

	if len(result.Nodes) != 0 {
		t.Errorf("result nodes = %v, want none", result.Nodes)
	}
	want := Stats{RemovedNodes: 2, OrphanedNodes: 1, VirtualEdgesCreated: 0}
	if result.Stats != want {
		t.Errorf("stats = %+v, want %+v", result.Stats, want)
	}
}

func TestFilter_Identity(t *testing.T) {
	nodes := []depgraph.Node{
		node("A", depgraph.KindTheorem),
		node("B", depgraph.KindInstance),
		node("orphan", depgraph.KindDefinition),
	}
	edges := []depgraph.Edge{edge("A", "B")}

	result := Filter(nodes, edges, Options{})

	if len(result.Nodes) != len(nodes) {
		t.Errorf("node count = %d, want %d", len(result.Nodes), len(nodes))
	}
	if len(result.Edges) != len(edges) {
		t.Errorf("edge count = %d, want %d", len(result.Edges), len(edges))
	}
	for i, e := range result.Edges {
		if e != edges[i] {
			t.Errorf("edge %d = %+v, want unchanged %+v", i, e, edges[i])
		}
	}
	if result.Stats != (Stats{}) {
		t.Errorf("stats = %+v, want all zero", result.Stats)
	}
}

func TestFilter_Idempotent(t *testing.T) {
	nodes := []depgraph.Node{
		node("thm", depgraph.KindTheorem),
		node("Nat.instAddNat", depgraph.KindDefinition),
		node("lem", depgraph.KindLemma),
		node("def", depgraph.KindDefinition),
	}
	edges := []depgraph.Edge{
		edge("thm", "Nat.instAddNat"),
		edge("Nat.instAddNat", "lem"),
		edge("lem", "def"),
		edge("thm", "def"),
	}

	first := Filter(nodes, edges, displayOptions())
	second := Filter(first.Nodes, first.Edges, displayOptions())

	if second.Stats != (Stats{}) {
		t.Errorf("re-filter stats = %+v, want all zero", second.Stats)
	}
	if len(second.Nodes) != len(first.Nodes) {
		t.Errorf("re-filter node count = %d, want %d", len(second.Nodes), len(first.Nodes))
	}
	if len(second.Edges) != len(first.Edges) {
		t.Errorf("re-filter edge count = %d, want %d", len(second.Edges), len(first.Edges))
	}
}

func TestFilter_PreservesReachabilityThroughChains(t *testing.T) {
	// thm → inst1 → inst2 → {defA, defB}; the filtered graph must connect
	// thm directly to both substantive leaves.
	nodes := []depgraph.Node{
		node("thm", depgraph.KindTheorem),
		node("inst1", depgraph.KindInstance),
		node("inst2", depgraph.KindInstance),
		node("defA", depgraph.KindDefinition),
		node("defB", depgraph.KindDefinition),
	}
	edges := []depgraph.Edge{
		edge("thm", "inst1"),
		edge("inst1", "inst2"),
		edge("inst2", "defA"),
		edge("inst2", "defB"),
	}

	result := Filter(nodes, edges, displayOptions())

	if !hasEdge(result.Edges, "thm", "defA") {
		t.Error("missing synthetic edge thm→defA")
	}
	if !hasEdge(result.Edges, "thm", "defB") {
		t.Error("missing synthetic edge thm→defB")
	}
}

func TestFilter_StopsAtFirstSubstantiveNode(t *testing.T) {
	// thm → inst → lem → def: resolution must stop at lem and not also
	// synthesize thm→def.
	nodes := []depgraph.Node{
		node("thm", depgraph.KindTheorem),
		node("inst", depgraph.KindInstance),
		node("lem", depgraph.KindLemma),
		node("def", depgraph.KindDefinition),
	}
	edges := []depgraph.Edge{
		edge("thm", "inst"),
		edge("inst", "lem"),
		edge("lem", "def"),
	}

	result := Filter(nodes, edges, displayOptions())

	if !hasEdge(result.Edges, "thm", "lem") {
		t.Error("missing synthetic edge thm→lem")
	}
	if hasEdge(result.Edges, "thm", "def") {
		t.Error("unexpected edge thm→def: resolution continued past a substantive node")
	}
}

func TestFilter_NoTechnicalEndpoints(t *testing.T) {
	nodes := []depgraph.Node{
		node("t1", depgraph.KindTheorem),
		node("t2", depgraph.KindTheorem),
		node("i1", depgraph.KindInstance),
		node("i2", depgraph.KindInstance),
		node("d1", depgraph.KindDefinition),
	}
	edges := []depgraph.Edge{
		edge("t1", "i1"),
		edge("i1", "i2"),
		edge("i2", "d1"),
		edge("t2", "i2"),
		edge("i1", "t2"),
		edge("t1", "t2"),
	}

	result := Filter(nodes, edges, displayOptions())

	technical := map[string]bool{"i1": true, "i2": true}
	for _, e := range result.Edges {
		if technical[e.From] || technical[e.To] {
			t.Errorf("edge %s→%s has a technical endpoint", e.From, e.To)
		}
	}
}

func TestFilter_DeduplicatesVirtualEdges(t *testing.T) {
	// Two parallel technical paths thm→{instA,instB}→def must yield a
	// single thm→def edge.
	nodes := []depgraph.Node{
		node("thm", depgraph.KindTheorem),
		node("instA", depgraph.KindInstance),
		node("instB", depgraph.KindInstance),
		node("def", depgraph.KindDefinition),
	}
	edges := []depgraph.Edge{
		edge("thm", "instA"),
		edge("thm", "instB"),
		edge("instA", "def"),
		edge("instB", "def"),
	}

	opts := displayOptions()
	opts.TransitiveReduction = false
	result := Filter(nodes, edges, opts)

	seen := make(map[[2]string]int)
	for _, e := range result.Edges {
		seen[[2]string{e.From, e.To}]++
	}
	for pair, count := range seen {
		if count > 1 {
			t.Errorf("edge %s→%s appears %d times, want 1", pair[0], pair[1], count)
		}
	}
	if result.Stats.VirtualEdgesCreated != 1 {
		t.Errorf("VirtualEdgesCreated = %d, want 1", result.Stats.VirtualEdgesCreated)
	}
}

func TestFilter_VirtualNotDuplicatingOriginal(t *testing.T) {
	// thm already depends on def directly; the rewired path through inst
	// must not add a second thm→def edge.
	nodes := []depgraph.Node{
		node("thm", depgraph.KindTheorem),
		node("inst", depgraph.KindInstance),
		node("def", depgraph.KindDefinition),
	}
	edges := []depgraph.Edge{
		edge("thm", "def"),
		edge("thm", "inst"),
		edge("inst", "def"),
	}

	opts := displayOptions()
	opts.TransitiveReduction = false
	result := Filter(nodes, edges, opts)

	if len(result.Edges) != 1 {
		t.Fatalf("result edges = %v, want a single thm→def", result.Edges)
	}
	if result.Edges[0].Synthetic {
		t.Error("surviving edge should be the original, not the synthetic duplicate")
	}
}

func TestFilter_CyclicTechnicalChainTerminates(t *testing.T) {
	// instA and instB depend on each other; the resolver must terminate
	// and still find def behind the cycle.
	nodes := []depgraph.Node{
		node("thm", depgraph.KindTheorem),
		node("instA", depgraph.KindInstance),
		node("instB", depgraph.KindInstance),
		node("def", depgraph.KindDefinition),
	}
	edges := []depgraph.Edge{
		edge("thm", "instA"),
		edge("instA", "instB"),
		edge("instB", "instA"),
		edge("instB", "def"),
	}

	result := Filter(nodes, edges, displayOptions())

	if !hasEdge(result.Edges, "thm", "def") {
		t.Error("missing synthetic edge thm→def through the cyclic technical chain")
	}
}

func TestFilter_DropsDanglingEdges(t *testing.T) {
	nodes := []depgraph.Node{
		node("a", depgraph.KindTheorem),
		node("b", depgraph.KindDefinition),
	}
	edges := []depgraph.Edge{
		edge("a", "b"),
		edge("a", "ghost"),
		edge("ghost", "b"),
	}

	result := Filter(nodes, edges, Options{})

	if len(result.Edges) != 1 || !hasEdge(result.Edges, "a", "b") {
		t.Errorf("result edges = %v, want only a→b", result.Edges)
	}
}

func TestFilter_EmptyInput(t *testing.T) {
	result := Filter(nil, nil, displayOptions())

	if len(result.Nodes) != 0 || len(result.Edges) != 0 {
		t.Errorf("result = %+v, want empty", result)
	}
	if result.Stats != (Stats{}) {
		t.Errorf("stats = %+v, want all zero", result.Stats)
	}
}

func TestFilter_OrphanInvariant(t *testing.T) {
	nodes := []depgraph.Node{
		node("a", depgraph.KindTheorem),
		node("b", depgraph.KindLemma),
		node("lonely", depgraph.KindDefinition),
	}
	edges := []depgraph.Edge{edge("a", "b")}

	result := Filter(nodes, edges, displayOptions())

	degree := make(map[string]int)
	for _, e := range result.Edges {
		degree[e.From]++
		degree[e.To]++
	}
	for _, n := range result.Nodes {
		if degree[n.ID] == 0 {
			t.Errorf("node %s is an orphan in the result", n.ID)
		}
	}
	if result.Stats.OrphanedNodes != 1 {
		t.Errorf("OrphanedNodes = %d, want 1", result.Stats.OrphanedNodes)
	}
}

func TestFilter_CustomClassifier(t *testing.T) {
	nodes := []depgraph.Node{
		node("keep", depgraph.KindTheorem),
		node("_aux", depgraph.KindTheorem),
		node("target", depgraph.KindTheorem),
	}
	edges := []depgraph.Edge{edge("keep", "_aux"), edge("_aux", "target")}

	opts := displayOptions()
	opts.Classifier = classify.Func(func(n depgraph.Node) bool {
		return n.ID[0] == '_'
	})
	result := Filter(nodes, edges, opts)

	ids := nodeIDs(result.Nodes)
	if ids["_aux"] {
		t.Error("_aux should have been elided by the custom policy")
	}
	if !hasEdge(result.Edges, "keep", "target") {
		t.Error("missing synthetic edge keep→target")
	}
}
