package transform

import (
	"github.com/proofgraph/proofgraph/pkg/depgraph"
	"github.com/proofgraph/proofgraph/pkg/depgraph/classify"
)

// Options configures which passes [Filter] applies.
//
// The zero value disables everything and yields the input unchanged (modulo
// dangling-edge removal); use [DefaultOptions] for the standard display
// configuration.
type Options struct {
	// HideTechnical removes technical (infrastructure) nodes and rewires
	// their neighbors with virtual edges. Default false.
	HideTechnical bool

	// HideOrphaned removes nodes left with zero incident edges after the
	// other passes. Default true.
	HideOrphaned bool

	// TransitiveReduction removes edges already implied by a longer
	// surviving path. Default true.
	TransitiveReduction bool

	// Classifier decides which nodes are technical. Nil selects
	// classify.Default (the Lean instance-name convention).
	Classifier classify.Classifier
}

// DefaultOptions returns the standard display configuration: orphan pruning
// and transitive reduction on, technical nodes shown.
func DefaultOptions() Options {
	return Options{
		HideOrphaned:        true,
		TransitiveReduction: true,
	}
}

// Stats reports what one [Filter] call did.
type Stats struct {
	// RemovedNodes is the number of technical nodes elided.
	RemovedNodes int `json:"removed_nodes"`

	// OrphanedNodes is the number of edge-less nodes pruned.
	OrphanedNodes int `json:"orphaned_nodes"`

	// VirtualEdgesCreated is the number of synthetic edges present in the
	// final output, after reduction and orphan pruning may have removed some.
	VirtualEdgesCreated int `json:"virtual_edges_created"`
}

// Result is the display-ready graph produced by [Filter].
//
// Results have no identity beyond a single call: they are recomputed
// whenever the input snapshot or options change, and previous results are
// simply discarded. Every edge references only node IDs present in Nodes.
type Result struct {
	Nodes []depgraph.Node
	Edges []depgraph.Edge
	Stats Stats
}
