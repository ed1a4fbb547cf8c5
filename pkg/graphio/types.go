package graphio

import (
	"slices"
	"strings"

	"github.com/proofgraph/proofgraph/pkg/depgraph"
	"github.com/proofgraph/proofgraph/pkg/depgraph/transform"
)

// Document is the canonical serialization format for raw proof-dependency
// snapshots as produced by upstream parsers. Used for file input, API
// requests, storage, and caching.
//
// The format is designed for round-trip fidelity: import → filter → export
// → re-import of the unfiltered document produces identical results.
type Document struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is the wire representation of a proof artifact.
type Node struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name,omitempty" bson:"name,omitempty"` // Defaults to ID
	Kind string `json:"kind,omitempty" bson:"kind,omitempty"`
}

// Edge is the wire representation of a dependency edge.
// Synthetic and Origin are only populated on filtered output, letting
// renderers style virtual edges differently from parsed ones.
type Edge struct {
	ID        string `json:"id,omitempty" bson:"id,omitempty"`
	From      string `json:"from" bson:"from"`
	To        string `json:"to" bson:"to"`
	Synthetic bool   `json:"synthetic,omitempty" bson:"synthetic,omitempty"`
	Origin    string `json:"origin,omitempty" bson:"origin,omitempty"`
}

// FilteredDocument is the wire representation of a filtering result:
// the display-ready graph plus the statistics of the producing call.
type FilteredDocument struct {
	Nodes []Node          `json:"nodes" bson:"nodes"`
	Edges []Edge          `json:"edges" bson:"edges"`
	Stats transform.Stats `json:"stats" bson:"stats"`
}

// FromSnapshot converts node and edge slices to a Document.
// Nodes are sorted by ID for deterministic output; edge order is preserved.
func FromSnapshot(nodes []depgraph.Node, edges []depgraph.Edge) Document {
	doc := Document{
		Nodes: make([]Node, len(nodes)),
		Edges: make([]Edge, len(edges)),
	}
	for i, n := range nodes {
		doc.Nodes[i] = nodeToWire(n)
	}
	slices.SortFunc(doc.Nodes, func(a, b Node) int { return strings.Compare(a.ID, b.ID) })
	for i, e := range edges {
		doc.Edges[i] = edgeToWire(e)
	}
	return doc
}

// FromResult converts a filtering result to its wire format.
// Node and edge order is preserved exactly as the engine emitted it.
func FromResult(r transform.Result) FilteredDocument {
	doc := FilteredDocument{
		Nodes: make([]Node, len(r.Nodes)),
		Edges: make([]Edge, len(r.Edges)),
		Stats: r.Stats,
	}
	for i, n := range r.Nodes {
		doc.Nodes[i] = nodeToWire(n)
	}
	for i, e := range r.Edges {
		doc.Edges[i] = edgeToWire(e)
	}
	return doc
}

// Snapshot converts the document to the engine's node and edge slices.
func (d Document) Snapshot() ([]depgraph.Node, []depgraph.Edge) {
	nodes := make([]depgraph.Node, len(d.Nodes))
	for i, n := range d.Nodes {
		nodes[i] = nodeFromWire(n)
	}
	edges := make([]depgraph.Edge, len(d.Edges))
	for i, e := range d.Edges {
		edges[i] = edgeFromWire(e)
	}
	return nodes, edges
}

// ToGraph builds an indexed graph from the document. Returns an error for
// duplicate or empty node IDs; edges referencing unknown nodes are dropped,
// matching the engine's tolerance for malformed upstream data.
func (d Document) ToGraph() (*depgraph.Graph, error) {
	g := depgraph.New()
	for _, n := range d.Nodes {
		if err := g.AddNode(nodeFromWire(n)); err != nil {
			return nil, err
		}
	}
	for _, e := range d.Edges {
		if _, ok := g.Node(e.From); !ok {
			continue
		}
		if _, ok := g.Node(e.To); !ok {
			continue
		}
		if err := g.AddEdge(edgeFromWire(e)); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Result converts the document back to a transform.Result.
func (d FilteredDocument) Result() transform.Result {
	r := transform.Result{
		Nodes: make([]depgraph.Node, len(d.Nodes)),
		Edges: make([]depgraph.Edge, len(d.Edges)),
		Stats: d.Stats,
	}
	for i, n := range d.Nodes {
		r.Nodes[i] = nodeFromWire(n)
	}
	for i, e := range d.Edges {
		r.Edges[i] = edgeFromWire(e)
	}
	return r
}

func nodeToWire(n depgraph.Node) Node {
	return Node{ID: n.ID, Name: n.Name, Kind: string(n.Kind)}
}

func nodeFromWire(n Node) depgraph.Node {
	return depgraph.Node{ID: n.ID, Name: n.Name, Kind: depgraph.Kind(n.Kind)}
}

func edgeToWire(e depgraph.Edge) Edge {
	return Edge{ID: e.ID, From: e.From, To: e.To, Synthetic: e.Synthetic, Origin: e.Origin}
}

func edgeFromWire(e Edge) depgraph.Edge {
	return depgraph.Edge{ID: e.ID, From: e.From, To: e.To, Synthetic: e.Synthetic, Origin: e.Origin}
}
