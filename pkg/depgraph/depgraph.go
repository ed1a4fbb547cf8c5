package depgraph

import (
	"errors"
	"slices"
	"strings"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists. Node IDs must be unique across the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist in the graph.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidEdgeEndpoint is returned by [Graph.Validate] when an edge
	// references a node that doesn't exist. This indicates graph corruption.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrGraphHasCycle is returned by [Graph.Validate] when a directed cycle
	// is detected in the dependency relation.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Kind is the declaration category of a proof artifact as reported by the
// upstream parser. The set is open-ended: unrecognized categories are carried
// through as-is and treated as substantive content.
type Kind string

// Declaration kinds emitted by proof-system front ends.
const (
	KindTheorem    Kind = "theorem"
	KindLemma      Kind = "lemma"
	KindDefinition Kind = "definition"
	KindInstance   Kind = "instance"
	KindAxiom      Kind = "axiom"
	KindInductive  Kind = "inductive"
	KindStructure  Kind = "structure"
	KindOther      Kind = "other"
)

// Node is a proof artifact in the dependency graph: a theorem, definition,
// type-class instance, or similar declaration.
//
// Nodes are owned by the caller and treated as immutable snapshots: the
// engine never mutates them, it only filters references to them.
type Node struct {
	ID   string // Unique, stable identifier
	Name string // Fully qualified declaration name (defaults to ID when empty)
	Kind Kind   // Declaration category
}

// DisplayName returns the name if set, otherwise the ID.
func (n Node) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// ShortName returns the unqualified segment of the node's name: everything
// after the last namespace separator. For "Nat.instAddNat" it returns
// "instAddNat"; names without a separator are returned unchanged.
func (n Node) ShortName() string {
	name := n.DisplayName()
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Edge is a directed dependency between two proof artifacts.
// Direction encodes "From depends on To".
//
// Synthetic edges are created by the filtering engine to preserve
// reachability after technical nodes are elided; Origin records the
// technical node whose elision produced the edge.
type Edge struct {
	ID        string // Identifier ("virtual:" prefix for synthetic edges)
	From      string // Source node ID (the dependent)
	To        string // Target node ID (the dependency)
	Synthetic bool   // True for edges synthesized during filtering
	Origin    string // Technical node elided to create this edge, if synthetic
}

// Graph is an indexed, mutable view over a proof-dependency snapshot. It
// maintains adjacency in both directions for O(1) neighbor lookups and is
// used by the surrounding application to hold the authoritative edge set
// (parsed edges plus accepted custom edges).
//
// The zero value is not usable - use New. Graph is not safe for concurrent
// use without external synchronization.
type Graph struct {
	nodes    map[string]*Node
	edges    []Edge
	outgoing map[string][]string // nodeID -> dependency IDs
	incoming map[string][]string // nodeID -> dependent IDs
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode adds a node to the graph. Returns ErrInvalidNodeID if the node ID
// is empty, or ErrDuplicateNodeID if a node with the same ID already exists.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := n
	g.nodes[node.ID] = &node
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode if an endpoint is
// missing. Parallel edges between the same nodes are allowed; callers that
// need a simple graph must deduplicate themselves.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	return nil
}

// RemoveEdge removes the edge from→to if it exists.
// No error is returned if the edge does not exist. If multiple edges exist
// between the same nodes, all of them are removed.
func (g *Graph) RemoveEdge(from, to string) {
	g.edges = slices.DeleteFunc(g.edges, func(e Edge) bool { return e.From == from && e.To == to })
	g.outgoing[from] = slices.DeleteFunc(g.outgoing[from], func(s string) bool { return s == to })
	g.incoming[to] = slices.DeleteFunc(g.incoming[to], func(s string) bool { return s == from })
}

// Node returns the node with the given ID and true, or a zero Node and
// false if not found.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Nodes returns all nodes sorted by ID for deterministic iteration.
func (g *Graph) Nodes() []Node {
	nodes := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, *n)
	}
	slices.SortFunc(nodes, func(a, b Node) int { return strings.Compare(a.ID, b.ID) })
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the IDs of nodes this node depends on.
// The returned slice is a read-only view; do not modify it.
func (g *Graph) Children(id string) []string { return g.outgoing[id] }

// Parents returns the IDs of nodes that depend on this node.
// The returned slice is a read-only view; do not modify it.
func (g *Graph) Parents(id string) []string { return g.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Degree returns the total number of incident edges (incoming + outgoing).
func (g *Graph) Degree(id string) int { return len(g.incoming[id]) + len(g.outgoing[id]) }

// Sources returns nodes with no incoming edges: top-level results nothing
// else depends on. Order follows Nodes (sorted by ID).
func (g *Graph) Sources() []Node {
	var sources []Node
	for _, n := range g.Nodes() {
		if len(g.incoming[n.ID]) == 0 {
			sources = append(sources, n)
		}
	}
	return sources
}

// Sinks returns nodes with no outgoing edges: foundational declarations that
// depend on nothing. Order follows Nodes (sorted by ID).
func (g *Graph) Sinks() []Node {
	var sinks []Node
	for _, n := range g.Nodes() {
		if len(g.outgoing[n.ID]) == 0 {
			sinks = append(sinks, n)
		}
	}
	return sinks
}

// Clone returns a deep copy of the graph. Mutations of the copy do not
// affect the original.
func (g *Graph) Clone() *Graph {
	c := New()
	for _, n := range g.nodes {
		node := *n
		c.nodes[node.ID] = &node
	}
	c.edges = slices.Clone(g.edges)
	for id, out := range g.outgoing {
		c.outgoing[id] = slices.Clone(out)
	}
	for id, in := range g.incoming {
		c.incoming[id] = slices.Clone(in)
	}
	return c
}

// Validate checks graph integrity and returns nil if valid.
// It verifies that all edges connect existing nodes and that the dependency
// relation is acyclic. Returns ErrInvalidEdgeEndpoint or ErrGraphHasCycle.
//
// Cycle detection runs in O(V+E) time using an iterative depth-first search,
// so deep dependency chains cannot exhaust the goroutine stack.
func (g *Graph) Validate() error {
	for _, e := range g.edges {
		if _, ok := g.nodes[e.From]; !ok {
			return ErrInvalidEdgeEndpoint
		}
		if _, ok := g.nodes[e.To]; !ok {
			return ErrInvalidEdgeEndpoint
		}
	}
	if g.hasCycle() {
		return ErrGraphHasCycle
	}
	return nil
}

// hasCycle detects a directed cycle using iterative DFS with
// white/gray/black coloring.
func (g *Graph) hasCycle() bool {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.nodes))

	type frame struct {
		id   string
		next int // index into outgoing[id]
	}

	for id := range g.nodes {
		if color[id] != white {
			continue
		}
		stack := []frame{{id: id}}
		color[id] = gray
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			children := g.outgoing[top.id]
			if top.next >= len(children) {
				color[top.id] = black
				stack = stack[:len(stack)-1]
				continue
			}
			child := children[top.next]
			top.next++
			switch color[child] {
			case white:
				color[child] = gray
				stack = append(stack, frame{id: child})
			case gray:
				return true
			}
		}
	}
	return false
}
