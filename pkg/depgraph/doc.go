// Package depgraph provides the core proof-dependency graph model.
//
// A graph consists of nodes (proof artifacts: theorems, definitions,
// type-class instances, ...) and directed edges encoding "depends on".
// The upstream parser produces a flat {nodes, edges} snapshot once per
// project load; this package indexes it for adjacency queries and guards
// the acyclicity invariant when users author additional edges.
//
// # Cycle Guard
//
// [WouldCreateCycle] checks a proposed user edge against the authoritative
// edge set (parsed edges plus previously accepted custom edges) before it is
// persisted. The combined dependency relation must stay acyclic at all
// times; this function is the sole gate enforcing that when edges are added.
//
// # Filtering
//
// The display-oriented filtering engine (technical-node elision, transitive
// reduction, orphan pruning) lives in the transform subpackage and operates
// on plain node and edge slices without mutating them.
package depgraph
