// Package transform implements the display-filtering engine for
// proof-dependency graphs.
//
// # Overview
//
// Raw proof graphs drown user-meaningful content in type-class machinery:
// a single theorem can pull in dozens of auto-generated instance nodes that
// carry no proof insight. This package converts a raw {nodes, edges}
// snapshot into a display-ready graph while preserving the semantic
// reachability between substantive nodes.
//
// The [Filter] function applies the complete pipeline:
//
//  1. Classify nodes as technical or substantive (see the classify package)
//  2. Remove technical nodes, synthesizing virtual edges that preserve
//     reachability through chains of technical intermediates
//  3. Optionally remove edges already implied by a longer surviving path
//     ([TransitiveReduction])
//  4. Optionally remove nodes left without any incident edge ([PruneOrphans])
//
// # Virtual Edges
//
// When a kept node depended on a technical node, the engine walks the
// technical-node-induced subgraph to find the substantive nodes reachable
// behind it (its "effective dependencies") and emits a synthetic edge to
// each. Synthetic edges carry a "virtual:" ID prefix, Synthetic=true, and
// the ID of the technical node they replace, so renderers can style them
// differently. They are deduplicated against all other result edges: no two
// result edges share a (From, To) pair.
//
// # Totality
//
// Filter never fails for data-shape reasons. Edges referencing unknown node
// IDs are dropped, cycles among technical nodes terminate via a visited set,
// and empty input yields an empty well-formed result. The per-call
// memoization used by the reachability resolver is local to one Filter
// invocation; results never leak across graph snapshots.
//
// All functions are pure and synchronous over the immutable snapshot they
// are given; callers must not overlap concurrent invocations on the same
// mutable backing data.
package transform
