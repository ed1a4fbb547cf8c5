// Package pkg provides the core libraries for Proofgraph dependency filtering.
//
// # Overview
//
// Proofgraph reduces dependency graph snapshots extracted from formal proof
// libraries (theorems, lemmas, definitions, instances) to a display-ready
// form. The pkg directory is organized into four main areas:
//
//  1. [depgraph] - Domain logic (graph structure, classification, filter passes)
//  2. [graphio] - Serialization types for snapshots and filter results
//  3. [pipeline] - Orchestration (load → filter, with caching)
//  4. [cache], [edgestore] - Infrastructure (result caching, custom edge storage)
//
// # Architecture
//
// The typical data flow through Proofgraph:
//
//	Snapshot JSON (upstream parser output)
//	         ↓
//	    [graphio] package (decode wire format)
//	         ↓
//	    [depgraph/transform] package (elision, reduction, pruning)
//	         ↓
//	    [render] package (DOT / SVG output)
//
// # Quick Start
//
// Load a snapshot and filter it:
//
//	import (
//	    "github.com/proofgraph/proofgraph/pkg/depgraph/transform"
//	    "github.com/proofgraph/proofgraph/pkg/graphio"
//	)
//
//	doc, _ := graphio.ReadFile("mathlib.json")
//	nodes, edges := doc.Snapshot()
//	result := transform.Filter(nodes, edges, transform.Options{
//	    HideTechnical:       true,
//	    HideOrphaned:        true,
//	    TransitiveReduction: true,
//	})
//
// Or run the full pipeline with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	res, _ := runner.Execute(ctx, pipeline.Options{Input: "mathlib.json"})
//
// # Main Packages
//
// [depgraph] - The dependency graph model: nodes with declaration kinds,
// directed edges, degree queries, and the cycle guard for user-added edges.
//
// [depgraph/classify] - Pluggable policies deciding which nodes are
// technical infrastructure rather than mathematical content.
//
// [depgraph/transform] - The filter passes: technical node elision with
// virtual edge rewiring, transitive reduction, and orphan pruning.
//
// [graphio] - The canonical JSON wire format for snapshots and filter
// results, with converters to and from the domain types.
//
// [pipeline] - Load and filter orchestration shared by the CLI and the
// HTTP server, with content-addressed result caching.
//
// [cache] - Cache backends (file, redis, null) and key derivation from
// snapshot hashes and filter options.
//
// [edgestore] - Persistence for user-added custom edges (memory, file,
// mongo backends).
//
// [render] - DOT generation and SVG rendering of filter results.
//
// [errors] - Structured errors with stable codes for API responses.
//
// [observability] - Hook points for instrumenting filtering, cycle
// checks, and cache access without coupling to a metrics library.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/depgraph/...           # Specific package
//	go test -run Example                 # Examples only
//
// [depgraph]: https://pkg.go.dev/github.com/proofgraph/proofgraph/pkg/depgraph
// [depgraph/classify]: https://pkg.go.dev/github.com/proofgraph/proofgraph/pkg/depgraph/classify
// [depgraph/transform]: https://pkg.go.dev/github.com/proofgraph/proofgraph/pkg/depgraph/transform
// [graphio]: https://pkg.go.dev/github.com/proofgraph/proofgraph/pkg/graphio
// [pipeline]: https://pkg.go.dev/github.com/proofgraph/proofgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/proofgraph/proofgraph/pkg/cache
// [edgestore]: https://pkg.go.dev/github.com/proofgraph/proofgraph/pkg/edgestore
// [render]: https://pkg.go.dev/github.com/proofgraph/proofgraph/pkg/render
// [errors]: https://pkg.go.dev/github.com/proofgraph/proofgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/proofgraph/proofgraph/pkg/observability
package pkg
