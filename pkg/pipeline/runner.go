package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/proofgraph/proofgraph/pkg/cache"
	"github.com/proofgraph/proofgraph/pkg/depgraph/transform"
	"github.com/proofgraph/proofgraph/pkg/graphio"
	"github.com/proofgraph/proofgraph/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → filter pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	doc, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Document = doc
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = len(doc.Nodes)
	result.Stats.EdgeCount = len(doc.Edges)

	// Content hash for cache keys and API responses
	if data, err := graphio.Marshal(doc); err == nil {
		result.GraphHash = cache.Hash(data)
	}

	opts.Logger.Info("loaded snapshot",
		"nodes", len(doc.Nodes),
		"edges", len(doc.Edges),
		"duration", result.Stats.LoadTime)

	// Stage 2: Filter
	filterStart := time.Now()
	filtered, filterHit, err := r.FilterWithCacheInfo(ctx, doc, result.GraphHash, opts)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	result.Filtered = filtered
	result.Stats.FilterTime = time.Since(filterStart)
	result.CacheInfo.FilterHit = filterHit

	opts.Logger.Info("filtered graph",
		"nodes", len(filtered.Nodes),
		"edges", len(filtered.Edges),
		"removed", filtered.Stats.RemovedNodes,
		"orphaned", filtered.Stats.OrphanedNodes,
		"virtual_edges", filtered.Stats.VirtualEdgesCreated,
		"cached", filterHit,
		"duration", result.Stats.FilterTime)

	return result, nil
}

// Load reads the snapshot document, either from the pre-loaded Document or
// from the input path.
func (r *Runner) Load(ctx context.Context, opts Options) (graphio.Document, error) {
	if opts.Document != nil {
		return *opts.Document, nil
	}

	start := time.Now()
	observability.Filter().OnLoadStart(ctx, opts.Input)
	doc, err := graphio.ReadFile(opts.Input)
	observability.Filter().OnLoadComplete(ctx, opts.Input, len(doc.Nodes), len(doc.Edges), time.Since(start), err)
	if err != nil {
		return graphio.Document{}, err
	}
	return doc, nil
}

// FilterWithCacheInfo runs the filtering engine with caching and returns
// cache hit info. The graphHash keys the cache; pass an empty hash to skip
// caching for this run.
func (r *Runner) FilterWithCacheInfo(ctx context.Context, doc graphio.Document, graphHash string, opts Options) (graphio.FilteredDocument, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return graphio.FilteredDocument{}, false, err
	}
	r.applyLogger(&opts)

	var cacheKey string
	if graphHash != "" {
		cacheKey = r.Keyer.FilterKey(graphHash, opts.FilterKeyOpts())
	}

	// Try cache first (unless refresh requested)
	if cacheKey != "" && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := graphio.UnmarshalFiltered(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "filter")
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "filter")
	}

	// Run the engine
	nodes, edges := doc.Snapshot()
	start := time.Now()
	observability.Filter().OnFilterStart(ctx, len(nodes), len(edges))
	res := transform.Filter(nodes, edges, opts.FilterOptions())
	observability.Filter().OnFilterComplete(ctx, observability.FilterStats{
		RemovedNodes:        res.Stats.RemovedNodes,
		OrphanedNodes:       res.Stats.OrphanedNodes,
		VirtualEdgesCreated: res.Stats.VirtualEdgesCreated,
		OutputNodes:         len(res.Nodes),
		OutputEdges:         len(res.Edges),
	}, time.Since(start), nil)

	filtered := graphio.FromResult(res)

	// Cache the result
	if cacheKey != "" {
		if data, err := graphio.MarshalFiltered(filtered); err == nil {
			if cerr := r.Cache.Set(ctx, cacheKey, data, cache.TTLFilter); cerr == nil {
				observability.Cache().OnCacheSet(ctx, "filter", len(data))
			}
		}
	}

	return filtered, false, nil // Cache miss
}

// Filter is a convenience wrapper that calls FilterWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Filter(ctx context.Context, doc graphio.Document, graphHash string, opts Options) (graphio.FilteredDocument, error) {
	filtered, _, err := r.FilterWithCacheInfo(ctx, doc, graphHash, opts)
	return filtered, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
