// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about filter runs, cycle guard decisions, and cache
// operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetFilterHooks(&myFilterHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Filter().OnFilterStart(ctx, nodeCount, edgeCount)
//	// ... run the filter ...
//	observability.Filter().OnFilterComplete(ctx, stats, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Filter Hooks
// =============================================================================

// FilterStats summarizes a completed filter run for hook consumers.
type FilterStats struct {
	RemovedNodes        int
	OrphanedNodes       int
	VirtualEdgesCreated int
	OutputNodes         int
	OutputEdges         int
}

// FilterHooks receives events from the graph filtering engine.
type FilterHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, nodeCount, edgeCount int, duration time.Duration, err error)

	// Filter events
	OnFilterStart(ctx context.Context, nodeCount, edgeCount int)
	OnFilterComplete(ctx context.Context, stats FilterStats, duration time.Duration, err error)
}

// =============================================================================
// Guard Hooks
// =============================================================================

// GuardHooks receives events from cycle guard checks on user-added edges.
type GuardHooks interface {
	// OnEdgeAccepted records an edge that passed the cycle check.
	OnEdgeAccepted(ctx context.Context, from, to string)

	// OnEdgeRejected records an edge rejected because it would close a cycle.
	OnEdgeRejected(ctx context.Context, from, to string)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopFilterHooks is a no-op implementation of FilterHooks.
type NoopFilterHooks struct{}

func (NoopFilterHooks) OnLoadStart(context.Context, string) {}
func (NoopFilterHooks) OnLoadComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopFilterHooks) OnFilterStart(context.Context, int, int)                             {}
func (NoopFilterHooks) OnFilterComplete(context.Context, FilterStats, time.Duration, error) {}

// NoopGuardHooks is a no-op implementation of GuardHooks.
type NoopGuardHooks struct{}

func (NoopGuardHooks) OnEdgeAccepted(context.Context, string, string) {}
func (NoopGuardHooks) OnEdgeRejected(context.Context, string, string) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	filterHooks FilterHooks = NoopFilterHooks{}
	guardHooks  GuardHooks  = NoopGuardHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetFilterHooks registers custom filter hooks.
// This should be called once at application startup before any filter runs.
func SetFilterHooks(h FilterHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		filterHooks = h
	}
}

// SetGuardHooks registers custom cycle guard hooks.
// This should be called once at application startup before any edge checks.
func SetGuardHooks(h GuardHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		guardHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Filter returns the registered filter hooks.
func Filter() FilterHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return filterHooks
}

// Guard returns the registered cycle guard hooks.
func Guard() GuardHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return guardHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	filterHooks = NoopFilterHooks{}
	guardHooks = NoopGuardHooks{}
	cacheHooks = NoopCacheHooks{}
}
