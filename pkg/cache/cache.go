// Package cache provides content-addressed caching for graph snapshots and
// filter results.
//
// Cache keys embed a SHA-256 hash of the graph content plus the filter
// options, so a cached filter result can never be served for a different
// snapshot: changing either the graph or the options changes the key. This
// is deliberately different from the engine's internal memoization, which
// lives and dies with a single filter call.
//
// Backends: [FileCache] for the CLI (XDG cache dir), [RedisCache] for
// multi-instance server deployments, and [NullCache] to disable caching.
package cache

import (
	"context"
	"fmt"
	"time"
)

// TTLs per cached artifact class.
const (
	// TTLGraph is how long raw parsed snapshots stay cached.
	TTLGraph = 24 * time.Hour

	// TTLFilter is how long filter results stay cached. Keys are content
	// addressed, so a long TTL is safe; the limit only bounds disk usage.
	TTLFilter = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys with a TTL.
// Implementations must treat a missing or expired key as a miss, never an
// error.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl stores without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// FilterKeyOpts are the filter options that participate in the cache key.
// Every field that changes engine output must appear here.
type FilterKeyOpts struct {
	HideTechnical       bool   `json:"hide_technical"`
	HideOrphaned        bool   `json:"hide_orphaned"`
	TransitiveReduction bool   `json:"transitive_reduction"`
	Classifier          string `json:"classifier,omitempty"` // Policy name; empty = default
}

// Keyer generates cache keys. The default implementation is [DefaultKeyer];
// wrap it with [NewScopedKeyer] for per-tenant namespaces.
type Keyer interface {
	// GraphKey generates a key for a raw snapshot loaded from source.
	GraphKey(source string) string

	// FilterKey generates a key for a filter result over the graph with
	// the given content hash.
	FilterKey(graphHash string, opts FilterKeyOpts) string
}

// DefaultKeyer generates hierarchical keys of the form prefix:hash(parts).
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GraphKey generates a key for a raw snapshot.
func (DefaultKeyer) GraphKey(source string) string {
	return fmt.Sprintf("graph:%s", Hash([]byte(source)))
}

// FilterKey generates a key for a filter result.
func (DefaultKeyer) FilterKey(graphHash string, opts FilterKeyOpts) string {
	return hashKey("filter:"+graphHash, opts)
}
