package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// Useful when one cache backend serves several projects and their entries
// must not collide.
//
// Example usage:
//
//	// Per-project keys when the server hosts multiple libraries
//	projectKeyer := NewScopedKeyer(NewDefaultKeyer(), "mathlib:")
//
//	// Shared keys for a single-project CLI run
//	keyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GraphKey generates a prefixed key for snapshot caching.
func (k *ScopedKeyer) GraphKey(source string) string {
	return k.prefix + k.inner.GraphKey(source)
}

// FilterKey generates a prefixed key for filter result caching.
func (k *ScopedKeyer) FilterKey(graphHash string, opts FilterKeyOpts) string {
	return k.prefix + k.inner.FilterKey(graphHash, opts)
}
