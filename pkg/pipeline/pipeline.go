// Package pipeline provides the core load → filter pipeline for Proofgraph.
//
// This package implements the complete snapshot loading and filtering flow
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Load: Read and validate a dependency snapshot from a JSON document
//  2. Filter: Run the integrity and filtering engine over the snapshot
//
// Filter results are cached by the content hash of the snapshot plus the
// filter options, so repeated runs over an unchanged snapshot are served
// from cache.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:               "mathlib.json",
//	    HideTechnical:       true,
//	    HideOrphaned:        true,
//	    TransitiveReduction: true,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Filtered.Stats.RemovedNodes)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/proofgraph/proofgraph/pkg/cache"
	"github.com/proofgraph/proofgraph/pkg/depgraph/transform"
	"github.com/proofgraph/proofgraph/pkg/graphio"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, dot, svg)", format)
	}
	return nil
}

// Options contains all configuration for the filtering pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input is the path of the snapshot document to load. Ignored when
	// Document is set directly.
	Input string `json:"input,omitempty"`

	// Filter options
	HideTechnical       bool `json:"hide_technical"`
	HideOrphaned        bool `json:"hide_orphaned"`
	TransitiveReduction bool `json:"transitive_reduction"`

	// Refresh bypasses the cache and recomputes the filter result.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Document *graphio.Document `json:"-"` // Pre-loaded snapshot, skips the load stage
	Logger   *log.Logger       `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// DefaultOptions returns pipeline options with the standard display
// defaults: orphan pruning and transitive reduction on, technical nodes
// kept.
func DefaultOptions() Options {
	return Options{
		HideOrphaned:        true,
		TransitiveReduction: true,
	}
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" && o.Document == nil {
		return fmt.Errorf("input path or document is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// FilterOptions returns the engine options for this run.
func (o *Options) FilterOptions() transform.Options {
	return transform.Options{
		HideTechnical:       o.HideTechnical,
		HideOrphaned:        o.HideOrphaned,
		TransitiveReduction: o.TransitiveReduction,
	}
}

// FilterKeyOpts returns cache key options for the filter result.
func (o *Options) FilterKeyOpts() cache.FilterKeyOpts {
	return cache.FilterKeyOpts{
		HideTechnical:       o.HideTechnical,
		HideOrphaned:        o.HideOrphaned,
		TransitiveReduction: o.TransitiveReduction,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the loaded snapshot.
	Document graphio.Document

	// GraphHash is the content hash of the snapshot.
	GraphHash string

	// Filtered is the filter result in wire form.
	Filtered graphio.FilteredDocument

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the filter result came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	FilterTime time.Duration
}

// CacheInfo tracks cache hits for the pipeline.
type CacheInfo struct {
	FilterHit bool // Whether the filter result came from cache
}
