package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/proofgraph/proofgraph/pkg/cache"
	"github.com/proofgraph/proofgraph/pkg/graphio"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"invalid", true},
		{"JSON", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestOptionsValidate(t *testing.T) {
	// Missing input and document
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("Missing input should fail")
	}

	// Valid with input path
	opts = Options{Input: "graph.json"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("Valid options should pass: %v", err)
	}
	if opts.Logger == nil {
		t.Error("Logger default should be set")
	}

	// Valid with pre-loaded document
	opts = Options{Document: &graphio.Document{}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("Document-only options should pass: %v", err)
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.HideTechnical {
		t.Error("HideTechnical should default to false")
	}
	if !opts.HideOrphaned {
		t.Error("HideOrphaned should default to true")
	}
	if !opts.TransitiveReduction {
		t.Error("TransitiveReduction should default to true")
	}
}

func TestOptionsFilterKeyOpts(t *testing.T) {
	opts := Options{HideTechnical: true, TransitiveReduction: true}
	keyOpts := opts.FilterKeyOpts()
	if !keyOpts.HideTechnical || keyOpts.HideOrphaned || !keyOpts.TransitiveReduction {
		t.Errorf("FilterKeyOpts mismatch: %+v", keyOpts)
	}
}

// testDocument builds a small snapshot with one technical node between two
// theorems.
func testDocument() graphio.Document {
	return graphio.Document{
		Nodes: []graphio.Node{
			{ID: "A", Name: "A", Kind: "theorem"},
			{ID: "B", Name: "instB", Kind: "instance"},
			{ID: "C", Name: "C", Kind: "theorem"},
		},
		Edges: []graphio.Edge{
			{ID: "e1", From: "A", To: "B"},
			{ID: "e2", From: "B", To: "C"},
		},
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	doc := testDocument()
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	opts := DefaultOptions()
	opts.HideTechnical = true
	opts.Document = &doc

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.GraphHash == "" {
		t.Error("GraphHash should be computed")
	}
	if result.Stats.NodeCount != 3 || result.Stats.EdgeCount != 2 {
		t.Errorf("Stats = %d nodes, %d edges", result.Stats.NodeCount, result.Stats.EdgeCount)
	}
	if len(result.Filtered.Nodes) != 2 {
		t.Errorf("Filtered nodes = %d, want 2", len(result.Filtered.Nodes))
	}
	if result.Filtered.Stats.RemovedNodes != 1 {
		t.Errorf("RemovedNodes = %d, want 1", result.Filtered.Stats.RemovedNodes)
	}
	if result.CacheInfo.FilterHit {
		t.Error("First run should not hit the cache")
	}
}

func TestRunnerExecuteFromFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "graph.json")
	data, err := graphio.Marshal(testDocument())
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	opts := DefaultOptions()
	opts.Input = path

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if result.Stats.NodeCount != 3 {
		t.Errorf("NodeCount = %d, want 3", result.Stats.NodeCount)
	}
}

func TestRunnerExecuteMissingFile(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	opts := DefaultOptions()
	opts.Input = filepath.Join(t.TempDir(), "missing.json")

	if _, err := runner.Execute(context.Background(), opts); err == nil {
		t.Error("Execute should fail for a missing input file")
	}
}

func TestRunnerFilterCaching(t *testing.T) {
	ctx := context.Background()
	doc := testDocument()

	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	runner := NewRunner(fileCache, nil, nil)
	defer runner.Close()

	opts := DefaultOptions()
	opts.HideTechnical = true
	opts.Document = &doc

	// First run is a miss and populates the cache
	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if first.CacheInfo.FilterHit {
		t.Error("First run should miss the cache")
	}

	// Second run with equal options is a hit
	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !second.CacheInfo.FilterHit {
		t.Error("Second run should hit the cache")
	}
	if len(second.Filtered.Nodes) != len(first.Filtered.Nodes) {
		t.Error("Cached result should match the computed result")
	}

	// Changing options changes the cache key
	opts.HideTechnical = false
	third, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if third.CacheInfo.FilterHit {
		t.Error("Different options should miss the cache")
	}

	// Refresh bypasses the cache
	opts.HideTechnical = true
	opts.Refresh = true
	fourth, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if fourth.CacheInfo.FilterHit {
		t.Error("Refresh should bypass the cache")
	}
}
