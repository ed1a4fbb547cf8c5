package cli

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/proofgraph/proofgraph/pkg/config"
	"github.com/proofgraph/proofgraph/pkg/edgestore"
)

func TestNewEdgeStoreMemory(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Backend = config.StoreBackendMemory

	store, err := newEdgeStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("newEdgeStore() error: %v", err)
	}
	defer store.Close()

	if _, ok := store.(*edgestore.MemoryStore); !ok {
		t.Errorf("newEdgeStore() = %T, want *edgestore.MemoryStore", store)
	}
}

func TestNewEdgeStoreFile(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Backend = config.StoreBackendFile
	cfg.Store.Dir = t.TempDir()

	store, err := newEdgeStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("newEdgeStore() error: %v", err)
	}
	defer store.Close()

	if _, ok := store.(*edgestore.FileStore); !ok {
		t.Errorf("newEdgeStore() = %T, want *edgestore.FileStore", store)
	}
}

func TestRunServeNoGraph(t *testing.T) {
	c := New(io.Discard, LogInfo)
	opts := serveOpts{configPath: missingConfig(t)}

	err := c.runServe(context.Background(), "", opts)
	if err == nil {
		t.Fatal("runServe() should fail without a snapshot path")
	}
	if !strings.Contains(err.Error(), "no graph snapshot") {
		t.Errorf("error = %q, should mention the missing snapshot", err)
	}
}
