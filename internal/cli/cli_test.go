package cli

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/proofgraph/proofgraph/pkg/config"
)

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != "proofgraph" {
		t.Errorf("root.Use = %q, want %q", root.Use, "proofgraph")
	}

	want := map[string]bool{
		"filter":     false,
		"check":      false,
		"serve":      false,
		"cache":      false,
		"completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.SetLogLevel(LogDebug)
	if got := c.Logger.GetLevel(); got != LogDebug {
		t.Errorf("log level = %v, want %v", got, LogDebug)
	}
}

func TestNewCacheNone(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Backend = config.CacheBackendNone

	cch, err := newCache(context.Background(), cfg, false)
	if err != nil {
		t.Fatalf("newCache() error: %v", err)
	}
	if cch == nil {
		t.Fatal("newCache() returned nil")
	}

	// A null cache never stores anything
	if err := cch.Set(context.Background(), "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, found, _ := cch.Get(context.Background(), "k"); found {
		t.Error("null cache should not retain entries")
	}
}

func TestNewCacheNoCacheOverride(t *testing.T) {
	cfg := config.Default()

	cch, err := newCache(context.Background(), cfg, true)
	if err != nil {
		t.Fatalf("newCache() error: %v", err)
	}
	if _, found, _ := cch.Get(context.Background(), "k"); found {
		t.Error("noCache should select the null backend")
	}
}

func TestNewCacheFile(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Dir = t.TempDir()

	cch, err := newCache(context.Background(), cfg, false)
	if err != nil {
		t.Fatalf("newCache() error: %v", err)
	}
	defer cch.Close()

	if err := cch.Set(context.Background(), "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, found, err := cch.Get(context.Background(), "k")
	if err != nil || !found {
		t.Fatalf("Get() = found %v, err %v", found, err)
	}
	if string(data) != "v" {
		t.Errorf("Get() = %q, want %q", data, "v")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want default %q", cfg.Server.Addr, ":8080")
	}
}
