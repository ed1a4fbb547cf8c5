// Package config loads application configuration from TOML files.
//
// Configuration is optional: every field has a working default, and a
// missing config file is not an error. The CLI looks for the file at
// [DefaultPath] unless --config points elsewhere; flags override file
// values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Cache backend names.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Edge store backend names.
const (
	StoreBackendMemory = "memory"
	StoreBackendFile   = "file"
	StoreBackendMongo  = "mongo"
)

// Config is the root configuration document.
type Config struct {
	Filter FilterConfig `toml:"filter"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
}

// FilterConfig holds default filter options applied when the corresponding
// flags are not set.
type FilterConfig struct {
	HideTechnical       bool `toml:"hide_technical"`
	HideOrphaned        bool `toml:"hide_orphaned"`
	TransitiveReduction bool `toml:"transitive_reduction"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"`    // file, redis, or none
	Dir       string `toml:"dir"`        // file backend; empty = XDG cache dir
	RedisAddr string `toml:"redis_addr"` // redis backend
}

// StoreConfig selects and configures the custom edge store backend.
type StoreConfig struct {
	Backend       string `toml:"backend"` // memory, file, or mongo
	Dir           string `toml:"dir"`     // file backend; empty = ~/.config/proofgraph/edges
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Addr  string `toml:"addr"`
	Graph string `toml:"graph"` // Snapshot document served by the API
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Filter: FilterConfig{
			HideOrphaned:        true,
			TransitiveReduction: true,
		},
		Cache: CacheConfig{
			Backend:   CacheBackendFile,
			RedisAddr: "localhost:6379",
		},
		Store: StoreConfig{
			Backend:       StoreBackendFile,
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "proofgraph",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// DefaultPath returns the standard config file location,
// $XDG_CONFIG_HOME/proofgraph/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "proofgraph", "config.toml")
}

// Load reads the config file at path, layered over defaults.
// A missing file returns the defaults without error; a malformed file or
// an invalid value is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks backend names and required backend settings.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendNone:
	case CacheBackendRedis:
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("invalid cache.backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}

	switch c.Store.Backend {
	case StoreBackendMemory, StoreBackendFile:
	case StoreBackendMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("store.mongo_uri is required for the mongo backend")
		}
		if c.Store.MongoDatabase == "" {
			return fmt.Errorf("store.mongo_database is required for the mongo backend")
		}
	default:
		return fmt.Errorf("invalid store.backend: %q (must be one of: memory, file, mongo)", c.Store.Backend)
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr cannot be empty")
	}
	return nil
}
