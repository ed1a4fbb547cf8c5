package edgestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// FileStore is a file-based edge store for CLI applications.
// Edges are stored as JSON files in a config directory, one file per edge.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based edge store.
// If baseDir is empty, defaults to ~/.config/proofgraph/edges/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "proofgraph", "edges")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create edge dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) edgePath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Get(ctx context.Context, id string) (*CustomEdge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.edgePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read edge file: %w", err)
	}

	var edge CustomEdge
	if err := json.Unmarshal(data, &edge); err != nil {
		return nil, fmt.Errorf("parse edge: %w", err)
	}
	return &edge, nil
}

func (s *FileStore) List(ctx context.Context, graphHash string) ([]*CustomEdge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read edge dir: %w", err)
	}

	var out []*CustomEdge
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		var edge CustomEdge
		if err := json.Unmarshal(data, &edge); err != nil {
			// Skip corrupt entries rather than failing the listing
			continue
		}
		if edge.GraphHash != graphHash {
			continue
		}
		out = append(out, &edge)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *FileStore) Put(ctx context.Context, edge *CustomEdge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(edge, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal edge: %w", err)
	}
	if err := os.WriteFile(s.edgePath(edge.ID), data, 0600); err != nil {
		return fmt.Errorf("write edge file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.edgePath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove edge file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for edge files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
