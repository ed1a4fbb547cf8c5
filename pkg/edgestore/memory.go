package edgestore

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory edge store for development and testing.
type MemoryStore struct {
	mu    sync.RWMutex
	edges map[string]*CustomEdge
}

// NewMemoryStore creates an in-memory edge store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{edges: make(map[string]*CustomEdge)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*CustomEdge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edge, ok := s.edges[id]
	if !ok {
		return nil, nil
	}
	copied := *edge
	return &copied, nil
}

func (s *MemoryStore) List(ctx context.Context, graphHash string) ([]*CustomEdge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*CustomEdge
	for _, edge := range s.edges {
		if edge.GraphHash != graphHash {
			continue
		}
		copied := *edge
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) Put(ctx context.Context, edge *CustomEdge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *edge
	s.edges[edge.ID] = &copied
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.edges, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
