// Package edgestore persists user-added edges.
//
// Custom edges are annotations layered on top of a parsed snapshot: a user
// connects two declarations by hand and the edge survives reparsing. The
// engine's cycle guard validates an edge before it reaches a store; the
// store itself only persists.
//
// Three backends are provided:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for CLI applications
//   - mongo: MongoDB-backed storage for server deployments
package edgestore

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CustomEdge is a user-added edge between two declarations.
type CustomEdge struct {
	ID        string    `json:"id" bson:"_id"`
	GraphHash string    `json:"graph_hash" bson:"graph_hash"`
	From      string    `json:"from" bson:"from"`
	To        string    `json:"to" bson:"to"`
	Note      string    `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NewCustomEdge creates an edge with a fresh ID and timestamp.
func NewCustomEdge(graphHash, from, to, note string) *CustomEdge {
	return &CustomEdge{
		ID:        uuid.NewString(),
		GraphHash: graphHash,
		From:      from,
		To:        to,
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}
}

// Store persists custom edges keyed by edge ID.
// Get returns (nil, nil) when the edge does not exist.
type Store interface {
	// Get retrieves an edge by ID.
	Get(ctx context.Context, id string) (*CustomEdge, error)

	// List returns all edges for a graph, ordered by creation time.
	List(ctx context.Context, graphHash string) ([]*CustomEdge, error)

	// Put stores an edge.
	Put(ctx context.Context, edge *CustomEdge) error

	// Delete removes an edge by ID. Deleting a missing edge is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}
