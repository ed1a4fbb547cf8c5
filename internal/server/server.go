// Package server exposes the filtering engine and the custom edge store
// over an HTTP API.
//
// The server loads one snapshot document at startup and serves filter runs
// and edge management for it:
//
//	GET    /healthz          liveness probe
//	GET    /api/graph        the raw snapshot
//	POST   /api/filter       run the filtering engine
//	GET    /api/edges        list custom edges
//	POST   /api/edges        add a custom edge (cycle guarded)
//	DELETE /api/edges/{id}   remove a custom edge
package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/proofgraph/proofgraph/pkg/cache"
	"github.com/proofgraph/proofgraph/pkg/depgraph"
	"github.com/proofgraph/proofgraph/pkg/edgestore"
	"github.com/proofgraph/proofgraph/pkg/errors"
	"github.com/proofgraph/proofgraph/pkg/graphio"
	"github.com/proofgraph/proofgraph/pkg/observability"
	"github.com/proofgraph/proofgraph/pkg/pipeline"
)

// Server handles HTTP requests against one loaded snapshot.
type Server struct {
	runner    *pipeline.Runner
	store     edgestore.Store
	logger    *log.Logger
	doc       graphio.Document
	graphHash string
}

// New creates a server for the given snapshot document.
// The graph hash scopes cache keys and custom edges to this snapshot.
func New(runner *pipeline.Runner, store edgestore.Store, doc graphio.Document, graphHash string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if store == nil {
		store = edgestore.NewMemoryStore()
	}
	return &Server{
		runner:    runner,
		store:     store,
		logger:    logger,
		doc:       doc,
		graphHash: graphHash,
	}
}

// Router builds the HTTP handler with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/graph", s.handleGraph)
		r.Post("/filter", s.handleFilter)
		r.Route("/edges", func(r chi.Router) {
			r.Get("/", s.handleListEdges)
			r.Post("/", s.handleAddEdge)
			r.Delete("/{edgeID}", s.handleDeleteEdge)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "graph_hash": s.graphHash})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, graphResponse{
		GraphHash: s.graphHash,
		Nodes:     s.doc.Nodes,
		Edges:     s.doc.Edges,
	})
}

// graphResponse is the GET /api/graph payload.
type graphResponse struct {
	GraphHash string         `json:"graph_hash"`
	Nodes     []graphio.Node `json:"nodes"`
	Edges     []graphio.Edge `json:"edges"`
}

// filterResponse is the POST /api/filter payload.
type filterResponse struct {
	GraphHash string                   `json:"graph_hash"`
	Cached    bool                     `json:"cached"`
	Result    graphio.FilteredDocument `json:"result"`
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
			writeError(w, s.logger, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed request body"))
			return
		}
	}

	// Custom edges participate in filtering like parsed ones
	doc, err := s.documentWithCustomEdges(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	opts.Document = &doc
	opts.Input = ""

	// Custom edges change the effective snapshot, so the cache key hashes
	// the merged document rather than the base graph.
	effectiveHash := s.graphHash
	if len(doc.Edges) != len(s.doc.Edges) {
		if data, err := graphio.Marshal(doc); err == nil {
			effectiveHash = cache.Hash(data)
		}
	}

	filtered, hit, err := s.runner.FilterWithCacheInfo(r.Context(), doc, effectiveHash, opts)
	if err != nil {
		writeError(w, s.logger, errors.Wrap(errors.ErrCodeInternal, err, "filter failed"))
		return
	}

	writeJSON(w, http.StatusOK, filterResponse{
		GraphHash: s.graphHash,
		Cached:    hit,
		Result:    filtered,
	})
}

func (s *Server) handleListEdges(w http.ResponseWriter, r *http.Request) {
	edges, err := s.store.List(r.Context(), s.graphHash)
	if err != nil {
		writeError(w, s.logger, errors.Wrap(errors.ErrCodeStorage, err, "list edges"))
		return
	}
	if edges == nil {
		edges = []*edgestore.CustomEdge{}
	}
	writeJSON(w, http.StatusOK, edges)
}

// addEdgeRequest is the POST /api/edges body.
type addEdgeRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Note string `json:"note,omitempty"`
}

func (s *Server) handleAddEdge(w http.ResponseWriter, r *http.Request) {
	var req addEdgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, s.logger, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed request body"))
		return
	}
	if err := errors.ValidateEdgeEndpoints(req.From, req.To); err != nil {
		writeError(w, s.logger, err)
		return
	}

	nodes := make(map[string]bool, len(s.doc.Nodes))
	for _, n := range s.doc.Nodes {
		nodes[n.ID] = true
	}
	if !nodes[req.From] {
		writeError(w, s.logger, errors.New(errors.ErrCodeNodeNotFound, "unknown source node: %s", req.From))
		return
	}
	if !nodes[req.To] {
		writeError(w, s.logger, errors.New(errors.ErrCodeNodeNotFound, "unknown target node: %s", req.To))
		return
	}

	// The guard sees parsed edges plus the already stored custom edges
	edges, err := s.combinedEdges(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if depgraph.WouldCreateCycle(edges, req.From, req.To) {
		observability.Guard().OnEdgeRejected(r.Context(), req.From, req.To)
		writeError(w, s.logger, errors.New(errors.ErrCodeEdgeCycle,
			"edge %s -> %s would create a cycle", req.From, req.To))
		return
	}
	observability.Guard().OnEdgeAccepted(r.Context(), req.From, req.To)

	edge := edgestore.NewCustomEdge(s.graphHash, req.From, req.To, req.Note)
	if err := s.store.Put(r.Context(), edge); err != nil {
		writeError(w, s.logger, errors.Wrap(errors.ErrCodeStorage, err, "store edge"))
		return
	}

	s.logger.Info("added custom edge", "from", req.From, "to", req.To, "id", edge.ID)
	writeJSON(w, http.StatusCreated, edge)
}

func (s *Server) handleDeleteEdge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "edgeID")

	edge, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, s.logger, errors.Wrap(errors.ErrCodeStorage, err, "get edge"))
		return
	}
	if edge == nil || edge.GraphHash != s.graphHash {
		writeError(w, s.logger, errors.New(errors.ErrCodeEdgeNotFound, "unknown edge: %s", id))
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, s.logger, errors.Wrap(errors.ErrCodeStorage, err, "delete edge"))
		return
	}

	s.logger.Info("deleted custom edge", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// combinedEdges returns the snapshot edges plus stored custom edges in
// engine form.
func (s *Server) combinedEdges(r *http.Request) ([]depgraph.Edge, error) {
	custom, err := s.store.List(r.Context(), s.graphHash)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list edges")
	}

	_, edges := s.doc.Snapshot()
	for _, ce := range custom {
		edges = append(edges, depgraph.Edge{ID: ce.ID, From: ce.From, To: ce.To})
	}
	return edges, nil
}

// documentWithCustomEdges returns the snapshot with stored custom edges
// appended.
func (s *Server) documentWithCustomEdges(r *http.Request) (graphio.Document, error) {
	custom, err := s.store.List(r.Context(), s.graphHash)
	if err != nil {
		return graphio.Document{}, errors.Wrap(errors.ErrCodeStorage, err, "list edges")
	}

	doc := s.doc
	if len(custom) > 0 {
		edges := make([]graphio.Edge, 0, len(s.doc.Edges)+len(custom))
		edges = append(edges, s.doc.Edges...)
		for _, ce := range custom {
			edges = append(edges, graphio.Edge{ID: ce.ID, From: ce.From, To: ce.To})
		}
		doc.Edges = edges
	}
	return doc, nil
}
