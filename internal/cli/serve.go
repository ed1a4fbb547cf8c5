package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/proofgraph/proofgraph/internal/server"
	"github.com/proofgraph/proofgraph/pkg/cache"
	"github.com/proofgraph/proofgraph/pkg/config"
	"github.com/proofgraph/proofgraph/pkg/edgestore"
	"github.com/proofgraph/proofgraph/pkg/graphio"
)

// shutdownTimeout bounds how long in-flight requests may run after SIGTERM.
const shutdownTimeout = 10 * time.Second

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr       string // listen address override
	configPath string // config file override
	noCache    bool   // disable filter result caching
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve [graph.json]",
		Short: "Serve a graph snapshot over the HTTP API",
		Long: `Serve a graph snapshot over the HTTP API.

The serve command loads a snapshot and exposes it through a JSON API:
filtered views of the graph, plus user-added custom edges that are cycle
checked before acceptance and persisted across restarts.

The snapshot path may be given as an argument or configured under
[server] graph in the config file. Cache and edge store backends are
selected in the config file (file, redis, none / memory, file, mongo).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			return c.runServe(cmd.Context(), input, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/proofgraph/config.toml)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable filter result caching")

	return cmd
}

// runServe wires the configured backends, loads the snapshot, and runs the
// HTTP server until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, input string, opts serveOpts) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	if input == "" {
		input = cfg.Server.Graph
	}
	if input == "" {
		return fmt.Errorf("no graph snapshot: pass a path or set [server] graph in the config")
	}

	addr := opts.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	store, err := newEdgeStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize edge store: %w", err)
	}
	defer store.Close()

	prog := newProgress(c.Logger)
	doc, err := graphio.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	data, err := graphio.Marshal(doc)
	if err != nil {
		return fmt.Errorf("hash graph: %w", err)
	}
	graphHash := cache.Hash(data)
	prog.done(fmt.Sprintf("Loaded %s: %d nodes, %d edges", input, len(doc.Nodes), len(doc.Edges)))

	c.Logger.Debug("Snapshot hash", "hash", graphHash)

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(runner, store, doc, graphHash, c.Logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("Listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	c.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newEdgeStore builds the custom edge store backend selected by the
// configuration.
func newEdgeStore(ctx context.Context, cfg config.Config) (edgestore.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		return edgestore.NewMemoryStore(), nil
	case config.StoreBackendMongo:
		return edgestore.NewMongoStore(ctx, cfg.Store.MongoURI, cfg.Store.MongoDatabase)
	default:
		return edgestore.NewFileStore(cfg.Store.Dir)
	}
}
