package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/proofgraph/proofgraph/pkg/depgraph"
	pkgerrors "github.com/proofgraph/proofgraph/pkg/errors"
	"github.com/proofgraph/proofgraph/pkg/graphio"
	"github.com/proofgraph/proofgraph/pkg/observability"
)

// checkCommand creates the check command for testing proposed edges.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [graph.json] [from] [to]",
		Short: "Test whether adding an edge would create a cycle",
		Long: `Test whether adding an edge would create a cycle.

The check command loads a graph snapshot and reports whether the proposed
edge from → to could be added without introducing a directed cycle. The
snapshot is not modified.

The command exits non-zero when the edge would close a cycle, so it can be
used as a guard in scripts:

  proofgraph check mathlib.json Nat.add_comm Nat.succ_add && echo safe`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(withLogger(cmd.Context(), c.Logger), args[0], args[1], args[2])
		},
	}
}

// runCheck loads the snapshot and runs the cycle guard on the proposed edge.
func (c *CLI) runCheck(ctx context.Context, input, from, to string) error {
	if err := pkgerrors.ValidateEdgeEndpoints(from, to); err != nil {
		return err
	}

	doc, err := graphio.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	known := make(map[string]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		known[n.ID] = true
	}
	for _, id := range []string{from, to} {
		if !known[id] {
			return pkgerrors.New(pkgerrors.ErrCodeNodeNotFound, "node %q not in graph", id)
		}
	}

	nodes, edges := doc.Snapshot()
	loggerFromContext(ctx).Debugf("Checking edge %s -> %s against %d nodes, %d edges", from, to, len(nodes), len(edges))

	if depgraph.WouldCreateCycle(edges, from, to) {
		observability.Guard().OnEdgeRejected(ctx, from, to)
		printError("Edge %s %s %s would create a cycle", from, iconArrow, to)
		return pkgerrors.New(pkgerrors.ErrCodeEdgeCycle, "edge %s -> %s would create a cycle", from, to)
	}

	observability.Guard().OnEdgeAccepted(ctx, from, to)
	printSuccess("Edge %s %s %s is safe to add", from, iconArrow, to)
	return nil
}
