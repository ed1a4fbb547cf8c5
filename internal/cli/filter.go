package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/proofgraph/proofgraph/pkg/graphio"
	"github.com/proofgraph/proofgraph/pkg/pipeline"
	"github.com/proofgraph/proofgraph/pkg/render"
)

// filterOpts holds the command-line flags for the filter command.
type filterOpts struct {
	hideTechnical bool   // elide technical nodes
	keepOrphans   bool   // keep nodes without edges
	noReduce      bool   // skip transitive reduction
	detailed      bool   // include node kinds in DOT/SVG labels
	format        string // json, dot, or svg
	output        string // output file path (stdout if empty)
	configPath    string // config file override
	noCache       bool   // disable caching
	refresh       bool   // bypass cache and recompute
	interactive   bool   // pick filter options interactively
}

// filterCommand creates the filter command.
// Flag defaults come from the config file; flags set on the command line
// take precedence over configured values.
func (c *CLI) filterCommand() *cobra.Command {
	var opts filterOpts

	cmd := &cobra.Command{
		Use:   "filter [graph.json]",
		Short: "Filter a graph snapshot into its display form",
		Long: `Filter a graph snapshot into its display form.

The filter command loads a dependency graph snapshot and applies the display
passes: technical node elision (with virtual edges preserving connectivity),
transitive reduction, and orphan pruning. The result is written as JSON, DOT,
or a rendered SVG.

Results are cached locally for faster subsequent runs.

Examples:
  proofgraph filter mathlib.json                        # Filtered JSON to stdout
  proofgraph filter mathlib.json --hide-technical       # Elide instances and helpers
  proofgraph filter mathlib.json -f svg -o graph.svg    # Rendered SVG
  proofgraph filter mathlib.json -i                     # Pick options interactively`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			return c.runFilter(withLogger(cmd.Context(), c.Logger), cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.hideTechnical, "hide-technical", false, "elide technical nodes, rewiring around them")
	cmd.Flags().BoolVar(&opts.keepOrphans, "keep-orphans", false, "keep nodes left without edges")
	cmd.Flags().BoolVar(&opts.noReduce, "no-reduce", false, "skip transitive reduction")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include node kinds in DOT/SVG labels")
	cmd.Flags().StringVarP(&opts.format, "format", "f", pipeline.FormatJSON, "output format: json (default), dot, svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/proofgraph/config.toml)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache and recompute")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick filter options interactively")

	return cmd
}

// runFilter loads the snapshot, runs the filter passes, and writes output.
func (c *CLI) runFilter(ctx context.Context, cmd *cobra.Command, input string, opts filterOpts) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	pipeOpts := pipeline.Options{
		Input:               input,
		HideTechnical:       cfg.Filter.HideTechnical,
		HideOrphaned:        cfg.Filter.HideOrphaned,
		TransitiveReduction: cfg.Filter.TransitiveReduction,
		Refresh:             opts.refresh,
		Logger:              c.Logger,
	}

	// Explicit flags win over configured defaults.
	if cmd.Flags().Changed("hide-technical") {
		pipeOpts.HideTechnical = opts.hideTechnical
	}
	if cmd.Flags().Changed("keep-orphans") {
		pipeOpts.HideOrphaned = !opts.keepOrphans
	}
	if cmd.Flags().Changed("no-reduce") {
		pipeOpts.TransitiveReduction = !opts.noReduce
	}

	if opts.interactive {
		accepted, err := pickFilterOptions(&pipeOpts)
		if err != nil {
			return err
		}
		if !accepted {
			printInfo("Cancelled")
			return nil
		}
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		return fmt.Errorf("filter %s: %w", input, err)
	}

	if err := writeResult(ctx, result, opts); err != nil {
		return err
	}

	printSuccess("Filter complete")
	if opts.output != "" {
		printFile(opts.output)
	}
	printStats(len(result.Filtered.Nodes), len(result.Filtered.Edges), result.CacheInfo.FilterHit)
	printFilterStats(result.Filtered.Stats)

	return nil
}

// pickFilterOptions runs the interactive option picker and applies the
// selection onto opts. It reports whether the user confirmed the run.
func pickFilterOptions(opts *pipeline.Options) (bool, error) {
	model, err := tea.NewProgram(NewFilterOptionsModel(*opts)).Run()
	if err != nil {
		return false, fmt.Errorf("interactive picker: %w", err)
	}
	picked, ok := model.(FilterOptionsModel)
	if !ok || !picked.Accepted {
		return false, nil
	}
	picked.Apply(opts)
	return true, nil
}

// writeResult serializes the filter result in the requested format.
func writeResult(ctx context.Context, result *pipeline.Result, opts filterOpts) error {
	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	switch opts.format {
	case pipeline.FormatJSON:
		return graphio.WriteFiltered(result.Filtered, out)
	case pipeline.FormatDOT:
		_, err := io.WriteString(out, render.ToDOT(result.Filtered, render.Options{Detailed: opts.detailed}))
		return err
	case pipeline.FormatSVG:
		dot := render.ToDOT(result.Filtered, render.Options{Detailed: opts.detailed})

		spinner := newSpinnerWithContext(ctx, "Rendering SVG...")
		spinner.Start()
		svg, err := render.RenderSVG(ctx, dot)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("render svg: %w", err)
		}
		spinner.Stop()

		_, err = out.Write(svg)
		return err
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
