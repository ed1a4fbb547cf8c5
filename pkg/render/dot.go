package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/proofgraph/proofgraph/pkg/graphio"
)

// Options configures DOT rendering.
type Options struct {
	// Detailed includes the declaration kind in node labels.
	// When false, only the display name is shown.
	Detailed bool
}

// kindFills maps declaration kinds to node fill colors.
var kindFills = map[string]string{
	"theorem":    "white",
	"lemma":      "white",
	"axiom":      "lightyellow",
	"definition": "aliceblue",
	"inductive":  "aliceblue",
	"structure":  "aliceblue",
	"instance":   "lightgrey",
}

// ToDOT converts a filtered graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Virtual edges (synthesized when technical nodes are elided) are rendered
// dashed to distinguish them from parsed dependencies.
func ToDOT(doc graphio.FilteredDocument, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range doc.Nodes {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range doc.Edges {
		if e.Synthetic {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", e.From, e.To)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n graphio.Node, detailed bool) string {
	label := n.Name
	if label == "" {
		label = n.ID
	}
	if detailed && n.Kind != "" {
		label += "\n" + n.Kind
	}
	return label
}

func fmtAttrs(n graphio.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if fill, ok := kindFills[n.Kind]; ok && fill != "white" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%s", fill))
	}
	return attrs
}
