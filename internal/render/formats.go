// File: internal/render/formats.go
// Brief: Graphviz DOT and Mermaid graph output.

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/example/tplan/internal/plan"
)

// PrintGraphDOT writes edges from dependency to dependent. When the order is
// acyclic each level is pinned to its own rank.
func PrintGraphDOT(w io.Writer, g *plan.Graph, order plan.ExecutionOrder) error {
	var b strings.Builder
	b.WriteString("digraph tplan {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box];\n")
	if order.Acyclic() {
		for i, level := range order.Levels {
			fmt.Fprintf(&b, "  subgraph level_%d {\n", i)
			b.WriteString("    rank=same;\n")
			for _, id := range level {
				fmt.Fprintf(&b, "    %s;\n", dotQuote(id))
			}
			b.WriteString("  }\n")
		}
	} else {
		for _, id := range g.Nodes() {
			fmt.Fprintf(&b, "  %s;\n", dotQuote(id))
		}
	}
	for _, e := range g.Edges() {
		// e[0] depends on e[1].
		fmt.Fprintf(&b, "  %s -> %s;\n", dotQuote(e[1]), dotQuote(e[0]))
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// PrintGraphMermaid writes a top-down Mermaid flowchart.
func PrintGraphMermaid(w io.Writer, g *plan.Graph) error {
	ids := mermaidIDs(g.Nodes())
	var b strings.Builder
	b.WriteString("graph TD\n")
	for _, id := range g.Nodes() {
		fmt.Fprintf(&b, "  %s[\"%s\"]\n", ids[id], strings.ReplaceAll(id, `"`, "#quot;"))
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(&b, "  %s --> %s\n", ids[e[1]], ids[e[0]])
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func dotQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// mermaidIDs maps target names to distinct identifiers Mermaid accepts. A
// name whose identifier is already taken gets the first free numeric suffix.
func mermaidIDs(nodes []string) map[string]string {
	out := make(map[string]string, len(nodes))
	taken := make(map[string]struct{}, len(nodes))
	for _, id := range nodes {
		base := safeID(id)
		if base == "" || (base[0] >= '0' && base[0] <= '9') {
			base = "t_" + base
		}
		candidate := base
		for n := 1; ; n++ {
			if _, used := taken[candidate]; !used {
				break
			}
			candidate = fmt.Sprintf("%s_%d", base, n)
		}
		taken[candidate] = struct{}{}
		out[id] = candidate
	}
	return out
}

func safeID(s string) string {
	var out strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out.WriteRune(r)
		default:
			out.WriteRune('_')
		}
	}
	return out.String()
}
