// File: cmd/tplan/graph.go
// Brief: CLI command wiring and implementation for 'graph'.

package main

import (
	"fmt"
	"strings"

	"github.com/example/tplan/internal/plan"
	"github.com/example/tplan/internal/render"
	"github.com/example/tplan/internal/ui"
	"github.com/spf13/cobra"
)

func newGraphCommand(root *rootOptions) *cobra.Command {
	flags := &planFlags{}
	format := "text"
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the reachable dependency graph",
		Long: `Prints every target reachable from the root with its direct dependencies and
dependents. DOT and Mermaid output draw edges from dependency to dependent.
Cyclic graphs are printed too, so this is the place to inspect a cycle.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			skip := plan.ClosureSkip
			loaded, err := loadPlan(cmd, root, flags, &skip)
			if err != nil {
				return err
			}
			p := loaded.plan
			out := cmd.OutOrStdout()
			switch strings.ToLower(strings.TrimSpace(format)) {
			case "text", "":
				opts := render.Options{Color: root.color, Width: ui.WidthOr(out, ui.DefaultWidth)}
				if err := render.PrintGraph(out, p.Graph(), opts); err != nil {
					return err
				}
				if !p.Order().Acyclic() {
					return render.PrintExecutionOrder(out, p.Order(), opts)
				}
				return nil
			case "dot":
				return render.PrintGraphDOT(out, p.Graph(), p.Order())
			case "mermaid":
				return render.PrintGraphMermaid(out, p.Graph())
			default:
				return fmt.Errorf("unknown graph format %q (expected text, dot, or mermaid)", format)
			}
		},
	}
	flags.bind(cmd.Flags(), false)
	cmd.Flags().StringVar(&format, "format", format, "Graph format (text, dot, mermaid)")
	decorateCommandHelp(cmd, "Graph Flags")
	return cmd
}
