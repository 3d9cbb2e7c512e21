// File: cmd/tplan/plan.go
// Brief: CLI command wiring and implementation for 'plan'.

package main

import (
	"fmt"
	"strings"

	"github.com/example/tplan/internal/render"
	"github.com/example/tplan/internal/ui"
	"github.com/spf13/cobra"
)

func newPlanCommand(root *rootOptions) *cobra.Command {
	flags := &planFlags{}
	output := "text"
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Group reachable targets into execution levels",
		Long: `Reads the targets file, keeps the targets reachable from the root, and prints
the levels they can run in. Every target's dependencies sit in earlier levels.
Exits non-zero when the graph contains a cycle.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadPlan(cmd, root, flags, nil)
			if err != nil {
				return err
			}
			format := output
			if !cmd.Flags().Changed("output") && loaded.config.Plan.Output != "" {
				format = loaded.config.Plan.Output
			}
			p := loaded.plan
			out := cmd.OutOrStdout()
			opts := render.Options{Color: root.color, Width: ui.WidthOr(out, ui.DefaultWidth)}

			switch strings.ToLower(strings.TrimSpace(format)) {
			case "text", "":
				if err := render.PrintExecutionOrder(out, p.Order(), opts); err != nil {
					return err
				}
				if closure, cerr := p.Closure(); cerr == nil {
					fmt.Fprintln(out)
					if err := render.PrintClosure(out, closure); err != nil {
						return err
					}
				}
			case "table":
				if !p.Order().Acyclic() {
					if err := render.PrintExecutionOrder(out, p.Order(), opts); err != nil {
						return err
					}
					break
				}
				if err := render.PrintLevelTable(out, p); err != nil {
					return err
				}
			case "json":
				if err := render.WriteJSON(out, render.BuildSummary(p)); err != nil {
					return err
				}
			case "yaml", "yml":
				if err := render.WriteYAML(out, render.BuildSummary(p)); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown output %q (expected text, table, json, or yaml)", format)
			}
			if !p.Order().Acyclic() {
				return p.Err()
			}
			return nil
		},
	}
	flags.bind(cmd.Flags(), true)
	cmd.Flags().StringVarP(&output, "output", "o", output, "Output format (text, table, json, yaml)")
	decorateCommandHelp(cmd, "Plan Flags")
	return cmd
}
