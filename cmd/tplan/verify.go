// File: cmd/tplan/verify.go
// Brief: CLI command wiring and implementation for 'verify'.

package main

import (
	"errors"
	"fmt"

	"github.com/example/tplan/internal/plan"
	"github.com/example/tplan/internal/render"
	"github.com/spf13/cobra"
)

var errClosureMismatch = errors.New("closure algorithms disagree")

func newVerifyCommand(root *rootOptions) *cobra.Command {
	flags := &planFlags{}
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Cross-check the execution order and both closure algorithms",
		Long: `Plans the targets file, checks that every target is scheduled exactly once
after all of its dependencies, and computes the closure with both the
level-propagated and the recursive algorithm. Prints a diff and exits
non-zero when they disagree.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			levels := plan.ClosureLevels
			loaded, err := loadPlan(cmd, root, flags, &levels)
			if err != nil {
				return err
			}
			p := loaded.plan
			if err := p.Err(); err != nil {
				return err
			}
			if err := plan.CheckOrder(p.Graph(), p.Order()); err != nil {
				return err
			}
			byLevels, err := p.Closure()
			if err != nil {
				return err
			}
			recursive := plan.RecursiveClosure(p.Graph())
			out := cmd.OutOrStdout()
			if mismatches := plan.CompareClosures(byLevels, recursive); len(mismatches) > 0 {
				diff, err := render.ClosureDiff(byLevels, recursive, "levels", "recursive")
				if err != nil {
					return err
				}
				fmt.Fprint(out, diff)
				return fmt.Errorf("%w for %d targets", errClosureMismatch, len(mismatches))
			}
			fmt.Fprintf(out, "ok: %d targets in %d levels, closures agree (levels, recursive)\n", p.Graph().Len(), len(p.Order().Levels))
			return nil
		},
	}
	flags.bind(cmd.Flags(), true)
	if err := cmd.Flags().MarkHidden("closure"); err != nil {
		cobra.CheckErr(err)
	}
	decorateCommandHelp(cmd, "Verify Flags")
	return cmd
}
