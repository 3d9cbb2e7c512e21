// File: cmd/tplan/deps.go
// Brief: CLI command wiring and implementation for 'deps'.

package main

import (
	"fmt"

	"github.com/example/tplan/internal/plan"
	"github.com/spf13/cobra"
)

func newDepsCommand(root *rootOptions) *cobra.Command {
	flags := &planFlags{}
	var reverse bool
	cmd := &cobra.Command{
		Use:   "deps TARGET",
		Short: "List the transitive dependencies of a target",
		Long: `Prints every target TARGET depends on, directly or through other targets, one
per line in lexical order. With --reverse, prints every target that depends on
TARGET instead.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var mode *plan.ClosureMode
			if reverse {
				skip := plan.ClosureSkip
				mode = &skip
			}
			loaded, err := loadPlan(cmd, root, flags, mode)
			if err != nil {
				return err
			}
			p := loaded.plan
			target := args[0]
			var ids []string
			if reverse {
				if !p.Graph().Has(target) {
					return fmt.Errorf("%w %q (not reachable from %q)", plan.ErrUnknownTarget, target, p.Root())
				}
				ids = p.Graph().DependentsOf(target)
			} else {
				ids, err = p.DepsOf(target)
				if err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			for _, id := range ids {
				fmt.Fprintln(out, id)
			}
			return nil
		},
	}
	flags.bind(cmd.Flags(), true)
	cmd.Flags().BoolVar(&reverse, "reverse", false, "List targets that depend on TARGET")
	decorateCommandHelp(cmd, "Deps Flags")
	return cmd
}
