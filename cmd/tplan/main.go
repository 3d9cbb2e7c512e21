// main.go bootstraps tplan: it builds the root Cobra command, layers env and config file values over flags, and executes with a signal-aware context.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/example/tplan/internal/logging"
	"github.com/example/tplan/internal/plan"
	"github.com/example/tplan/internal/ui"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCommand()
	err := rootCmd.ExecuteContext(ctx)
	handleError(err)
	if err != nil {
		os.Exit(1)
	}
}

// rootOptions carries global flag values and the state PersistentPreRunE
// derives from them.
type rootOptions struct {
	logLevel  string
	colorMode string

	logger logr.Logger
	color  bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{logLevel: "info", colorMode: "auto", logger: logr.Discard()}
	cmd := &cobra.Command{
		Use:           "tplan",
		Short:         "Plan build targets into concurrent execution levels",
		Long:          "tplan reads a targets file, keeps the targets reachable from a root, groups them into levels that can run concurrently, and reports each target's transitive dependencies.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyViper(cmd); err != nil {
				return err
			}
			logger, err := logging.New(opts.logLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			opts.logger = logger
			useColor, err := ui.ResolveColor(opts.colorMode, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			opts.color = useColor
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", opts.logLevel, "Log level for tplan output (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.colorMode, "color", opts.colorMode, "Colorize output (auto, always, never)")
	cmd.AddCommand(
		newPlanCommand(opts),
		newGraphCommand(opts),
		newDepsCommand(opts),
		newVerifyCommand(opts),
		newVersionCommand(),
	)
	cmd.Example = `  # Show the execution levels for the default root
  tplan plan -f targets.yaml

  # Render the graph for Graphviz
  tplan graph -f targets.yaml --format dot | dot -Tsvg > graph.svg

  # List everything app needs, then everything that needs core
  tplan deps app -f targets.yaml
  tplan deps core -f targets.yaml --reverse`
	decorateCommandHelp(cmd, "Global Flags")
	return cmd
}

// applyViper fills every flag the user did not set from TPLAN_* environment
// variables or the CLI config file. Values applied this way count as set.
func applyViper(cmd *cobra.Command) error {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix("TPLAN")
	v.AutomaticEnv()
	configFile := os.Getenv("TPLAN_CONFIG")
	configureConfigFile(v, configFile)
	if err := readConfigFile(v, configFile != ""); err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	fs := cmd.Flags()
	var applyErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if applyErr != nil || f.Changed || !v.IsSet(f.Name) {
			return
		}
		val := fmt.Sprintf("%v", v.Get(f.Name))
		if val == "" {
			return
		}
		if err := fs.Set(f.Name, val); err != nil {
			applyErr = fmt.Errorf("apply %s from environment or config: %w", f.Name, err)
		}
	})
	return applyErr
}

func configureConfigFile(v *viper.Viper, explicitPath string) {
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		return
	}
	v.SetConfigName("config")
	for _, dir := range configSearchDirs() {
		v.AddConfigPath(dir)
	}
}

func readConfigFile(v *viper.Viper, strict bool) error {
	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if errors.As(err, &cfgErr) && !strict {
			return nil
		}
		return err
	}
	return nil
}

func configSearchDirs() []string {
	added := make(map[string]struct{})
	var dirs []string
	add := func(path string) {
		if path == "" {
			return
		}
		if _, ok := added[path]; ok {
			return
		}
		added[path] = struct{}{}
		dirs = append(dirs, path)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		add(filepath.Join(xdg, "tplan"))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		add(filepath.Join(home, ".config", "tplan"))
	}
	return dirs
}

func handleError(err error) {
	writeError(os.Stderr, err)
}

func writeError(w io.Writer, err error) {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return
	}
	message := err.Error()
	switch {
	case errors.Is(err, plan.ErrCycle):
		message = fmt.Sprintf("%s\nHint: run 'tplan graph' to inspect the edges between the stuck targets.", err)
	case errors.Is(err, plan.ErrUnknownTarget):
		message = fmt.Sprintf("%s\nHint: run 'tplan plan' to list the targets reachable from the root, or pass --root.", err)
	case errors.Is(err, errClosureMismatch):
		message = fmt.Sprintf("%s\nHint: rerun with --log-level debug and report the targets file that triggers it.", err)
	case errors.Is(err, errNoTargetsFile):
		message = fmt.Sprintf("%s\nHint: pass --file or set plan.targetsFile in .tplan.yaml.", err)
	case errors.Is(err, context.Canceled):
		message = "interrupted"
	}
	fmt.Fprintf(w, "Error: %s\n", message)
}
