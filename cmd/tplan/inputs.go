// File: cmd/tplan/inputs.go
// Brief: Shared flag set and plan loading for commands that read a targets file.

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/example/tplan/internal/appconfig"
	"github.com/example/tplan/internal/plan"
	"github.com/example/tplan/internal/targets"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var errNoTargetsFile = errors.New("no targets file")

type planFlags struct {
	file        string
	root        string
	closure     string
	concurrency int
}

func (f *planFlags) bind(fs *pflag.FlagSet, withClosure bool) {
	fs.StringVarP(&f.file, "file", "f", "", "Targets file (YAML or JSON)")
	fs.StringVar(&f.root, "root", "", "Root target (defaults to the file's root or its only top-level target)")
	if withClosure {
		fs.StringVar(&f.closure, "closure", "levels", "Closure algorithm (levels, recursive, skip)")
		fs.IntVar(&f.concurrency, "concurrency", 0, "Goroutines per level for the levels closure (0 = one per target)")
	}
}

// loadedPlan bundles a plan with the inputs that produced it.
type loadedPlan struct {
	plan   *plan.Plan
	file   *targets.File
	config appconfig.Config
}

// loadPlan resolves inputs with flag > environment > repository config
// precedence, reads the targets file, and plans it. A non-nil mode overrides
// the closure flag.
func loadPlan(cmd *cobra.Command, root *rootOptions, flags *planFlags, mode *plan.ClosureMode) (*loadedPlan, error) {
	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return nil, err
	}
	fs := cmd.Flags()

	path := strings.TrimSpace(flags.file)
	if path == "" {
		path = cfg.TargetsPath()
	}
	if path == "" {
		return nil, fmt.Errorf("%w given", errNoTargetsFile)
	}
	file, err := targets.Load(path)
	if err != nil {
		return nil, err
	}

	rootName := flags.root
	if !fs.Changed("root") && cfg.Plan.Root != "" {
		rootName = cfg.Plan.Root
	}
	rootName, err = file.ResolveRoot(rootName)
	if err != nil {
		return nil, err
	}

	opts := plan.Options{Logger: root.logger.WithName("plan")}
	if mode != nil {
		opts.Closure = *mode
	} else {
		closure := flags.closure
		if fs.Lookup("closure") != nil && !fs.Changed("closure") && cfg.Plan.Closure != "" {
			closure = cfg.Plan.Closure
		}
		if opts.Closure, err = plan.ParseClosureMode(closure); err != nil {
			return nil, err
		}
	}
	opts.Concurrency = flags.concurrency
	if fs.Lookup("concurrency") != nil && !fs.Changed("concurrency") && cfg.Plan.Concurrency != nil {
		opts.Concurrency = *cfg.Plan.Concurrency
	}

	log := root.logger
	if undeclared := file.Undeclared(); len(undeclared) > 0 {
		log.Info("undeclared targets are planned as leaves", "targets", undeclared)
	}
	if _, ok := file.Targets[rootName]; !ok {
		log.Info("root target is not declared; planning it as a leaf", "root", rootName)
	}
	log.V(1).Info("planning", "file", file.Path, "root", rootName, "closure", opts.Closure.String(), "concurrency", opts.Concurrency)

	return &loadedPlan{
		plan:   plan.New(file.Dependencies(), rootName, opts),
		file:   file,
		config: cfg,
	}, nil
}

func loadProjectConfig(cmd *cobra.Command) (appconfig.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return appconfig.Config{}, fmt.Errorf("resolve working directory: %w", err)
	}
	repoRoot := appconfig.FindRepoRoot(cwd)
	return appconfig.Load(cmd.Context(), appconfig.DefaultGlobalPath(), appconfig.DefaultRepoPath(repoRoot))
}
