// File: internal/appconfig/config.go
// Brief: Project defaults loaded from global and repository config files.

// Package appconfig loads tplan project defaults. A global file under the
// user's home is read first and a repository .tplan.yaml overrides it.
package appconfig

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

type PlanConfig struct {
	TargetsFile string `yaml:"targetsFile,omitempty"`
	Root        string `yaml:"root,omitempty"`
	Closure     string `yaml:"closure,omitempty"`
	Concurrency *int   `yaml:"concurrency,omitempty"`
	Output      string `yaml:"output,omitempty"`
}

type Config struct {
	Plan PlanConfig `yaml:"plan,omitempty"`

	// dir of the file that last set Plan.TargetsFile; relative paths resolve against it.
	targetsBase string
}

func DefaultGlobalPath() string {
	home, err := homedir.Dir()
	if err != nil || strings.TrimSpace(home) == "" {
		return ""
	}
	return filepath.Join(home, ".tplan", "config.yaml")
}

func DefaultRepoPath(repoRoot string) string {
	repoRoot = strings.TrimSpace(repoRoot)
	if repoRoot == "" {
		return ""
	}
	return filepath.Join(repoRoot, ".tplan.yaml")
}

// Load reads globalPath then repoPath; missing files are ignored.
func Load(ctx context.Context, globalPath, repoPath string) (Config, error) {
	_ = ctx
	cfg := Config{}
	if strings.TrimSpace(globalPath) != "" {
		c, err := loadOne(globalPath)
		if err != nil {
			return Config{}, fmt.Errorf("load global config: %w", err)
		}
		cfg = merge(cfg, c)
	}
	if strings.TrimSpace(repoPath) != "" {
		c, err := loadOne(repoPath)
		if err != nil {
			return Config{}, fmt.Errorf("load repo config: %w", err)
		}
		cfg = merge(cfg, c)
	}
	return cfg, nil
}

// TargetsPath returns the configured targets file as an absolute path when
// it was given relative to its config file.
func (c Config) TargetsPath() string {
	p := strings.TrimSpace(c.Plan.TargetsFile)
	if p == "" {
		return ""
	}
	if expanded, err := homedir.Expand(p); err == nil {
		p = expanded
	}
	if filepath.IsAbs(p) || c.targetsBase == "" {
		return p
	}
	return filepath.Join(c.targetsBase, p)
}

func loadOne(path string) (Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Config{}, nil
	}
	if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}
	raw = []byte(strings.TrimSpace(string(raw)))
	if len(raw) == 0 {
		return Config{}, nil
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Plan.TargetsFile != "" {
		cfg.targetsBase = filepath.Dir(path)
	}
	return cfg, nil
}

func merge(a, b Config) Config {
	out := a
	out.Plan = mergePlan(a.Plan, b.Plan)
	if b.Plan.TargetsFile != "" {
		out.targetsBase = b.targetsBase
	}
	return out
}

func mergePlan(a, b PlanConfig) PlanConfig {
	out := a
	if b.TargetsFile != "" {
		out.TargetsFile = b.TargetsFile
	}
	if b.Root != "" {
		out.Root = b.Root
	}
	if b.Closure != "" {
		out.Closure = b.Closure
	}
	if b.Concurrency != nil {
		out.Concurrency = b.Concurrency
	}
	if b.Output != "" {
		out.Output = b.Output
	}
	return out
}
