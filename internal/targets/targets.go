// File: internal/targets/targets.go
// Brief: Targets file loading into a direct dependency map.

// Package targets reads the targets file that declares each target and its
// direct dependencies. The file is YAML (JSON is accepted as a subset):
//
//	root: app
//	targets:
//	  app: [lib, assets]
//	  lib:
//	    needs: [core]
//	    description: shared library
//	  core: []
package targets

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/example/tplan/internal/plan"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

type Target struct {
	Name        string   `yaml:"-" json:"name"`
	Needs       []string `yaml:"needs,omitempty" json:"needs,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
}

// UnmarshalYAML accepts a list of dependencies, a mapping with needs, a
// single dependency name, or null.
func (t *Target) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		return node.Decode(&t.Needs)
	case yaml.MappingNode:
		type plain Target
		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}
		*t = Target(p)
		return nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" || strings.TrimSpace(node.Value) == "" {
			t.Needs = nil
			return nil
		}
		t.Needs = []string{node.Value}
		return nil
	default:
		return fmt.Errorf("line %d: unsupported target definition", node.Line)
	}
}

type File struct {
	Path    string
	Root    string
	Targets map[string]*Target
	// Order lists target names as declared.
	Order []string
}

type rawFile struct {
	Root    string    `yaml:"root"`
	Targets yaml.Node `yaml:"targets"`
}

// Load reads and parses a targets file. "~" in path is expanded.
func Load(path string) (*File, error) {
	expanded, err := homedir.Expand(strings.TrimSpace(path))
	if err != nil {
		return nil, fmt.Errorf("expand %s: %w", path, err)
	}
	raw, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("read targets file: %w", err)
	}
	f, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", expanded, err)
	}
	f.Path = expanded
	return f, nil
}

func Parse(data []byte) (*File, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	f := &File{
		Root:    strings.TrimSpace(raw.Root),
		Targets: map[string]*Target{},
	}
	node := &raw.Targets
	if node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.Tag == "!!null") {
		return f, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: targets must be a mapping of name to dependencies", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		name := strings.TrimSpace(keyNode.Value)
		if name == "" {
			return nil, fmt.Errorf("line %d: empty target name", keyNode.Line)
		}
		if _, dup := f.Targets[name]; dup {
			return nil, fmt.Errorf("line %d: duplicate target %q", keyNode.Line, name)
		}
		t := &Target{}
		if err := valNode.Decode(t); err != nil {
			return nil, fmt.Errorf("target %q: %w", name, err)
		}
		t.Name = name
		for j, dep := range t.Needs {
			dep = strings.TrimSpace(dep)
			if dep == "" {
				return nil, fmt.Errorf("line %d: target %q has an empty dependency", valNode.Line, name)
			}
			t.Needs[j] = dep
		}
		f.Targets[name] = t
		f.Order = append(f.Order, name)
	}
	return f, nil
}

// Dependencies returns the direct dependency map declared by the file.
func (f *File) Dependencies() plan.DependencyMap {
	deps := make(plan.DependencyMap, len(f.Targets))
	for name, t := range f.Targets {
		deps[name] = append([]string(nil), t.Needs...)
	}
	return deps
}

// Undeclared lists names used as dependencies that have no entry of their
// own. They plan as leaves.
func (f *File) Undeclared() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, name := range f.Order {
		for _, dep := range f.Targets[name].Needs {
			if _, ok := f.Targets[dep]; ok {
				continue
			}
			if _, ok := seen[dep]; ok {
				continue
			}
			seen[dep] = struct{}{}
			out = append(out, dep)
		}
	}
	sort.Strings(out)
	return out
}

// ResolveRoot picks the explicit root, then the file's root, then the only
// declared target nobody depends on.
func (f *File) ResolveRoot(explicit string) (string, error) {
	if r := strings.TrimSpace(explicit); r != "" {
		return r, nil
	}
	if f.Root != "" {
		return f.Root, nil
	}
	needed := map[string]struct{}{}
	for _, t := range f.Targets {
		for _, dep := range t.Needs {
			needed[dep] = struct{}{}
		}
	}
	var tops []string
	for _, name := range f.Order {
		if _, ok := needed[name]; !ok {
			tops = append(tops, name)
		}
	}
	switch len(tops) {
	case 1:
		return tops[0], nil
	case 0:
		return "", fmt.Errorf("no root target: every declared target is a dependency of another (pass --root)")
	default:
		return "", fmt.Errorf("ambiguous root target, candidates %v (pass --root)", tops)
	}
}
