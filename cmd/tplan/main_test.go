package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/tplan/internal/plan"
)

const diamondTargets = `root: A
targets:
  A: [B, C]
  B: [D]
  C:
    needs: [D]
  D: []
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func runCLIWithConfig(t *testing.T, config string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("TPLAN_CONFIG", writeFile(t, t.TempDir(), "config.yaml", config))
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")

	root := newRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return runCLIWithConfig(t, "{}\n", args...)
}

func diamondFile(t *testing.T) string {
	t.Helper()
	return writeFile(t, t.TempDir(), "targets.yaml", diamondTargets)
}

func TestRootShowsHelp(t *testing.T) {
	out, _, err := runCLI(t)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{"Usage:", "Commands:", "plan", "verify", "Global Flags:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in help:\n%s", want, out)
		}
	}
}

func TestSubcommandHelpUsesHeading(t *testing.T) {
	out, _, err := runCLI(t, "plan", "--help")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "Plan Flags:") || !strings.Contains(out, "--closure") {
		t.Fatalf("unexpected help:\n%s", out)
	}
	if !strings.Contains(out, "Global Flags:") || !strings.Contains(out, "--log-level") {
		t.Fatalf("expected inherited flags in help:\n%s", out)
	}
}

func TestUnknownLogLevelFails(t *testing.T) {
	_, _, err := runCLI(t, "version", "--log-level", "loud")
	if err == nil || !strings.Contains(err.Error(), "unknown log level") {
		t.Fatalf("expected log level error, got %v", err)
	}
}

func TestEnvironmentOverridesFlagDefaults(t *testing.T) {
	t.Setenv("TPLAN_OUTPUT", "json")
	out, _, err := runCLI(t, "plan", "-f", diamondFile(t))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("expected JSON from TPLAN_OUTPUT, got %q: %v", out, err)
	}
}

func TestExplicitFlagBeatsEnvironment(t *testing.T) {
	t.Setenv("TPLAN_OUTPUT", "json")
	out, _, err := runCLI(t, "plan", "-f", diamondFile(t), "-o", "table")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(out, "LEVEL") {
		t.Fatalf("expected table output, got:\n%s", out)
	}
}

func TestConfigFileSetsFlags(t *testing.T) {
	out, _, err := runCLIWithConfig(t, "output: table\n", "plan", "-f", diamondFile(t))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(out, "LEVEL") {
		t.Fatalf("expected table output from config file, got:\n%s", out)
	}
}

func TestMissingExplicitConfigFails(t *testing.T) {
	t.Setenv("TPLAN_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"version"})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Fatalf("expected error for missing TPLAN_CONFIG file")
	}
}

func TestRepoConfigSuppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "defs/targets.yaml", diamondTargets)
	writeFile(t, dir, ".tplan.yaml", "plan:\n  targetsFile: defs/targets.yaml\n  root: B\n  output: json\n")
	t.Chdir(dir)

	out, _, err := runCLI(t, "plan")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var decoded struct {
		Root    string     `json:"root"`
		Targets int        `json:"targets"`
		Levels  [][]string `json:"levels"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if decoded.Root != "B" || decoded.Targets != 2 || len(decoded.Levels) != 2 {
		t.Fatalf("summary=%+v", decoded)
	}
}

func TestNoTargetsFile(t *testing.T) {
	t.Chdir(t.TempDir())
	_, _, err := runCLI(t, "plan")
	if !errors.Is(err, errNoTargetsFile) {
		t.Fatalf("expected errNoTargetsFile, got %v", err)
	}
}

func TestWriteErrorHints(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&plan.CycleError{Stuck: []string{"a", "b"}, Path: []string{"a", "b", "a"}}, "tplan graph"},
		{plan.ErrUnknownTarget, "--root"},
		{errClosureMismatch, "--log-level debug"},
		{errNoTargetsFile, ".tplan.yaml"},
		{context.Canceled, "interrupted"},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		writeError(&buf, tc.err)
		if !strings.HasPrefix(buf.String(), "Error: ") || !strings.Contains(buf.String(), tc.want) {
			t.Fatalf("writeError(%v)=%q", tc.err, buf.String())
		}
	}
	var buf bytes.Buffer
	writeError(&buf, nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output for nil error")
	}
}
