package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/example/tplan/internal/plan"
	"sigs.k8s.io/yaml"
)

func diamondPlan(mode plan.ClosureMode) *plan.Plan {
	deps := plan.DependencyMap{"A": {"B", "C"}, "B": {"D"}, "C": {"D"}}
	return plan.New(deps, "A", plan.Options{Closure: mode})
}

func cyclicPlan() *plan.Plan {
	return plan.New(plan.DependencyMap{"A": {"B"}, "B": {"A"}}, "A", plan.Options{})
}

func TestPrintGraph_ListsEveryTarget(t *testing.T) {
	var buf bytes.Buffer
	p := diamondPlan(plan.ClosureLevels)
	if err := PrintGraph(&buf, p.Graph(), Options{}); err != nil {
		t.Fatalf("print: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"=== Task Graph ===", "Root: A", "Targets: 4", "needs:      B, C", "needed by:  B, C"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI escapes with color disabled:\n%s", out)
	}
}

func TestPrintGraph_ColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintGraph(&buf, diamondPlan(plan.ClosureLevels).Graph(), Options{Color: true}); err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI escapes with color enabled")
	}
}

func TestPrintExecutionOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintExecutionOrder(&buf, diamondPlan(plan.ClosureLevels).Order(), Options{}); err != nil {
		t.Fatalf("print: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Level 0 (1 target)", "  - D", "Level 1 (2 targets)", "  - B\n  - C", "Level 2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestPrintExecutionOrder_Cycle(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintExecutionOrder(&buf, cyclicPlan().Order(), Options{}); err != nil {
		t.Fatalf("print: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "cycle detected: 2 targets") || !strings.Contains(out, "stuck: A, B") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "Level 0") {
		t.Fatalf("cyclic order must not print levels:\n%s", out)
	}
}

func TestPrintLevelTable(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintLevelTable(&buf, diamondPlan(plan.ClosureLevels)); err != nil {
		t.Fatalf("print: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header plus 4 rows, got:\n%s", buf.String())
	}
	if fields := strings.Fields(lines[0]); strings.Join(fields, " ") != "LEVEL TARGET NEEDS DEPS" {
		t.Fatalf("header=%q", lines[0])
	}
	if fields := strings.Fields(lines[4]); fields[0] != "2" || fields[1] != "A" || fields[len(fields)-1] != "3" {
		t.Fatalf("last row=%q", lines[4])
	}

	buf.Reset()
	if err := PrintLevelTable(&buf, diamondPlan(plan.ClosureSkip)); err != nil {
		t.Fatalf("print skip: %v", err)
	}
	if !strings.Contains(buf.String(), " -\n") {
		t.Fatalf("expected '-' deps column in skip mode:\n%s", buf.String())
	}

	if err := PrintLevelTable(&buf, cyclicPlan()); err == nil {
		t.Fatalf("expected error for cyclic plan")
	}
}

func TestPrintClosure(t *testing.T) {
	var buf bytes.Buffer
	c, _ := diamondPlan(plan.ClosureRecursive).Closure()
	if err := PrintClosure(&buf, c); err != nil {
		t.Fatalf("print: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "B, C, D") {
		t.Fatalf("missing closure of A:\n%s", out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if !strings.HasPrefix(lines[1], "A ") || !strings.HasPrefix(lines[4], "D ") {
		t.Fatalf("rows not sorted:\n%s", out)
	}
}

func TestPrintGraphDOT(t *testing.T) {
	var buf bytes.Buffer
	p := diamondPlan(plan.ClosureLevels)
	if err := PrintGraphDOT(&buf, p.Graph(), p.Order()); err != nil {
		t.Fatalf("print: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"digraph tplan {", `"D" -> "B";`, `"B" -> "A";`, "subgraph level_1 {", "rank=same;"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}

	buf.Reset()
	c := cyclicPlan()
	if err := PrintGraphDOT(&buf, c.Graph(), c.Order()); err != nil {
		t.Fatalf("print cyclic: %v", err)
	}
	if strings.Contains(buf.String(), "rank=same") {
		t.Fatalf("cyclic graph must not be ranked:\n%s", buf.String())
	}
}

func TestPrintGraphMermaid(t *testing.T) {
	var buf bytes.Buffer
	p := plan.New(plan.DependencyMap{"app-1": {"app.1", "9lib"}}, "app-1", plan.Options{})
	if err := PrintGraphMermaid(&buf, p.Graph()); err != nil {
		t.Fatalf("print: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"graph TD", `app_1["app-1"]`, `app_1_1["app.1"]`, `t_9lib["9lib"]`, "app_1_1 --> app_1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestSummary_JSONAndYAML(t *testing.T) {
	s := BuildSummary(diamondPlan(plan.ClosureLevels))
	if s.Status != "acyclic" || s.Targets != 4 || len(s.Levels) != 3 || s.Cycle != nil {
		t.Fatalf("summary=%+v", s)
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, s); err != nil {
		t.Fatalf("json: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if decoded["closureMode"] != "levels" {
		t.Fatalf("closureMode=%v", decoded["closureMode"])
	}

	buf.Reset()
	if err := WriteYAML(&buf, s); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	var back Summary
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if strings.Join(back.Closure["A"], ",") != "B,C,D" {
		t.Fatalf("closure(A)=%v", back.Closure["A"])
	}
}

func TestSummary_Cycle(t *testing.T) {
	s := BuildSummary(cyclicPlan())
	if s.Status != "cyclic" || s.Cycle == nil || len(s.Cycle.Stuck) != 2 {
		t.Fatalf("summary=%+v", s)
	}
	if s.Closure != nil || s.ClosureError == "" {
		t.Fatalf("expected closure error, got %+v", s)
	}
}

func TestClosureDiff(t *testing.T) {
	a := plan.ClosureMap{"A": plan.NewSet("B", "C"), "B": plan.NewSet()}
	same, err := ClosureDiff(a, plan.ClosureMap{"A": plan.NewSet("C", "B"), "B": plan.NewSet()}, "levels", "recursive")
	if err != nil || same != "" {
		t.Fatalf("expected empty diff, got %q err=%v", same, err)
	}
	b := plan.ClosureMap{"A": plan.NewSet("B"), "B": plan.NewSet()}
	diff, err := ClosureDiff(a, b, "levels", "recursive")
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	for _, want := range []string{"--- levels", "+++ recursive", "-A: B C", "+A: B"} {
		if !strings.Contains(diff, want) {
			t.Fatalf("missing %q in diff:\n%s", want, diff)
		}
	}
}

func TestMermaidIDsAreDistinct(t *testing.T) {
	cases := [][]string{
		{"a b", "a_b", "a_b_1"},
		{"a_b_1", "a b", "a_b"},
		{"x.y", "x-y", "x y", "x_y_1", "x_y_2"},
	}
	for _, nodes := range cases {
		ids := mermaidIDs(nodes)
		seen := map[string]string{}
		for _, name := range nodes {
			id := ids[name]
			if other, dup := seen[id]; dup {
				t.Fatalf("%v: %q and %q share id %q", nodes, other, name, id)
			}
			seen[id] = name
		}
	}
	ids := mermaidIDs([]string{"a b", "a_b", "a_b_1"})
	if ids["a b"] != "a_b" || ids["a_b"] != "a_b_1" || ids["a_b_1"] != "a_b_1_1" {
		t.Fatalf("ids=%v", ids)
	}
}
