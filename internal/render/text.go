// File: internal/render/text.go
// Brief: Human-readable graph, level, and closure printers.

// Package render prints plans for people and for other tools: colored text,
// aligned tables, Graphviz DOT, Mermaid, JSON, and YAML.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/example/tplan/internal/plan"
	"github.com/example/tplan/internal/ui"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var headingCaser = cases.Title(language.Und, cases.NoLower)

type Options struct {
	Color bool
	// Width caps separator lines. Zero means ui.DefaultWidth.
	Width int
}

type palette struct {
	heading *color.Color
	target  *color.Color
	label   *color.Color
	muted   *color.Color
	failure *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		heading: color.New(color.FgCyan, color.Bold),
		target:  color.New(color.FgHiWhite, color.Bold),
		label:   color.New(color.FgBlue),
		muted:   color.New(color.FgHiBlack),
		failure: color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.heading, p.target, p.label, p.muted, p.failure} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func heading(title string) string {
	return "=== " + headingCaser.String(title) + " ==="
}

func separator(lines []string, maxWidth int) string {
	if maxWidth <= 0 {
		maxWidth = ui.DefaultWidth
	}
	width := 0
	for _, line := range lines {
		if n := runewidth.StringWidth(line); n > width {
			width = n
		}
	}
	if width > maxWidth {
		width = maxWidth
	}
	return strings.Repeat("=", width)
}

func joinOrDash(ids []string) string {
	if len(ids) == 0 {
		return "-"
	}
	return strings.Join(ids, ", ")
}

// PrintGraph lists every reachable target in discovery order with its direct
// dependencies and direct dependents.
func PrintGraph(w io.Writer, g *plan.Graph, opts Options) error {
	pal := newPalette(opts.Color)
	title := heading("task graph")
	plain := []string{title}
	var body []string
	body = append(body, fmt.Sprintf("%s %s", pal.label.Sprint("Root:"), g.Root()))
	body = append(body, fmt.Sprintf("%s %d", pal.label.Sprint("Targets:"), g.Len()))
	for _, id := range g.Nodes() {
		needs := fmt.Sprintf("  needs:      %s", joinOrDash(g.DirectDeps(id)))
		neededBy := fmt.Sprintf("  needed by:  %s", joinOrDash(g.Dependents(id)))
		plain = append(plain, id, needs, neededBy)
		body = append(body, "", pal.target.Sprint(id), pal.muted.Sprint(needs), pal.muted.Sprint(neededBy))
	}
	sep := separator(plain, opts.Width)

	var b strings.Builder
	b.WriteString(pal.heading.Sprint(title))
	b.WriteString("\n")
	for _, line := range body {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(pal.heading.Sprint(sep))
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// PrintExecutionOrder prints one block per level, or the cycle diagnostics
// when the graph could not be leveled.
func PrintExecutionOrder(w io.Writer, order plan.ExecutionOrder, opts Options) error {
	pal := newPalette(opts.Color)
	var b strings.Builder
	b.WriteString(pal.heading.Sprint(heading("execution order")))
	b.WriteString("\n")
	switch order.Status {
	case plan.OrderAcyclic:
		for i, level := range order.Levels {
			noun := "targets"
			if len(level) == 1 {
				noun = "target"
			}
			fmt.Fprintf(&b, "%s %s\n", pal.label.Sprintf("Level %d", i), pal.muted.Sprintf("(%d %s)", len(level), noun))
			for _, id := range level {
				fmt.Fprintf(&b, "  - %s\n", id)
			}
		}
	case plan.OrderCyclic:
		fmt.Fprintf(&b, "%s\n", pal.failure.Sprintf("cycle detected: %d targets cannot be scheduled", len(order.Stuck)))
		fmt.Fprintf(&b, "  stuck: %s\n", joinOrDash(order.Stuck))
		if len(order.CyclePath) > 0 {
			fmt.Fprintf(&b, "  cycle: %s\n", strings.Join(order.CyclePath, " -> "))
		}
	default:
		b.WriteString(pal.muted.Sprint("not computed"))
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// PrintLevelTable writes one row per scheduled target. DEPS is the size of
// the target's transitive dependency set, or "-" when no closure exists.
func PrintLevelTable(w io.Writer, p *plan.Plan) error {
	order := p.Order()
	if !order.Acyclic() {
		return p.Err()
	}
	closure, closureErr := p.Closure()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LEVEL\tTARGET\tNEEDS\tDEPS")
	for i, level := range order.Levels {
		for _, id := range level {
			deps := "-"
			if closureErr == nil {
				deps = fmt.Sprintf("%d", closure[id].Len())
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, id, joinOrDash(p.Graph().DirectDeps(id)), deps)
		}
	}
	return tw.Flush()
}

// PrintClosure writes every target's transitive dependencies, sorted by
// target name.
func PrintClosure(w io.Writer, closure plan.ClosureMap) error {
	ids := make([]string, 0, len(closure))
	for id := range closure {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TARGET\tCOUNT\tDEPENDENCIES")
	for _, id := range ids {
		set := closure[id]
		fmt.Fprintf(tw, "%s\t%d\t%s\n", id, set.Len(), joinOrDash(set.Sorted()))
	}
	return tw.Flush()
}
