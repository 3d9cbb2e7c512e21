// File: internal/render/diff.go
// Brief: Unified diff between two closure maps.

package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/tplan/internal/plan"
	"github.com/pmezard/go-difflib/difflib"
)

// ClosureDiff returns a unified diff of a and b with one line per target.
// Equal closures produce an empty string.
func ClosureDiff(a, b plan.ClosureMap, nameA, nameB string) (string, error) {
	left, right := closureLines(a), closureLines(b)
	if left == right {
		return "", nil
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(left),
		B:        difflib.SplitLines(right),
		FromFile: nameA,
		ToFile:   nameB,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", fmt.Errorf("render closure diff: %w", err)
	}
	return text, nil
}

func closureLines(c plan.ClosureMap) string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var b strings.Builder
	for _, id := range ids {
		fmt.Fprintf(&b, "%s: %s\n", id, strings.Join(c[id].Sorted(), " "))
	}
	return b.String()
}
