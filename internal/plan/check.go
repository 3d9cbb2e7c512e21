// File: internal/plan/check.go
// Brief: Validation of a computed execution order against its graph.

package plan

import (
	"errors"
	"fmt"
)

// ErrInvalidOrder is wrapped by every CheckOrder failure.
var ErrInvalidOrder = errors.New("invalid execution order")

// CheckOrder confirms that order places every target of g exactly once and
// that each target sits in a later level than all of its dependencies.
func CheckOrder(g *Graph, order ExecutionOrder) error {
	if !order.Acyclic() {
		return fmt.Errorf("%w: status is %s", ErrInvalidOrder, order.Status)
	}
	idx := make(map[string]int, g.Len())
	for i, level := range order.Levels {
		if len(level) == 0 {
			return fmt.Errorf("%w: level %d is empty", ErrInvalidOrder, i)
		}
		for _, id := range level {
			if !g.Has(id) {
				return fmt.Errorf("%w: %q is not reachable from %q", ErrInvalidOrder, id, g.Root())
			}
			if prev, dup := idx[id]; dup {
				return fmt.Errorf("%w: %q appears in levels %d and %d", ErrInvalidOrder, id, prev, i)
			}
			idx[id] = i
		}
	}
	for _, id := range g.order {
		lvl, ok := idx[id]
		if !ok {
			return fmt.Errorf("%w: %q is missing", ErrInvalidOrder, id)
		}
		for _, dep := range g.deps.Of(id) {
			if idx[dep] >= lvl {
				return fmt.Errorf("%w: %q (level %d) needs %q (level %d)", ErrInvalidOrder, id, lvl, dep, idx[dep])
			}
		}
	}
	return nil
}
