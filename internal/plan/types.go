// File: internal/plan/types.go
// Brief: Dependency map, set, order and closure types.

package plan

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DependencyMap maps a target to its direct dependencies. A target missing
// from the map has no dependencies.
type DependencyMap map[string][]string

// Of returns the direct dependencies of id, or nil for a leaf.
func (m DependencyMap) Of(id string) []string {
	if m == nil {
		return nil
	}
	return m[id]
}

type Set map[string]struct{}

func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s Set) Len() int { return len(s) }

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both sets hold exactly the same members.
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for id := range s {
		if !o.Has(id) {
			return false
		}
	}
	return true
}

// ClosureMap maps every reachable target to all of its transitive dependencies.
type ClosureMap map[string]Set

type OrderStatus int

const (
	OrderPending OrderStatus = iota
	OrderAcyclic
	OrderCyclic
)

func (s OrderStatus) String() string {
	switch s {
	case OrderAcyclic:
		return "acyclic"
	case OrderCyclic:
		return "cyclic"
	default:
		return "pending"
	}
}

// ExecutionOrder is the result of leveling a graph. Levels is only set for an
// acyclic graph; Stuck and CyclePath are only set for a cyclic one.
type ExecutionOrder struct {
	Status    OrderStatus
	Levels    [][]string
	Stuck     []string
	CyclePath []string
}

func (o ExecutionOrder) Acyclic() bool { return o.Status == OrderAcyclic }

// Flatten concatenates all levels into one topological order.
func (o ExecutionOrder) Flatten() []string {
	var out []string
	for _, level := range o.Levels {
		out = append(out, level...)
	}
	return out
}

// LevelIndex maps each target to the zero-based level it was placed in.
func (o ExecutionOrder) LevelIndex() map[string]int {
	idx := make(map[string]int)
	for i, level := range o.Levels {
		for _, id := range level {
			idx[id] = i
		}
	}
	return idx
}

var (
	// ErrCycle is matched by every error caused by a dependency cycle.
	ErrCycle = errors.New("dependency cycle detected")
	// ErrClosureSkipped is returned when closure computation was not requested.
	ErrClosureSkipped = errors.New("closure computation skipped")
	ErrUnknownTarget  = errors.New("unknown target")
)

// CycleError describes the targets that could not be leveled.
type CycleError struct {
	Stuck []string
	Path  []string
}

func (e *CycleError) Error() string {
	if len(e.Path) > 0 {
		return fmt.Sprintf("%s: %s", ErrCycle, strings.Join(e.Path, " -> "))
	}
	return fmt.Sprintf("%s (%d targets): %v", ErrCycle, len(e.Stuck), e.Stuck)
}

func (e *CycleError) Is(target error) bool { return target == ErrCycle }
