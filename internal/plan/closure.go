// File: internal/plan/closure.go
// Brief: Transitive dependency closure (recursive and level-propagated).

package plan

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

type ClosureMode int

const (
	ClosureLevels ClosureMode = iota
	ClosureRecursive
	ClosureSkip
)

func (m ClosureMode) String() string {
	switch m {
	case ClosureRecursive:
		return "recursive"
	case ClosureSkip:
		return "skip"
	default:
		return "levels"
	}
}

// ParseClosureMode accepts "levels", "recursive" or "skip" (empty means levels).
func ParseClosureMode(s string) (ClosureMode, error) {
	switch s {
	case "", "levels", "level":
		return ClosureLevels, nil
	case "recursive", "dfs":
		return ClosureRecursive, nil
	case "skip", "none", "off":
		return ClosureSkip, nil
	default:
		return ClosureLevels, fmt.Errorf("unknown closure mode %q (expected levels, recursive, or skip)", s)
	}
}

// RecursiveClosure walks the dependency map depth-first from every reachable
// target. Each walk keeps its own visited set, so it terminates on cyclic
// input, although the result is only meaningful for an acyclic graph.
func RecursiveClosure(g *Graph) ClosureMap {
	out := make(ClosureMap, g.Len())
	for _, start := range g.order {
		acc := Set{}
		visited := map[string]struct{}{}
		stack := []string{start}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if _, ok := visited[cur]; ok {
				continue
			}
			visited[cur] = struct{}{}
			deps := g.deps.Of(cur)
			for i := len(deps) - 1; i >= 0; i-- {
				acc[deps[i]] = struct{}{}
				stack = append(stack, deps[i])
			}
		}
		delete(acc, start)
		out[start] = acc
	}
	return out
}

// LevelClosure derives each target's closure from the already finished
// closures of its direct dependencies, one level at a time. Targets in the same
// level never depend on each other, so a level is computed concurrently; Wait
// is the barrier before the next level starts. concurrency <= 0 means no limit.
func LevelClosure(g *Graph, order ExecutionOrder, concurrency int) (ClosureMap, error) {
	if !order.Acyclic() {
		return ClosureMap{}, &CycleError{Stuck: order.Stuck, Path: order.CyclePath}
	}
	store := newClosureStore(g.Len())
	for i, level := range order.Levels {
		if i == 0 {
			for _, id := range level {
				store.put(id, Set{})
			}
			continue
		}
		var eg errgroup.Group
		if concurrency > 0 {
			eg.SetLimit(concurrency)
		}
		for _, id := range level {
			eg.Go(func() error {
				acc := Set{}
				for _, dep := range g.deps.Of(id) {
					acc[dep] = struct{}{}
					for d := range store.get(dep) {
						acc[d] = struct{}{}
					}
				}
				store.put(id, acc)
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return ClosureMap{}, err
		}
	}
	return store.snapshot(), nil
}

// closureStore is written by one goroutine per key and read by later levels.
type closureStore struct {
	mu   sync.RWMutex
	sets ClosureMap
}

func newClosureStore(size int) *closureStore {
	return &closureStore{sets: make(ClosureMap, size)}
}

func (s *closureStore) put(id string, set Set) {
	s.mu.Lock()
	s.sets[id] = set
	s.mu.Unlock()
}

func (s *closureStore) get(id string) Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sets[id]
}

func (s *closureStore) snapshot() ClosureMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(ClosureMap, len(s.sets))
	for id, set := range s.sets {
		out[id] = set
	}
	return out
}

// Mismatch records a target whose closure differs between two computations.
type Mismatch struct {
	Target  string
	Missing []string // in a, not in b
	Extra   []string // in b, not in a
}

// CompareClosures lists targets whose closure differs between a and b, sorted
// by target. A target present in only one map compares against an empty set.
func CompareClosures(a, b ClosureMap) []Mismatch {
	keys := Set{}
	for id := range a {
		keys[id] = struct{}{}
	}
	for id := range b {
		keys[id] = struct{}{}
	}
	var out []Mismatch
	for _, id := range keys.Sorted() {
		sa, sb := a[id], b[id]
		if sa.Equal(sb) {
			continue
		}
		m := Mismatch{Target: id}
		for d := range sa {
			if !sb.Has(d) {
				m.Missing = append(m.Missing, d)
			}
		}
		for d := range sb {
			if !sa.Has(d) {
				m.Extra = append(m.Extra, d)
			}
		}
		sort.Strings(m.Missing)
		sort.Strings(m.Extra)
		out = append(out, m)
	}
	return out
}
