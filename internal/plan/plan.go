// File: internal/plan/plan.go
// Brief: Plan facade tying graph, levels and closure together.

package plan

import (
	"fmt"

	"github.com/go-logr/logr"
)

type Options struct {
	Closure ClosureMode
	// Concurrency bounds the goroutines used per level; <= 0 means unbounded.
	Concurrency int
	Logger      logr.Logger
}

// Plan is the result of one planning pass over a dependency map and root.
// It owns all of its structures; nothing is shared between plans.
type Plan struct {
	graph      *Graph
	order      ExecutionOrder
	closure    ClosureMap
	closureErr error
	mode       ClosureMode
}

// New builds the reachable graph from root, levels it and, unless opts asks
// to skip it or the graph is cyclic, computes the closure of every target.
// deps is never modified.
func New(deps DependencyMap, root string, opts Options) *Plan {
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	log = log.WithValues("root", root)

	p := &Plan{mode: opts.Closure, closure: ClosureMap{}}
	p.graph = BuildGraph(deps, root)
	log.V(1).Info("graph built", "targets", p.graph.Len())

	p.order = ScheduleLevels(p.graph)
	if !p.order.Acyclic() {
		cycleErr := &CycleError{Stuck: p.order.Stuck, Path: p.order.CyclePath}
		log.V(1).Info("leveling failed", "stuck", len(p.order.Stuck), "cycle", p.order.CyclePath)
		p.closureErr = cycleErr
		return p
	}
	log.V(1).Info("graph leveled", "levels", len(p.order.Levels))

	switch opts.Closure {
	case ClosureSkip:
		p.closureErr = ErrClosureSkipped
	case ClosureRecursive:
		p.closure = RecursiveClosure(p.graph)
	default:
		closure, err := LevelClosure(p.graph, p.order, opts.Concurrency)
		if err != nil {
			p.closureErr = err
			break
		}
		p.closure = closure
	}
	log.V(1).Info("closure computed", "mode", opts.Closure.String(), "targets", len(p.closure))
	return p
}

func (p *Plan) Root() string { return p.graph.Root() }

func (p *Plan) Graph() *Graph { return p.graph }

func (p *Plan) Order() ExecutionOrder { return p.order }

func (p *Plan) ClosureMode() ClosureMode { return p.mode }

// Closure returns the closure of every reachable target. The map is empty and
// the error non-nil when closure was skipped or the graph is cyclic; use
// errors.Is with ErrClosureSkipped or ErrCycle to tell them apart.
func (p *Plan) Closure() (ClosureMap, error) {
	return p.closure, p.closureErr
}

// Err returns the cycle error if leveling failed.
func (p *Plan) Err() error {
	if p.order.Acyclic() {
		return nil
	}
	return &CycleError{Stuck: p.order.Stuck, Path: p.order.CyclePath}
}

// DepsOf returns the sorted transitive dependencies of id.
func (p *Plan) DepsOf(id string) ([]string, error) {
	if !p.graph.Has(id) {
		return nil, fmt.Errorf("%w %q (not reachable from %q)", ErrUnknownTarget, id, p.graph.Root())
	}
	if p.closureErr != nil {
		return nil, p.closureErr
	}
	return p.closure[id].Sorted(), nil
}

// Level returns the zero-based level of id.
func (p *Plan) Level(id string) (int, bool) {
	for i, level := range p.order.Levels {
		for _, n := range level {
			if n == id {
				return i, true
			}
		}
	}
	return 0, false
}
