// File: internal/plan/levels.go
// Brief: Leveled Kahn scheduling and cycle diagnostics.

package plan

import "sort"

// ScheduleLevels partitions g into levels. Every target in a level has all of
// its dependencies in earlier levels, so a level can run concurrently. If some
// targets can never be emitted the graph has a cycle and no levels are
// returned.
func ScheduleLevels(g *Graph) ExecutionOrder {
	inDegree := g.InDegree()

	ready := make([]string, 0, g.Len())
	for _, id := range g.order {
		if inDegree[id] == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	var levels [][]string
	emitted := 0
	for len(ready) > 0 {
		level := ready
		ready = nil
		for _, id := range level {
			for _, dependent := range g.dependents[id] {
				inDegree[dependent]--
				if inDegree[dependent] == 0 {
					ready = append(ready, dependent)
				}
			}
		}
		emitted += len(level)
		levels = append(levels, level)
		sort.Strings(ready)
	}

	if emitted != g.Len() {
		var stuck []string
		for _, id := range g.order {
			if inDegree[id] > 0 {
				stuck = append(stuck, id)
			}
		}
		sort.Strings(stuck)
		return ExecutionOrder{
			Status:    OrderCyclic,
			Stuck:     stuck,
			CyclePath: findCyclePath(stuck, g.deps),
		}
	}
	return ExecutionOrder{Status: OrderAcyclic, Levels: levels}
}

// findCyclePath returns one closed cycle among the stuck targets, following
// dependency edges, with the first target repeated at the end.
func findCyclePath(stuck []string, deps DependencyMap) []string {
	stuckSet := NewSet(stuck...)
	vis := map[string]bool{}
	onStack := map[string]bool{}
	var stack []string
	var cycle []string

	var dfs func(string) bool
	dfs = func(id string) bool {
		vis[id] = true
		onStack[id] = true
		stack = append(stack, id)
		for _, dep := range deps.Of(id) {
			if !stuckSet.Has(dep) {
				continue
			}
			if !vis[dep] {
				if dfs(dep) {
					return true
				}
				continue
			}
			if onStack[dep] {
				for i := range stack {
					if stack[i] == dep {
						cycle = append([]string(nil), stack[i:]...)
						break
					}
				}
				cycle = append(cycle, dep)
				return true
			}
		}
		onStack[id] = false
		stack = stack[:len(stack)-1]
		return false
	}
	for _, id := range stuck {
		if vis[id] {
			continue
		}
		if dfs(id) {
			break
		}
	}
	return cycle
}
