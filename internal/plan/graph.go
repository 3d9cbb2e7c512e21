// File: internal/plan/graph.go
// Brief: Reachable subgraph construction and graph queries.

package plan

import "sort"

// Graph is the subgraph reachable from a root target, stored with reversed
// edges: dependents[d] lists the targets that directly depend on d.
type Graph struct {
	root       string
	deps       DependencyMap
	order      []string
	dependents map[string][]string
	inDegree   map[string]int
}

// BuildGraph walks deps breadth-first from root. Targets missing from deps
// are leaves; nodes queued more than once are expanded only once.
func BuildGraph(deps DependencyMap, root string) *Graph {
	g := &Graph{
		root:       root,
		deps:       deps,
		dependents: map[string][]string{},
		inDegree:   map[string]int{},
	}
	ensure := func(id string) {
		if _, ok := g.dependents[id]; ok {
			return
		}
		g.dependents[id] = nil
		g.inDegree[id] = 0
		g.order = append(g.order, id)
	}

	visited := map[string]struct{}{}
	queue := []string{root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, ok := visited[cur]; ok {
			continue
		}
		visited[cur] = struct{}{}
		ensure(cur)

		for _, dep := range deps.Of(cur) {
			ensure(dep)
			g.dependents[dep] = append(g.dependents[dep], cur)
			g.inDegree[cur]++
			queue = append(queue, dep)
		}
	}
	return g
}

func (g *Graph) Root() string { return g.root }

// Nodes returns the reachable targets in discovery order.
func (g *Graph) Nodes() []string {
	return append([]string(nil), g.order...)
}

func (g *Graph) Len() int { return len(g.order) }

func (g *Graph) Has(id string) bool {
	_, ok := g.dependents[id]
	return ok
}

// Dependents returns the targets that directly depend on id.
func (g *Graph) Dependents(id string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, d := range g.dependents[id] {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

// DirectDeps returns the direct dependencies of a reachable target.
func (g *Graph) DirectDeps(id string) []string {
	if !g.Has(id) {
		return nil
	}
	return append([]string(nil), g.deps.Of(id)...)
}

// InDegree returns a copy of the unresolved dependency count per target.
func (g *Graph) InDegree() map[string]int {
	out := make(map[string]int, len(g.inDegree))
	for id, n := range g.inDegree {
		out[id] = n
	}
	return out
}

// Edges returns each (dependent, dependency) pair once, sorted.
func (g *Graph) Edges() [][2]string {
	seen := map[[2]string]struct{}{}
	var edges [][2]string
	for dep, outs := range g.dependents {
		for _, from := range outs {
			e := [2]string{from, dep}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}
		return edges[i][1] < edges[j][1]
	})
	return edges
}

// DependentsOf returns every reachable target that depends on id directly or
// transitively, sorted.
func (g *Graph) DependentsOf(id string) []string {
	var out []string
	seen := map[string]struct{}{}
	stack := append([]string(nil), g.dependents[id]...)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen[cur]; ok {
			continue
		}
		seen[cur] = struct{}{}
		if cur != id {
			out = append(out, cur)
		}
		stack = append(stack, g.dependents[cur]...)
	}
	sort.Strings(out)
	return out
}
