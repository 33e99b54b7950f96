package module

// Graph is a module-id dependency graph built from header imports. It is
// the spec.md §9 open-question resolution: "cyclic module imports are
// asserted impossible but not explicitly detected" — the loader adds each
// module's import edges as its header arrives and checks this graph
// right away, instead of letting the orchestrator deadlock on a cycle.
//
// Adapted from MadAppGang/dingo's pkg/build/dependency_graph.go
// (detectCircularDependencies/topologicalSort), which did the same DFS
// over package-import edges for a Go-codegen workspace; here the edges are
// module-ID import edges instead of filesystem package paths.
type Graph struct {
	edges map[ID][]ID
}

// NewGraph creates an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{edges: make(map[ID][]ID)}
}

// AddImport records that importer depends on imported.
func (g *Graph) AddImport(importer, imported ID) {
	g.edges[importer] = append(g.edges[importer], imported)
}

// Cycles returns the import cycles one depth-first pass over the graph
// finds, one per back edge (a cycle closed only through an already
// finished node is not listed separately), each as the full chain of module IDs including the closing edge back to its
// start — mirroring dependency_graph.go's cycle-path shape.
func (g *Graph) Cycles() [][]ID {
	var cycles [][]ID
	visited := make(map[ID]bool)
	onStack := make(map[ID]bool)
	var path []ID

	var visit func(ID)
	visit = func(node ID) {
		visited[node] = true
		onStack[node] = true
		path = append(path, node)

		for _, dep := range g.edges[node] {
			if !visited[dep] {
				visit(dep)
			} else if onStack[dep] {
				start := 0
				for i, p := range path {
					if p == dep {
						start = i
						break
					}
				}
				cycle := make([]ID, len(path)-start+1)
				copy(cycle, path[start:])
				cycle[len(cycle)-1] = dep
				cycles = append(cycles, cycle)
			}
		}

		path = path[:len(path)-1]
		onStack[node] = false
	}

	// Nodes are visited in map iteration order, so the order of the
	// returned cycles (and where each one starts) is not stable between
	// calls.
	for node := range g.edges {
		if !visited[node] {
			visit(node)
		}
	}
	return cycles
}

// HasCycle reports whether Cycles finds any cycle. The loader runs it
// each time a module's header adds new import edges.
func (g *Graph) HasCycle() bool {
	return len(g.Cycles()) > 0
}
