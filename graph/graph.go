package graph

import (
	"sort"
)

// Graph is a directed, possibly cyclic dependency graph. It is built once by
// a Builder or Merge and must not be mutated afterwards; all traversal
// algorithms rely on the adjacency indices staying in sync with the edge
// list.
type Graph struct {
	nodes   map[string]*Node
	edges   []Edge
	forward map[string][]int // node id -> indices into edges (outgoing)
	reverse map[string][]int // node id -> indices into edges (incoming)
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes:   map[string]*Node{},
		forward: map[string][]int{},
		reverse: map[string][]int{},
	}
}

// addNode inserts or replaces a node.
func (g *Graph) addNode(node *Node) {
	g.nodes[node.ID] = node
}

// addEdge appends an edge and indexes it.
func (g *Graph) addEdge(edge Edge) {
	idx := len(g.edges)
	g.edges = append(g.edges, edge)
	g.forward[edge.From] = append(g.forward[edge.From], idx)
	g.reverse[edge.To] = append(g.reverse[edge.To], idx)
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	return g.nodes[id]
}

// NodeByName returns the first node with the given qualified name, scanning
// ids in stable order.
func (g *Graph) NodeByName(name string) *Node {
	for _, id := range g.NodeIDs() {
		if g.nodes[id].Name == name {
			return g.nodes[id]
		}
	}
	return nil
}

// Size returns the node count.
func (g *Graph) Size() int {
	return len(g.nodes)
}

// NodeIDs returns all node ids in sorted order. Sorted iteration keeps every
// algorithm in this module reproducible.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Edges returns the edge list. Callers must not modify it.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// OutEdges returns the outgoing edges of a node.
func (g *Graph) OutEdges(id string) []*Edge {
	return g.edgesAt(g.forward[id])
}

// InEdges returns the incoming edges of a node.
func (g *Graph) InEdges(id string) []*Edge {
	return g.edgesAt(g.reverse[id])
}

func (g *Graph) edgesAt(indices []int) []*Edge {
	if len(indices) == 0 {
		return nil
	}
	result := make([]*Edge, 0, len(indices))
	for _, idx := range indices {
		result = append(result, &g.edges[idx])
	}
	return result
}

// Dependencies returns ids of nodes this node points at (callees, contained
// entities, implemented interfaces).
func (g *Graph) Dependencies(id string) []string {
	return g.neighbours(g.forward[id], false)
}

// Dependents returns ids of nodes pointing at this node (callers, owners).
// Impact always propagates along this direction.
func (g *Graph) Dependents(id string) []string {
	return g.neighbours(g.reverse[id], true)
}

func (g *Graph) neighbours(indices []int, incoming bool) []string {
	if len(indices) == 0 {
		return nil
	}
	seen := map[string]bool{}
	result := make([]string, 0, len(indices))
	for _, idx := range indices {
		other := g.edges[idx].To
		if incoming {
			other = g.edges[idx].From
		}
		if !seen[other] {
			seen[other] = true
			result = append(result, other)
		}
	}
	sort.Strings(result)
	return result
}

// OutDegree returns the number of outgoing edges of a node.
func (g *Graph) OutDegree(id string) int {
	return len(g.forward[id])
}

// Statistics computes shape metrics over the graph.
func (g *Graph) Statistics() Statistics {
	stats := Statistics{
		NodeCount: len(g.nodes),
		EdgeCount: len(g.edges),
	}
	for _, node := range g.nodes {
		if node.Kind == NodeExternal {
			stats.ExternalCount++
		}
	}
	if stats.NodeCount > 0 {
		stats.AvgDegree = float64(2*stats.EdgeCount) / float64(stats.NodeCount)
	}
	stats.CycleCount = len(g.Cycles())
	return stats
}

// Cycles returns the node sequences forming directed cycles. Detection walks
// the forward adjacency depth-first with an explicit frame stack, so chain
// depth is bounded by heap, not goroutine stack; each cycle is reported once,
// starting at its first node on the path.
func (g *Graph) Cycles() [][]string {
	var cycles [][]string
	visited := map[string]bool{}
	onPath := map[string]bool{}

	type frame struct {
		id   string
		deps []string
		next int
	}

	for _, start := range g.NodeIDs() {
		if visited[start] {
			continue
		}
		visited[start] = true
		onPath[start] = true
		path := []string{start}
		frames := []frame{{id: start, deps: g.Dependencies(start)}}
		for len(frames) > 0 {
			top := &frames[len(frames)-1]
			if top.next >= len(top.deps) {
				onPath[top.id] = false
				path = path[:len(path)-1]
				frames = frames[:len(frames)-1]
				continue
			}
			next := top.deps[top.next]
			top.next++
			if !visited[next] {
				visited[next] = true
				onPath[next] = true
				path = append(path, next)
				frames = append(frames, frame{id: next, deps: g.Dependencies(next)})
				continue
			}
			if !onPath[next] {
				continue
			}
			for i, candidate := range path {
				if candidate == next {
					cycle := make([]string, len(path)-i)
					copy(cycle, path[i:])
					cycles = append(cycles, cycle)
					break
				}
			}
		}
	}
	return cycles
}
