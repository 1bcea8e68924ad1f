package graph

// Merge composes two graphs, e.g. a whole-project context plus a diff
// overlay, using the same conflict policy as the builder. Nodes colliding on
// (kind, qualified name) are merged per policy; edges pointing at a
// merged-away node are remapped to its survivor. Synthetic External nodes
// are replaced by a real declaration when the other graph supplies one.
func Merge(a, b *Graph, policy ConflictPolicy) (*Graph, *BuildReport) {
	report := &BuildReport{}
	result := New()

	kept := map[nameKey]*Node{}
	remap := map[string]string{} // dropped node id -> kept node id

	absorb := func(g *Graph) {
		for _, id := range g.NodeIDs() {
			node := g.Node(id)
			key := nameKey{kind: node.Kind, name: node.Name}
			if node.Kind == NodeExternal {
				// an External placeholder yields to any concrete declaration
				if concrete := findConcrete(kept, node.Name); concrete != nil {
					remap[node.ID] = concrete.ID
					continue
				}
				if _, ok := kept[key]; ok {
					continue // same placeholder in both graphs
				}
			} else if placeholder, ok := kept[nameKey{kind: NodeExternal, name: node.Name}]; ok {
				delete(kept, nameKey{kind: NodeExternal, name: node.Name})
				remap[placeholder.ID] = node.ID
			}
			existing, ok := kept[key]
			if !ok {
				kept[key] = node
				continue
			}
			// both declarations share the (kind, name) derived id, so edges
			// need no remapping, only the surviving attributes are at stake
			conflict := Conflict{Kind: node.Kind, Name: node.Name, Kept: existing.Location.File, Dropped: node.Location.File}
			if policy == ConflictLastWins {
				conflict.Kept, conflict.Dropped = node.Location.File, existing.Location.File
				kept[key] = node
			}
			report.Conflicts = append(report.Conflicts, conflict)
		}
	}
	absorb(a)
	absorb(b)

	for _, node := range kept {
		result.addNode(node)
	}

	// only External placeholders get remapped, onto their concrete declaration
	resolve := func(id string) string {
		if target, ok := remap[id]; ok {
			return target
		}
		return id
	}

	seen := map[Edge]bool{}
	addEdges := func(g *Graph) {
		for _, edge := range g.Edges() {
			edge.From = resolve(edge.From)
			edge.To = resolve(edge.To)
			if seen[edge] {
				continue
			}
			seen[edge] = true
			result.addEdge(edge)
		}
	}
	addEdges(a)
	addEdges(b)
	return result, report
}

func findConcrete(kept map[nameKey]*Node, name string) *Node {
	for _, kind := range []NodeKind{NodeFunction, NodeType, NodeInterface, NodeModule} {
		if node, ok := kept[nameKey{kind: kind, name: name}]; ok {
			return node
		}
	}
	return nil
}
