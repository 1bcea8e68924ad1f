// Package export renders a dependency graph into textual diagram formats.
// Rendering is pure post-processing over the graph handle; no I/O happens
// here.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/viant/blastradius/graph"
)

// DotOptions controls DOT output.
type DotOptions struct {
	// IncludeWeights adds edge weights to edge labels.
	IncludeWeights bool
	// Highlight marks the listed node ids in red, e.g. changed nodes.
	Highlight []string
}

var dotShapes = map[graph.NodeKind]string{
	graph.NodeFunction:  "ellipse",
	graph.NodeType:      "box",
	graph.NodeInterface: "hexagon",
	graph.NodeModule:    "folder",
	graph.NodeExternal:  "note",
}

var dotColors = map[graph.NodeKind]string{
	graph.NodeFunction:  "#8ecae6",
	graph.NodeType:      "#ffb703",
	graph.NodeInterface: "#2a9d8f",
	graph.NodeModule:    "#219ebc",
	graph.NodeExternal:  "#adb5bd",
}

// DOT renders the graph in Graphviz DOT format. Nodes and edges are emitted
// in sorted order so output is reproducible.
func DOT(g *graph.Graph, options *DotOptions) string {
	if options == nil {
		options = &DotOptions{}
	}
	highlighted := map[string]bool{}
	for _, id := range options.Highlight {
		highlighted[id] = true
	}

	var builder strings.Builder
	builder.WriteString("digraph G {\n")
	builder.WriteString("  rankdir=LR;\n")
	builder.WriteString("  node [fontname=\"Helvetica\"];\n")
	builder.WriteString("  edge [fontname=\"Helvetica\"];\n")

	for _, id := range g.NodeIDs() {
		node := g.Node(id)
		attrs := fmt.Sprintf("shape=%q, style=\"filled\", fillcolor=%q, label=%q",
			dotShapes[node.Kind], dotColors[node.Kind], node.Name)
		if highlighted[id] {
			attrs += ", color=\"red\", penwidth=2"
		}
		builder.WriteString(fmt.Sprintf("  %q [%s];\n", id, attrs))
	}

	edges := append([]graph.Edge{}, g.Edges()...)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		if edges[i].To != edges[j].To {
			return edges[i].To < edges[j].To
		}
		return edges[i].Kind < edges[j].Kind
	})
	for _, edge := range edges {
		label := string(edge.Kind)
		if options.IncludeWeights {
			label = fmt.Sprintf("%s (w=%.2f)", label, edge.Weight)
		}
		builder.WriteString(fmt.Sprintf("  %q -> %q [label=%q];\n", edge.From, edge.To, label))
	}
	builder.WriteString("}\n")
	return builder.String()
}
