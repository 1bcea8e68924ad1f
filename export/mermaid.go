package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/viant/blastradius/graph"
)

// Mermaid renders the graph as a mermaid flowchart, suitable for embedding
// in markdown reports. Node ids are aliased to stable short names since
// mermaid identifiers cannot contain arbitrary punctuation.
func Mermaid(g *graph.Graph) string {
	ids := g.NodeIDs()
	alias := map[string]string{}
	for i, id := range ids {
		alias[id] = fmt.Sprintf("n%d", i)
	}

	var builder strings.Builder
	builder.WriteString("flowchart LR\n")
	for _, id := range ids {
		node := g.Node(id)
		if node.Kind == graph.NodeExternal {
			builder.WriteString(fmt.Sprintf("  %s([%s])\n", alias[id], node.Name))
		} else {
			builder.WriteString(fmt.Sprintf("  %s[%s]\n", alias[id], node.Name))
		}
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
		builder.WriteString(fmt.Sprintf("  %s -->|%s| %s\n", alias[edge.From], edge.Kind, alias[edge.To]))
	}
	return builder.String()
}
