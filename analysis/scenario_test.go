package analysis

import (
	"github.com/viant/blastradius/graph"
	"github.com/viant/blastradius/summary"
)

// testGraph builds a graph from inline entities and relations and returns it
// with a name -> node id index.
func testGraph(entities []summary.Entity, relations []summary.Relation) (*graph.Graph, map[string]string) {
	item := &summary.StructuralSummary{File: "scenario.go", Entities: entities, Relations: relations}
	built, _ := graph.NewBuilder().Build(item)
	ids := map[string]string{}
	for _, id := range built.NodeIDs() {
		ids[built.Node(id).Name] = id
	}
	return built, ids
}

func fn(name string, visibility summary.Visibility) summary.Entity {
	return summary.Entity{Kind: summary.KindFunction, Name: name, Visibility: visibility}
}

func calls(from, to string) summary.Relation {
	return summary.Relation{From: from, To: to, Kind: summary.RelationCalls}
}

// fanInGraph wires B -> A, C -> B, D -> B, all exported calls.
func fanInGraph() (*graph.Graph, map[string]string) {
	return testGraph(
		[]summary.Entity{
			fn("A", summary.VisibilityPublic),
			fn("B", summary.VisibilityPublic),
			fn("C", summary.VisibilityPublic),
			fn("D", summary.VisibilityPublic),
		},
		[]summary.Relation{
			calls("B", "A"),
			calls("C", "B"),
			calls("D", "B"),
		},
	)
}
