package graph

import (
	"fmt"

	"github.com/viant/blastradius/summary"
)

// ConflictPolicy controls which entity wins when two summaries declare the
// same (kind, qualified name) pair, e.g. re-exports or partial definitions.
type ConflictPolicy int

const (
	// ConflictFirstWins keeps the first declaration seen.
	ConflictFirstWins ConflictPolicy = iota
	// ConflictLastWins keeps the last declaration seen.
	ConflictLastWins
)

// Conflict records a duplicate declaration that was merged. Conflicts are
// informational, never fatal.
type Conflict struct {
	Kind    NodeKind `yaml:"kind" json:"kind"`
	Name    string   `yaml:"name" json:"name"`
	Kept    string   `yaml:"kept" json:"kept"`       // file of the surviving declaration
	Dropped string   `yaml:"dropped" json:"dropped"` // file of the merged-away declaration
}

// BuildReport carries everything a build produced besides the graph itself.
type BuildReport struct {
	Diagnostics []summary.Diagnostic `yaml:"diagnostics,omitempty" json:"diagnostics,omitempty"`
	Conflicts   []Conflict           `yaml:"conflicts,omitempty" json:"conflicts,omitempty"`
	Unresolved  []string             `yaml:"unresolved,omitempty" json:"unresolved,omitempty"` // names materialized as External nodes
}

// Option customizes a Builder.
type Option func(*Builder)

// WithConflictPolicy sets the duplicate-entity policy.
func WithConflictPolicy(policy ConflictPolicy) Option {
	return func(b *Builder) {
		b.policy = policy
	}
}

// WithEdgeWeights overrides weights for the given edge kinds.
func WithEdgeWeights(weights map[EdgeKind]float64) Option {
	return func(b *Builder) {
		for kind, weight := range weights {
			b.weights[kind] = weight
		}
	}
}

// Builder turns structural summaries into a dependency graph. A zero-config
// builder uses first-wins conflict resolution and default edge weights.
type Builder struct {
	policy  ConflictPolicy
	weights map[EdgeKind]float64
}

// NewBuilder creates a builder with the supplied options applied.
func NewBuilder(options ...Option) *Builder {
	builder := &Builder{
		policy:  ConflictFirstWins,
		weights: DefaultEdgeWeights(),
	}
	for _, option := range options {
		option(builder)
	}
	return builder
}

type nameKey struct {
	kind NodeKind
	name string
}

// Build constructs a graph from the supplied summaries. It never fails:
// malformed entities are skipped with a diagnostic, duplicate declarations
// are merged per policy, and unresolved relation targets become synthetic
// External nodes so edge counts stay consistent.
func (b *Builder) Build(summaries ...*summary.StructuralSummary) (*Graph, *BuildReport) {
	report := &BuildReport{}
	graph := New()

	kept := map[nameKey]*Node{}      // surviving declaration per (kind, name)
	byName := map[string][]*Node{}   // qualified name -> declarations
	bySimple := map[string][]*Node{} // simple name -> declarations

	// first pass: nodes
	for _, item := range summaries {
		if item == nil {
			continue
		}
		for i := range item.Entities {
			entity := &item.Entities[i]
			if diagnostics := entity.Validate(item.File); len(diagnostics) > 0 {
				report.Diagnostics = append(report.Diagnostics, diagnostics...)
				continue
			}
			node := b.newNode(item, entity)
			key := nameKey{kind: node.Kind, name: node.Name}
			if existing, ok := kept[key]; ok {
				conflict := Conflict{Kind: node.Kind, Name: node.Name, Kept: existing.Location.File, Dropped: node.Location.File}
				if b.policy == ConflictLastWins {
					conflict.Kept, conflict.Dropped = node.Location.File, existing.Location.File
					b.replace(kept, byName, bySimple, existing, node)
				}
				report.Conflicts = append(report.Conflicts, conflict)
				continue
			}
			kept[key] = node
			byName[node.Name] = append(byName[node.Name], node)
			bySimple[summary.SimpleName(node.Name)] = append(bySimple[summary.SimpleName(node.Name)], node)
		}
	}
	for _, node := range kept {
		graph.addNode(node)
	}

	// second pass: edges
	seenEdges := map[Edge]bool{}
	externals := map[string]bool{}
	for _, item := range summaries {
		if item == nil {
			continue
		}
		for i := range item.Relations {
			relation := &item.Relations[i]
			if diagnostics := relation.Validate(item.File); len(diagnostics) > 0 {
				report.Diagnostics = append(report.Diagnostics, diagnostics...)
				continue
			}
			kind, _ := edgeKind(relation.Kind)
			from := b.resolve(graph, byName, bySimple, relation.From, externals, report)
			to := b.resolve(graph, byName, bySimple, relation.To, externals, report)
			edge := Edge{From: from, To: to, Kind: kind, Weight: b.weights[kind]}
			if seenEdges[edge] {
				continue
			}
			seenEdges[edge] = true
			graph.addEdge(edge)
		}
	}
	return graph, report
}

// newNode derives a node from an entity. The id comes from (kind, qualified
// name), the same identity conflict resolution uses, so the same entity maps
// to the same id in every build and across merged graphs.
func (b *Builder) newNode(item *summary.StructuralSummary, entity *summary.Entity) *Node {
	file := entity.Location.File
	if file == "" {
		file = item.File
	}
	node := &Node{
		ID:         fmt.Sprintf("%s:%s", nodeKind(entity.Kind), entity.Name),
		Kind:       nodeKind(entity.Kind),
		Name:       entity.Name,
		Visibility: entity.Visibility,
		Signature:  entity.Signature,
		Location:   entity.Location,
	}
	if node.Location.File == "" {
		node.Location.File = file
	}
	if entity.Signature != "" {
		node.Fingerprint = Fingerprint(entity.Signature)
	}
	return node
}

func (b *Builder) replace(kept map[nameKey]*Node, byName, bySimple map[string][]*Node, prev, next *Node) {
	kept[nameKey{kind: next.Kind, name: next.Name}] = next
	byName[next.Name] = swapNode(byName[next.Name], prev, next)
	bySimple[summary.SimpleName(next.Name)] = swapNode(bySimple[summary.SimpleName(next.Name)], prev, next)
}

func swapNode(nodes []*Node, prev, next *Node) []*Node {
	for i, node := range nodes {
		if node == prev {
			nodes[i] = next
			return nodes
		}
	}
	return append(nodes, next)
}

// resolve maps a qualified name to a node id: exact match first, then a
// unique simple-name match, otherwise a synthetic External node. Unresolved
// references are never dropped, only marked.
func (b *Builder) resolve(graph *Graph, byName, bySimple map[string][]*Node, name string, externals map[string]bool, report *BuildReport) string {
	if candidates := byName[name]; len(candidates) > 0 {
		return candidates[0].ID
	}
	if candidates := bySimple[summary.SimpleName(name)]; len(candidates) == 1 {
		return candidates[0].ID
	}
	id := "external:" + name
	if !externals[id] {
		externals[id] = true
		graph.addNode(&Node{
			ID:         id,
			Kind:       NodeExternal,
			Name:       name,
			Visibility: summary.VisibilityUnknown,
		})
		report.Unresolved = append(report.Unresolved, name)
	}
	return id
}
