package analysis

import (
	"sort"
	"strings"

	"github.com/viant/blastradius/diff"
	"github.com/viant/blastradius/graph"
)

// CascadeTerminal classifies why a cascade chain was recorded.
type CascadeTerminal string

const (
	// TerminalPublicAPI marks a chain reaching an exported surface.
	TerminalPublicAPI CascadeTerminal = "publicApiExposure"
	// TerminalCompoundBreak marks a chain reaching a node that carries an
	// independent breaking change of its own.
	TerminalCompoundBreak CascadeTerminal = "compoundBreak"
	// TerminalDepthLimited marks a chain cut off by the depth bound.
	TerminalDepthLimited CascadeTerminal = "depthLimited"
)

// CascadeEffect is one multi-hop chain through which a breaking change
// propagates. Path starts at the changed node; EdgeKinds holds the kind of
// each hop, so len(EdgeKinds) == len(Path)-1. Paths never repeat a node.
type CascadeEffect struct {
	Path      []string            `yaml:"path" json:"path"`
	EdgeKinds []graph.EdgeKind    `yaml:"edgeKinds" json:"edgeKinds"`
	Root      diff.BreakingChange `yaml:"root" json:"root"`
	Terminal  CascadeTerminal     `yaml:"terminal" json:"terminal"`
}

// Cascades finds domino chains for each breaking change: a depth-bounded DFS
// along reverse edges records a path whenever it reaches an exported surface
// or a node with an independent breaking change. A per-path visited set
// guards cycles, and recorded paths that are strict prefixes of longer
// recorded paths are pruned to reduce noise.
func Cascades(g *graph.Graph, changes []diff.BreakingChange, config Config) []CascadeEffect {
	changedNames := map[string]bool{}
	for i := range changes {
		changedNames[changes[i].Name] = true
	}

	var effects []CascadeEffect
	for i := range changes {
		change := changes[i]
		root := g.NodeByName(change.Name)
		if root == nil {
			continue
		}
		walker := &cascadeWalker{
			graph:        g,
			changedNames: changedNames,
			rootName:     change.Name,
			maxDepth:     config.MaxDepth,
		}
		walker.walk(root.ID, []string{root.ID}, nil)
		for _, chain := range walker.prune() {
			effects = append(effects, CascadeEffect{
				Path:      chain.path,
				EdgeKinds: chain.kinds,
				Root:      change,
				Terminal:  chain.terminal,
			})
		}
	}

	sort.Slice(effects, func(i, j int) bool {
		if effects[i].Root.Name != effects[j].Root.Name {
			return effects[i].Root.Name < effects[j].Root.Name
		}
		return strings.Join(effects[i].Path, "\x00") < strings.Join(effects[j].Path, "\x00")
	})
	return effects
}

type cascadeChain struct {
	path     []string
	kinds    []graph.EdgeKind
	terminal CascadeTerminal
}

type cascadeWalker struct {
	graph        *graph.Graph
	changedNames map[string]bool
	rootName     string
	maxDepth     int
	recorded     []cascadeChain
}

func (w *cascadeWalker) walk(id string, path []string, kinds []graph.EdgeKind) {
	depth := len(path) - 1
	if depth > 0 {
		node := w.graph.Node(id)
		switch {
		case node.Name != w.rootName && w.changedNames[node.Name]:
			// stop here: the other change's own cascade covers what lies beyond
			w.record(path, kinds, TerminalCompoundBreak)
			return
		case node.Exported():
			w.record(path, kinds, TerminalPublicAPI)
		case depth == w.maxDepth:
			w.record(path, kinds, TerminalDepthLimited)
		}
	}
	if depth >= w.maxDepth {
		return
	}
	for _, edge := range w.graph.InEdges(id) {
		dependent := edge.From
		if contains(path, dependent) {
			continue
		}
		w.walk(dependent, append(path, dependent), append(kinds, edge.Kind))
	}
}

func (w *cascadeWalker) record(path []string, kinds []graph.EdgeKind, terminal CascadeTerminal) {
	chain := cascadeChain{
		path:     append([]string{}, path...),
		kinds:    append([]graph.EdgeKind{}, kinds...),
		terminal: terminal,
	}
	w.recorded = append(w.recorded, chain)
}

// prune drops every chain whose path is a strict prefix of a longer recorded
// chain.
func (w *cascadeWalker) prune() []cascadeChain {
	var result []cascadeChain
	for i, candidate := range w.recorded {
		prefix := false
		for j, other := range w.recorded {
			if i == j || len(other.path) <= len(candidate.path) {
				continue
			}
			if isPrefix(candidate.path, other.path) {
				prefix = true
				break
			}
		}
		if !prefix {
			result = append(result, candidate)
		}
	}
	return result
}

func isPrefix(short, long []string) bool {
	for i := range short {
		if short[i] != long[i] {
			return false
		}
	}
	return true
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
