// Package graph holds the dependency graph built from structural summaries
// and the builder that produces it. Graphs are treated as immutable once
// built; they may contain cycles.
package graph

import (
	"github.com/viant/blastradius/summary"
)

// NodeKind classifies a graph node. It extends summary.EntityKind with a
// synthetic kind for unresolved targets.
type NodeKind string

const (
	NodeFunction  NodeKind = "function"
	NodeType      NodeKind = "type"
	NodeInterface NodeKind = "interface"
	NodeModule    NodeKind = "module"
	NodeExternal  NodeKind = "external"
)

func nodeKind(kind summary.EntityKind) NodeKind {
	switch kind {
	case summary.KindFunction:
		return NodeFunction
	case summary.KindType:
		return NodeType
	case summary.KindInterface:
		return NodeInterface
	case summary.KindModule:
		return NodeModule
	}
	return NodeExternal
}

// EdgeKind classifies a graph edge.
type EdgeKind string

const (
	EdgeCalls      EdgeKind = "calls"
	EdgeContains   EdgeKind = "contains"
	EdgeImplements EdgeKind = "implements"
	EdgeDependsOn  EdgeKind = "dependson"
)

// DefaultEdgeWeights returns the default weight per edge kind.
func DefaultEdgeWeights() map[EdgeKind]float64 {
	return map[EdgeKind]float64{
		EdgeCalls:      1.0,
		EdgeContains:   0.5,
		EdgeImplements: 0.8,
		EdgeDependsOn:  0.8,
	}
}

func edgeKind(kind summary.RelationKind) (EdgeKind, bool) {
	switch kind {
	case summary.RelationCalls:
		return EdgeCalls, true
	case summary.RelationContains:
		return EdgeContains, true
	case summary.RelationImplements:
		return EdgeImplements, true
	case summary.RelationDependsOn:
		return EdgeDependsOn, true
	}
	return "", false
}

// Node is one code entity in the dependency graph.
type Node struct {
	ID          string             `yaml:"id" json:"id"`
	Kind        NodeKind           `yaml:"kind" json:"kind"`
	Name        string             `yaml:"name" json:"name"` // qualified name
	Visibility  summary.Visibility `yaml:"visibility,omitempty" json:"visibility,omitempty"`
	Signature   string             `yaml:"signature,omitempty" json:"signature,omitempty"`
	Fingerprint uint64             `yaml:"fingerprint,omitempty" json:"fingerprint,omitempty"`
	Location    summary.Location   `yaml:"location,omitempty" json:"location,omitempty"`
}

// Exported reports whether the node is part of a public surface. External
// nodes count as exported: they stand for code outside the analyzed set.
func (n *Node) Exported() bool {
	if n.Kind == NodeExternal {
		return true
	}
	return n.Visibility.IsExported()
}

// Edge is a directed, weighted relationship between two nodes.
type Edge struct {
	From   string   `yaml:"from" json:"from"`
	To     string   `yaml:"to" json:"to"`
	Kind   EdgeKind `yaml:"kind" json:"kind"`
	Weight float64  `yaml:"weight" json:"weight"`
}

// Statistics summarizes graph shape.
type Statistics struct {
	NodeCount     int     `yaml:"nodeCount" json:"nodeCount"`
	EdgeCount     int     `yaml:"edgeCount" json:"edgeCount"`
	ExternalCount int     `yaml:"externalCount" json:"externalCount"`
	AvgDegree     float64 `yaml:"avgDegree" json:"avgDegree"`
	CycleCount    int     `yaml:"cycleCount" json:"cycleCount"`
}
