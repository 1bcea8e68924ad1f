package graph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/blastradius/summary"
)

func cyclicSummary() *summary.StructuralSummary {
	return &summary.StructuralSummary{
		File: "loop.go",
		Entities: []summary.Entity{
			{Kind: summary.KindFunction, Name: "loop.a"},
			{Kind: summary.KindFunction, Name: "loop.b"},
			{Kind: summary.KindFunction, Name: "loop.c"},
		},
		Relations: []summary.Relation{
			{From: "loop.a", To: "loop.b", Kind: summary.RelationCalls},
			{From: "loop.b", To: "loop.c", Kind: summary.RelationCalls},
			{From: "loop.c", To: "loop.a", Kind: summary.RelationCalls},
		},
	}
}

func TestGraphCycles(t *testing.T) {
	built, _ := NewBuilder().Build(cyclicSummary())
	cycles := built.Cycles()
	if !assert.Equal(t, 1, len(cycles)) {
		return
	}
	assert.Equal(t, 3, len(cycles[0]))
}

func TestGraphSelfLoop(t *testing.T) {
	item := &summary.StructuralSummary{
		File: "rec.go",
		Entities: []summary.Entity{
			{Kind: summary.KindFunction, Name: "rec.walk"},
		},
		Relations: []summary.Relation{
			{From: "rec.walk", To: "rec.walk", Kind: summary.RelationCalls},
		},
	}
	built, _ := NewBuilder().Build(item)
	cycles := built.Cycles()
	if !assert.Equal(t, 1, len(cycles)) {
		return
	}
	assert.Equal(t, 1, len(cycles[0]))
}

func TestGraphCyclesDeepChain(t *testing.T) {
	const depth = 50000
	item := &summary.StructuralSummary{File: "chain.go"}
	for i := 0; i < depth; i++ {
		item.Entities = append(item.Entities, summary.Entity{
			Kind: summary.KindFunction,
			Name: fmt.Sprintf("chain.n%05d", i),
		})
	}
	for i := 0; i < depth-1; i++ {
		item.Relations = append(item.Relations, summary.Relation{
			From: fmt.Sprintf("chain.n%05d", i),
			To:   fmt.Sprintf("chain.n%05d", i+1),
			Kind: summary.RelationCalls,
		})
	}
	built, _ := NewBuilder().Build(item)
	assert.Empty(t, built.Cycles())

	// closing the chain turns the whole thing into one cycle
	item.Relations = append(item.Relations, summary.Relation{
		From: fmt.Sprintf("chain.n%05d", depth-1),
		To:   "chain.n00000",
		Kind: summary.RelationCalls,
	})
	built, _ = NewBuilder().Build(item)
	cycles := built.Cycles()
	if assert.Equal(t, 1, len(cycles)) {
		assert.Equal(t, depth, len(cycles[0]))
	}
}

func TestGraphStatistics(t *testing.T) {
	built, _ := NewBuilder().Build(cyclicSummary())
	stats := built.Statistics()
	assert.Equal(t, 3, stats.NodeCount)
	assert.Equal(t, 3, stats.EdgeCount)
	assert.Equal(t, 0, stats.ExternalCount)
	assert.Equal(t, 1, stats.CycleCount)
	assert.InDelta(t, 2.0, stats.AvgDegree, 1e-9)
}

func TestMergeReplacesExternalPlaceholder(t *testing.T) {
	callers := &summary.StructuralSummary{
		File: "main.go",
		Entities: []summary.Entity{
			{Kind: summary.KindFunction, Name: "main.run"},
		},
		Relations: []summary.Relation{
			{From: "main.run", To: "store.Open", Kind: summary.RelationCalls},
		},
	}
	defs := &summary.StructuralSummary{
		File: "store.go",
		Entities: []summary.Entity{
			{Kind: summary.KindFunction, Name: "store.Open", Visibility: summary.VisibilityPublic},
		},
	}
	left, _ := NewBuilder().Build(callers)
	right, _ := NewBuilder().Build(defs)
	merged, report := Merge(left, right, ConflictFirstWins)

	assert.Empty(t, report.Conflicts)
	assert.Equal(t, 2, merged.Size())
	assert.Nil(t, merged.Node("external:store.Open"), "placeholder should yield to declaration")
	open := merged.NodeByName("store.Open")
	if !assert.NotNil(t, open) {
		return
	}
	assert.Equal(t, NodeFunction, open.Kind)
	assert.EqualValues(t, []string{merged.NodeByName("main.run").ID}, merged.Dependents(open.ID))
}

func TestMergeConflictPolicy(t *testing.T) {
	first := &summary.StructuralSummary{
		File:     "a.go",
		Entities: []summary.Entity{{Kind: summary.KindFunction, Name: "svc.Handle", Signature: "v1"}},
	}
	second := &summary.StructuralSummary{
		File:     "b.go",
		Entities: []summary.Entity{{Kind: summary.KindFunction, Name: "svc.Handle", Signature: "v2"}},
	}
	left, _ := NewBuilder().Build(first)
	right, _ := NewBuilder().Build(second)

	tests := []struct {
		description string
		policy      ConflictPolicy
		expect      string
	}{
		{description: "first wins keeps left", policy: ConflictFirstWins, expect: "v1"},
		{description: "last wins keeps right", policy: ConflictLastWins, expect: "v2"},
	}
	for _, test := range tests {
		merged, report := Merge(left, right, test.policy)
		assert.Equal(t, 1, merged.Size(), test.description)
		assert.Equal(t, 1, len(report.Conflicts), test.description)
		assert.Equal(t, test.expect, merged.NodeByName("svc.Handle").Signature, test.description)
	}
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, Fingerprint("func A()"), Fingerprint("func A()"))
	assert.NotEqual(t, Fingerprint("func A()"), Fingerprint("func A(x int)"))
}
