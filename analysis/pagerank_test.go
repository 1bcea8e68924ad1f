package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/blastradius/summary"
)

func TestPageRankScoresSumToOne(t *testing.T) {
	built, _ := fanInGraph()
	centrality := PageRank(built, DefaultConfig())

	assert.True(t, centrality.Converged)
	total := 0.0
	for _, score := range centrality.Scores {
		total += score
	}
	assert.InDelta(t, 1.0, total, 1e-4)
}

func TestPageRankRanksSharedDependencyHighest(t *testing.T) {
	built, ids := fanInGraph()
	centrality := PageRank(built, DefaultConfig())

	// A sits downstream of everything and should outrank its callers
	assert.Greater(t, centrality.Score(ids["A"]), centrality.Score(ids["B"]))
	assert.Greater(t, centrality.Score(ids["B"]), centrality.Score(ids["C"]))
}

func TestPageRankEmptyGraph(t *testing.T) {
	built, _ := testGraph(nil, nil)
	centrality := PageRank(built, DefaultConfig())
	assert.True(t, centrality.Converged)
	assert.Empty(t, centrality.Scores)
	assert.Empty(t, centrality.Critical)
}

func TestPageRankSelfLoopTerminates(t *testing.T) {
	built, _ := testGraph(
		[]summary.Entity{
			fn("rec", summary.VisibilityPrivate),
			fn("caller", summary.VisibilityPublic),
		},
		[]summary.Relation{
			calls("rec", "rec"),
			calls("caller", "rec"),
		},
	)
	centrality := PageRank(built, DefaultConfig())

	assert.LessOrEqual(t, centrality.Iterations, DefaultMaxIterations)
	total := 0.0
	for _, score := range centrality.Scores {
		total += score
	}
	assert.InDelta(t, 1.0, total, 1e-4)
}

func TestPageRankIterationCapIsNotAnError(t *testing.T) {
	built, _ := fanInGraph()
	config := DefaultConfig()
	config.MaxIterations = 1
	config.Epsilon = 1e-12
	centrality := PageRank(built, config)

	assert.False(t, centrality.Converged)
	assert.Equal(t, 1, centrality.Iterations)
	assert.Equal(t, built.Size(), len(centrality.Scores))
}

func TestPageRankCriticalNodes(t *testing.T) {
	entities := []summary.Entity{fn("hub", summary.VisibilityPublic)}
	var relations []summary.Relation
	for _, name := range []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8"} {
		entities = append(entities, fn(name, summary.VisibilityPrivate))
		relations = append(relations, calls(name, "hub"))
	}
	built, ids := testGraph(entities, relations)

	config := DefaultConfig()
	config.CriticalStdDevs = 1.0
	centrality := PageRank(built, config)

	assert.EqualValues(t, []string{ids["hub"]}, centrality.Critical)
}
