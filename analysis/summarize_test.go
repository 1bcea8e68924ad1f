package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/blastradius/graph"
)

func TestSummarizeSelectsByCombinedRank(t *testing.T) {
	built, ids := fanInGraph()
	config := DefaultConfig()
	centrality := PageRank(built, config)
	impact := Propagate(built, []string{ids["A"]}, config)
	result := Summarize(built, centrality, impact, config)

	assert.Equal(t, built.Size(), len(result.Nodes))
	assert.False(t, result.Truncated)
	assert.Equal(t, 0, result.Omitted)
	assert.Equal(t, ids["A"], result.Nodes[0].ID, "changed central node ranks first")
	for i := 1; i < len(result.Nodes); i++ {
		assert.GreaterOrEqual(t, result.Nodes[i-1].Rank, result.Nodes[i].Rank)
	}
	assert.LessOrEqual(t, result.BudgetUsed, result.BudgetTotal)
}

func TestSummarizeTopKTruncation(t *testing.T) {
	built, _ := fanInGraph()
	config := DefaultConfig()
	config.TopK = 2
	result := Summarize(built, PageRank(built, config), nil, config)

	assert.Equal(t, 2, len(result.Nodes))
	assert.True(t, result.Truncated)
	assert.Equal(t, 2, result.Omitted)
}

func TestSummarizeBudgetTruncation(t *testing.T) {
	built, _ := fanInGraph()
	config := DefaultConfig()
	config.TokenBudget = 5
	config.Estimator = func(node *graph.Node) int { return 2 }
	result := Summarize(built, PageRank(built, config), nil, config)

	assert.Equal(t, 2, len(result.Nodes))
	assert.Equal(t, 4, result.BudgetUsed)
	assert.True(t, result.Truncated)
	assert.Equal(t, 2, result.Omitted)
}

func TestSummarizeStableOrdering(t *testing.T) {
	built, ids := fanInGraph()
	config := DefaultConfig()
	centrality := PageRank(built, config)
	impact := Propagate(built, []string{ids["A"]}, config)

	first := Summarize(built, centrality, impact, config)
	second := Summarize(built, centrality, impact, config)
	assert.EqualValues(t, first.Nodes, second.Nodes)
	assert.Equal(t, first.BudgetUsed, second.BudgetUsed)
}

func TestSummarizeWithoutSignals(t *testing.T) {
	built, _ := fanInGraph()
	result := Summarize(built, nil, nil, DefaultConfig())

	assert.Equal(t, built.Size(), len(result.Nodes))
	for _, node := range result.Nodes {
		assert.Zero(t, node.Rank)
	}
}
