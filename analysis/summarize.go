package analysis

import (
	"sort"

	"github.com/viant/blastradius/graph"
)

// RankedNode is one selected node with its combined rank.
type RankedNode struct {
	ID         string  `yaml:"id" json:"id"`
	Name       string  `yaml:"name" json:"name"`
	Rank       float64 `yaml:"rank" json:"rank"`
	Centrality float64 `yaml:"centrality" json:"centrality"`
	Impact     float64 `yaml:"impact" json:"impact"`
}

// GraphSummary is the budget-constrained selection of the most relevant
// nodes. Truncation is always signaled, never silent.
type GraphSummary struct {
	Nodes       []RankedNode `yaml:"nodes,omitempty" json:"nodes,omitempty"`
	Truncated   bool         `yaml:"truncated" json:"truncated"`
	Omitted     int          `yaml:"omitted,omitempty" json:"omitted,omitempty"`
	BudgetUsed  int          `yaml:"budgetUsed" json:"budgetUsed"`
	BudgetTotal int          `yaml:"budgetTotal" json:"budgetTotal"`
}

// Summarize ranks every node by the weighted combination of centrality and
// propagated impact, then greedily selects in descending rank order (ties by
// node id) until TopK or the token budget is reached. Given identical
// inputs, weights and budget, ordering and the truncation point are stable.
func Summarize(g *graph.Graph, centrality *Centrality, impact *ImpactScope, config Config) *GraphSummary {
	estimate := config.estimator()
	shareSum := config.CentralityShare + config.ImpactShare

	candidates := make([]RankedNode, 0, g.Size())
	for _, id := range g.NodeIDs() {
		node := g.Node(id)
		candidate := RankedNode{ID: id, Name: node.Name}
		if centrality != nil {
			candidate.Centrality = centrality.Score(id)
		}
		if impact != nil {
			candidate.Impact = impact.Score(id)
		}
		candidate.Rank = (config.CentralityShare*candidate.Centrality + config.ImpactShare*candidate.Impact) / shareSum
		candidates = append(candidates, candidate)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Rank != candidates[j].Rank {
			return candidates[i].Rank > candidates[j].Rank
		}
		return candidates[i].ID < candidates[j].ID
	})

	result := &GraphSummary{BudgetTotal: config.TokenBudget}
	for _, candidate := range candidates {
		if len(result.Nodes) >= config.TopK {
			break
		}
		cost := estimate(g.Node(candidate.ID))
		if result.BudgetUsed+cost > config.TokenBudget {
			break
		}
		result.BudgetUsed += cost
		result.Nodes = append(result.Nodes, candidate)
	}
	result.Omitted = len(candidates) - len(result.Nodes)
	result.Truncated = result.Omitted > 0
	return result
}
