package analysis

import (
	"math"
	"sort"

	"github.com/viant/blastradius/graph"
)

// Centrality holds the result of a PageRank run. Scores sum to ~1.0 over the
// graph. Converged is false when MaxIterations was hit before Epsilon;
// scores are then best effort, not an error.
type Centrality struct {
	Scores     map[string]float64 `yaml:"scores" json:"scores"`
	Iterations int                `yaml:"iterations" json:"iterations"`
	Converged  bool               `yaml:"converged" json:"converged"`
	// Critical lists node ids whose score exceeds mean + CriticalStdDevs·σ,
	// sorted by descending score.
	Critical []string `yaml:"critical,omitempty" json:"critical,omitempty"`
}

// Score returns a node score, zero when absent.
func (c *Centrality) Score(id string) float64 {
	return c.Scores[id]
}

// PageRank ranks nodes by structural importance via weighted power
// iteration. Edges are directed influence links; a node pointed at by many
// important nodes becomes important. Dangling nodes distribute their rank
// uniformly, keeping the process stochastic. Iteration walks node ids in
// sorted order so results are reproducible to floating tolerance.
func PageRank(g *graph.Graph, config Config) *Centrality {
	result := &Centrality{Scores: map[string]float64{}}
	ids := g.NodeIDs()
	n := len(ids)
	if n == 0 {
		result.Converged = true
		return result
	}

	// total outgoing weight per node; zero marks a dangling node
	outWeight := map[string]float64{}
	for _, id := range ids {
		total := 0.0
		for _, edge := range g.OutEdges(id) {
			total += edge.Weight
		}
		outWeight[id] = total
	}

	scores := map[string]float64{}
	initial := 1.0 / float64(n)
	for _, id := range ids {
		scores[id] = initial
	}

	base := (1.0 - config.Damping) / float64(n)
	for iteration := 0; iteration < config.MaxIterations; iteration++ {
		// rank mass of dangling nodes, spread uniformly
		dangling := 0.0
		for _, id := range ids {
			if outWeight[id] == 0 {
				dangling += scores[id]
			}
		}
		danglingShare := config.Damping * dangling / float64(n)

		next := make(map[string]float64, n)
		maxDiff := 0.0
		for _, id := range ids {
			rank := base + danglingShare
			for _, edge := range g.InEdges(id) {
				sourceOut := outWeight[edge.From]
				if sourceOut == 0 {
					continue
				}
				rank += config.Damping * scores[edge.From] * edge.Weight / sourceOut
			}
			if diff := math.Abs(rank - scores[id]); diff > maxDiff {
				maxDiff = diff
			}
			next[id] = rank
		}
		scores = next
		result.Iterations = iteration + 1
		if maxDiff < config.Epsilon {
			result.Converged = true
			break
		}
	}

	result.Scores = scores
	result.Critical = criticalNodes(ids, scores, config.CriticalStdDevs)
	return result
}

// criticalNodes flags scores above mean + k·stddev.
func criticalNodes(ids []string, scores map[string]float64, stdDevs float64) []string {
	n := float64(len(ids))
	if n == 0 {
		return nil
	}
	mean := 0.0
	for _, id := range ids {
		mean += scores[id]
	}
	mean /= n
	variance := 0.0
	for _, id := range ids {
		delta := scores[id] - mean
		variance += delta * delta
	}
	stddev := math.Sqrt(variance / n)
	threshold := mean + stdDevs*stddev

	var critical []string
	for _, id := range ids {
		if scores[id] > threshold {
			critical = append(critical, id)
		}
	}
	sort.Slice(critical, func(i, j int) bool {
		if scores[critical[i]] != scores[critical[j]] {
			return scores[critical[i]] > scores[critical[j]]
		}
		return critical[i] < critical[j]
	})
	return critical
}
