package analysis

import (
	"sort"

	"github.com/viant/blastradius/graph"
)

// Impact is the propagated effect on one node.
type Impact struct {
	Distance int     `yaml:"distance" json:"distance"`
	Score    float64 `yaml:"score" json:"score"`
}

// ImpactStats aggregates one propagation run.
type ImpactStats struct {
	TotalTouched    int `yaml:"totalTouched" json:"totalTouched"`
	HighImpactCount int `yaml:"highImpactCount" json:"highImpactCount"`
	MaxDistance     int `yaml:"maxDistance" json:"maxDistance"`
}

// ImpactScope is the result of propagating change outward from a set of
// changed nodes. Direct holds distance-1 dependents; Indirect holds
// everything from distance 2 up to the depth bound.
type ImpactScope struct {
	Sources  []string          `yaml:"sources,omitempty" json:"sources,omitempty"`
	Direct   []string          `yaml:"direct,omitempty" json:"direct,omitempty"`
	Indirect map[string]Impact `yaml:"indirect,omitempty" json:"indirect,omitempty"`
	Stats    ImpactStats       `yaml:"stats" json:"stats"`

	directScores map[string]float64
}

// Score returns the propagated score for a node id; changed nodes score 1.
func (s *ImpactScope) Score(id string) float64 {
	for _, source := range s.Sources {
		if source == id {
			return 1.0
		}
	}
	if impact, ok := s.Indirect[id]; ok {
		return impact.Score
	}
	for _, direct := range s.Direct {
		if direct == id {
			return s.directScores[id]
		}
	}
	return 0
}

// Propagate performs a multi-source bounded BFS over the reverse adjacency,
// walking from changed nodes to their dependents. The score at a node is the
// maximum over incoming paths of parent·edgeWeight·decay, never the sum, so
// diamond dependencies are not double counted. An empty changed set returns
// an empty scope.
func Propagate(g *graph.Graph, changed []string, config Config) *ImpactScope {
	scope := &ImpactScope{Indirect: map[string]Impact{}, directScores: map[string]float64{}}

	distance := map[string]int{}
	score := map[string]float64{}
	var frontier []string
	for _, id := range changed {
		if g.Node(id) == nil {
			continue
		}
		if _, ok := distance[id]; ok {
			continue
		}
		distance[id] = 0
		score[id] = 1.0
		frontier = append(frontier, id)
		scope.Sources = append(scope.Sources, id)
	}
	sort.Strings(scope.Sources)
	sort.Strings(frontier)

	for depth := 1; depth <= config.MaxDepth && len(frontier) > 0; depth++ {
		nextSet := map[string]bool{}
		for _, id := range frontier {
			for _, edge := range g.InEdges(id) {
				dependent := edge.From
				seenAt, seen := distance[dependent]
				if seen && seenAt < depth {
					continue // already reached over a shorter path
				}
				candidate := score[id] * edge.Weight * config.Decay
				if !seen {
					distance[dependent] = depth
					score[dependent] = candidate
					nextSet[dependent] = true
				} else if candidate > score[dependent] {
					// another same-distance parent; take the maximum
					score[dependent] = candidate
				}
			}
		}
		frontier = frontier[:0]
		for id := range nextSet {
			frontier = append(frontier, id)
		}
		sort.Strings(frontier)
	}

	for id, dist := range distance {
		if dist == 0 {
			continue
		}
		scope.Stats.TotalTouched++
		if score[id] > HighImpactThreshold {
			scope.Stats.HighImpactCount++
		}
		if dist > scope.Stats.MaxDistance {
			scope.Stats.MaxDistance = dist
		}
		if dist == 1 {
			scope.Direct = append(scope.Direct, id)
			scope.directScores[id] = score[id]
		} else {
			scope.Indirect[id] = Impact{Distance: dist, Score: score[id]}
		}
	}
	sort.Strings(scope.Direct)
	return scope
}
