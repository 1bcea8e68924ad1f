// Package analysis implements the graph algorithms of the blast-radius
// engine: PageRank centrality, bounded impact propagation, cascade detection
// and budget-aware summarization, plus the orchestrator tying them together.
package analysis

import (
	"fmt"

	"github.com/viant/blastradius/graph"
)

// Default configuration values.
const (
	DefaultDamping         = 0.85
	DefaultEpsilon         = 1e-6
	DefaultMaxIterations   = 100
	DefaultDecay           = 0.7
	DefaultMaxDepth        = 4
	DefaultTopK            = 200
	DefaultTokenBudget     = 4000
	DefaultCriticalStdDevs = 2.0
	DefaultCentralityShare = 0.5
	DefaultImpactShare     = 0.5
	// HighImpactThreshold marks a propagated score as high impact.
	HighImpactThreshold = 0.7
)

// TokenEstimator estimates the token cost of reporting one node.
type TokenEstimator func(node *graph.Node) int

// defaultTokenEstimator approximates tokens as characters/4 over the fields
// a report would render.
func defaultTokenEstimator(node *graph.Node) int {
	chars := len(node.ID) + len(node.Name) + len(node.Signature)
	estimate := chars / 4
	if estimate < 1 {
		estimate = 1
	}
	return estimate
}

// Config carries every tunable of the engine. Use DefaultConfig and adjust;
// Validate rejects invalid values before any computation starts.
type Config struct {
	Damping         float64 `yaml:"damping" json:"damping"`
	Epsilon         float64 `yaml:"epsilon" json:"epsilon"`
	MaxIterations   int     `yaml:"maxIterations" json:"maxIterations"`
	Decay           float64 `yaml:"decay" json:"decay"`
	MaxDepth        int     `yaml:"maxDepth" json:"maxDepth"`
	TopK            int     `yaml:"topK" json:"topK"`
	TokenBudget     int     `yaml:"tokenBudget" json:"tokenBudget"`
	CriticalStdDevs float64 `yaml:"criticalStdDevs" json:"criticalStdDevs"`
	// CentralityShare and ImpactShare weight the combined summarizer rank.
	CentralityShare float64 `yaml:"centralityShare" json:"centralityShare"`
	ImpactShare     float64 `yaml:"impactShare" json:"impactShare"`

	// EdgeWeights dampen propagation per hop; each weight must stay in [0, 1].
	EdgeWeights map[graph.EdgeKind]float64 `yaml:"edgeWeights,omitempty" json:"edgeWeights,omitempty"`

	// ConflictPolicy resolves duplicate (kind, name) declarations while
	// building and merging graphs.
	ConflictPolicy graph.ConflictPolicy `yaml:"conflictPolicy" json:"conflictPolicy"`

	Estimator TokenEstimator `yaml:"-" json:"-"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Damping:         DefaultDamping,
		Epsilon:         DefaultEpsilon,
		MaxIterations:   DefaultMaxIterations,
		Decay:           DefaultDecay,
		MaxDepth:        DefaultMaxDepth,
		TopK:            DefaultTopK,
		TokenBudget:     DefaultTokenBudget,
		CriticalStdDevs: DefaultCriticalStdDevs,
		CentralityShare: DefaultCentralityShare,
		ImpactShare:     DefaultImpactShare,
		EdgeWeights:     graph.DefaultEdgeWeights(),
		ConflictPolicy:  graph.ConflictFirstWins,
	}
}

// Validate fails fast on invalid numeric parameters.
func (c *Config) Validate() error {
	if c.Damping <= 0 || c.Damping >= 1 {
		return fmt.Errorf("invalid damping %v: expected value in (0, 1)", c.Damping)
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("invalid epsilon %v: expected value > 0", c.Epsilon)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("invalid maxIterations %v: expected value > 0", c.MaxIterations)
	}
	if c.Decay <= 0 || c.Decay > 1 {
		return fmt.Errorf("invalid decay %v: expected value in (0, 1]", c.Decay)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("invalid maxDepth %v: expected value >= 0", c.MaxDepth)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("invalid topK %v: expected value > 0", c.TopK)
	}
	if c.TokenBudget <= 0 {
		return fmt.Errorf("invalid tokenBudget %v: expected value > 0", c.TokenBudget)
	}
	if c.CriticalStdDevs < 0 {
		return fmt.Errorf("invalid criticalStdDevs %v: expected value >= 0", c.CriticalStdDevs)
	}
	if c.CentralityShare < 0 || c.ImpactShare < 0 || c.CentralityShare+c.ImpactShare == 0 {
		return fmt.Errorf("invalid rank shares %v/%v: expected non-negative with a positive sum", c.CentralityShare, c.ImpactShare)
	}
	if c.ConflictPolicy != graph.ConflictFirstWins && c.ConflictPolicy != graph.ConflictLastWins {
		return fmt.Errorf("invalid conflictPolicy %v: expected first-wins or last-wins", c.ConflictPolicy)
	}
	// propagation visits each node at its first BFS distance and takes the
	// maximum over same-distance paths only; that is exact solely because no
	// hop can amplify a score, so weights above 1 are rejected here
	for kind, weight := range c.EdgeWeights {
		if weight < 0 || weight > 1 {
			return fmt.Errorf("invalid weight %v for edge kind %q: expected value in [0, 1]", weight, kind)
		}
	}
	return nil
}

func (c *Config) estimator() TokenEstimator {
	if c.Estimator != nil {
		return c.Estimator
	}
	return defaultTokenEstimator
}
