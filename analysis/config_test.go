package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/blastradius/graph"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		description string
		mutate      func(c *Config)
		valid       bool
	}{
		{description: "defaults", mutate: func(c *Config) {}, valid: true},
		{description: "damping zero", mutate: func(c *Config) { c.Damping = 0 }},
		{description: "damping one", mutate: func(c *Config) { c.Damping = 1 }},
		{description: "negative epsilon", mutate: func(c *Config) { c.Epsilon = -1 }},
		{description: "zero iterations", mutate: func(c *Config) { c.MaxIterations = 0 }},
		{description: "decay above one", mutate: func(c *Config) { c.Decay = 1.5 }},
		{description: "decay of exactly one", mutate: func(c *Config) { c.Decay = 1 }, valid: true},
		{description: "negative depth", mutate: func(c *Config) { c.MaxDepth = -1 }},
		{description: "zero depth", mutate: func(c *Config) { c.MaxDepth = 0 }, valid: true},
		{description: "zero topK", mutate: func(c *Config) { c.TopK = 0 }},
		{description: "zero budget", mutate: func(c *Config) { c.TokenBudget = 0 }},
		{description: "negative stddevs", mutate: func(c *Config) { c.CriticalStdDevs = -1 }},
		{description: "zero shares", mutate: func(c *Config) { c.CentralityShare, c.ImpactShare = 0, 0 }},
		{description: "one-sided share", mutate: func(c *Config) { c.ImpactShare = 0 }, valid: true},
		{description: "negative edge weight", mutate: func(c *Config) { c.EdgeWeights["calls"] = -1 }},
		{description: "amplifying edge weight", mutate: func(c *Config) { c.EdgeWeights["calls"] = 3 }},
		{description: "full edge weight", mutate: func(c *Config) { c.EdgeWeights["calls"] = 1 }, valid: true},
		{description: "last-wins policy", mutate: func(c *Config) { c.ConflictPolicy = graph.ConflictLastWins }, valid: true},
		{description: "unknown policy", mutate: func(c *Config) { c.ConflictPolicy = graph.ConflictPolicy(7) }},
	}
	for _, test := range tests {
		config := DefaultConfig()
		test.mutate(&config)
		err := config.Validate()
		if test.valid {
			assert.NoError(t, err, test.description)
		} else {
			assert.Error(t, err, test.description)
		}
	}
}

func TestDefaultTokenEstimatorMinimum(t *testing.T) {
	assert.Equal(t, 1, defaultTokenEstimator(&graph.Node{ID: "a"}))
	assert.Equal(t, 11, defaultTokenEstimator(&graph.Node{
		ID:        "function:svc.go#0",
		Name:      "svc.Handle",
		Signature: "func Handle() error",
	}))
}
