package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/blastradius/diff"
	"github.com/viant/blastradius/summary"
)

func TestAssessRisk(t *testing.T) {
	tests := []struct {
		description string
		severities  []diff.Severity
		expectScore int
		expectLevel RiskLevel
	}{
		{
			description: "empty change set",
			expectScore: 0,
			expectLevel: RiskNone,
		},
		{
			description: "single critical",
			severities:  []diff.Severity{diff.SeverityCritical},
			expectScore: 90,
			expectLevel: RiskCritical,
		},
		{
			description: "single info",
			severities:  []diff.Severity{diff.SeverityInfo},
			expectScore: 0,
			expectLevel: RiskNone,
		},
		{
			description: "critical outweighs info",
			severities:  []diff.Severity{diff.SeverityCritical, diff.SeverityInfo},
			expectScore: 81, // (90*10 + 0*1) / 11
			expectLevel: RiskCritical,
		},
		{
			description: "high and low mix",
			severities:  []diff.Severity{diff.SeverityHigh, diff.SeverityLow},
			expectScore: 59, // (70*8 + 15*2) / 10
			expectLevel: RiskHigh,
		},
		{
			description: "medium only",
			severities:  []diff.Severity{diff.SeverityMedium, diff.SeverityMedium},
			expectScore: 40,
			expectLevel: RiskMedium,
		},
	}
	for _, test := range tests {
		var changes []diff.BreakingChange
		for i, severity := range test.severities {
			changes = append(changes, diff.BreakingChange{
				Type:     diff.Removed,
				Kind:     summary.KindFunction,
				Name:     "svc.Entity" + string(rune('A'+i)),
				Severity: severity,
			})
		}
		risk := AssessRisk(changes)
		assert.Equal(t, test.expectScore, risk.Score, test.description)
		assert.Equal(t, test.expectLevel, risk.Level, test.description)
	}
}

func TestAssessRiskDeduplicatesRecommendations(t *testing.T) {
	changes := []diff.BreakingChange{
		{Type: diff.Removed, Name: "svc.A", Severity: diff.SeverityCritical, Mitigations: diff.Mitigations(diff.Removed)},
		{Type: diff.Removed, Name: "svc.B", Severity: diff.SeverityCritical, Mitigations: diff.Mitigations(diff.Removed)},
	}
	risk := AssessRisk(changes)
	assert.Equal(t, len(diff.Mitigations(diff.Removed)), len(risk.Recommendations))
}
