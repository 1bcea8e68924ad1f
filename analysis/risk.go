package analysis

import (
	"github.com/viant/blastradius/diff"
)

// RiskLevel grades the change set as a whole.
type RiskLevel string

const (
	RiskCritical RiskLevel = "critical"
	RiskHigh     RiskLevel = "high"
	RiskMedium   RiskLevel = "medium"
	RiskLow      RiskLevel = "low"
	RiskNone     RiskLevel = "none"
)

// Risk is the aggregate assessment over all detected breaking changes.
type Risk struct {
	// Score is a weighted 0-100 rating of the change set.
	Score int       `yaml:"score" json:"score"`
	Level RiskLevel `yaml:"level" json:"level"`
	// Recommendations aggregates deduplicated mitigations across changes.
	Recommendations []string `yaml:"recommendations,omitempty" json:"recommendations,omitempty"`
}

// severity score and aggregation weight per change severity
var riskWeights = map[diff.Severity]struct{ score, weight int }{
	diff.SeverityCritical: {90, 10},
	diff.SeverityHigh:     {70, 8},
	diff.SeverityMedium:   {40, 5},
	diff.SeverityLow:      {15, 2},
	diff.SeverityInfo:     {0, 1},
}

// AssessRisk computes the weighted risk score and level for a change set and
// collects mitigation recommendations. An empty change set is risk-free.
func AssessRisk(changes []diff.BreakingChange) *Risk {
	result := &Risk{Level: RiskNone}
	if len(changes) == 0 {
		return result
	}

	totalScore, totalWeight := 0, 0
	worst := diff.SeverityInfo
	seen := map[string]bool{}
	for i := range changes {
		change := &changes[i]
		entry := riskWeights[change.Severity]
		totalScore += entry.score * entry.weight
		totalWeight += entry.weight
		if change.Severity.WorseThan(worst) {
			worst = change.Severity
		}
		for _, mitigation := range change.Mitigations {
			if !seen[mitigation] {
				seen[mitigation] = true
				result.Recommendations = append(result.Recommendations, mitigation)
			}
		}
	}
	if totalWeight > 0 {
		result.Score = totalScore / totalWeight
	}
	if result.Score > 100 {
		result.Score = 100
	}

	switch worst {
	case diff.SeverityCritical:
		result.Level = RiskCritical
	case diff.SeverityHigh:
		result.Level = RiskHigh
	case diff.SeverityMedium:
		result.Level = RiskMedium
	case diff.SeverityLow:
		result.Level = RiskLow
	default:
		result.Level = RiskNone
	}
	return result
}
