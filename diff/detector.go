// Package diff classifies API-breaking differences between two structural
// summaries. Matching is by (kind, qualified name); a rename therefore shows
// up as a removal plus an addition, which is a documented limitation of this
// detector, not a defect.
package diff

import (
	"fmt"
	"sort"

	"github.com/viant/blastradius/summary"
)

// ChangeType classifies an observed transition.
type ChangeType string

const (
	Removed           ChangeType = "removed"
	Added             ChangeType = "added"
	SignatureChanged  ChangeType = "signatureChanged"
	VisibilityReduced ChangeType = "visibilityReduced"
	VisibilityWidened ChangeType = "visibilityWidened"
)

// Severity grades a breaking change.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// rank orders severities for aggregation; lower is worse.
var severityRank = map[Severity]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
	SeverityInfo:     4,
}

// WorseThan reports whether s is more severe than other.
func (s Severity) WorseThan(other Severity) bool {
	return severityRank[s] < severityRank[other]
}

// BreakingChange is one classified difference between the before and after
// summaries.
type BreakingChange struct {
	Type        ChangeType         `yaml:"type" json:"type"`
	Kind        summary.EntityKind `yaml:"kind" json:"kind"`
	Name        string             `yaml:"name" json:"name"`
	Severity    Severity           `yaml:"severity" json:"severity"`
	Description string             `yaml:"description" json:"description"`
	Before      string             `yaml:"before,omitempty" json:"before,omitempty"`
	After       string             `yaml:"after,omitempty" json:"after,omitempty"`
	Mitigations []string           `yaml:"mitigations,omitempty" json:"mitigations,omitempty"`
}

type entityKey struct {
	kind summary.EntityKind
	name string
}

// Detect diffs two summaries and returns classified changes in a stable
// order (by name, then type). Either summary may be nil, standing for an
// empty side.
func Detect(before, after *summary.StructuralSummary) []BreakingChange {
	beforeIndex := index(before)
	afterIndex := index(after)

	var changes []BreakingChange
	for key, entity := range beforeIndex {
		counterpart, ok := afterIndex[key]
		if !ok {
			changes = append(changes, removed(entity))
			continue
		}
		changes = append(changes, compare(entity, counterpart)...)
	}
	for key, entity := range afterIndex {
		if _, ok := beforeIndex[key]; !ok {
			changes = append(changes, added(entity))
		}
	}

	sort.Slice(changes, func(i, j int) bool {
		if changes[i].Name != changes[j].Name {
			return changes[i].Name < changes[j].Name
		}
		return changes[i].Type < changes[j].Type
	})
	return changes
}

func index(s *summary.StructuralSummary) map[entityKey]*summary.Entity {
	result := map[entityKey]*summary.Entity{}
	if s == nil {
		return result
	}
	for i := range s.Entities {
		entity := &s.Entities[i]
		if entity.Name == "" || !entity.Kind.IsValid() {
			continue
		}
		key := entityKey{kind: entity.Kind, name: entity.Name}
		if _, ok := result[key]; !ok {
			result[key] = entity
		}
	}
	return result
}

func removed(entity *summary.Entity) BreakingChange {
	severity := SeverityMedium
	if entity.Visibility.IsExported() {
		severity = SeverityCritical
	}
	return BreakingChange{
		Type:        Removed,
		Kind:        entity.Kind,
		Name:        entity.Name,
		Severity:    severity,
		Description: fmt.Sprintf("%s %q was removed", entity.Kind, entity.Name),
		Before:      entity.Signature,
		Mitigations: Mitigations(Removed),
	}
}

func added(entity *summary.Entity) BreakingChange {
	return BreakingChange{
		Type:        Added,
		Kind:        entity.Kind,
		Name:        entity.Name,
		Severity:    SeverityInfo,
		Description: fmt.Sprintf("%s %q was added", entity.Kind, entity.Name),
		After:       entity.Signature,
		Mitigations: Mitigations(Added),
	}
}

func compare(before, after *summary.Entity) []BreakingChange {
	var changes []BreakingChange
	if before.Signature != after.Signature {
		severity := SeverityLow
		if before.Visibility.IsExported() {
			severity = SeverityHigh
		}
		changes = append(changes, BreakingChange{
			Type:        SignatureChanged,
			Kind:        before.Kind,
			Name:        before.Name,
			Severity:    severity,
			Description: fmt.Sprintf("%s %q changed signature", before.Kind, before.Name),
			Before:      before.Signature,
			After:       after.Signature,
			Mitigations: Mitigations(SignatureChanged),
		})
	}
	switch {
	case after.Visibility.Narrower(before.Visibility):
		changes = append(changes, BreakingChange{
			Type:        VisibilityReduced,
			Kind:        before.Kind,
			Name:        before.Name,
			Severity:    SeverityHigh,
			Description: fmt.Sprintf("%s %q visibility narrowed from %s to %s", before.Kind, before.Name, before.Visibility, after.Visibility),
			Before:      string(before.Visibility),
			After:       string(after.Visibility),
			Mitigations: Mitigations(VisibilityReduced),
		})
	case after.Visibility.Wider(before.Visibility):
		changes = append(changes, BreakingChange{
			Type:        VisibilityWidened,
			Kind:        before.Kind,
			Name:        before.Name,
			Severity:    SeverityInfo,
			Description: fmt.Sprintf("%s %q visibility widened from %s to %s", before.Kind, before.Name, before.Visibility, after.Visibility),
			Before:      string(before.Visibility),
			After:       string(after.Visibility),
			Mitigations: Mitigations(VisibilityWidened),
		})
	}
	return changes
}
