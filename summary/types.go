// Package summary defines the structural summary contract consumed by the
// blast-radius engine. Summaries are produced by external, per-language
// extractors; this package never touches source text.
package summary

import "strings"

// EntityKind classifies a declared code entity.
type EntityKind string

const (
	KindFunction  EntityKind = "function"
	KindType      EntityKind = "type"
	KindInterface EntityKind = "interface"
	KindModule    EntityKind = "module"
)

// IsValid reports whether the kind is one of the declared entity kinds.
func (k EntityKind) IsValid() bool {
	switch k {
	case KindFunction, KindType, KindInterface, KindModule:
		return true
	}
	return false
}

// Visibility describes how widely an entity is exposed.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityInternal  Visibility = "internal"
	VisibilityPackage   Visibility = "package"
	VisibilityPrivate   Visibility = "private"
	VisibilityUnknown   Visibility = "unknown"
)

// visibilityRank orders visibilities from widest to narrowest; unknown ranks
// widest so that a missing value never reports a narrowing.
var visibilityRank = map[Visibility]int{
	VisibilityUnknown:   0,
	VisibilityPublic:    0,
	VisibilityProtected: 1,
	VisibilityInternal:  2,
	VisibilityPackage:   2,
	VisibilityPrivate:   3,
}

// ParseVisibility normalizes a raw visibility string.
func ParseVisibility(value string) Visibility {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "public", "pub", "exported":
		return VisibilityPublic
	case "protected":
		return VisibilityProtected
	case "internal":
		return VisibilityInternal
	case "package", "default":
		return VisibilityPackage
	case "private":
		return VisibilityPrivate
	}
	return VisibilityUnknown
}

// IsExported reports whether the visibility exposes the entity outside its
// declaring unit. Unknown counts as exported so that heuristics err on the
// side of reporting impact.
func (v Visibility) IsExported() bool {
	return v == VisibilityPublic || v == VisibilityUnknown || v == ""
}

// Narrower reports whether v exposes strictly less than other.
func (v Visibility) Narrower(other Visibility) bool {
	return rankOf(v) > rankOf(other)
}

// Wider reports whether v exposes strictly more than other.
func (v Visibility) Wider(other Visibility) bool {
	return rankOf(v) < rankOf(other)
}

func rankOf(v Visibility) int {
	if rank, ok := visibilityRank[v]; ok {
		return rank
	}
	return 0
}

// RelationKind classifies a relationship between two entities.
type RelationKind string

const (
	RelationCalls      RelationKind = "calls"
	RelationContains   RelationKind = "contains"
	RelationImplements RelationKind = "implements"
	RelationDependsOn  RelationKind = "dependson"
)

// IsValid reports whether the kind is one of the declared relation kinds.
func (k RelationKind) IsValid() bool {
	switch k {
	case RelationCalls, RelationContains, RelationImplements, RelationDependsOn:
		return true
	}
	return false
}

// Location identifies where an entity is declared.
type Location struct {
	File      string `yaml:"file,omitempty" json:"file,omitempty"`
	StartLine int    `yaml:"startLine,omitempty" json:"startLine,omitempty"`
	EndLine   int    `yaml:"endLine,omitempty" json:"endLine,omitempty"`
}

// Entity describes one declared code entity.
type Entity struct {
	Kind       EntityKind `yaml:"kind" json:"kind"`
	Name       string     `yaml:"name" json:"name"` // qualified name
	Visibility Visibility `yaml:"visibility,omitempty" json:"visibility,omitempty"`
	Signature  string     `yaml:"signature,omitempty" json:"signature,omitempty"`
	Location   Location   `yaml:"location,omitempty" json:"location,omitempty"`
}

// Relation describes a directed relationship between two entities, referenced
// by qualified name.
type Relation struct {
	From string       `yaml:"from" json:"from"`
	To   string       `yaml:"to" json:"to"`
	Kind RelationKind `yaml:"kind" json:"kind"`
}

// StructuralSummary is the externally produced description of one analyzed
// file or diff hunk.
type StructuralSummary struct {
	File      string     `yaml:"file,omitempty" json:"file,omitempty"`
	Language  string     `yaml:"language,omitempty" json:"language,omitempty"`
	Entities  []Entity   `yaml:"entities,omitempty" json:"entities,omitempty"`
	Relations []Relation `yaml:"relations,omitempty" json:"relations,omitempty"`
}

// Entity returns the first entity matching kind and qualified name.
func (s *StructuralSummary) Entity(kind EntityKind, name string) *Entity {
	for i := range s.Entities {
		if s.Entities[i].Kind == kind && s.Entities[i].Name == name {
			return &s.Entities[i]
		}
	}
	return nil
}

// SimpleName returns the last segment of a qualified name.
func SimpleName(qualified string) string {
	if idx := strings.LastIndexAny(qualified, "./:"); idx >= 0 && idx+1 < len(qualified) {
		return qualified[idx+1:]
	}
	return qualified
}
