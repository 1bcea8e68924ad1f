package analysis

import (
	"github.com/viant/blastradius/diff"
	"github.com/viant/blastradius/graph"
	"github.com/viant/blastradius/summary"
)

// Result aggregates every artifact of one analysis run. All members are
// plain in-memory values; callers serialize or render them as needed and
// discard the result afterwards.
type Result struct {
	Graph      *graph.Graph
	Changes    []diff.BreakingChange
	Centrality *Centrality
	Impact     *ImpactScope
	Cascades   []CascadeEffect
	Summary    *GraphSummary
	Risk       *Risk

	Diagnostics []summary.Diagnostic
	Conflicts   []graph.Conflict
}

// Analyze runs the full pipeline over before/after summaries: build the
// dependency graph, classify breaking changes, rank centrality, propagate
// impact, detect cascades and produce the budget-constrained summary.
// Only an invalid configuration fails; malformed input degrades to
// diagnostics on the result.
func Analyze(before, after []*summary.StructuralSummary, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	builder := graph.NewBuilder(
		graph.WithEdgeWeights(config.EdgeWeights),
		graph.WithConflictPolicy(config.ConflictPolicy),
	)
	beforeGraph, beforeReport := builder.Build(before...)
	afterGraph, afterReport := builder.Build(after...)

	// removed entities exist only in the before graph, so they stay
	// addressable for propagation under either policy
	merged, _ := graph.Merge(beforeGraph, afterGraph, config.ConflictPolicy)

	result := &Result{Graph: merged}
	result.Diagnostics = append(result.Diagnostics, beforeReport.Diagnostics...)
	result.Diagnostics = append(result.Diagnostics, afterReport.Diagnostics...)
	result.Conflicts = append(result.Conflicts, beforeReport.Conflicts...)
	result.Conflicts = append(result.Conflicts, afterReport.Conflicts...)

	result.Changes = diff.Detect(combine(before), combine(after))
	result.Risk = AssessRisk(result.Changes)

	var changed []string
	for i := range result.Changes {
		change := &result.Changes[i]
		if change.Type == diff.Added {
			continue // nothing depended on an entity that did not exist
		}
		if node := merged.NodeByName(change.Name); node != nil {
			changed = append(changed, node.ID)
		}
	}

	result.Centrality = PageRank(merged, config)
	result.Impact = Propagate(merged, changed, config)
	result.Cascades = Cascades(merged, result.Changes, config)
	result.Summary = Summarize(merged, result.Centrality, result.Impact, config)
	return result, nil
}

// combine flattens summaries into one for entity-level diffing.
func combine(summaries []*summary.StructuralSummary) *summary.StructuralSummary {
	combined := &summary.StructuralSummary{}
	for _, item := range summaries {
		if item == nil {
			continue
		}
		if combined.File == "" {
			combined.File = item.File
		}
		combined.Entities = append(combined.Entities, item.Entities...)
		combined.Relations = append(combined.Relations, item.Relations...)
	}
	return combined
}
