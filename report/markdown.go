// Package report renders analysis results as markdown for human review or
// LLM prompt context.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/viant/blastradius/analysis"
)

const topImpacts = 10

// Markdown renders a full analysis result as a markdown report.
func Markdown(result *analysis.Result) string {
	var builder strings.Builder
	builder.WriteString("## Blast Radius Analysis\n\n")

	writeRisk(&builder, result)
	writeChanges(&builder, result)
	writeImpact(&builder, result)
	writeCascades(&builder, result)
	writeSummary(&builder, result)
	return builder.String()
}

func writeRisk(builder *strings.Builder, result *analysis.Result) {
	if result.Risk == nil {
		return
	}
	builder.WriteString("### Risk\n")
	fmt.Fprintf(builder, "- score: %d/100\n", result.Risk.Score)
	fmt.Fprintf(builder, "- level: %s\n", result.Risk.Level)
	fmt.Fprintf(builder, "- breaking changes: %d\n\n", len(result.Changes))
}

func writeChanges(builder *strings.Builder, result *analysis.Result) {
	if len(result.Changes) == 0 {
		builder.WriteString("No breaking changes detected.\n\n")
		return
	}
	builder.WriteString("### Breaking Changes\n")
	for i := range result.Changes {
		change := &result.Changes[i]
		fmt.Fprintf(builder, "- `%s` %s (%s): %s\n", change.Name, change.Type, change.Severity, change.Description)
	}
	builder.WriteString("\n")
}

func writeImpact(builder *strings.Builder, result *analysis.Result) {
	scope := result.Impact
	if scope == nil || scope.Stats.TotalTouched == 0 {
		return
	}
	builder.WriteString("### Impact Scope\n")
	fmt.Fprintf(builder, "- touched: %d nodes, max distance %d, high impact %d\n",
		scope.Stats.TotalTouched, scope.Stats.MaxDistance, scope.Stats.HighImpactCount)
	if len(scope.Direct) > 0 {
		fmt.Fprintf(builder, "- direct dependents: %s\n", strings.Join(names(result, scope.Direct), ", "))
	}
	if len(scope.Indirect) > 0 {
		type entry struct {
			id    string
			score float64
			dist  int
		}
		entries := make([]entry, 0, len(scope.Indirect))
		for id, impact := range scope.Indirect {
			entries = append(entries, entry{id: id, score: impact.Score, dist: impact.Distance})
		}
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].score != entries[j].score {
				return entries[i].score > entries[j].score
			}
			return entries[i].id < entries[j].id
		})
		if len(entries) > topImpacts {
			entries = entries[:topImpacts]
		}
		builder.WriteString("- top indirect dependents:\n")
		for _, item := range entries {
			fmt.Fprintf(builder, "  - `%s` score %.2f at distance %d\n", displayName(result, item.id), item.score, item.dist)
		}
	}
	builder.WriteString("\n")
}

func writeCascades(builder *strings.Builder, result *analysis.Result) {
	if len(result.Cascades) == 0 {
		return
	}
	builder.WriteString("### Cascade Chains\n")
	for i := range result.Cascades {
		cascade := &result.Cascades[i]
		fmt.Fprintf(builder, "- %s (%s)\n", strings.Join(names(result, cascade.Path), " -> "), cascade.Terminal)
	}
	builder.WriteString("\n")
}

func writeSummary(builder *strings.Builder, result *analysis.Result) {
	if result.Summary == nil {
		return
	}
	builder.WriteString("### Key Nodes\n")
	for _, node := range result.Summary.Nodes {
		if node.Rank == 0 {
			continue
		}
		fmt.Fprintf(builder, "- `%s` rank %.3f\n", node.Name, node.Rank)
	}
	if result.Summary.Truncated {
		fmt.Fprintf(builder, "\n(%d nodes omitted by budget)\n", result.Summary.Omitted)
	}
}

func names(result *analysis.Result, ids []string) []string {
	values := make([]string, 0, len(ids))
	for _, id := range ids {
		values = append(values, displayName(result, id))
	}
	return values
}

func displayName(result *analysis.Result, id string) string {
	if node := result.Graph.Node(id); node != nil {
		return node.Name
	}
	return id
}
