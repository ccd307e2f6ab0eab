package formatter

import (
	"strings"

	"github.com/ameliebergh/traject/internal/domain"
)

// FormatDependencyList renders dependency edges as a table. Titles maps work
// item IDs to display titles; unknown IDs fall back to a truncated ID.
func FormatDependencyList(deps []*domain.Dependency, titles map[string]string) string {
	headers := []string{"Health", "State", "Predecessor", "Successor", "Planned", "Needed by"}

	rows := make([][]string, 0, len(deps))
	for _, d := range deps {
		health := HealthIndicator(d.Health)
		state := StateLabel(d.State)
		source := titleOrID(titles, d.SourceID)
		target := titleOrID(titles, d.TargetID)
		if !d.IsActive {
			health = StyleDim.Render("removed " + ShortDate(d.RemovedOn))
			source = StyleDim.Render(source)
			target = StyleDim.Render(target)
		}
		rows = append(rows, []string{
			health,
			state,
			source,
			target,
			ShortDate(d.SourcePlannedOn),
			ShortDate(d.TargetPlannedOn),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

func titleOrID(titles map[string]string, id string) string {
	if t, ok := titles[id]; ok {
		return t
	}
	return TruncID(id)
}
