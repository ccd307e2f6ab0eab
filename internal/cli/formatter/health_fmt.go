package formatter

import (
	"fmt"
	"strings"

	"github.com/ameliebergh/traject/internal/contract"
)

// FormatHealthReport renders the dependency health report: a summary line
// followed by one row per edge, worst first.
func FormatHealthReport(resp *contract.HealthResponse) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("Dependency health — %s", resp.ScopeName)))
	b.WriteString("\n\n")

	s := resp.Summary
	b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		StyleGreen.Render(fmt.Sprintf("%d healthy", s.CountsHealthy)),
		StyleYellow.Render(fmt.Sprintf("%d at risk", s.CountsAtRisk)),
		StyleRed.Render(fmt.Sprintf("%d unhealthy", s.CountsUnhealthy)),
	))
	b.WriteString("  " + Dim(s.PolicyMessage) + "\n\n")

	if len(resp.Dependencies) == 0 {
		b.WriteString(Dim("No dependencies."))
		return b.String()
	}

	headers := []string{"Health", "State", "Predecessor", "Planned", "Successor", "Needed by"}
	rows := make([][]string, 0, len(resp.Dependencies))
	for _, d := range resp.Dependencies {
		source := d.SourceTitle
		target := d.TargetTitle
		if !d.IsActive {
			source = StyleDim.Render(source)
			target = StyleDim.Render(target)
		}
		rows = append(rows, []string{
			HealthIndicator(d.Health),
			StateLabel(d.State),
			source,
			plannedCell(d.SourcePlannedOn),
			target,
			plannedCell(d.TargetPlannedOn),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

func plannedCell(date *string) string {
	if date == nil {
		return StyleDim.Render("--")
	}
	return *date
}
