package formatter

import (
	"fmt"
	"strings"

	"github.com/ameliebergh/traject/internal/contract"
)

// FormatRollup renders a daily series with a sparkline summary, the latest
// progress bar, and the per-day table.
func FormatRollup(resp *contract.RollupResponse) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("Progress — %s", resp.ScopeName)))
	b.WriteString("\n\n")

	if len(resp.Series) == 0 {
		b.WriteString(Dim("No data in range."))
		for _, w := range resp.Warnings {
			b.WriteString("\n" + StyleYellow.Render("! "+w))
		}
		return b.String()
	}

	pcts := make([]float64, 0, len(resp.Series))
	for _, d := range resp.Series {
		pcts = append(pcts, d.PercentComplete)
	}
	b.WriteString("  " + RenderSpark(pcts) + "\n")
	if resp.Latest != nil {
		b.WriteString("  " + RenderProgress(resp.Latest.PercentComplete, 24))
		b.WriteString(Dim(fmt.Sprintf("  (%d of %d, %d leaves)\n",
			resp.Latest.CompletedCount, resp.Latest.TotalCount, resp.LeafCount)))
	}
	b.WriteString("\n")

	headers := []string{"Date", "Total", "Done", "Progress"}
	rows := make([][]string, 0, len(resp.Series))
	for _, d := range resp.Series {
		rows = append(rows, []string{
			d.Date.Format("2006-01-02"),
			fmt.Sprintf("%d", d.TotalCount),
			fmt.Sprintf("%d", d.CompletedCount),
			RenderProgress(d.PercentComplete, 16),
		})
	}
	b.WriteString(RenderTable(headers, rows))

	for _, w := range resp.Warnings {
		b.WriteString(StyleYellow.Render("! "+w) + "\n")
	}
	return b.String()
}
