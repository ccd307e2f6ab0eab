package formatter

import (
	"fmt"

	"github.com/ameliebergh/traject/internal/domain"
)

// FormatScopeList renders scopes as an aligned table.
func FormatScopeList(scopes []*domain.Scope) string {
	headers := []string{"ID", "Name", "Created"}
	rows := make([][]string, 0, len(scopes))
	for _, s := range scopes {
		created := s.CreatedAt
		rows = append(rows, []string{
			TruncID(s.ID),
			Bold(s.Name),
			ShortDate(&created),
		})
	}
	return RenderTable(headers, rows)
}

// FormatItemList renders work items as an aligned table.
func FormatItemList(items []*domain.WorkItem) string {
	headers := []string{"ID", "Title", "Status", "Effort", "Done"}
	rows := make([][]string, 0, len(items))
	for _, w := range items {
		effort := StyleDim.Render("--")
		if w.Effort != nil {
			effort = fmt.Sprintf("%d", *w.Effort)
		}
		rows = append(rows, []string{
			TruncID(w.ID),
			w.Title,
			StatusPill(w.Status),
			effort,
			ShortDate(w.DoneAt),
		})
	}
	return RenderTable(headers, rows)
}
