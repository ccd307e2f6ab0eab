package formatter

import (
	"strings"
	"time"

	"github.com/ameliebergh/traject/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// StatusPill returns a colored status indicator for a work item status.
func StatusPill(status domain.StatusCategory) string {
	switch status {
	case domain.StatusProposed:
		return StyleBlue.Render("○ Proposed")
	case domain.StatusActive:
		return StyleYellow.Render("▶ Active")
	case domain.StatusDone:
		return StyleGreen.Render("✔ Done")
	case domain.StatusRemoved:
		return StyleDim.Render("✖ Removed")
	default:
		return StyleDim.Render(string(status))
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// ShortDate formats a date as YYYY-MM-DD, or a dim dash when absent.
func ShortDate(t *time.Time) string {
	if t == nil {
		return StyleDim.Render("--")
	}
	return t.Format("2006-01-02")
}
