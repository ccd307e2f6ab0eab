package formatter

import (
	"fmt"
	"strings"

	"github.com/ameliebergh/traject/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// HealthColor returns the lipgloss style for a dependency health verdict.
func HealthColor(h domain.DependencyHealth) lipgloss.Style {
	switch h {
	case domain.HealthUnhealthy:
		return StyleRed
	case domain.HealthAtRisk:
		return StyleYellow
	case domain.HealthHealthy:
		return StyleGreen
	default:
		return StyleDim
	}
}

// HealthIndicator returns a colored health indicator string such as "● UNHEALTHY".
func HealthIndicator(h domain.DependencyHealth) string {
	switch h {
	case domain.HealthUnhealthy:
		return StyleRed.Render("● UNHEALTHY")
	case domain.HealthAtRisk:
		return StyleYellow.Render("● AT RISK")
	case domain.HealthHealthy:
		return StyleGreen.Render("● HEALTHY")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// StateLabel returns a colored dependency state label.
func StateLabel(s domain.DependencyState) string {
	switch s {
	case domain.DependencyToDo:
		return StyleBlue.Render("to do")
	case domain.DependencyInProgress:
		return StyleYellow.Render("in progress")
	case domain.DependencyDone:
		return StyleGreen.Render("done")
	case domain.DependencyRemoved:
		return StyleDim.Render("removed")
	default:
		return StyleDim.Render(string(s))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
