package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ameliebergh/traject/internal/cli/formatter"
	"github.com/ameliebergh/traject/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// trajectHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func trajectHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

const wizardRootChoice = "(root level)"

func newItemWizardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Add a work item interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			scopes, err := app.Scopes.List(ctx)
			if err != nil {
				return err
			}
			if len(scopes) == 0 {
				return fmt.Errorf("no scopes yet; create one with: traject scope add NAME")
			}

			scopeOptions := make([]huh.Option[string], 0, len(scopes))
			for _, s := range scopes {
				scopeOptions = append(scopeOptions, huh.NewOption(s.Name, s.ID))
			}

			var scopeID string
			pick := huh.NewForm(huh.NewGroup(
				huh.NewSelect[string]().
					Title("Scope").
					Options(scopeOptions...).
					Value(&scopeID),
			)).WithTheme(trajectHuhTheme()).WithShowHelp(false)
			if err := pick.Run(); err != nil {
				return err
			}

			items, err := app.WorkItems.ListByScope(ctx, scopeID)
			if err != nil {
				return err
			}
			parentOptions := []huh.Option[string]{huh.NewOption(wizardRootChoice, "")}
			for _, w := range items {
				if w.Status == domain.StatusRemoved {
					continue
				}
				parentOptions = append(parentOptions, huh.NewOption(w.Title, w.ID))
			}

			var title, parentID, effortStr string
			form := huh.NewForm(huh.NewGroup(
				huh.NewInput().
					Title("Title").
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("title is required")
						}
						return nil
					}).
					Value(&title),
				huh.NewSelect[string]().
					Title("Parent").
					Options(parentOptions...).
					Value(&parentID),
				huh.NewInput().
					Title("Effort").
					Description("Optional weight, leave empty to skip").
					Validate(func(s string) error {
						if s == "" {
							return nil
						}
						n, err := strconv.Atoi(s)
						if err != nil || n <= 0 {
							return fmt.Errorf("effort must be a positive number")
						}
						return nil
					}).
					Value(&effortStr),
			)).WithTheme(trajectHuhTheme()).WithShowHelp(false)
			if err := form.Run(); err != nil {
				return err
			}

			w := &domain.WorkItem{
				ScopeID: scopeID,
				Title:   strings.TrimSpace(title),
			}
			if parentID != "" {
				p := parentID
				w.ParentID = &p
			}
			if effortStr != "" {
				e, _ := strconv.Atoi(effortStr)
				w.Effort = &e
			}

			if err := app.Outline.AddItem(ctx, w, nil); err != nil {
				return err
			}

			fmt.Printf("Added %s (%s)\n", w.Title, formatter.TruncID(w.ID))
			return nil
		},
	}
}
