package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ameliebergh/traject/internal/cli/formatter"
	"github.com/ameliebergh/traject/internal/contract"
	"github.com/ameliebergh/traject/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// scopeDetail holds everything the right pane shows for the selected scope.
type scopeDetail struct {
	scope  *domain.Scope
	rollup *contract.RollupResponse
	health *contract.HealthResponse
	tree   []*domain.WorkItem
}

type scopesLoadedMsg struct {
	scopes []*domain.Scope
	err    error
}

type detailLoadedMsg struct {
	detail *scopeDetail
	err    error
}

type dashboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func newDashboardKeyMap() dashboardKeyMap {
	return dashboardKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		Refresh: key.NewBinding(key.WithKeys("r", "enter"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// dashboardModel is a split-pane view: scope list on the left, progress and
// dependency health for the selected scope on the right.
type dashboardModel struct {
	app  *App
	keys dashboardKeyMap

	scopes []*domain.Scope
	cursor int

	detail        *scopeDetail
	loading       bool
	detailLoading bool
	err           error

	width  int
	height int
}

func newDashboardModel(app *App) *dashboardModel {
	return &dashboardModel{
		app:     app,
		keys:    newDashboardKeyMap(),
		loading: true,
	}
}

func (m *dashboardModel) Init() tea.Cmd {
	return m.loadScopes()
}

func (m *dashboardModel) loadScopes() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		scopes, err := app.Scopes.List(context.Background())
		return scopesLoadedMsg{scopes: scopes, err: err}
	}
}

func (m *dashboardModel) loadDetail() tea.Cmd {
	if len(m.scopes) == 0 {
		return nil
	}
	app := m.app
	scope := m.scopes[m.cursor]
	m.detailLoading = true
	return func() tea.Msg {
		ctx := context.Background()

		rollup, err := app.Rollup.Daily(ctx, contract.NewRollupRequest(scope.ID))
		if err != nil {
			return detailLoadedMsg{err: err}
		}
		health, err := app.Health.Report(ctx, contract.NewHealthRequest(scope.ID))
		if err != nil {
			return detailLoadedMsg{err: err}
		}
		tree, err := app.Outline.Tree(ctx, scope.ID)
		if err != nil {
			return detailLoadedMsg{err: err}
		}

		return detailLoadedMsg{detail: &scopeDetail{
			scope:  scope,
			rollup: rollup,
			health: health,
			tree:   tree,
		}}
	}
}

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case scopesLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.scopes = msg.scopes
		if m.cursor >= len(m.scopes) {
			m.cursor = 0
		}
		return m, m.loadDetail()

	case detailLoadedMsg:
		m.detailLoading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.detail = msg.detail
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				return m, m.loadDetail()
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.scopes)-1 {
				m.cursor++
				return m, m.loadDetail()
			}
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.loadScopes()
		}
	}

	return m, nil
}

func (m *dashboardModel) View() string {
	if m.loading {
		return formatter.Dim("Loading scopes...")
	}
	if m.err != nil {
		return formatter.StyleRed.Render("Error: " + m.err.Error())
	}
	if len(m.scopes) == 0 {
		return formatter.Dim("No scopes yet. Create one with: traject scope add NAME")
	}

	left := m.renderScopeList()
	right := m.renderDetail()

	panes := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	footer := formatter.Dim("↑/↓ select  r refresh  q quit")

	return panes + "\n\n" + footer
}

func (m *dashboardModel) renderScopeList() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Scopes") + "\n")
	for i, s := range m.scopes {
		line := s.Name
		if i == m.cursor {
			line = formatter.StyleHeader.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return lipgloss.NewStyle().Width(28).Render(b.String())
}

func (m *dashboardModel) renderDetail() string {
	if m.detailLoading || m.detail == nil {
		return formatter.Dim("Loading...")
	}

	d := m.detail
	var b strings.Builder

	b.WriteString(formatter.Header(d.scope.Name) + "\n\n")

	if d.rollup.Latest != nil {
		latest := d.rollup.Latest
		pcts := make([]float64, len(d.rollup.Series))
		for i, day := range d.rollup.Series {
			pcts[i] = day.PercentComplete
		}
		b.WriteString(formatter.RenderSpark(pcts) + "\n")
		b.WriteString(formatter.RenderProgress(latest.PercentComplete, 24))
		b.WriteString(fmt.Sprintf("  %d/%d leaves done\n\n", latest.CompletedCount, latest.TotalCount))
	} else {
		b.WriteString(formatter.Dim("No leaf items yet.") + "\n\n")
	}

	s := d.health.Summary
	if s.CountsTotal > 0 {
		b.WriteString(fmt.Sprintf("Dependencies: %s healthy  %s at risk  %s unhealthy\n",
			formatter.StyleGreen.Render(fmt.Sprintf("%d", s.CountsHealthy)),
			formatter.StyleYellow.Render(fmt.Sprintf("%d", s.CountsAtRisk)),
			formatter.StyleRed.Render(fmt.Sprintf("%d", s.CountsUnhealthy))))
		b.WriteString(formatter.Dim(s.PolicyMessage) + "\n\n")
	}

	if len(d.tree) > 0 {
		b.WriteString(truncateLines(formatter.FormatOutline(d.tree), 14))
	}

	return b.String()
}

func truncateLines(s string, max int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= max {
		return s
	}
	hidden := len(lines) - max
	return strings.Join(lines[:max], "\n") + "\n" + formatter.Dim(fmt.Sprintf("... %d more", hidden))
}
