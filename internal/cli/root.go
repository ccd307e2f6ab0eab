package cli

import (
	"github.com/ameliebergh/traject/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Scopes    service.ScopeService
	Outline   service.OutlineService
	WorkItems service.WorkItemService
	Deps      service.DependencyService
	Rollup    service.RollupService
	Health    service.HealthService
}

// NewRootCmd creates the top-level "traject" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "traject",
		Short: "Outline planner with progress rollups and dependency health",
	}

	root.AddCommand(
		newScopeCmd(app),
		newItemCmd(app),
		newOutlineCmd(app),
		newDepCmd(app),
		newRollupCmd(app),
		newHealthCmd(app),
		newUICmd(app),
	)

	return root
}
