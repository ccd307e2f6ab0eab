package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ameliebergh/traject/internal/cli/formatter"
	"github.com/ameliebergh/traject/internal/domain"
	"github.com/spf13/cobra"
)

func newDepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage dependencies between work items",
	}

	cmd.AddCommand(
		newDepAddCmd(app),
		newDepRemoveCmd(app),
		newDepListCmd(app),
		newDepPlanCmd(app),
	)

	return cmd
}

// resolveEdgeEndpoints maps the SOURCE and TARGET args to item IDs within a
// single scope. Shared by every edge-addressed subcommand.
func resolveEdgeEndpoints(ctx context.Context, app *App, scope, source, target string) (scopeID, sourceID, targetID string, err error) {
	scopeID, err = resolveScopeID(ctx, app, scope)
	if err != nil {
		return "", "", "", err
	}
	sourceID, err = resolveItemID(ctx, app, scopeID, source)
	if err != nil {
		return "", "", "", err
	}
	targetID, err = resolveItemID(ctx, app, scopeID, target)
	if err != nil {
		return "", "", "", err
	}
	return scopeID, sourceID, targetID, nil
}

func newDepAddCmd(app *App) *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "add SOURCE TARGET",
		Short: "Link a predecessor to a successor",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, sourceID, targetID, err := resolveEdgeEndpoints(ctx, app, scope, args[0], args[1])
			if err != nil {
				return err
			}

			d, err := app.Deps.Link(ctx, sourceID, targetID, time.Now())
			if err != nil {
				return err
			}

			fmt.Printf("Linked %s -> %s (%s, %s)\n",
				formatter.TruncID(sourceID), formatter.TruncID(targetID),
				formatter.StateLabel(d.State), d.Health)
			return nil
		},
	}

	addScopeFlag(cmd.Flags(), &scope)
	_ = cmd.MarkFlagRequired("scope")

	return cmd
}

func newDepRemoveCmd(app *App) *cobra.Command {
	var scope, by string

	cmd := &cobra.Command{
		Use:   "remove SOURCE TARGET",
		Short: "Remove a dependency edge",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, sourceID, targetID, err := resolveEdgeEndpoints(ctx, app, scope, args[0], args[1])
			if err != nil {
				return err
			}

			if err := app.Deps.Unlink(ctx, sourceID, targetID, time.Now(), by); err != nil {
				return err
			}

			fmt.Printf("Unlinked %s -> %s\n", formatter.TruncID(sourceID), formatter.TruncID(targetID))
			return nil
		},
	}

	addScopeFlag(cmd.Flags(), &scope)
	cmd.Flags().StringVar(&by, "by", "cli", "Who removed the edge")
	_ = cmd.MarkFlagRequired("scope")

	return cmd
}

func newDepListCmd(app *App) *cobra.Command {
	var scope string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dependency edges in a scope",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			scopeID, err := resolveScopeID(ctx, app, scope)
			if err != nil {
				return err
			}
			deps, err := app.Deps.ListByScope(ctx, scopeID, all)
			if err != nil {
				return err
			}

			if len(deps) == 0 {
				fmt.Println("No dependencies found.")
				return nil
			}

			items, err := app.WorkItems.ListByScope(ctx, scopeID)
			if err != nil {
				return err
			}
			titles := make(map[string]string, len(items))
			for _, w := range items {
				titles[w.ID] = w.Title
			}

			fmt.Printf("%s\n", formatter.FormatDependencyList(deps, titles))
			return nil
		},
	}

	addScopeFlag(cmd.Flags(), &scope)
	cmd.Flags().BoolVar(&all, "all", false, "Include removed edges")
	_ = cmd.MarkFlagRequired("scope")

	return cmd
}

func newDepPlanCmd(app *App) *cobra.Command {
	var scope, date, sprintEnd string
	var onTarget, clear bool

	cmd := &cobra.Command{
		Use:   "plan SOURCE TARGET",
		Short: "Set or clear a planned completion date on an edge",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, sourceID, targetID, err := resolveEdgeEndpoints(ctx, app, scope, args[0], args[1])
			if err != nil {
				return err
			}

			now := time.Now()
			var planned *time.Time
			switch {
			case clear:
			case date != "" && sprintEnd != "":
				return fmt.Errorf("--date and --sprint-end are mutually exclusive")
			case sprintEnd != "":
				d, err := time.Parse("2006-01-02", sprintEnd)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", sprintEnd, err)
				}
				// A sprint that already ended yields no planned date.
				planned = domain.PlannedCompletionDate(&domain.IterationInfo{
					Type:  domain.IterationSprint,
					State: domain.IterationActive,
					End:   &d,
				}, now)
				if planned == nil {
					return fmt.Errorf("sprint ending %s is already over; no planned date to derive", sprintEnd)
				}
			case date != "":
				d, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", date, err)
				}
				planned = &d
			default:
				return fmt.Errorf("--date or --sprint-end is required unless --clear is set")
			}

			if onTarget {
				err = app.Deps.SetTargetPlanned(ctx, sourceID, targetID, planned, now)
			} else {
				err = app.Deps.SetSourcePlanned(ctx, sourceID, targetID, planned, now)
			}
			if err != nil {
				return err
			}

			side := "predecessor"
			if onTarget {
				side = "successor"
			}
			if planned == nil {
				fmt.Printf("Cleared %s planned date\n", side)
			} else {
				fmt.Printf("Set %s planned date to %s\n", side, planned.Format("2006-01-02"))
			}
			return nil
		},
	}

	addScopeFlag(cmd.Flags(), &scope)
	cmd.Flags().StringVar(&date, "date", "", "Planned completion date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&sprintEnd, "sprint-end", "", "Derive the planned date from an active sprint ending on this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&onTarget, "target", false, "Set the successor's date instead of the predecessor's")
	cmd.Flags().BoolVar(&clear, "clear", false, "Clear the date instead of setting it")
	_ = cmd.MarkFlagRequired("scope")

	return cmd
}
