package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ameliebergh/traject/internal/cli/formatter"
	"github.com/ameliebergh/traject/internal/domain"
	"github.com/spf13/cobra"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage work items",
	}

	cmd.AddCommand(
		newItemAddCmd(app),
		newItemListCmd(app),
		newItemRenameCmd(app),
		newItemEffortCmd(app),
		newItemStatusCmd(app),
		newItemDoneCmd(app),
		newItemWizardCmd(app),
	)

	return cmd
}

func newItemAddCmd(app *App) *cobra.Command {
	var scope, parent string
	var order, effort int

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a work item to a scope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			scopeID, err := resolveScopeID(ctx, app, scope)
			if err != nil {
				return err
			}

			w := &domain.WorkItem{
				ScopeID: scopeID,
				Title:   args[0],
			}
			if parent != "" {
				parentID, err := resolveItemID(ctx, app, scopeID, parent)
				if err != nil {
					return err
				}
				w.ParentID = &parentID
			}
			if cmd.Flags().Changed("effort") {
				e := effort
				w.Effort = &e
			}

			var orderPtr *int
			if cmd.Flags().Changed("order") {
				o := order
				orderPtr = &o
			}

			if err := app.Outline.AddItem(ctx, w, orderPtr); err != nil {
				return err
			}

			fmt.Printf("Added %s (%s)\n", w.Title, formatter.TruncID(w.ID))
			return nil
		},
	}

	addScopeFlag(cmd.Flags(), &scope)
	cmd.Flags().StringVar(&parent, "parent", "", "Parent item title or ID")
	cmd.Flags().IntVar(&order, "order", 0, "1-based position among siblings (appends when omitted)")
	cmd.Flags().IntVar(&effort, "effort", 0, "Optional effort weight")
	_ = cmd.MarkFlagRequired("scope")

	return cmd
}

func newItemListCmd(app *App) *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work items in a scope",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			scopeID, err := resolveScopeID(ctx, app, scope)
			if err != nil {
				return err
			}
			items, err := app.WorkItems.ListByScope(ctx, scopeID)
			if err != nil {
				return err
			}

			if len(items) == 0 {
				fmt.Println("No work items found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatItemList(items))
			return nil
		},
	}

	addScopeFlag(cmd.Flags(), &scope)
	_ = cmd.MarkFlagRequired("scope")

	return cmd
}

func newItemRenameCmd(app *App) *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "rename ITEM TITLE",
		Short: "Rename a work item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			scopeID, err := resolveScopeID(ctx, app, scope)
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(ctx, app, scopeID, args[0])
			if err != nil {
				return err
			}
			if err := app.WorkItems.Rename(ctx, itemID, args[1]); err != nil {
				return err
			}

			fmt.Printf("Renamed item to %s\n", args[1])
			return nil
		},
	}

	addScopeFlag(cmd.Flags(), &scope)
	_ = cmd.MarkFlagRequired("scope")

	return cmd
}

func newItemEffortCmd(app *App) *cobra.Command {
	var scope string
	var clear bool

	cmd := &cobra.Command{
		Use:   "effort ITEM [WEIGHT]",
		Short: "Set or clear an item's effort weight",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			scopeID, err := resolveScopeID(ctx, app, scope)
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(ctx, app, scopeID, args[0])
			if err != nil {
				return err
			}

			var effort *int
			if !clear {
				if len(args) < 2 {
					return fmt.Errorf("effort weight is required unless --clear is set")
				}
				var e int
				if _, err := fmt.Sscanf(args[1], "%d", &e); err != nil {
					return fmt.Errorf("invalid effort %q: %w", args[1], err)
				}
				effort = &e
			}

			if err := app.WorkItems.SetEffort(ctx, itemID, effort); err != nil {
				return err
			}

			if effort == nil {
				fmt.Println("Cleared effort")
			} else {
				fmt.Printf("Set effort to %d\n", *effort)
			}
			return nil
		},
	}

	addScopeFlag(cmd.Flags(), &scope)
	cmd.Flags().BoolVar(&clear, "clear", false, "Remove the effort weight")
	_ = cmd.MarkFlagRequired("scope")

	return cmd
}

func newItemStatusCmd(app *App) *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "status ITEM STATUS",
		Short: "Set an item's status (proposed, active, done, removed)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			scopeID, err := resolveScopeID(ctx, app, scope)
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(ctx, app, scopeID, args[0])
			if err != nil {
				return err
			}

			if !domain.ValidStatusCategories[args[1]] {
				return fmt.Errorf("invalid status %q (expected proposed, active, done, or removed)", args[1])
			}

			status := domain.StatusCategory(args[1])
			if err := app.WorkItems.SetStatus(ctx, itemID, status, time.Now()); err != nil {
				return err
			}

			fmt.Printf("Set status to %s\n", status)
			return nil
		},
	}

	addScopeFlag(cmd.Flags(), &scope)
	_ = cmd.MarkFlagRequired("scope")

	return cmd
}

func newItemDoneCmd(app *App) *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "done ITEM",
		Short: "Mark an item done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			scopeID, err := resolveScopeID(ctx, app, scope)
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(ctx, app, scopeID, args[0])
			if err != nil {
				return err
			}
			if err := app.WorkItems.SetStatus(ctx, itemID, domain.StatusDone, time.Now()); err != nil {
				return err
			}

			fmt.Printf("Marked %s done\n", formatter.TruncID(itemID))
			return nil
		},
	}

	addScopeFlag(cmd.Flags(), &scope)
	_ = cmd.MarkFlagRequired("scope")

	return cmd
}
