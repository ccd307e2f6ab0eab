package cli

import (
	"context"
	"fmt"

	"github.com/ameliebergh/traject/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newOutlineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outline",
		Short: "View and restructure the outline",
	}

	cmd.AddCommand(
		newOutlineTreeCmd(app),
		newOutlineMoveCmd(app),
		newOutlineOrderCmd(app),
		newOutlineRemoveCmd(app),
	)

	return cmd
}

func newOutlineTreeCmd(app *App) *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the scope outline as a tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			scopeID, err := resolveScopeID(ctx, app, scope)
			if err != nil {
				return err
			}
			nodes, err := app.Outline.Tree(ctx, scopeID)
			if err != nil {
				return err
			}

			if len(nodes) == 0 {
				fmt.Println("Outline is empty.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatOutline(nodes))
			return nil
		},
	}

	addScopeFlag(cmd.Flags(), &scope)
	_ = cmd.MarkFlagRequired("scope")

	return cmd
}

func newOutlineMoveCmd(app *App) *cobra.Command {
	var scope, parent string
	var order int
	var toRoot bool

	cmd := &cobra.Command{
		Use:   "move ITEM",
		Short: "Move an item under a new parent",
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

			var parentPtr *string
			switch {
			case toRoot:
				// nil parent promotes to root level
			case parent != "":
				parentID, err := resolveItemID(ctx, app, scopeID, parent)
				if err != nil {
					return err
				}
				parentPtr = &parentID
			default:
				return fmt.Errorf("either --parent or --root is required")
			}

			var orderPtr *int
			if cmd.Flags().Changed("order") {
				o := order
				orderPtr = &o
			}

			if err := app.Outline.Move(ctx, itemID, parentPtr, orderPtr); err != nil {
				return err
			}

			fmt.Printf("Moved %s\n", formatter.TruncID(itemID))
			return nil
		},
	}

	addScopeFlag(cmd.Flags(), &scope)
	cmd.Flags().StringVar(&parent, "parent", "", "New parent item title or ID")
	cmd.Flags().BoolVar(&toRoot, "root", false, "Move to root level")
	cmd.Flags().IntVar(&order, "order", 0, "1-based position among new siblings (appends when omitted)")
	_ = cmd.MarkFlagRequired("scope")

	return cmd
}

func newOutlineOrderCmd(app *App) *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "order ITEM POSITION",
		Short: "Reposition an item among its siblings",
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

			var pos int
			if _, err := fmt.Sscanf(args[1], "%d", &pos); err != nil {
				return fmt.Errorf("invalid position %q: %w", args[1], err)
			}

			if err := app.Outline.SetOrder(ctx, itemID, pos); err != nil {
				return err
			}

			fmt.Printf("Moved %s to position %d\n", formatter.TruncID(itemID), pos)
			return nil
		},
	}

	addScopeFlag(cmd.Flags(), &scope)
	_ = cmd.MarkFlagRequired("scope")

	return cmd
}

func newOutlineRemoveCmd(app *App) *cobra.Command {
	var scope string
	var cascade bool

	cmd := &cobra.Command{
		Use:   "remove ITEM",
		Short: "Delete an item from the outline",
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
			if err := app.Outline.Remove(ctx, itemID, cascade); err != nil {
				return err
			}

			fmt.Printf("Removed %s\n", formatter.TruncID(itemID))
			return nil
		},
	}

	addScopeFlag(cmd.Flags(), &scope)
	cmd.Flags().BoolVar(&cascade, "cascade", false, "Also delete the item's descendants")
	_ = cmd.MarkFlagRequired("scope")

	return cmd
}
