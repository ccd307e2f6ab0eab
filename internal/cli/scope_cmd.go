package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ameliebergh/traject/internal/cli/formatter"
	"github.com/ameliebergh/traject/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newScopeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scope",
		Short: "Manage scopes",
	}

	cmd.AddCommand(
		newScopeAddCmd(app),
		newScopeListCmd(app),
		newScopeRenameCmd(app),
		newScopeRemoveCmd(app),
	)

	return cmd
}

func newScopeAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Create a new scope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			s := &domain.Scope{
				ID:        uuid.New().String(),
				Name:      args[0],
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := app.Scopes.Create(context.Background(), s); err != nil {
				return err
			}

			fmt.Printf("Created scope %s (%s)\n", s.Name, formatter.TruncID(s.ID))
			return nil
		},
	}
}

func newScopeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scopes",
		RunE: func(cmd *cobra.Command, args []string) error {
			scopes, err := app.Scopes.List(context.Background())
			if err != nil {
				return err
			}

			if len(scopes) == 0 {
				fmt.Println("No scopes found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatScopeList(scopes))
			return nil
		},
	}
}

func newScopeRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename SCOPE NAME",
		Short: "Rename a scope",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			scopeID, err := resolveScopeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Scopes.Rename(ctx, scopeID, args[1]); err != nil {
				return err
			}

			fmt.Printf("Renamed scope to %s\n", args[1])
			return nil
		},
	}
}

func newScopeRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove SCOPE",
		Short: "Delete a scope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			scopeID, err := resolveScopeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Scopes.Delete(ctx, scopeID, force); err != nil {
				return err
			}

			fmt.Printf("Deleted scope %s\n", formatter.TruncID(scopeID))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Delete even when the scope still has work items")

	return cmd
}
