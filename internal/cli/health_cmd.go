package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ameliebergh/traject/internal/cli/formatter"
	"github.com/ameliebergh/traject/internal/contract"
	"github.com/spf13/cobra"
)

func newHealthCmd(app *App) *cobra.Command {
	var scope, nowStr string
	var all bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Report dependency health for a scope",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			scopeID, err := resolveScopeID(ctx, app, scope)
			if err != nil {
				return err
			}

			req := contract.NewHealthRequest(scopeID)
			req.IncludeRemoved = all
			if nowStr != "" {
				now, err := time.Parse("2006-01-02", nowStr)
				if err != nil {
					return fmt.Errorf("invalid now date %q: %w", nowStr, err)
				}
				req.Now = &now
			}

			resp, err := app.Health.Report(ctx, req)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatHealthReport(resp))
			return nil
		},
	}

	addScopeFlag(cmd.Flags(), &scope)
	cmd.Flags().StringVar(&nowStr, "now", "", "Evaluate as of this date instead of today")
	cmd.Flags().BoolVar(&all, "all", false, "Include removed edges")
	_ = cmd.MarkFlagRequired("scope")

	return cmd
}
