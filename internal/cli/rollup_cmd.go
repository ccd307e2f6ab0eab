package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ameliebergh/traject/internal/cli/formatter"
	"github.com/ameliebergh/traject/internal/contract"
	"github.com/spf13/cobra"
)

func newRollupCmd(app *App) *cobra.Command {
	var scope, from, to, root, nowStr string
	var doneOnly, useEffort bool

	cmd := &cobra.Command{
		Use:   "rollup",
		Short: "Show the daily progress series for a scope",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			scopeID, err := resolveScopeID(ctx, app, scope)
			if err != nil {
				return err
			}

			req := contract.NewRollupRequest(scopeID)
			req.DoneOnly = doneOnly
			req.UseEffort = useEffort

			if from != "" {
				start, err := time.Parse("2006-01-02", from)
				if err != nil {
					return fmt.Errorf("invalid from date %q: %w", from, err)
				}
				req.Start = &start
			}
			if to != "" {
				end, err := time.Parse("2006-01-02", to)
				if err != nil {
					return fmt.Errorf("invalid to date %q: %w", to, err)
				}
				req.End = &end
			}
			if root != "" {
				rootID, err := resolveItemID(ctx, app, scopeID, root)
				if err != nil {
					return err
				}
				req.RootID = &rootID
			}
			if nowStr != "" {
				now, err := time.Parse("2006-01-02", nowStr)
				if err != nil {
					return fmt.Errorf("invalid now date %q: %w", nowStr, err)
				}
				req.Now = &now
			}

			resp, err := app.Rollup.Daily(ctx, req)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatRollup(resp))
			return nil
		},
	}

	addScopeFlag(cmd.Flags(), &scope)
	cmd.Flags().StringVar(&from, "from", "", "Window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Window end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&root, "root", "", "Restrict to the subtree under this item")
	cmd.Flags().StringVar(&nowStr, "now", "", "Evaluate as of this date instead of today")
	cmd.Flags().BoolVar(&doneOnly, "done-only", false, "Count only done items as complete, not removed")
	cmd.Flags().BoolVar(&useEffort, "effort", false, "Weight items by effort instead of counting them")
	_ = cmd.MarkFlagRequired("scope")

	return cmd
}
