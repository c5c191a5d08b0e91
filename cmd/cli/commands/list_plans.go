package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/daily-production-plan/pkg/core/services"
)

// ListPlansCmd creates the listPlans command
func ListPlansCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listPlans",
		Short: "List saved production plans, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			app.Logger.Debug("listPlans command", zap.Int("limit", limit))

			runs, err := services.ListPlans(app.Ctx, app.Database, app.Logger, limit)
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Println("No plans saved yet - run generatePlan first.")
				return nil
			}

			fmt.Printf("\nFound %d plans:\n\n", len(runs))
			for _, run := range runs {
				fallback := ""
				if run.DegenerateFallback {
					fallback = " [no production]"
				}
				fmt.Printf("- %s  %s  %-9s %-5s  created %s%s\n",
					run.PlanDate,
					run.ID,
					run.Mode,
					run.SizeFilter,
					run.CreatedAt.Local().Format("2006-01-02 15:04"),
					fallback)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Int("limit", 10, "Maximum number of plans to list (0 for all)")

	return cmd
}
