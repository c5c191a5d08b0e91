package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/daily-production-plan/pkg/core/services"
)

// ShowPlanCmd creates the showPlan command
func ShowPlanCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "showPlan [run_id]",
		Short: "Show a saved production plan (defaults to the latest)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var runID string
			if len(args) > 0 {
				runID = args[0]
			}

			app.Logger.Debug("showPlan command", zap.String("run_id", runID))

			detail, err := services.GetPlan(app.Ctx, app.Database, app.Logger, runID)
			if err != nil {
				return err
			}

			fmt.Printf("\n🏭 Production Plan for %s\n\n", detail.Run.PlanDate)
			fmt.Printf("Run ID:  %s\n", detail.Run.ID)
			fmt.Printf("Mode:    %s\n", detail.Run.Mode)
			fmt.Printf("Sizes:   %s\n", detail.Run.SizeFilter)
			fmt.Printf("Created: %s\n\n", detail.Run.CreatedAt.Local().Format("2006-01-02 15:04"))

			writePlanTable(os.Stdout, planRows(detail.PlanLines, detail.ProductCodes))
			fmt.Println()

			fmt.Println("Totals:")
			writeTotals(os.Stdout, detail.TotalsBySize)
			fmt.Println()

			return nil
		},
	}
}
