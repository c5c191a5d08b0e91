package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/daily-production-plan/pkg/core/planner"
	"github.com/jakechorley/daily-production-plan/pkg/core/services"
)

// GeneratePlanCmd creates the generatePlan command
func GeneratePlanCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generatePlan",
		Short: "Generate the production plan for a day",
		Long:  "Build the daily production plan from the current catalog, stock, sales backlog and shift configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dateStr, _ := cmd.Flags().GetString("date")
			mode, _ := cmd.Flags().GetString("mode")
			sizeFilter, _ := cmd.Flags().GetString("size")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			forceCommit, _ := cmd.Flags().GetBool("force-commit")

			date, err := parseDateFlag(dateStr)
			if err != nil {
				return err
			}

			app.Logger.Debug("generatePlan command",
				zap.String("date", date.Format("2006-01-02")),
				zap.String("mode", mode),
				zap.String("size", sizeFilter),
				zap.Bool("dry_run", dryRun),
				zap.Bool("force_commit", forceCommit))

			result, err := services.GeneratePlan(app.Ctx, app.Database, app.Cfg, app.Logger, services.GeneratePlanOptions{
				Date:        date,
				Mode:        planner.PlanningMode(mode),
				SizeFilter:  planner.SizeFilter(sizeFilter),
				DryRun:      dryRun,
				ForceCommit: forceCommit,
			})
			if err != nil {
				return fmt.Errorf("plan generation failed: %w", err)
			}

			// Display header
			fmt.Printf("\n🏭 Production Plan for %s\n\n", result.PlanDate)
			fmt.Printf("Run ID:      %s\n", result.RunID)
			fmt.Printf("Mode:        %s\n", result.Policy.Mode)
			fmt.Printf("Sizes:       %s\n", result.Policy.SizeFilter)
			for _, size := range planner.PlannedSizes {
				pool, ok := result.Plan.Pools[size]
				if !ok {
					continue
				}
				shift := result.Policy.Shifts[size]
				fmt.Printf("Capacity %-6s %d×%dh = %s (overflow %s)\n",
					size+":", shift.Shifts, shift.HoursPerShift,
					formatQty(pool.PrimaryCapacity), formatQty(pool.OverflowCapacity))
			}
			switch {
			case dryRun:
				fmt.Printf("Status:      🧪 DRY RUN (not saved)\n")
			case result.Saved && len(result.ValidationErrors) == 0:
				fmt.Printf("Status:      ✅ SAVED\n")
			case result.Saved:
				fmt.Printf("Status:      ⚠️  FORCED (saved despite validation errors)\n")
			default:
				fmt.Printf("Status:      ❌ FAILED VALIDATION (not saved)\n")
			}
			fmt.Println()

			if len(result.ValidationErrors) > 0 {
				fmt.Printf("⚠️  Validation Errors (%d):\n", len(result.ValidationErrors))
				for _, verr := range result.ValidationErrors {
					fmt.Printf("  • %s %s: %s\n", verr.Check, verr.ItemID, verr.Description)
				}
				fmt.Println()
			}

			if result.Plan.DegenerateFallback {
				fmt.Println("ℹ️  Nothing qualifies for production today; listing every item with demand data.")
				fmt.Println()
			}

			writePlanTable(os.Stdout, planRows(result.Plan.Lines, result.ProductCodes))
			fmt.Println()

			fmt.Println("Totals:")
			writeTotals(os.Stdout, result.Plan.TotalsBySize)
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("date", "", "Plan date as YYYY-MM-DD (defaults to today)")
	cmd.Flags().String("mode", "", "Planning mode: suggested or general (defaults to config)")
	cmd.Flags().String("size", "", "Size filter: all, small or large (defaults to config)")
	cmd.Flags().Bool("dry-run", false, "Run without saving the plan")
	cmd.Flags().Bool("force-commit", false, "Save the plan even if validation fails")

	return cmd
}

// parseDateFlag parses a YYYY-MM-DD flag value; empty means today
func parseDateFlag(value string) (time.Time, error) {
	if value == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	return date, nil
}
