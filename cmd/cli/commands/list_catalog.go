package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/daily-production-plan/pkg/core/planner"
	"github.com/jakechorley/daily-production-plan/pkg/core/services"
)

// ListCatalogCmd creates the listCatalog command
func ListCatalogCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listCatalog",
		Short: "List the planning inputs derived for each product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dateStr, _ := cmd.Flags().GetString("date")
			sizeFilter, _ := cmd.Flags().GetString("size")

			date, err := parseDateFlag(dateStr)
			if err != nil {
				return err
			}

			filter := planner.SizeFilter(sizeFilter)
			switch filter {
			case planner.FilterAll, planner.FilterSmall, planner.FilterLarge:
			default:
				return fmt.Errorf("size must be one of all, small or large, got %q", sizeFilter)
			}

			app.Logger.Debug("listCatalog command",
				zap.String("date", date.Format("2006-01-02")),
				zap.String("size", sizeFilter))

			entries, err := services.ListCatalog(app.Ctx, app.Database, app.Cfg, app.Logger, date, filter)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d products:\n\n", len(entries))
			fmt.Printf("%s%-24s  %-6s  %8s  %8s  %8s  %8s  %8s  %6s%s\n",
				colorBold, "Code", "Size", "Stock", "Sales", "Process", "Min", "Max", "Molds", colorReset)
			for _, e := range entries {
				code := e.Product.DefaultCode
				if code == "" {
					code = e.Product.ID
				}
				fmt.Printf("%-24s  %-6s  %8s  %8s  %8s  %8s  %8s  %6s\n",
					code,
					e.Item.Size,
					formatQty(e.Item.StockQty),
					formatQty(e.Item.SalesBacklogQty),
					formatQty(e.Item.InProcessQty),
					formatQty(e.Item.MinReplenish),
					formatQty(e.Item.MaxReplenish),
					formatQty(e.Item.ToolingUnits))
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("date", "", "Date for open production orders as YYYY-MM-DD (defaults to today)")
	cmd.Flags().String("size", "all", "Size filter: all, small or large")

	return cmd
}
