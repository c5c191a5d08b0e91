package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jakechorley/daily-production-plan/pkg/core/catalog"
	"github.com/jakechorley/daily-production-plan/pkg/core/planner"
	"github.com/jakechorley/daily-production-plan/pkg/db"
)

// loadSnapshot fetches every catalog table needed for a plan. Production orders
// planned to start after ordersStartBy are skipped unless it is zero.
// The reads are independent and run concurrently.
func loadSnapshot(ctx context.Context, store db.CatalogStore, ordersStartBy time.Time, logger *zap.Logger) (catalog.Snapshot, error) {
	var snapshot catalog.Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := store.GetProducts(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch products: %w", err)
		}
		snapshot.Products = rows
		return nil
	})
	g.Go(func() error {
		rows, err := store.GetSaleLines(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch sale lines: %w", err)
		}
		snapshot.SaleLines = rows
		return nil
	})
	g.Go(func() error {
		rows, err := store.GetOpenProductionOrders(gctx, ordersStartBy)
		if err != nil {
			return fmt.Errorf("failed to fetch production orders: %w", err)
		}
		snapshot.ProductionOrders = rows
		return nil
	})
	g.Go(func() error {
		rows, err := store.GetOrderpoints(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch orderpoints: %w", err)
		}
		snapshot.Orderpoints = rows
		return nil
	})
	g.Go(func() error {
		rows, err := store.GetTooling(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch tooling: %w", err)
		}
		snapshot.Tooling = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return catalog.Snapshot{}, err
	}

	logger.Debug("Loaded catalog snapshot",
		zap.Int("products", len(snapshot.Products)),
		zap.Int("sale_lines", len(snapshot.SaleLines)),
		zap.Int("production_orders", len(snapshot.ProductionOrders)),
		zap.Int("orderpoints", len(snapshot.Orderpoints)),
		zap.Int("tooling", len(snapshot.Tooling)))

	return snapshot, nil
}

// productCodes maps product IDs to their default codes
func productCodes(products []db.Product) map[string]string {
	codes := make(map[string]string, len(products))
	for _, p := range products {
		codes[p.ID] = p.DefaultCode
	}
	return codes
}

// toDBPlanLine converts a planner line into its persisted form
func toDBPlanLine(id, runID, code string, line planner.PlanLine) db.PlanLine {
	return db.PlanLine{
		ID:           id,
		RunID:        runID,
		ItemID:       line.ItemID,
		ProductCode:  code,
		SizeCategory: string(line.Size),
		PriorityRank: line.PriorityRank,
		StockQty:     line.StockQty,
		SalesQty:     line.SalesBacklogQty,
		InProcessQty: line.InProcessQty,
		MinQty:       line.MinReplenish,
		MaxQty:       line.MaxReplenish,
		MoldsQty:     line.ToolingUnits,
		RequiredQty:  line.RequiredQty,
		ProduceQty:   line.ProducedQty,
		IsExcess:     line.IsExcess,
	}
}

// fromDBPlanLine converts a persisted line back into a planner line
func fromDBPlanLine(line db.PlanLine) planner.PlanLine {
	return planner.PlanLine{
		ItemID:          line.ItemID,
		Size:            planner.SizeClass(line.SizeCategory),
		RequiredQty:     line.RequiredQty,
		ProducedQty:     line.ProduceQty,
		IsExcess:        line.IsExcess,
		PriorityRank:    line.PriorityRank,
		StockQty:        line.StockQty,
		SalesBacklogQty: line.SalesQty,
		InProcessQty:    line.InProcessQty,
		MinReplenish:    line.MinQty,
		MaxReplenish:    line.MaxQty,
		ToolingUnits:    line.MoldsQty,
	}
}
