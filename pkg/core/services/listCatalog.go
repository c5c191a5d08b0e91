package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/daily-production-plan/internal/config"
	"github.com/jakechorley/daily-production-plan/pkg/core/catalog"
	"github.com/jakechorley/daily-production-plan/pkg/core/planner"
	"github.com/jakechorley/daily-production-plan/pkg/db"
)

// CatalogEntry pairs a product with the planning inputs derived for it
type CatalogEntry struct {
	Product db.Product
	Item    planner.Item
}

// ListCatalog assembles the planning inputs for a date without running the planner.
// Products outside the filter are left out; FilterAll keeps every product, including
// those of no planned size class.
func ListCatalog(
	ctx context.Context,
	store db.CatalogStore,
	cfg *config.Config,
	logger *zap.Logger,
	date time.Time,
	filter planner.SizeFilter,
) ([]CatalogEntry, error) {
	logger.Debug("Starting listCatalog",
		zap.String("date", date.Format("2006-01-02")),
		zap.String("size_filter", string(filter)))

	snapshot, err := loadSnapshot(ctx, store, cfg.InProcessStartsBy(date), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	items := catalog.BuildItems(snapshot)

	entries := make([]CatalogEntry, 0, len(items))
	for i, item := range items {
		if filter != planner.FilterAll && filter != "" && !filter.Includes(item.Size) {
			continue
		}
		entries = append(entries, CatalogEntry{Product: snapshot.Products[i], Item: item})
	}

	logger.Debug("Catalog entries", zap.Int("count", len(entries)))
	return entries, nil
}
