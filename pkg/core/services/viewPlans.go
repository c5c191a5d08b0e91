package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/jakechorley/daily-production-plan/pkg/core/planner"
	"github.com/jakechorley/daily-production-plan/pkg/db"
)

// PlanDetail is a persisted plan run with its lines and per-size totals
type PlanDetail struct {
	Run   db.PlanRun
	Lines []db.PlanLine

	// PlanLines are Lines in planner form, for ordering and aggregation
	PlanLines    []planner.PlanLine
	ProductCodes map[string]string
	TotalsBySize map[planner.SizeClass]planner.SizeTotals
}

// ListPlans returns saved plan runs, most recent plan date first.
// When limit is positive only the first limit runs are returned.
func ListPlans(ctx context.Context, store db.PlanStore, logger *zap.Logger, limit int) ([]db.PlanRun, error) {
	logger.Debug("Fetching plan runs", zap.Int("limit", limit))
	runs, err := store.GetPlanRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch plan runs: %w", err)
	}
	logger.Debug("Found plan runs", zap.Int("count", len(runs)))

	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].PlanDate != runs[j].PlanDate {
			return runs[i].PlanDate > runs[j].PlanDate
		}
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// GetPlan loads a saved plan run. An empty runID selects the most recent run.
func GetPlan(ctx context.Context, store db.PlanStore, logger *zap.Logger, runID string) (*PlanDetail, error) {
	runs, err := ListPlans(ctx, store, logger, 0)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("no plan runs found - please run generatePlan first")
	}

	var run *db.PlanRun
	if runID == "" {
		run = &runs[0]
	} else {
		for i := range runs {
			if runs[i].ID == runID {
				run = &runs[i]
				break
			}
		}
	}
	if run == nil {
		return nil, fmt.Errorf("plan run %s not found", runID)
	}

	logger.Debug("Fetching plan lines", zap.String("run_id", run.ID))
	lines, err := store.GetPlanLines(ctx, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch plan lines: %w", err)
	}

	plannerLines := make([]planner.PlanLine, len(lines))
	codes := make(map[string]string, len(lines))
	for i, line := range lines {
		plannerLines[i] = fromDBPlanLine(line)
		codes[line.ItemID] = line.ProductCode
	}

	return &PlanDetail{
		Run:          *run,
		Lines:        lines,
		PlanLines:    plannerLines,
		ProductCodes: codes,
		TotalsBySize: planner.Totals(plannerLines, planner.PlannedSizes),
	}, nil
}
