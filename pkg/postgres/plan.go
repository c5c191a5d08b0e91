package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/daily-production-plan/pkg/db"
)

// InsertPlanRun inserts a plan run and its lines in a single transaction
func (d *DB) InsertPlanRun(ctx context.Context, run *db.PlanRun, lines []db.PlanLine) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO plan_run (id, plan_date, mode, size_filter, degenerate_fallback, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, run.ID, run.PlanDate, run.Mode, run.SizeFilter, run.DegenerateFallback, run.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert plan run: %w", err)
	}

	for i, l := range lines {
		_, err := tx.Exec(ctx, `
			INSERT INTO plan_line (
				id, run_id, line_no, item_id, product_code, size_category, priority_rank,
				stock_qty, sales_qty, in_process_qty, min_qty, max_qty, molds_qty,
				required_qty, produce_qty, is_excess
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		`, l.ID, run.ID, i, l.ItemID, l.ProductCode, l.SizeCategory, l.PriorityRank,
			l.StockQty, l.SalesQty, l.InProcessQty, l.MinQty, l.MaxQty, l.MoldsQty,
			l.RequiredQty, l.ProduceQty, l.IsExcess)
		if err != nil {
			return fmt.Errorf("failed to insert plan line for %s: %w", l.ItemID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetPlanRuns retrieves all plan runs, most recent first
func (d *DB) GetPlanRuns(ctx context.Context) ([]db.PlanRun, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, plan_date, mode, size_filter, degenerate_fallback, created_at
		FROM plan_run
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query plan runs: %w", err)
	}
	defer rows.Close()

	var runs []db.PlanRun
	for rows.Next() {
		var r db.PlanRun
		var planDate time.Time
		if err := rows.Scan(&r.ID, &planDate, &r.Mode, &r.SizeFilter, &r.DegenerateFallback, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan plan run: %w", err)
		}
		r.PlanDate = planDate.Format("2006-01-02")
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plan runs: %w", err)
	}

	return runs, nil
}

// GetPlanLines retrieves the lines of a plan run in the order they were stored
func (d *DB) GetPlanLines(ctx context.Context, runID string) ([]db.PlanLine, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, item_id, product_code, size_category, priority_rank,
			stock_qty, sales_qty, in_process_qty, min_qty, max_qty, molds_qty,
			required_qty, produce_qty, is_excess
		FROM plan_line
		WHERE run_id = $1
		ORDER BY line_no
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query plan lines: %w", err)
	}
	defer rows.Close()

	var lines []db.PlanLine
	for rows.Next() {
		var l db.PlanLine
		if err := rows.Scan(&l.ID, &l.RunID, &l.ItemID, &l.ProductCode, &l.SizeCategory, &l.PriorityRank,
			&l.StockQty, &l.SalesQty, &l.InProcessQty, &l.MinQty, &l.MaxQty, &l.MoldsQty,
			&l.RequiredQty, &l.ProduceQty, &l.IsExcess); err != nil {
			return nil, fmt.Errorf("failed to scan plan line: %w", err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plan lines: %w", err)
	}

	return lines, nil
}
