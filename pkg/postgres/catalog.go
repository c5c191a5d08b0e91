package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/daily-production-plan/pkg/core/catalog"
	"github.com/jakechorley/daily-production-plan/pkg/db"
)

// GetProducts retrieves all product records
func (d *DB) GetProducts(ctx context.Context) ([]db.Product, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, default_code, name, category, qty_available
		FROM product
		ORDER BY default_code, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []db.Product
	for rows.Next() {
		var p db.Product
		if err := rows.Scan(&p.ID, &p.DefaultCode, &p.Name, &p.Category, &p.QtyAvailable); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetSaleLines retrieves sales order lines of confirmed orders
func (d *DB) GetSaleLines(ctx context.Context) ([]db.SaleLine, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, product_id, order_state, ordered_qty, delivered_qty
		FROM sale_order_line
		WHERE order_state = ANY($1)
	`, catalog.ConfirmedOrderStates)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale lines: %w", err)
	}
	defer rows.Close()

	var lines []db.SaleLine
	for rows.Next() {
		var l db.SaleLine
		if err := rows.Scan(&l.ID, &l.ProductID, &l.OrderState, &l.OrderedQty, &l.DeliveredQty); err != nil {
			return nil, fmt.Errorf("failed to scan sale line: %w", err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale lines: %w", err)
	}

	return lines, nil
}

// GetOpenProductionOrders retrieves open production orders. When startsBy is set,
// orders planned to start after the end of that day are left out.
func (d *DB) GetOpenProductionOrders(ctx context.Context, startsBy time.Time) ([]db.ProductionOrder, error) {
	query := `
		SELECT id, product_code, state, qty, planned_start
		FROM production_order
		WHERE state = ANY($1)`
	args := []any{catalog.OpenProductionStates}
	if !startsBy.IsZero() {
		nextDay := time.Date(startsBy.Year(), startsBy.Month(), startsBy.Day(), 0, 0, 0, 0, startsBy.Location()).AddDate(0, 0, 1)
		query += `
		  AND (planned_start IS NULL OR planned_start < $2)`
		args = append(args, nextDay)
	}

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query production orders: %w", err)
	}
	defer rows.Close()

	var orders []db.ProductionOrder
	for rows.Next() {
		var o db.ProductionOrder
		var plannedStart *time.Time
		if err := rows.Scan(&o.ID, &o.ProductCode, &o.State, &o.Qty, &plannedStart); err != nil {
			return nil, fmt.Errorf("failed to scan production order: %w", err)
		}
		if plannedStart != nil {
			o.PlannedStart = *plannedStart
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating production orders: %w", err)
	}

	return orders, nil
}

// GetOrderpoints retrieves replenishment rules in creation order
func (d *DB) GetOrderpoints(ctx context.Context) ([]db.Orderpoint, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT product_id, min_qty, max_qty
		FROM orderpoint
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query orderpoints: %w", err)
	}
	defer rows.Close()

	var orderpoints []db.Orderpoint
	for rows.Next() {
		var op db.Orderpoint
		if err := rows.Scan(&op.ProductID, &op.MinQty, &op.MaxQty); err != nil {
			return nil, fmt.Errorf("failed to scan orderpoint: %w", err)
		}
		orderpoints = append(orderpoints, op)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orderpoints: %w", err)
	}

	return orderpoints, nil
}

// GetTooling retrieves mold counts per product
func (d *DB) GetTooling(ctx context.Context) ([]db.Tooling, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT product_id, mold_count
		FROM tooling
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tooling: %w", err)
	}
	defer rows.Close()

	var tooling []db.Tooling
	for rows.Next() {
		var t db.Tooling
		if err := rows.Scan(&t.ProductID, &t.MoldCount); err != nil {
			return nil, fmt.Errorf("failed to scan tooling: %w", err)
		}
		tooling = append(tooling, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tooling: %w", err)
	}

	return tooling, nil
}
