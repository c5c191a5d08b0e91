package catalogfile

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/daily-production-plan/pkg/db"
)

const snapshot = `
products:
  - id: p1
    code: AUTO-CR-100
    name: Crank 100
    category: Automotriz / MPequeñas
    qtyAvailable: 20
  - id: p2
    code: AUTO-CR-200
    category: Automotriz / MGrandes
    qtyAvailable: 2.5
saleLines:
  - productId: p1
    state: sale
    ordered: 12
    delivered: 2
  - productId: p1
    state: draft
    ordered: 99
productionOrders:
  - code: VI-CR-100
    state: confirmed
    qty: 4
    plannedStart: "2026-03-10"
  - code: CR-100
    state: planned
    qty: 6
    plannedStart: "2026-03-12"
  - code: CR-200
    state: done
    qty: 3
orderpoints:
  - productId: p1
    min: 50
    max: 80
tooling:
  - productId: p2
    molds: 3
`

func TestParse(t *testing.T) {
	store, err := Parse([]byte(snapshot))
	require.NoError(t, err)

	ctx := context.Background()

	products, err := store.GetProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "AUTO-CR-100", products[0].DefaultCode)
	assert.True(t, decimal.RequireFromString("2.5").Equal(products[1].QtyAvailable))

	lines, err := store.GetSaleLines(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "sale-1", lines[0].ID)

	orders, err := store.GetOpenProductionOrders(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "VI-CR-100", orders[0].ProductCode)
	assert.Equal(t, "CR-100", orders[1].ProductCode)

	orders, err = store.GetOpenProductionOrders(ctx, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "VI-CR-100", orders[0].ProductCode)

	tooling, err := store.GetTooling(ctx)
	require.NoError(t, err)
	require.Len(t, tooling, 1)
	assert.True(t, decimal.NewFromInt(3).Equal(tooling[0].MoldCount))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no products", "products: []"},
		{"missing product id", "products:\n  - code: X\n"},
		{"max below min", "products:\n  - id: p1\norderpoints:\n  - productId: p1\n    min: 10\n    max: 5\n"},
		{"bad planned start", "products:\n  - id: p1\nproductionOrders:\n  - code: X\n    state: planned\n    plannedStart: tomorrow\n"},
		{"duplicate product", "products:\n  - id: p1\n  - id: p1\n"},
		{"not yaml", "products: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			assert.Error(t, err)
		})
	}
}

func TestPlanRuns(t *testing.T) {
	store, err := Parse([]byte(snapshot))
	require.NoError(t, err)
	ctx := context.Background()

	older := &db.PlanRun{ID: "run-1", PlanDate: "2026-03-09", CreatedAt: time.Date(2026, 3, 9, 6, 0, 0, 0, time.UTC)}
	newer := &db.PlanRun{ID: "run-2", PlanDate: "2026-03-10", CreatedAt: time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)}

	require.NoError(t, store.InsertPlanRun(ctx, older, []db.PlanLine{{ID: "l1", ItemID: "p1"}}))
	require.NoError(t, store.InsertPlanRun(ctx, newer, []db.PlanLine{{ID: "l2", ItemID: "p1"}, {ID: "l3", ItemID: "p2"}}))
	assert.Error(t, store.InsertPlanRun(ctx, older, nil))

	runs, err := store.GetPlanRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)

	lines, err := store.GetPlanLines(ctx, "run-2")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "run-2", lines[0].RunID)
	assert.Equal(t, "p2", lines[1].ItemID)

	missing, err := store.GetPlanLines(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, missing)
}
