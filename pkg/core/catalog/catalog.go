package catalog

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jakechorley/daily-production-plan/pkg/core/planner"
	"github.com/jakechorley/daily-production-plan/pkg/db"
)

// ConfirmedOrderStates are the sales order states whose undelivered lines count as backlog
var ConfirmedOrderStates = []string{"sale", "done"}

// OpenProductionStates are the manufacturing order states counted as in process
var OpenProductionStates = []string{"confirmed", "progress", "planned"}

// Snapshot is the raw store data a planning run is built from
type Snapshot struct {
	Products         []db.Product
	SaleLines        []db.SaleLine
	ProductionOrders []db.ProductionOrder
	Orderpoints      []db.Orderpoint
	Tooling          []db.Tooling
}

// IsOpenProductionOrder reports whether an order counts as in process: an open state
// and, when startsBy is set, planned to start no later than the end of that day.
// A zero startsBy counts every open order.
func IsOpenProductionOrder(order db.ProductionOrder, startsBy time.Time) bool {
	if !slices.Contains(OpenProductionStates, order.State) {
		return false
	}
	if startsBy.IsZero() || order.PlannedStart.IsZero() {
		return true
	}
	endOfDay := time.Date(startsBy.Year(), startsBy.Month(), startsBy.Day(), 23, 59, 59, 999999999, startsBy.Location())
	return !order.PlannedStart.After(endOfDay)
}

// SalesBacklog returns the undelivered quantity of confirmed orders per product,
// clamped at zero per product
func SalesBacklog(lines []db.SaleLine) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, line := range lines {
		if !slices.Contains(ConfirmedOrderStates, line.OrderState) {
			continue
		}
		totals[line.ProductID] = totals[line.ProductID].Add(line.OrderedQty).Sub(line.DeliveredQty)
	}
	for productID, qty := range totals {
		totals[productID] = decimal.Max(decimal.Zero, qty)
	}
	return totals
}

// InProcessBySuffix sums open production order quantities per code suffix, by stage
func InProcessBySuffix(orders []db.ProductionOrder) map[Stage]map[string]decimal.Decimal {
	byStage := map[Stage]map[string]decimal.Decimal{
		StageFinished:   {},
		StageFirstPass:  {},
		StageSecondPass: {},
		StageThirdPass:  {},
	}
	for _, order := range orders {
		stage, code := ClassifyCode(strings.TrimSpace(order.ProductCode))
		if stage == StageIgnore {
			continue
		}
		suffix := ExtractSuffix(code)
		byStage[stage][suffix] = byStage[stage][suffix].Add(order.Qty)
	}
	return byStage
}

// BuildItems turns a store snapshot into planner items, one per product, in product order.
// Production orders are expected to be filtered to the plan date already.
func BuildItems(s Snapshot) []planner.Item {
	backlog := SalesBacklog(s.SaleLines)
	inProcess := InProcessBySuffix(s.ProductionOrders)

	orderpoints := make(map[string]db.Orderpoint)
	for _, op := range s.Orderpoints {
		// First rule wins when a product has several
		if _, exists := orderpoints[op.ProductID]; !exists {
			orderpoints[op.ProductID] = op
		}
	}

	molds := make(map[string]decimal.Decimal)
	for _, tool := range s.Tooling {
		molds[tool.ProductID] = tool.MoldCount
	}

	items := make([]planner.Item, 0, len(s.Products))
	for _, product := range s.Products {
		suffix := ExtractSuffix(strings.TrimSpace(product.DefaultCode))

		processing := decimal.Zero
		for _, stage := range []Stage{StageFinished, StageFirstPass, StageSecondPass, StageThirdPass} {
			processing = processing.Add(inProcess[stage][suffix])
		}

		op := orderpoints[product.ID]

		items = append(items, planner.Item{
			ID:              product.ID,
			Size:            SizeClassForCategory(product.Category),
			StockQty:        nonNegative(product.QtyAvailable),
			SalesBacklogQty: nonNegative(backlog[product.ID]),
			InProcessQty:    nonNegative(processing),
			MinReplenish:    nonNegative(op.MinQty),
			MaxReplenish:    nonNegative(op.MaxQty),
			ToolingUnits:    nonNegative(molds[product.ID]),
		})
	}

	return items
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, d)
}
