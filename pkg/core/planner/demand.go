package planner

import "github.com/shopspring/decimal"

const (
	// ToolingUnitDailyCapacity is the daily output of a single mold/tool
	ToolingUnitDailyCapacity = 8

	unboundedCeiling = 999999
)

// UnboundedCeiling returns the capacity ceiling of items without tooling data
func UnboundedCeiling() decimal.Decimal {
	return decimal.NewFromInt(unboundedCeiling)
}

// DemandSignal identifies the quantity an allocation pass fills against
type DemandSignal int

const (
	// SignalPrioritySales is the backlog of rank 3 items
	SignalPrioritySales DemandSignal = iota

	// SignalSalesToCover is the full open backlog
	SignalSalesToCover

	// SignalNeedMin is the shortfall against the replenishment minimum after backlog
	SignalNeedMin

	// SignalNeedMax is the shortfall against the replenishment maximum plus backlog
	SignalNeedMax
)

// AllocationPasses is the order in which the primary pool is filled
var AllocationPasses = []DemandSignal{
	SignalPrioritySales,
	SignalSalesToCover,
	SignalNeedMin,
	SignalNeedMax,
}

func (s DemandSignal) String() string {
	switch s {
	case SignalPrioritySales:
		return "PrioritySales"
	case SignalSalesToCover:
		return "SalesToCover"
	case SignalNeedMin:
		return "NeedMin"
	case SignalNeedMax:
		return "NeedMax"
	default:
		return "Unknown"
	}
}

// Applies reports whether an item takes part in the pass for this signal
func (s DemandSignal) Applies(p *PlanItem) bool {
	switch s {
	case SignalNeedMin:
		return p.HasReplenishment()
	case SignalNeedMax:
		return p.MaxReplenish.IsPositive()
	default:
		return true
	}
}

// Signal returns the item's quantity for the given demand signal
func (p *PlanItem) Signal(s DemandSignal) decimal.Decimal {
	switch s {
	case SignalPrioritySales:
		return p.PrioritySalesQty
	case SignalSalesToCover:
		return p.SalesToCoverQty
	case SignalNeedMin:
		return p.NeedMin()
	case SignalNeedMax:
		return p.NeedMax()
	default:
		return decimal.Zero
	}
}

// NeedMin is max(0, min - (stock + inProcess - backlog))
func (p *PlanItem) NeedMin() decimal.Decimal {
	return clampZero(p.MinReplenish.Sub(p.projectedStock()))
}

// NeedMax is max(0, max + backlog - stock - inProcess)
func (p *PlanItem) NeedMax() decimal.Decimal {
	return clampZero(p.MaxReplenish.Sub(p.projectedStock()))
}

// NeedExcess is the distance to the replenishment maximum counting today's primary
// production instead of in-process quantity. Items without a maximum have none.
func (p *PlanItem) NeedExcess() decimal.Decimal {
	if !p.MaxReplenish.IsPositive() {
		return decimal.Zero
	}
	return clampZero(p.MaxReplenish.Add(p.SalesBacklogQty).Sub(p.StockQty).Sub(p.ProducedQty))
}

// projectedStock is what remains on hand and in process once the backlog ships
func (p *PlanItem) projectedStock() decimal.Decimal {
	return p.StockQty.Add(p.InProcessQty).Sub(p.SalesBacklogQty)
}

// BuildDemandSignal derives the priority, requirement and capacity ceiling of an item.
// index is the item's catalog position and breaks every sort tie.
func BuildDemandSignal(item Item, index int) *PlanItem {
	p := &PlanItem{
		Item:        item,
		ProducedQty: decimal.Zero,
		index:       index,
	}

	stock := item.StockQty
	sales := item.SalesBacklogQty

	switch {
	case sales.GreaterThan(stock):
		p.PriorityRank = 3
	case sales.Equal(stock) && sales.IsPositive():
		p.PriorityRank = 2
	case sales.IsPositive():
		p.PriorityRank = 1
	default:
		p.PriorityRank = 0
	}

	p.SalesToCoverQty = clampZero(sales)
	p.PrioritySalesQty = decimal.Zero
	if p.PriorityRank == 3 {
		p.PrioritySalesQty = sales
	}

	// Enough on hand and in process to hold the minimum after serving the backlog
	switch {
	case item.MinReplenish.IsPositive() && p.projectedStock().GreaterThanOrEqual(item.MinReplenish):
		p.RequiredQty = decimal.Zero
	case item.MaxReplenish.IsPositive():
		p.RequiredQty = p.NeedMax()
	default:
		p.RequiredQty = clampZero(sales.Sub(stock).Sub(item.InProcessQty))
	}

	p.CapacityCeiling = UnboundedCeiling()
	if item.ToolingUnits.IsPositive() {
		p.CapacityCeiling = item.ToolingUnits.Mul(decimal.NewFromInt(ToolingUnitDailyCapacity))
	}
	p.RemainingCeiling = p.CapacityCeiling

	return p
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, d)
}
