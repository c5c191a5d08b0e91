package planner

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

func newPlanLine(item *PlanItem, produced decimal.Decimal, isExcess bool) PlanLine {
	return PlanLine{
		ItemID:          item.ID,
		Size:            item.Size,
		RequiredQty:     item.RequiredQty,
		ProducedQty:     produced,
		IsExcess:        isExcess,
		PriorityRank:    item.PriorityRank,
		StockQty:        item.StockQty,
		SalesBacklogQty: item.SalesBacklogQty,
		InProcessQty:    item.InProcessQty,
		MinReplenish:    item.MinReplenish,
		MaxReplenish:    item.MaxReplenish,
		ToolingUnits:    item.ToolingUnits,
	}
}

// PrimaryLines emits the primary plan lines for a size class.
// Suggested mode lists what will be produced; general mode lists every item
// with a requirement, including those left unserved.
func PrimaryLines(items []*PlanItem, mode PlanningMode) []PlanLine {
	lines := make([]PlanLine, 0)
	for _, item := range items {
		if mode == ModeGeneral {
			if !item.RequiredQty.IsPositive() {
				continue
			}
		} else if !item.ProducedQty.IsPositive() {
			continue
		}
		lines = append(lines, newPlanLine(item, item.ProducedQty, false))
	}
	return lines
}

// hasAnySignal reports whether an item carries any planning data at all
func hasAnySignal(item *PlanItem) bool {
	return item.StockQty.IsPositive() ||
		item.SalesBacklogQty.IsPositive() ||
		item.PrioritySalesQty.IsPositive() ||
		item.InProcessQty.IsPositive() ||
		item.MinReplenish.IsPositive() ||
		item.MaxReplenish.IsPositive() ||
		item.ToolingUnits.IsPositive()
}

// FallbackLines lists every item with any signal at zero production.
// Only used when a run would otherwise return no lines.
func FallbackLines(items []*PlanItem) []PlanLine {
	lines := make([]PlanLine, 0)
	for _, item := range items {
		if !hasAnySignal(item) {
			continue
		}
		lines = append(lines, newPlanLine(item, decimal.Zero, false))
	}
	return lines
}

// Totals aggregates count, production and requirement per size class over all lines,
// excess lines included. Every size in sizes gets an entry even when it has no lines.
func Totals(lines []PlanLine, sizes []SizeClass) map[SizeClass]SizeTotals {
	totals := make(map[SizeClass]SizeTotals, len(sizes))
	for _, size := range sizes {
		totals[size] = SizeTotals{
			ProducedQty: decimal.Zero,
			RequiredQty: decimal.Zero,
		}
	}

	for _, line := range lines {
		t, ok := totals[line.Size]
		if !ok {
			continue
		}
		t.Count++
		t.ProducedQty = t.ProducedQty.Add(line.ProducedQty)
		t.RequiredQty = t.RequiredQty.Add(line.RequiredQty)
		totals[line.Size] = t
	}

	return totals
}

// DisplayOrder returns a copy of the lines in report order: primary lines first,
// then by priority rank and produced quantity, both descending.
func DisplayOrder(lines []PlanLine) []PlanLine {
	ordered := slices.Clone(lines)
	slices.SortStableFunc(ordered, func(a, b PlanLine) int {
		if a.IsExcess != b.IsExcess {
			if a.IsExcess {
				return 1
			}
			return -1
		}
		if c := cmp.Compare(b.PriorityRank, a.PriorityRank); c != 0 {
			return c
		}
		return b.ProducedQty.Cmp(a.ProducedQty)
	})
	return ordered
}
