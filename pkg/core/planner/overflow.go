package planner

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// overflowPercent is the share of the primary capacity available as overflow
const overflowPercent = 15

// OverflowRatio returns overflowPercent as a fraction
func OverflowRatio() decimal.Decimal {
	return decimal.New(overflowPercent, -2)
}

// NewOverflowPool creates the overflow pool for a size class from its primary capacity
func NewOverflowPool(size SizeClass, primaryCapacity decimal.Decimal) *CapacityPool {
	return NewCapacityPool(size, primaryCapacity.Mul(OverflowRatio()))
}

type overflowCandidate struct {
	item       *PlanItem
	needExcess decimal.Decimal
	extra      decimal.Decimal
}

// AllocateOverflow pushes replenished items towards their maximum using the overflow pool.
// Each allocation becomes its own excess line; the item's ProducedQty is left untouched,
// so excess output may exceed RequiredQty up to the replenishment maximum.
// Candidates are served by largest need but lines keep the input order.
func AllocateOverflow(items []*PlanItem, pool *CapacityPool) []PlanLine {
	candidates := make([]*overflowCandidate, 0)
	for _, item := range items {
		if !item.HasReplenishment() {
			continue
		}
		need := item.NeedExcess()
		if !need.IsPositive() {
			continue
		}
		candidates = append(candidates, &overflowCandidate{item: item, needExcess: need})
	}

	ordered := slices.Clone(candidates)
	slices.SortStableFunc(ordered, func(a, b *overflowCandidate) int {
		if c := b.needExcess.Cmp(a.needExcess); c != 0 {
			return c
		}
		return cmp.Compare(a.item.index, b.item.index)
	})

	for _, c := range ordered {
		if !pool.Remaining.IsPositive() {
			break
		}

		alloc := decimal.Min(c.needExcess, pool.Remaining, c.item.RemainingCeiling)
		if !alloc.IsPositive() {
			continue
		}

		pool.draw(alloc)
		c.item.RemainingCeiling = c.item.RemainingCeiling.Sub(alloc)
		c.extra = alloc
	}

	lines := make([]PlanLine, 0)
	for _, c := range candidates {
		if c.extra.IsPositive() {
			lines = append(lines, newPlanLine(c.item, c.extra, true))
		}
	}
	return lines
}
