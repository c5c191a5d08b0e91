package planner

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// AllocateCapacity fills the primary pool from the items in pass order:
// priority backlog, ordinary backlog, minimum stock, then maximum stock.
// Items and pool are updated in place.
func AllocateCapacity(items []*PlanItem, pool *CapacityPool) {
	for _, signal := range AllocationPasses {
		fillPass(items, pool, signal)
	}
}

// fillPass is a single greedy fill of the pool against one demand signal.
// No item ever receives more than its remaining requirement or tooling ceiling.
func fillPass(items []*PlanItem, pool *CapacityPool, signal DemandSignal) {
	ordered := make([]*PlanItem, 0, len(items))
	for _, item := range items {
		if signal.Applies(item) {
			ordered = append(ordered, item)
		}
	}

	slices.SortStableFunc(ordered, func(a, b *PlanItem) int {
		if c := cmp.Compare(b.PriorityRank, a.PriorityRank); c != 0 {
			return c
		}
		if c := b.Signal(signal).Cmp(a.Signal(signal)); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	})

	for _, item := range ordered {
		if !pool.Remaining.IsPositive() {
			return
		}

		remainingRequired := item.RemainingRequired()
		if !remainingRequired.IsPositive() {
			continue
		}

		need := decimal.Min(item.Signal(signal), remainingRequired)
		if !need.IsPositive() {
			continue
		}

		alloc := decimal.Min(need, pool.Remaining, item.RemainingCeiling)
		if !alloc.IsPositive() {
			continue
		}

		item.ProducedQty = item.ProducedQty.Add(alloc)
		item.RemainingCeiling = item.RemainingCeiling.Sub(alloc)
		pool.draw(alloc)
	}
}
