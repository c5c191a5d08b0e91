package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoItemScenario is two small items on 2 shifts of 8 hours (176 units)
func twoItemScenario() ([]*PlanItem, *CapacityPool) {
	items := buildItems(
		testItem{id: "A", stock: 10, backlog: 15},
		testItem{id: "B", stock: 20, backlog: 5, min: 50, max: 80},
	)
	return items, NewCapacityPool(SizeSmall, dec(176))
}

func TestFillPass_StepByStep(t *testing.T) {
	items, pool := twoItemScenario()
	a, b := items[0], items[1]

	assert.Equal(t, 3, a.PriorityRank)
	assertDecimal(t, "5", a.RequiredQty)
	assertDecimal(t, "15", a.PrioritySalesQty)
	assert.Equal(t, 1, b.PriorityRank)
	assertDecimal(t, "65", b.RequiredQty)

	fillPass(items, pool, SignalPrioritySales)
	assertDecimal(t, "5", a.ProducedQty)
	assertDecimal(t, "0", b.ProducedQty)
	assertDecimal(t, "171", pool.Remaining)

	fillPass(items, pool, SignalSalesToCover)
	assertDecimal(t, "5", a.ProducedQty)
	assertDecimal(t, "5", b.ProducedQty)
	assertDecimal(t, "166", pool.Remaining)

	fillPass(items, pool, SignalNeedMin)
	assertDecimal(t, "40", b.ProducedQty)
	assertDecimal(t, "131", pool.Remaining)

	fillPass(items, pool, SignalNeedMax)
	assertDecimal(t, "65", b.ProducedQty)
	assertDecimal(t, "106", pool.Remaining)
}

func TestAllocateCapacity_FullScenario(t *testing.T) {
	items, pool := twoItemScenario()

	AllocateCapacity(items, pool)

	assertDecimal(t, "5", items[0].ProducedQty)
	assertDecimal(t, "65", items[1].ProducedQty)
	assertDecimal(t, "106", pool.Remaining)
	assertDecimal(t, "70", pool.Used())
}

func TestAllocateCapacity_PoolShortageServesUrgentFirst(t *testing.T) {
	items := buildItems(
		testItem{id: "low", stock: 50, backlog: 10, min: 100, max: 200},
		testItem{id: "urgent", stock: 0, backlog: 30},
	)
	pool := NewCapacityPool(SizeSmall, dec(40))

	AllocateCapacity(items, pool)

	urgent := findItem(items, "urgent")
	low := findItem(items, "low")
	assertDecimal(t, "30", urgent.ProducedQty)
	assertDecimal(t, "10", low.ProducedQty)
	assertDecimal(t, "0", pool.Remaining)
}

func TestAllocateCapacity_RespectsToolingCeiling(t *testing.T) {
	items := buildItems(
		testItem{id: "tooled", stock: 0, backlog: 100, mol: 2},
	)
	pool := NewCapacityPool(SizeSmall, dec(176))

	AllocateCapacity(items, pool)

	assertDecimal(t, "16", items[0].ProducedQty)
	assertDecimal(t, "0", items[0].RemainingCeiling)
	assertDecimal(t, "160", pool.Remaining)
}

func TestAllocateCapacity_ZeroCapacity(t *testing.T) {
	items := buildItems(
		testItem{id: "A", stock: 10, backlog: 15},
		testItem{id: "B", stock: 20, backlog: 5, min: 50, max: 80},
	)
	pool := NewCapacityPool(SizeSmall, dec(0))

	AllocateCapacity(items, pool)

	for _, item := range items {
		assertDecimal(t, "0", item.ProducedQty, item.ID)
	}
	assertDecimal(t, "5", items[0].RequiredQty)
	assertDecimal(t, "65", items[1].RequiredQty)
}

func TestAllocateCapacity_NeverExceedsRequired(t *testing.T) {
	items := buildItems(
		testItem{id: "a", stock: 0, backlog: 50, inProcess: 45},
		testItem{id: "b", stock: 5, backlog: 5, max: 10},
		testItem{id: "c", stock: 0, backlog: 0, min: 30, max: 20},
		testItem{id: "d", stock: 100, backlog: 120, inProcess: 10},
	)
	pool := NewCapacityPool(SizeSmall, dec(10000))

	AllocateCapacity(items, pool)

	for _, item := range items {
		assert.True(t, item.ProducedQty.LessThanOrEqual(item.RequiredQty),
			"%s produced %s > required %s", item.ID, item.ProducedQty, item.RequiredQty)
		assert.True(t, item.ProducedQty.Equal(item.RequiredQty),
			"%s should be fully served with ample capacity", item.ID)
	}
}

func TestFillPass_TiesKeepInputOrder(t *testing.T) {
	items := buildItems(
		testItem{id: "first", stock: 0, backlog: 10},
		testItem{id: "second", stock: 0, backlog: 10},
		testItem{id: "third", stock: 0, backlog: 10},
	)
	pool := NewCapacityPool(SizeSmall, dec(15))

	fillPass(items, pool, SignalPrioritySales)

	assertDecimal(t, "10", items[0].ProducedQty)
	assertDecimal(t, "5", items[1].ProducedQty)
	assertDecimal(t, "0", items[2].ProducedQty)
}

func TestFillPass_SkipsItemsOutsideSignal(t *testing.T) {
	items := buildItems(
		testItem{id: "backlogOnly", stock: 0, backlog: 10},
	)
	pool := NewCapacityPool(SizeSmall, dec(100))

	fillPass(items, pool, SignalNeedMax)

	require.Len(t, items, 1)
	assertDecimal(t, "0", items[0].ProducedQty)
	assertDecimal(t, "100", pool.Remaining)
}
