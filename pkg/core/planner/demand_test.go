package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDemandSignal_PriorityRank(t *testing.T) {
	tests := []struct {
		name           string
		stock, backlog int64
		expected       int
	}{
		{"backlog above stock", 10, 15, 3},
		{"backlog above zero stock", 0, 1, 3},
		{"backlog equals stock", 7, 7, 2},
		{"backlog below stock", 20, 5, 1},
		{"no backlog", 20, 0, 0},
		{"no backlog no stock", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := BuildDemandSignal(testItem{id: "x", stock: tt.stock, backlog: tt.backlog}.item(), 0)
			assert.Equal(t, tt.expected, item.PriorityRank)
		})
	}
}

func TestBuildDemandSignal_PrioritySalesOnlyForRankThree(t *testing.T) {
	urgent := BuildDemandSignal(testItem{id: "a", stock: 10, backlog: 15}.item(), 0)
	assertDecimal(t, "15", urgent.PrioritySalesQty)
	assertDecimal(t, "15", urgent.SalesToCoverQty)

	covered := BuildDemandSignal(testItem{id: "b", stock: 20, backlog: 5}.item(), 1)
	assertDecimal(t, "0", covered.PrioritySalesQty)
	assertDecimal(t, "5", covered.SalesToCoverQty)
}

func TestBuildDemandSignal_RequiredQty(t *testing.T) {
	tests := []struct {
		name     string
		fixture  testItem
		expected string
	}{
		{
			name:     "backlog only",
			fixture:  testItem{stock: 10, backlog: 15},
			expected: "5",
		},
		{
			name:     "backlog covered by in-process",
			fixture:  testItem{stock: 10, backlog: 15, inProcess: 8},
			expected: "0",
		},
		{
			name:     "min satisfied after backlog",
			fixture:  testItem{stock: 60, backlog: 5, min: 50, max: 80},
			expected: "0",
		},
		{
			name:     "min satisfied exactly",
			fixture:  testItem{stock: 45, backlog: 5, inProcess: 10, min: 50, max: 80},
			expected: "0",
		},
		{
			name:     "below min fills to max plus backlog",
			fixture:  testItem{stock: 20, backlog: 5, min: 50, max: 80},
			expected: "65",
		},
		{
			name:     "max only",
			fixture:  testItem{stock: 20, backlog: 5, inProcess: 10, max: 40},
			expected: "15",
		},
		{
			name:     "max already exceeded",
			fixture:  testItem{stock: 100, max: 40},
			expected: "0",
		},
		{
			name:     "min only below threshold falls back to backlog",
			fixture:  testItem{stock: 2, backlog: 10, min: 50},
			expected: "8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fixture.id = "x"
			item := BuildDemandSignal(tt.fixture.item(), 0)
			assertDecimal(t, tt.expected, item.RequiredQty)
		})
	}
}

func TestBuildDemandSignal_CapacityCeiling(t *testing.T) {
	withTooling := BuildDemandSignal(testItem{id: "a", mol: 3}.item(), 0)
	assertDecimal(t, "24", withTooling.CapacityCeiling)
	assertDecimal(t, "24", withTooling.RemainingCeiling)

	withoutTooling := BuildDemandSignal(testItem{id: "b"}.item(), 1)
	assertDecimal(t, "999999", withoutTooling.CapacityCeiling)
	assertDecimal(t, "999999", withoutTooling.RemainingCeiling)
	assertDecimal(t, "0", withoutTooling.ProducedQty)
}

func TestBuildDemandSignal_CeilingIsNotShared(t *testing.T) {
	first := BuildDemandSignal(testItem{id: "a"}.item(), 0)
	first.RemainingCeiling = first.RemainingCeiling.Sub(dec(500))

	second := BuildDemandSignal(testItem{id: "b"}.item(), 1)
	assertDecimal(t, "999999", second.RemainingCeiling)
	assertDecimal(t, "999999", UnboundedCeiling())
}

func TestDemandSignal_Applies(t *testing.T) {
	items := buildItems(
		testItem{id: "plain", backlog: 5},
		testItem{id: "min", min: 10},
		testItem{id: "max", max: 10},
	)

	assert.True(t, SignalPrioritySales.Applies(items[0]))
	assert.True(t, SignalSalesToCover.Applies(items[0]))
	assert.False(t, SignalNeedMin.Applies(items[0]))
	assert.False(t, SignalNeedMax.Applies(items[0]))

	assert.True(t, SignalNeedMin.Applies(items[1]))
	assert.False(t, SignalNeedMax.Applies(items[1]))

	assert.True(t, SignalNeedMin.Applies(items[2]))
	assert.True(t, SignalNeedMax.Applies(items[2]))
}

func TestDemandSignal_Accessor(t *testing.T) {
	item := BuildDemandSignal(testItem{id: "b", stock: 20, backlog: 5, min: 50, max: 80}.item(), 0)

	assertDecimal(t, "0", item.Signal(SignalPrioritySales))
	assertDecimal(t, "5", item.Signal(SignalSalesToCover))
	assertDecimal(t, "35", item.Signal(SignalNeedMin))
	assertDecimal(t, "65", item.Signal(SignalNeedMax))
	assert.Equal(t, "NeedMin", SignalNeedMin.String())
}

func TestNeedExcess(t *testing.T) {
	item := BuildDemandSignal(testItem{id: "b", stock: 20, backlog: 5, inProcess: 30, min: 50, max: 80}.item(), 0)
	// In-process is ignored: 80 + 5 - 20 - 0
	assertDecimal(t, "65", item.NeedExcess())

	item.ProducedQty = dec(40)
	assertDecimal(t, "25", item.NeedExcess())

	minOnly := BuildDemandSignal(testItem{id: "c", backlog: 20, min: 50}.item(), 1)
	assertDecimal(t, "0", minOnly.NeedExcess())
}
