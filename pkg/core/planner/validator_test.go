package planner

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func poolSummary(primary int64) PoolSummary {
	capacity := dec(primary)
	overflow := capacity.Mul(OverflowRatio())
	return PoolSummary{
		PrimaryCapacity:   capacity,
		PrimaryRemaining:  capacity,
		OverflowCapacity:  overflow,
		OverflowRemaining: overflow,
	}
}

func TestValidatePlan_Sound(t *testing.T) {
	result := &PlanResult{
		Lines: []PlanLine{
			{ItemID: "a", Size: SizeSmall, RequiredQty: dec(10), ProducedQty: dec(10)},
			{ItemID: "a", Size: SizeSmall, RequiredQty: dec(10), ProducedQty: dec(15), IsExcess: true},
		},
		Pools: map[SizeClass]PoolSummary{SizeSmall: poolSummary(100)},
	}

	assert.Empty(t, ValidatePlan(result))
}

func TestValidatePlan_OverAllocation(t *testing.T) {
	result := &PlanResult{
		Lines: []PlanLine{
			{ItemID: "a", Size: SizeSmall, RequiredQty: dec(10), ProducedQty: dec(11)},
		},
		Pools: map[SizeClass]PoolSummary{SizeSmall: poolSummary(100)},
	}

	errs := ValidatePlan(result)

	require.Len(t, errs, 1)
	assert.Equal(t, CheckOverAllocation, errs[0].Check)
	assert.Equal(t, "a", errs[0].ItemID)
}

func TestValidatePlan_CapacityExceeded(t *testing.T) {
	result := &PlanResult{
		Lines: []PlanLine{
			{ItemID: "a", Size: SizeLarge, RequiredQty: dec(40), ProducedQty: dec(30)},
			{ItemID: "b", Size: SizeLarge, RequiredQty: dec(40), ProducedQty: dec(30)},
			{ItemID: "b", Size: SizeLarge, RequiredQty: dec(40), ProducedQty: decimal.RequireFromString("7.3"), IsExcess: true},
		},
		Pools: map[SizeClass]PoolSummary{SizeLarge: poolSummary(48)},
	}

	errs := ValidatePlan(result)

	require.Len(t, errs, 2)
	assert.Equal(t, CheckPrimaryCapacity, errs[0].Check)
	assert.Equal(t, SizeLarge, errs[0].Size)
	assert.Equal(t, CheckOverflowCapacity, errs[1].Check)
}

func TestValidatePlan_NegativeQuantity(t *testing.T) {
	result := &PlanResult{
		Lines: []PlanLine{
			{ItemID: "a", Size: SizeSmall, RequiredQty: dec(0), ProducedQty: dec(-1)},
		},
		Pools: map[SizeClass]PoolSummary{SizeSmall: poolSummary(100)},
	}

	errs := ValidatePlan(result)

	require.Len(t, errs, 1)
	assert.Equal(t, CheckNegativeQuantity, errs[0].Check)
}

func TestValidatePlan_Nil(t *testing.T) {
	assert.Empty(t, ValidatePlan(nil))
}
