package planner

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Check names reported by ValidatePlan
const (
	CheckOverAllocation   = "OverAllocation"
	CheckPrimaryCapacity  = "PrimaryCapacity"
	CheckOverflowCapacity = "OverflowCapacity"
	CheckNegativeQuantity = "NegativeQuantity"
)

// PlanValidationError describes a plan that breaks an allocation invariant
type PlanValidationError struct {
	ItemID      string
	Size        SizeClass
	Check       string
	Description string
}

// ValidatePlan re-checks a finished plan independently of the allocators:
//   - no primary line produces more than its requirement
//   - primary production per size stays within the primary pool
//   - excess production per size stays within the overflow pool
//   - no line carries a negative quantity
//
// Returns an empty slice for a sound plan.
func ValidatePlan(result *PlanResult) []PlanValidationError {
	errs := make([]PlanValidationError, 0)
	if result == nil {
		return errs
	}

	primaryBySize := make(map[SizeClass]decimal.Decimal)
	excessBySize := make(map[SizeClass]decimal.Decimal)

	for _, line := range result.Lines {
		if line.ProducedQty.IsNegative() || line.RequiredQty.IsNegative() {
			errs = append(errs, PlanValidationError{
				ItemID:      line.ItemID,
				Size:        line.Size,
				Check:       CheckNegativeQuantity,
				Description: fmt.Sprintf("produced %s, required %s", line.ProducedQty, line.RequiredQty),
			})
		}

		if line.IsExcess {
			excessBySize[line.Size] = excessBySize[line.Size].Add(line.ProducedQty)
			continue
		}

		primaryBySize[line.Size] = primaryBySize[line.Size].Add(line.ProducedQty)
		if line.ProducedQty.GreaterThan(line.RequiredQty) {
			errs = append(errs, PlanValidationError{
				ItemID:      line.ItemID,
				Size:        line.Size,
				Check:       CheckOverAllocation,
				Description: fmt.Sprintf("produced %s exceeds required %s", line.ProducedQty, line.RequiredQty),
			})
		}
	}

	for _, size := range PlannedSizes {
		pool, ok := result.Pools[size]
		if !ok {
			continue
		}
		if used := primaryBySize[size]; used.GreaterThan(pool.PrimaryCapacity) {
			errs = append(errs, PlanValidationError{
				Size:        size,
				Check:       CheckPrimaryCapacity,
				Description: fmt.Sprintf("primary production %s exceeds capacity %s", used, pool.PrimaryCapacity),
			})
		}
		if used := excessBySize[size]; used.GreaterThan(pool.OverflowCapacity) {
			errs = append(errs, PlanValidationError{
				Size:        size,
				Check:       CheckOverflowCapacity,
				Description: fmt.Sprintf("excess production %s exceeds overflow capacity %s", used, pool.OverflowCapacity),
			})
		}
	}

	return errs
}
