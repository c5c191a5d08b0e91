package planner

import "github.com/shopspring/decimal"

// SizeClass identifies the production line family an item is made on
type SizeClass string

const (
	SizeSmall SizeClass = "small"
	SizeLarge SizeClass = "large"
	SizeOther SizeClass = "other"
)

// PlannedSizes lists the size classes that take part in planning, in output order
var PlannedSizes = []SizeClass{SizeSmall, SizeLarge}

// PlanningMode selects between the capped suggested plan and the full general view
type PlanningMode string

const (
	// ModeSuggested narrows each size class to its top candidates and runs the overflow pass
	ModeSuggested PlanningMode = "suggested"

	// ModeGeneral plans every item with a requirement and reports unmet demand
	ModeGeneral PlanningMode = "general"
)

// SizeFilter restricts a planning run to one or both size classes
type SizeFilter string

const (
	FilterAll   SizeFilter = "all"
	FilterSmall SizeFilter = "small"
	FilterLarge SizeFilter = "large"
)

// Includes reports whether items of the given size class pass the filter
func (f SizeFilter) Includes(size SizeClass) bool {
	if size != SizeSmall && size != SizeLarge {
		return false
	}
	switch f {
	case FilterAll:
		return true
	case FilterSmall:
		return size == SizeSmall
	case FilterLarge:
		return size == SizeLarge
	default:
		return false
	}
}

// ShiftPolicy holds the shift pattern and changeover limit for one size class
type ShiftPolicy struct {
	// Shifts worked today (1, 2 or 3)
	Shifts int

	// HoursPerShift is either 8 or 12
	HoursPerShift int

	// MaxToolingChanges widens the suggested candidate list beyond the base count
	MaxToolingChanges int
}

// UnitsPerShiftTable maps size class and shift length to units produced per shift
type UnitsPerShiftTable map[SizeClass]map[int]int64

// DefaultUnitsPerShift returns the standard shift output table
func DefaultUnitsPerShift() UnitsPerShiftTable {
	return UnitsPerShiftTable{
		SizeSmall: {8: 88, 12: 132},
		SizeLarge: {8: 24, 12: 36},
	}
}

// Lookup returns the units per shift for the size and shift length,
// falling back to the default table when no entry is configured
func (t UnitsPerShiftTable) Lookup(size SizeClass, hours int) int64 {
	if byHours, ok := t[size]; ok {
		if units, ok := byHours[hours]; ok {
			return units
		}
	}
	return DefaultUnitsPerShift()[size][hours]
}

// Policy is the immutable set of planning parameters for one run
type Policy struct {
	// Shifts holds the shift pattern per size class; both small and large are required
	Shifts map[SizeClass]ShiftPolicy

	// UnitsPerShift overrides the default shift output table (nil uses defaults)
	UnitsPerShift UnitsPerShiftTable

	Mode       PlanningMode
	SizeFilter SizeFilter
}

// PrimaryCapacity returns the primary pool size for a size class: units per shift × shifts
func (p Policy) PrimaryCapacity(size SizeClass) decimal.Decimal {
	shift := p.Shifts[size]
	units := p.UnitsPerShift.Lookup(size, shift.HoursPerShift)
	return decimal.NewFromInt(units * int64(shift.Shifts))
}

// Item is one catalog entry as supplied by the surrounding application.
// All quantities are expected to be non-negative.
type Item struct {
	ID              string
	Size            SizeClass
	StockQty        decimal.Decimal
	SalesBacklogQty decimal.Decimal
	InProcessQty    decimal.Decimal
	MinReplenish    decimal.Decimal
	MaxReplenish    decimal.Decimal
	ToolingUnits    decimal.Decimal
}

// HasReplenishment reports whether the item carries a min or max threshold
func (i Item) HasReplenishment() bool {
	return i.MinReplenish.IsPositive() || i.MaxReplenish.IsPositive()
}

// PlanItem is an Item enriched with its demand signals and allocation state.
// Derived fields are set by BuildDemandSignal; only the allocators mutate
// ProducedQty and RemainingCeiling afterwards.
type PlanItem struct {
	Item

	// PriorityRank is the urgency class: 3 backlog above stock, 2 backlog equals stock,
	// 1 backlog below stock, 0 no backlog
	PriorityRank int

	// RequiredQty caps every primary allocation for the item
	RequiredQty decimal.Decimal

	// PrioritySalesQty carries the backlog only for rank 3 items
	PrioritySalesQty decimal.Decimal

	SalesToCoverQty decimal.Decimal

	// CapacityCeiling is the tooling limit (tooling units × 8) or UnboundedCeiling
	CapacityCeiling  decimal.Decimal
	RemainingCeiling decimal.Decimal

	// ProducedQty is the primary allocation; overflow lines never add to it
	ProducedQty decimal.Decimal

	// index is the catalog position, used as the final tie-break
	index int
}

// RemainingRequired returns how much of the requirement is still unallocated
func (p *PlanItem) RemainingRequired() decimal.Decimal {
	return clampZero(p.RequiredQty.Sub(p.ProducedQty))
}

// CapacityPool is a per-size-class pool of production units drained by allocation passes
type CapacityPool struct {
	Size      SizeClass
	Capacity  decimal.Decimal
	Remaining decimal.Decimal
}

// NewCapacityPool creates a full pool of the given capacity
func NewCapacityPool(size SizeClass, capacity decimal.Decimal) *CapacityPool {
	capacity = clampZero(capacity)
	return &CapacityPool{
		Size:      size,
		Capacity:  capacity,
		Remaining: capacity,
	}
}

// Used returns how much of the pool has been drawn
func (p *CapacityPool) Used() decimal.Decimal {
	return p.Capacity.Sub(p.Remaining)
}

// draw removes qty from the pool
func (p *CapacityPool) draw(qty decimal.Decimal) {
	p.Remaining = p.Remaining.Sub(qty)
}

// PlanLine is one row of the production plan
type PlanLine struct {
	ItemID      string
	Size        SizeClass
	RequiredQty decimal.Decimal
	ProducedQty decimal.Decimal

	// IsExcess marks lines produced from the overflow pool
	IsExcess bool

	// Context carried for rendering; not used by the allocators
	PriorityRank    int
	StockQty        decimal.Decimal
	SalesBacklogQty decimal.Decimal
	InProcessQty    decimal.Decimal
	MinReplenish    decimal.Decimal
	MaxReplenish    decimal.Decimal
	ToolingUnits    decimal.Decimal
}

// SizeTotals aggregates the emitted lines of one size class
type SizeTotals struct {
	Count       int
	ProducedQty decimal.Decimal
	RequiredQty decimal.Decimal
}

// PoolSummary records how the primary and overflow pools of a size class were used
type PoolSummary struct {
	PrimaryCapacity   decimal.Decimal
	PrimaryRemaining  decimal.Decimal
	OverflowCapacity  decimal.Decimal
	OverflowRemaining decimal.Decimal
}

// PlanResult is the output of a planning run
type PlanResult struct {
	Lines        []PlanLine
	TotalsBySize map[SizeClass]SizeTotals
	Pools        map[SizeClass]PoolSummary

	// DegenerateFallback is set when no line qualified and the lines are the
	// zero-production listing of every item with any signal
	DegenerateFallback bool
}
