package planner

// sizeRun holds the working state of one size class during a planning run
type sizeRun struct {
	size     SizeClass
	items    []*PlanItem
	selected []*PlanItem
	primary  *CapacityPool
	overflow *CapacityPool
}

// GeneratePlan computes today's production plan for the catalog under the policy.
// The run is all or nothing: on error no lines are returned.
// Identical items and policy always produce an identical result.
func GeneratePlan(items []Item, policy Policy) (*PlanResult, error) {
	// Validate the policy before touching any item
	if err := ValidatePolicy(policy); err != nil {
		return nil, err
	}

	// Split the catalog by size class, dropping unplanned and filtered sizes
	runs := make([]*sizeRun, 0, len(PlannedSizes))
	bySize := make(map[SizeClass]*sizeRun, len(PlannedSizes))
	for _, size := range PlannedSizes {
		if !policy.SizeFilter.Includes(size) {
			continue
		}
		run := &sizeRun{size: size, items: make([]*PlanItem, 0)}
		runs = append(runs, run)
		bySize[size] = run
	}

	itemCount := 0
	for i, item := range items {
		run, ok := bySize[item.Size]
		if !ok {
			continue
		}
		run.items = append(run.items, BuildDemandSignal(item, i))
		itemCount++
	}

	if itemCount == 0 {
		return nil, &EmptyCatalogError{SizeFilter: policy.SizeFilter}
	}

	// Select candidates and fill each primary pool
	for _, run := range runs {
		run.selected = run.items
		if policy.Mode == ModeSuggested {
			maxCount := MaxCandidates(run.size, policy.Shifts[run.size].MaxToolingChanges)
			run.selected = SelectCandidates(run.items, maxCount)
		}

		capacity := policy.PrimaryCapacity(run.size)
		run.primary = NewCapacityPool(run.size, capacity)
		run.overflow = NewOverflowPool(run.size, capacity)

		AllocateCapacity(run.selected, run.primary)
	}

	// Primary lines for every size, then overflow lines
	lines := make([]PlanLine, 0)
	for _, run := range runs {
		source := run.selected
		if policy.Mode == ModeGeneral {
			source = run.items
		}
		lines = append(lines, PrimaryLines(source, policy.Mode)...)
	}

	if policy.Mode == ModeSuggested {
		for _, run := range runs {
			lines = append(lines, AllocateOverflow(run.selected, run.overflow)...)
		}
	}

	result := &PlanResult{}

	if len(lines) == 0 {
		for _, run := range runs {
			lines = append(lines, FallbackLines(run.items)...)
		}
		result.DegenerateFallback = len(lines) > 0
	}

	sizes := make([]SizeClass, 0, len(runs))
	result.Pools = make(map[SizeClass]PoolSummary, len(runs))
	for _, run := range runs {
		sizes = append(sizes, run.size)
		result.Pools[run.size] = PoolSummary{
			PrimaryCapacity:   run.primary.Capacity,
			PrimaryRemaining:  run.primary.Remaining,
			OverflowCapacity:  run.overflow.Capacity,
			OverflowRemaining: run.overflow.Remaining,
		}
	}

	result.Lines = lines
	result.TotalsBySize = Totals(lines, sizes)

	return result, nil
}
