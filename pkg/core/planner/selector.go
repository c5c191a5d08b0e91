package planner

import (
	"cmp"
	"slices"
)

// baseCandidateCount is the number of items a size class runs before counting tooling changes
var baseCandidateCount = map[SizeClass]int{
	SizeSmall: 22,
	SizeLarge: 6,
}

// MaxCandidates returns how many items the suggested plan may schedule for a size class
func MaxCandidates(size SizeClass, maxToolingChanges int) int {
	return baseCandidateCount[size] + maxToolingChanges
}

// SelectCandidates keeps the items with a requirement, ranked by priority, requirement
// and backlog, and truncates the list to maxCount. The input slice is not reordered.
func SelectCandidates(items []*PlanItem, maxCount int) []*PlanItem {
	if maxCount <= 0 {
		return []*PlanItem{}
	}

	ordered := make([]*PlanItem, 0, len(items))
	for _, item := range items {
		if item.RequiredQty.IsPositive() {
			ordered = append(ordered, item)
		}
	}

	slices.SortStableFunc(ordered, func(a, b *PlanItem) int {
		if c := cmp.Compare(b.PriorityRank, a.PriorityRank); c != 0 {
			return c
		}
		if c := b.RequiredQty.Cmp(a.RequiredQty); c != 0 {
			return c
		}
		if c := b.SalesToCoverQty.Cmp(a.SalesToCoverQty); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	})

	if len(ordered) > maxCount {
		ordered = ordered[:maxCount]
	}
	return ordered
}
