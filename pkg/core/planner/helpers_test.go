package planner

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	want := decimal.RequireFromString(expected)
	if !want.Equal(actual) {
		assert.Fail(t, "decimal mismatch: expected "+expected+", got "+actual.String(), msgAndArgs...)
	}
}

// testItem is a compact integer description of a catalog item for tests
type testItem struct {
	id                                       string
	size                                     SizeClass
	stock, backlog, inProcess, min, max, mol int64
}

func (s testItem) item() Item {
	size := s.size
	if size == "" {
		size = SizeSmall
	}
	return Item{
		ID:              s.id,
		Size:            size,
		StockQty:        dec(s.stock),
		SalesBacklogQty: dec(s.backlog),
		InProcessQty:    dec(s.inProcess),
		MinReplenish:    dec(s.min),
		MaxReplenish:    dec(s.max),
		ToolingUnits:    dec(s.mol),
	}
}

func buildItems(fixtures ...testItem) []*PlanItem {
	items := make([]*PlanItem, 0, len(fixtures))
	for i, s := range fixtures {
		items = append(items, BuildDemandSignal(s.item(), i))
	}
	return items
}

func catalog(fixtures ...testItem) []Item {
	items := make([]Item, 0, len(fixtures))
	for _, s := range fixtures {
		items = append(items, s.item())
	}
	return items
}

func defaultPolicy() Policy {
	return Policy{
		Shifts: map[SizeClass]ShiftPolicy{
			SizeSmall: {Shifts: 2, HoursPerShift: 8, MaxToolingChanges: 5},
			SizeLarge: {Shifts: 2, HoursPerShift: 8, MaxToolingChanges: 4},
		},
		Mode:       ModeSuggested,
		SizeFilter: FilterAll,
	}
}

func findItem(items []*PlanItem, id string) *PlanItem {
	for _, item := range items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

func linesFor(lines []PlanLine, id string, excess bool) []PlanLine {
	found := make([]PlanLine, 0)
	for _, line := range lines {
		if line.ItemID == id && line.IsExcess == excess {
			found = append(found, line)
		}
	}
	return found
}
