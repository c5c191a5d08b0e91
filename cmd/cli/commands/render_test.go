package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/daily-production-plan/pkg/core/planner"
)

func qty(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestFormatQty(t *testing.T) {
	tests := []struct {
		value    string
		expected string
	}{
		{"40", "40"},
		{"26.4", "26.40"},
		{"0", "0"},
		{"13.333", "13.33"},
		{"999999", "999999"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatQty(qty(tt.value)))
		})
	}
}

func TestPlanRows_DisplayOrderAndCodes(t *testing.T) {
	lines := []planner.PlanLine{
		{ItemID: "p1", Size: planner.SizeSmall, PriorityRank: 1, ProducedQty: qty("40")},
		{ItemID: "p2", Size: planner.SizeLarge, PriorityRank: 3, ProducedQty: qty("5")},
		{ItemID: "p1", Size: planner.SizeSmall, PriorityRank: 1, ProducedQty: qty("26.4"), IsExcess: true},
		{ItemID: "p4", Size: planner.SizeSmall, PriorityRank: 1, ProducedQty: qty("60")},
	}
	codes := map[string]string{"p1": "AUTO-CR-100", "p2": "AUTO-CR-200"}

	rows := planRows(lines, codes)

	require.Len(t, rows, 4)
	assert.Equal(t, "AUTO-CR-200", rows[0].Code)
	// Same rank: larger production first
	assert.Equal(t, "p4", rows[1].Code, "missing code falls back to the item id")
	assert.Equal(t, "AUTO-CR-100", rows[2].Code)
	assert.True(t, rows[3].IsExcess)
}

func TestWritePlanTable(t *testing.T) {
	rows := []planRow{
		{Code: "AUTO-CR-100", Size: "small", Priority: 1, Required: qty("40"), Produce: qty("40")},
		{Code: "AUTO-CR-100", Size: "small", Priority: 1, Required: qty("40"), Produce: qty("26.4"), IsExcess: true},
	}

	var buf bytes.Buffer
	writePlanTable(&buf, rows)

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Required")
	assert.Contains(t, lines[3], "AUTO-CR-100 (excess)")
	assert.Contains(t, lines[3], "26.40")
	assert.Contains(t, lines[3], colorYellow)
}

func TestWriteTotals(t *testing.T) {
	totals := map[planner.SizeClass]planner.SizeTotals{
		planner.SizeSmall: {Count: 2, ProducedQty: qty("66.4"), RequiredQty: qty("80")},
	}

	var buf bytes.Buffer
	writeTotals(&buf, totals)

	assert.Equal(t, "  small    2 lines  produce 66.40 of 80 required\n", buf.String())
}
