package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jakechorley/daily-production-plan/pkg/core/planner"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
)

// planRow is one printable plan line
type planRow struct {
	Code     string
	Size     string
	Priority int
	Stock    decimal.Decimal
	Sales    decimal.Decimal
	Process  decimal.Decimal
	Min      decimal.Decimal
	Max      decimal.Decimal
	Molds    decimal.Decimal
	Required decimal.Decimal
	Produce  decimal.Decimal
	IsExcess bool
}

// planRows converts planner lines into report rows in display order
func planRows(lines []planner.PlanLine, codes map[string]string) []planRow {
	ordered := planner.DisplayOrder(lines)
	rows := make([]planRow, len(ordered))
	for i, line := range ordered {
		code := codes[line.ItemID]
		if code == "" {
			code = line.ItemID
		}
		rows[i] = planRow{
			Code:     code,
			Size:     string(line.Size),
			Priority: line.PriorityRank,
			Stock:    line.StockQty,
			Sales:    line.SalesBacklogQty,
			Process:  line.InProcessQty,
			Min:      line.MinReplenish,
			Max:      line.MaxReplenish,
			Molds:    line.ToolingUnits,
			Required: line.RequiredQty,
			Produce:  line.ProducedQty,
			IsExcess: line.IsExcess,
		}
	}
	return rows
}

var planColumns = []string{"Code", "Size", "Prio", "Stock", "Sales", "Process", "Min", "Max", "Molds", "Required", "Produce"}

func (r planRow) cells() []string {
	code := r.Code
	if r.IsExcess {
		code += " (excess)"
	}
	return []string{
		code,
		r.Size,
		fmt.Sprintf("%d", r.Priority),
		formatQty(r.Stock),
		formatQty(r.Sales),
		formatQty(r.Process),
		formatQty(r.Min),
		formatQty(r.Max),
		formatQty(r.Molds),
		formatQty(r.Required),
		formatQty(r.Produce),
	}
}

// formatQty prints whole quantities without decimals and fractional ones with two
func formatQty(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return d.StringFixed(0)
	}
	return d.StringFixed(2)
}

// writePlanTable prints rows as an aligned table; excess rows are highlighted
func writePlanTable(w io.Writer, rows []planRow) {
	widths := make([]int, len(planColumns))
	for i, col := range planColumns {
		widths[i] = len(col)
	}
	cellRows := make([][]string, len(rows))
	for i, row := range rows {
		cellRows[i] = row.cells()
		for j, cell := range cellRows[i] {
			if len(cell) > widths[j] {
				widths[j] = len(cell)
			}
		}
	}

	fmt.Fprintln(w, colorBold+formatCells(planColumns, widths)+colorReset)

	separators := make([]string, len(widths))
	for i, width := range widths {
		separators[i] = strings.Repeat("-", width)
	}
	fmt.Fprintln(w, formatCells(separators, widths))

	for i, cells := range cellRows {
		if rows[i].IsExcess {
			fmt.Fprintln(w, colorYellow+formatCells(cells, widths)+colorReset)
			continue
		}
		fmt.Fprintln(w, formatCells(cells, widths))
	}
}

func formatCells(cells []string, widths []int) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		// Text columns left aligned, quantities right aligned
		if i < 2 {
			fmt.Fprintf(&b, "%-*s", widths[i], cell)
		} else {
			fmt.Fprintf(&b, "%*s", widths[i], cell)
		}
	}
	return b.String()
}

// writeTotals prints the per-size line counts and quantities
func writeTotals(w io.Writer, totals map[planner.SizeClass]planner.SizeTotals) {
	for _, size := range planner.PlannedSizes {
		t, ok := totals[size]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %-6s %3d lines  produce %s of %s required\n",
			size, t.Count, formatQty(t.ProducedQty), formatQty(t.RequiredQty))
	}
}
