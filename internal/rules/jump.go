package rules

import (
	"sort"
	"strconv"

	"github.com/ngondzanamichael/LIFE-JDE-ANALYSIS/internal/table"
)

// sautBL detects ticket-number discontinuities. The (plant, ticket#, delv)
// projection is stably sorted by numeric ticket#, a difference column holds
// the delta to the previous ticket (0 for the first row), and every row
// with a non-unit gap is flagged. A duplicate ticket number carries a
// difference of 0 and is not a gap, so it is not flagged; the first row's
// defaulted 0 still is, having no predecessor to compare against.
func sautBL(ticketLog *table.Table) (*table.Table, error) {
	proj, err := ticketLog.Select([]string{"plant", "ticket#", "delv"})
	if err != nil {
		return nil, err
	}

	type entry struct {
		row []string
		num int
	}

	entries := make([]entry, proj.RowCount())
	for i := 0; i < proj.RowCount(); i++ {
		row := proj.Row(i)
		n, ok := parseInt(row[1])
		if !ok {
			return nil, &CoercionError{
				Source: "LOR518",
				Column: "ticket#",
				Row:    i + 2,
				Value:  row[1],
			}
		}
		entries[i] = entry{row: row, num: n}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].num < entries[j].num
	})

	cols := append(proj.Columns(), "difference")
	rows := make([][]string, 0)
	prev := 0
	for i, e := range entries {
		diff := 0
		if i > 0 {
			diff = e.num - prev
		}
		prev = e.num
		if diff == 1 || (i > 0 && diff == 0) {
			continue
		}
		out := make([]string, 0, len(cols))
		out = append(out, e.row...)
		out = append(out, strconv.Itoa(diff))
		rows = append(rows, out)
	}

	return table.New(cols, rows), nil
}
