package rules

import (
	"github.com/ngondzanamichael/LIFE-JDE-ANALYSIS/internal/table"
)

// Status codes that mark a shipment as closed in JDE; such status rows
// are dropped before the join.
var closedStatuses = map[int]bool{980: true, 984: true, 989: true}

// statusViews holds the three products of status verification: the full
// left join (the exported sheet), the join with next-status 999 excluded
// (an intermediate, never displayed or exported) and the rows stuck at
// next-status 565 (the displayed view).
type statusViews struct {
	join   *table.Table
	active *table.Table
	s565   *table.Table
}

// statusVerification filters the JDE status file to sales/transfer order
// rows (t c in {SO, ST}) that are not closed, then left-outer-joins the
// ticket log to it on shipment = n° expéd., carrying over the shipment id
// and next-status columns. Unmatched tickets keep null status columns;
// a ticket matching several status rows is emitted once per match.
func statusVerification(ticketLog, statusFile *table.Table) statusViews {
	tcIdx := statusFile.Index("t c")
	lastIdx := statusFile.Index("dernier statut")
	shipIdx := statusFile.Index("n° expéd.")
	nextIdx := statusFile.Index("statut suivant")

	filtered := statusFile.Filter(func(row []string) bool {
		if row[tcIdx] != "SO" && row[tcIdx] != "ST" {
			return false
		}
		// an unparsable last status cannot be a closed one
		if last, ok := parseInt(row[lastIdx]); ok && closedStatuses[last] {
			return false
		}
		return true
	})

	next := make(map[string][]string)
	for _, row := range filtered.Rows() {
		key := row[shipIdx]
		if key == "" {
			continue
		}
		next[key] = append(next[key], row[nextIdx])
	}

	cols := append(ticketLog.Columns(), "n° expéd.", "statut suivant")
	shipmentIdx := ticketLog.Index("shipment")

	rows := make([][]string, 0, ticketLog.RowCount())
	for _, row := range ticketLog.Rows() {
		key := row[shipmentIdx]
		matches := next[key]
		if len(matches) == 0 {
			out := make([]string, 0, len(cols))
			out = append(out, row...)
			out = append(out, "", "")
			rows = append(rows, out)
			continue
		}
		for _, status := range matches {
			out := make([]string, 0, len(cols))
			out = append(out, row...)
			out = append(out, key, status)
			rows = append(rows, out)
		}
	}

	join := table.New(cols, rows)
	nextCol := join.Index("statut suivant")

	active := join.Filter(func(row []string) bool {
		f, ok := parseFloat(row[nextCol])
		return !ok || f != 999.0
	})
	s565 := join.Filter(func(row []string) bool {
		f, ok := parseFloat(row[nextCol])
		return ok && f == 565.0
	})

	return statusViews{join: join, active: active, s565: s565}
}
