package table

import (
	"fmt"
	"sort"
	"strings"
)

// Table is an ordered, header-named grid of string cells as read from a
// worksheet. An empty cell is treated as null by every consumer.
type Table struct {
	cols []string
	rows [][]string
}

// New builds a table from a header and data rows. Ragged rows are padded
// to the header width so positional access is always safe.
func New(cols []string, rows [][]string) *Table {
	c := make([]string, len(cols))
	copy(c, cols)

	r := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) >= len(c) {
			r[i] = row[:len(c)]
			continue
		}
		padded := make([]string, len(c))
		copy(padded, row)
		r[i] = padded
	}

	return &Table{cols: c, rows: r}
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.cols))
	copy(out, t.cols)
	return out
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// Row returns the i-th data row. The returned slice must not be mutated.
func (t *Table) Row(i int) []string {
	return t.rows[i]
}

// Rows returns all data rows. The returned slices must not be mutated.
func (t *Table) Rows() [][]string {
	return t.rows
}

// Index returns the position of a column name, or -1 when absent.
func (t *Table) Index(col string) int {
	for i, c := range t.cols {
		if c == col {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col), or "" when the column is absent.
func (t *Table) Cell(row int, col string) string {
	idx := t.Index(col)
	if idx < 0 {
		return ""
	}
	return t.rows[row][idx]
}

// NormalizeName trims surrounding whitespace and lower-cases a column name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeColumns returns a table with every column name normalized.
// Rows are shared with the receiver. Applying it twice is a no-op.
func (t *Table) NormalizeColumns() *Table {
	cols := make([]string, len(t.cols))
	for i, c := range t.cols {
		cols[i] = NormalizeName(c)
	}
	return &Table{cols: cols, rows: t.rows}
}

// Rename returns a table with column names replaced according to rename,
// leaving unmatched names untouched. Rows are shared with the receiver.
func (t *Table) Rename(rename map[string]string) *Table {
	cols := make([]string, len(t.cols))
	for i, c := range t.cols {
		if to, ok := rename[c]; ok {
			cols[i] = to
		} else {
			cols[i] = c
		}
	}
	return &Table{cols: cols, rows: t.rows}
}

// Select projects the table to exactly the given columns, in the given
// order, preserving every row. A missing column is an error.
func (t *Table) Select(cols []string) (*Table, error) {
	idx := make([]int, len(cols))
	for i, c := range cols {
		j := t.Index(c)
		if j < 0 {
			return nil, fmt.Errorf("column %q not found", c)
		}
		idx[i] = j
	}

	rows := make([][]string, len(t.rows))
	for i, row := range t.rows {
		out := make([]string, len(idx))
		for k, j := range idx {
			out[k] = row[j]
		}
		rows[i] = out
	}

	return New(cols, rows), nil
}

// Filter returns the rows for which keep is true, preserving order.
func (t *Table) Filter(keep func(row []string) bool) *Table {
	rows := make([][]string, 0, len(t.rows))
	for _, row := range t.rows {
		if keep(row) {
			rows = append(rows, row)
		}
	}
	return &Table{cols: t.cols, rows: rows}
}

// SortStable returns a copy of the table with rows stably reordered by less.
func (t *Table) SortStable(less func(a, b []string) bool) *Table {
	rows := make([][]string, len(t.rows))
	copy(rows, t.rows)
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
	return &Table{cols: t.cols, rows: rows}
}

// WithColumn returns a table extended by one trailing column. values must
// have one entry per row.
func (t *Table) WithColumn(name string, values []string) (*Table, error) {
	if len(values) != len(t.rows) {
		return nil, fmt.Errorf("column %q: %d values for %d rows", name, len(values), len(t.rows))
	}
	cols := append(t.Columns(), name)
	rows := make([][]string, len(t.rows))
	for i, row := range t.rows {
		out := make([]string, 0, len(cols))
		out = append(out, row...)
		out = append(out, values[i])
		rows[i] = out
	}
	return &Table{cols: cols, rows: rows}, nil
}

// Head returns at most n leading rows, sharing row storage.
func (t *Table) Head(n int) *Table {
	if n > len(t.rows) {
		n = len(t.rows)
	}
	return &Table{cols: t.cols, rows: t.rows[:n]}
}
