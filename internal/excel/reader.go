// Package excel reads the three source exports into tables and writes the
// seven result tables back out as one multi-sheet workbook.
package excel

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ngondzanamichael/LIFE-JDE-ANALYSIS/internal/table"
)

// ReadTable loads the first worksheet of an .xlsx stream: first row is
// the header, every following row is data. Ragged data rows are padded to
// the header width.
func ReadTable(r io.Reader) (*table.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheets[0])
	}

	return table.New(rows[0], rows[1:]), nil
}
