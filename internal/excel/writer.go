package excel

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ngondzanamichael/LIFE-JDE-ANALYSIS/internal/rules"
	"github.com/ngondzanamichael/LIFE-JDE-ANALYSIS/internal/table"
)

// SheetOrder is the fixed sheet layout of the exported workbook. The
// status sheet carries the full join, not the displayed 565 view.
var SheetOrder = []string{
	rules.NamePrechargement,
	rules.NameSautBL,
	rules.NameTransTMP,
	rules.NameTransFic,
	rules.NameStatusJoin,
	rules.NameFauxBL,
	rules.NameFaultyPickup,
}

// Write serializes the result tables into a seven-sheet workbook in
// SheetOrder. An empty table still yields a header-only sheet. Input
// tables are not mutated.
func Write(res *rules.Results) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	for i, name := range SheetOrder {
		t, ok := res.Table(name)
		if !ok {
			continue
		}

		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, err
			}
		}

		if err := writeSheet(f, name, t); err != nil {
			return nil, err
		}
		if err := f.SetRowStyle(name, 1, 1, headerStyle); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func writeSheet(f *excelize.File, sheet string, t *table.Table) error {
	for j, col := range t.Columns() {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}

	for i, row := range t.Rows() {
		for j, val := range row {
			if val == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, cellValue(val)); err != nil {
				return err
			}
		}
	}

	return nil
}

// cellValue maps a string cell to the typed value written to the sheet.
// Numeric-looking cells become numbers, boolean cells become booleans;
// zero-padded codes stay strings so identifiers keep their digits.
func cellValue(val string) interface{} {
	switch val {
	case "true":
		return true
	case "false":
		return false
	}

	if len(val) > 1 && val[0] == '0' && !strings.Contains(val, ".") {
		return val
	}
	if n, err := strconv.ParseInt(val, 10, 64); err == nil {
		return n
	}
	if fv, err := strconv.ParseFloat(val, 64); err == nil {
		return fv
	}
	return val
}
