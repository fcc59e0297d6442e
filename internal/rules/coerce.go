package rules

import (
	"strconv"
	"strings"
	"time"
)

// parseInt coerces a cell to an integer, tolerating thousand separators
// and a trailing ".0" the spreadsheet engine sometimes renders.
func parseInt(val string) (int, bool) {
	val = strings.TrimSpace(strings.ReplaceAll(val, ",", ""))
	if val == "" {
		return 0, false
	}
	if i, err := strconv.Atoi(val); err == nil {
		return i, true
	}
	if f, err := strconv.ParseFloat(val, 64); err == nil && f == float64(int(f)) {
		return int(f), true
	}
	return 0, false
}

// parseFloat coerces a cell to a float, tolerating thousand separators.
func parseFloat(val string) (float64, bool) {
	val = strings.TrimSpace(strings.ReplaceAll(val, ",", ""))
	if val == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// dateLayouts covers the renderings seen in LOR518 exports.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/2006",
	"01/02/2006",
	"2006/01/02",
	"2-Jan-06",
	"Jan 2, 2006",
}

// excelEpoch is day zero of the 1900 date system used by .xlsx files.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// parseDate coerces a cell to a timestamp. Numeric cells are interpreted
// as Excel serial dates, everything else is tried against dateLayouts.
func parseDate(val string) (time.Time, bool) {
	val = strings.TrimSpace(val)
	if val == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(val, 64); err == nil {
		d := time.Duration(serial * 24 * float64(time.Hour))
		return excelEpoch.Add(d), true
	}

	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, val); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
