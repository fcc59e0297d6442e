// Package rules evaluates the seven exception rules of the LIFE/JDE
// data-cleaning process over prepared ticket, receiving and status tables.
// Every derivation is a single synchronous pass with no shared state; a
// run either yields all result tables or fails with a schema or coercion
// error. Null cells never match a predicate unless stated otherwise.
package rules

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ngondzanamichael/LIFE-JDE-ANALYSIS/internal/table"
)

// Carrier-hire flag for temporary transporters.
const hiredTMP = "TMP"

// Carrier name used by the ERP for receipts without a real carrier.
const fictitiousCarrier = "Transpoteur Fictif"

var (
	// materials watched across receiving rules
	materialAll = regexp.MustCompile(`POUZZOLANE|PETCOKE|GYPSE|CLINKER|CALCAIRE|SABLE`)
	// narrower set subject to BL format verification
	materialBL = regexp.MustCompile(`PETCOKE|GYPSE|CLINKER`)
)

// Result table names, shared by the API and the export writer.
const (
	NamePrechargement = "prechargement"
	NameSautBL        = "saut_bl"
	NameTransTMP      = "trans_tmp"
	NameTransFic      = "trans_fic"
	NameStatusJoin    = "statut_suivant"
	NameStatut565     = "statut_565"
	NameFauxBL        = "faux_bl"
	NameFaultyPickup  = "faulty_pickup"
)

// Inputs carries the three prepared source tables of one run.
type Inputs struct {
	TicketLog    *table.Table
	ReceivingLog *table.Table
	StatusFile   *table.Table
}

// Ready reports whether all three inputs are present.
func (in Inputs) Ready() bool {
	return in.TicketLog != nil && in.ReceivingLog != nil && in.StatusFile != nil
}

// Results holds every derived table of one run.
type Results struct {
	Prechargement *table.Table
	SautBL        *table.Table
	TransTMP      *table.Table
	TransFic      *table.Table
	StatusJoin    *table.Table // full left join, the exported sheet
	StatusActive  *table.Table // join without next-status 999, intermediate only
	Statut565     *table.Table // displayed view of the join
	FauxBL        *table.Table
	FaultyPickup  *table.Table
}

// Table returns a result table by name.
func (r *Results) Table(name string) (*table.Table, bool) {
	switch name {
	case NamePrechargement:
		return r.Prechargement, true
	case NameSautBL:
		return r.SautBL, true
	case NameTransTMP:
		return r.TransTMP, true
	case NameTransFic:
		return r.TransFic, true
	case NameStatusJoin:
		return r.StatusJoin, true
	case NameStatut565:
		return r.Statut565, true
	case NameFauxBL:
		return r.FauxBL, true
	case NameFaultyPickup:
		return r.FaultyPickup, true
	}
	return nil, false
}

// Counts returns the row count of every result table by name.
func (r *Results) Counts() map[string]int {
	return map[string]int{
		NamePrechargement: r.Prechargement.RowCount(),
		NameSautBL:        r.SautBL.RowCount(),
		NameTransTMP:      r.TransTMP.RowCount(),
		NameTransFic:      r.TransFic.RowCount(),
		NameStatusJoin:    r.StatusJoin.RowCount(),
		NameStatut565:     r.Statut565.RowCount(),
		NameFauxBL:        r.FauxBL.RowCount(),
		NameFaultyPickup:  r.FaultyPickup.RowCount(),
	}
}

// Run evaluates all rules over one prepared input triple. Inputs are
// expected to come from schema.Prepare; tables missing a scanned column
// are rejected rather than evaluated.
func Run(in Inputs) (*Results, error) {
	if !in.Ready() {
		return nil, errors.New("all three input tables are required")
	}
	if err := checkInputColumns(in); err != nil {
		return nil, err
	}

	res := &Results{}
	life := in.TicketLog

	// Pre-charge tickets are identified on the as-loaded row order,
	// before the temporal sort below.
	vendorIdx := life.Index("vendor")
	res.Prechargement = life.Filter(func(row []string) bool {
		return strings.Contains(row[vendorIdx], "PRECHARGEMENT")
	})

	sorted, err := sortByTicketDate(life)
	if err != nil {
		return nil, err
	}

	res.SautBL, err = sautBL(sorted)
	if err != nil {
		return nil, err
	}

	hiredIdx := sorted.Index("hired")
	delvIdx := sorted.Index("delv")
	res.FaultyPickup = sorted.Filter(func(row []string) bool {
		return row[hiredIdx] != hiredTMP && row[delvIdx] == "N"
	})
	res.TransTMP = sorted.Filter(func(row []string) bool {
		return row[hiredIdx] == hiredTMP && row[delvIdx] == "Y"
	})

	sv := statusVerification(sorted, in.StatusFile)
	res.StatusJoin = sv.join
	res.StatusActive = sv.active
	res.Statut565 = sv.s565

	rec := in.ReceivingLog
	produitIdx := rec.Index("produit")
	carrierIdx := rec.Index("carrier name")
	res.TransFic = rec.Filter(func(row []string) bool {
		return materialAll.MatchString(row[produitIdx]) && row[carrierIdx] == fictitiousCarrier
	})

	blIdx := rec.Index("external ticket/bol")
	valid := make([]string, rec.RowCount())
	for i := 0; i < rec.RowCount(); i++ {
		valid[i] = strconv.FormatBool(ValidateBL(rec.Row(i)[blIdx]))
	}
	withValid, err := rec.WithColumn("valid bl", valid)
	if err != nil {
		return nil, err
	}

	validIdx := withValid.Index("valid bl")
	res.FauxBL = withValid.Filter(func(row []string) bool {
		return materialBL.MatchString(row[produitIdx]) && row[validIdx] == "false"
	})

	return res, nil
}

// checkInputColumns verifies every column the rules scan is present, so
// an unprepared table fails with an error instead of a panic.
func checkInputColumns(in Inputs) error {
	checks := []struct {
		t      *table.Table
		source string
		cols   []string
	}{
		{in.TicketLog, "LOR518", []string{"ticket date", "plant", "ticket#", "vendor", "delv", "hired", "shipment"}},
		{in.ReceivingLog, "LOR850", []string{"produit", "carrier name", "external ticket/bol"}},
		{in.StatusFile, "JDE", []string{"n° expéd.", "t c", "dernier statut", "statut suivant"}},
	}

	for _, c := range checks {
		for _, col := range c.cols {
			if c.t.Index(col) < 0 {
				return fmt.Errorf("%s: input table missing column %q", c.source, col)
			}
		}
	}
	return nil
}

// sortByTicketDate stably orders the ticket log by parsed ticket date.
// Null dates sort last; a non-null unparsable date is fatal, since the
// temporal ordering feeding the downstream rules is undefined without it.
func sortByTicketDate(life *table.Table) (*table.Table, error) {
	dateIdx := life.Index("ticket date")

	type entry struct {
		row  []string
		ts   time.Time
		null bool
	}

	entries := make([]entry, life.RowCount())
	for i := 0; i < life.RowCount(); i++ {
		row := life.Row(i)
		val := strings.TrimSpace(row[dateIdx])
		if val == "" {
			entries[i] = entry{row: row, null: true}
			continue
		}
		ts, ok := parseDate(val)
		if !ok {
			return nil, &CoercionError{
				Source: "LOR518",
				Column: "ticket date",
				Row:    i + 2,
				Value:  row[dateIdx],
			}
		}
		entries[i] = entry{row: row, ts: ts}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].null || entries[j].null {
			return !entries[i].null && entries[j].null
		}
		return entries[i].ts.Before(entries[j].ts)
	})

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = e.row
	}
	return table.New(life.Columns(), rows), nil
}
