// Package schema declares the expected shape of the three source exports
// and prepares raw worksheets for the rule engine: column normalization,
// placeholder renaming and projection to the required column set.
package schema

import (
	"fmt"
	"strings"

	"github.com/ngondzanamichael/LIFE-JDE-ANALYSIS/internal/table"
)

// Rename maps a placeholder column produced by the spreadsheet engine for
// an unlabeled header cell to its semantic name. Contains is matched as a
// substring of the normalized column name.
type Rename struct {
	Contains string
	To       string
}

// Source describes one input export: its display name, the placeholder
// renames it needs and the ordered column set the rules consume.
type Source struct {
	Name     string
	Renames  []Rename
	Required []string
}

// The three fixed sources. Schema drift is an edit here, not in the rules.
var (
	// TicketLog is the LIFE LOR518 ticket export, one row per ticket.
	TicketLog = Source{
		Name: "LOR518",
		Renames: []Rename{
			{Contains: "unnamed: 6", To: "vendor"},
			{Contains: "unnamed: 8", To: "customer name"},
		},
		Required: []string{
			"ticket date", "plant", "ticket#", "customer", "vendor",
			"ship to", "customer name", "prod desc", "delv", "truck",
			"hired", "shipment", "load",
		},
	}

	// ReceivingLog is the LOR850 receiving export, one row per receipt.
	ReceivingLog = Source{
		Name: "LOR850",
		Renames: []Rename{
			{Contains: "unnamed: 5", To: "customer"},
			{Contains: "unnamed: 8", To: "produit"},
		},
		Required: []string{
			"plant", "receipt date", "customer", "produit", "qty",
			"external ticket/bol", "carrier id", "carrier name",
			"driver name", "reference no", "user",
		},
	}

	// StatusFile is the JDE shipment status export.
	StatusFile = Source{
		Name: "JDE",
		Required: []string{
			"n° expéd.", "magasin/usine", "t c", "dernier statut",
			"statut suivant", "date comm.", "nº comm.", "description 1",
		},
	}
)

// SchemaError reports a required column missing from a source after
// normalization. It is fatal for every rule reading that source.
type SchemaError struct {
	Source string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required column %q", e.Source, e.Column)
}

// Normalize lower-cases and trims every column name, then applies the
// source's placeholder renames. Pure; row order and count are unchanged.
func Normalize(t *table.Table, src Source) *table.Table {
	n := t.NormalizeColumns()

	if len(src.Renames) == 0 {
		return n
	}

	rename := make(map[string]string)
	for _, col := range n.Columns() {
		for _, r := range src.Renames {
			if strings.Contains(col, r.Contains) {
				rename[col] = r.To
				break
			}
		}
	}
	return n.Rename(rename)
}

// Prepare normalizes a raw worksheet and projects it to the source's
// required columns. A missing column yields a *SchemaError.
func Prepare(t *table.Table, src Source) (*table.Table, error) {
	n := Normalize(t, src)

	for _, col := range src.Required {
		if n.Index(col) < 0 {
			return nil, &SchemaError{Source: src.Name, Column: col}
		}
	}

	sel, err := n.Select(src.Required)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Name, err)
	}
	return sel, nil
}
