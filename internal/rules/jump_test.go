package rules

import (
	"errors"
	"testing"

	"github.com/ngondzanamichael/LIFE-JDE-ANALYSIS/internal/table"
)

func jumpFixture(tickets ...string) *table.Table {
	rows := make([][]string, len(tickets))
	for i, n := range tickets {
		rows[i] = []string{"P1", n, "Y"}
	}
	return table.New([]string{"plant", "ticket#", "delv"}, rows)
}

func TestSautBL_GapsAndDuplicates(t *testing.T) {
	t.Parallel()

	// differences over [100,101,103,103,104] are [0,1,2,0,1]
	out, err := sautBL(jumpFixture("100", "101", "103", "103", "104"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.RowCount() != 2 {
		t.Fatalf("flagged rows = %d, want 2: %v", out.RowCount(), out.Rows())
	}
	if out.Cell(0, "ticket#") != "100" || out.Cell(0, "difference") != "0" {
		t.Fatalf("unexpected first flagged row: %v", out.Row(0))
	}
	if out.Cell(1, "ticket#") != "103" || out.Cell(1, "difference") != "2" {
		t.Fatalf("unexpected second flagged row: %v", out.Row(1))
	}
}

func TestSautBL_SortsBeforeDiff(t *testing.T) {
	t.Parallel()

	// consecutive once sorted, only the first row is flagged
	out, err := sautBL(jumpFixture("102", "100", "101"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.RowCount() != 1 || out.Cell(0, "ticket#") != "100" {
		t.Fatalf("unexpected flagged rows: %v", out.Rows())
	}
}

func TestSautBL_NonNumericTicket(t *testing.T) {
	t.Parallel()

	_, err := sautBL(jumpFixture("100", "abc"))
	if err == nil {
		t.Fatalf("expected coercion error")
	}

	var coercionErr *CoercionError
	if !errors.As(err, &coercionErr) {
		t.Fatalf("expected *CoercionError, got %T", err)
	}
	if coercionErr.Column != "ticket#" || coercionErr.Source != "LOR518" {
		t.Fatalf("unexpected error detail: %+v", coercionErr)
	}
	// position in the evaluated table, header counted
	if coercionErr.Row != 3 {
		t.Fatalf("row = %d, want 3", coercionErr.Row)
	}
}

func TestSautBL_EmptyInput(t *testing.T) {
	t.Parallel()

	out, err := sautBL(jumpFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.RowCount() != 0 {
		t.Fatalf("expected no rows, got %d", out.RowCount())
	}
}
