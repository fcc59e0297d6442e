package rules

import "fmt"

// CoercionError reports a cell that could not be coerced to the type a
// rule's arithmetic needs (numeric ticket#, parsable ticket date). It is
// fatal for the run; per-row parse failures inside predicates fail closed
// to non-match instead and never surface here.
type CoercionError struct {
	Source string
	Column string
	// Row is the 1-based position in the table being evaluated, header
	// counted. Rules that reorder rows first report positions in their
	// working order, not the source worksheet's.
	Row   int
	Value string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("%s: column %q row %d: cannot interpret value %q",
		e.Source, e.Column, e.Row, e.Value)
}
