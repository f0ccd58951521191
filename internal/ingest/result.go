package ingest

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// maxDisplayErrors caps how many specific errors a result carries for
// display. The total count is always retained.
const maxDisplayErrors = 10

// Phase names the orchestrator's state for one submitted source.
type Phase string

// Pipeline phases.
const (
	PhaseSelected       Phase = "selected"
	PhaseDetecting      Phase = "detecting"
	PhaseParsing        Phase = "parsing"
	PhaseExtracting     Phase = "extracting"
	PhaseDecodingBackup Phase = "decoding-backup"
	PhaseCommitting     Phase = "committing"
	PhaseDone           Phase = "done"
)

// Result reports the outcome of ingesting one source.
type Result struct {
	File       string
	Summary    string
	Errors     []string
	NetTotal   decimal.Decimal
	Committed  int
	Duplicates int
	Income     int
	Expense    int
	ErrorCount int
	Success    bool
}

// addError records an error, keeping the display list bounded while the
// count stays exact.
func (r *Result) addError(err error) {
	r.ErrorCount++
	if len(r.Errors) < maxDisplayErrors {
		r.Errors = append(r.Errors, err.Error())
	}
}

// finish computes the success flag and the human-readable summary line.
func (r *Result) finish() {
	r.Success = r.Committed > 0
	r.Summary = fmt.Sprintf("%d transactions committed (%d income, %d expense), net total %s",
		r.Committed, r.Income, r.Expense, r.NetTotal.StringFixed(2))
	if r.Duplicates > 0 {
		r.Summary += fmt.Sprintf(", %d duplicates skipped", r.Duplicates)
	}
	if r.ErrorCount > 0 {
		r.Summary += fmt.Sprintf(", %d errors", r.ErrorCount)
	}
}
