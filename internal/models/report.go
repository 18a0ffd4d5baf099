package models

// Outcome classifies the result of processing one unit of work: a member in
// a billing or reminder cycle, or a payment event in a reconciliation pass.
type Outcome string

const (
	// OutcomeSuccess means the member was charged (and notified, if possible).
	OutcomeSuccess Outcome = "success"
	// OutcomeSkipped means the unit required no work (e.g. no email for a reminder,
	// or a payment event without a transaction id).
	OutcomeSkipped Outcome = "skipped"
	// OutcomeError means a collaborator failed for this unit; other units proceed.
	OutcomeError Outcome = "error"
	// OutcomeNotFound means the payer of an event could not be resolved to a member.
	OutcomeNotFound Outcome = "not_found"
	// OutcomeAlreadyPaid means the member was already marked paid for the period.
	OutcomeAlreadyPaid Outcome = "already_paid"
	// OutcomeUpdated means the ledger was updated to paid for the member.
	OutcomeUpdated Outcome = "updated"
	// OutcomeUpdateFailed means the ledger write failed for the member.
	OutcomeUpdateFailed Outcome = "update_failed"
)

// Run-level statuses. A run either completes (possibly with per-unit
// failures), is skipped entirely, or aborts before any unit is processed.
const (
	StatusSuccess = "success"
	StatusSkipped = "skipped"
	StatusError   = "error"
)

// Result is the outcome for a single member or payment event within a run.
type Result struct {
	Name    string  `json:"name,omitempty"`
	Email   string  `json:"email,omitempty"`
	Payer   string  `json:"payer,omitempty"`
	TxID    string  `json:"txid,omitempty"`
	Outcome Outcome `json:"outcome"`
	Err     string  `json:"error,omitempty"`
}

// RunReport aggregates per-unit outcomes for one orchestration pass.
// It is returned to the caller and logged, never persisted.
type RunReport struct {
	Status string `json:"status"`

	// Reason explains a skipped run, e.g. "not_trigger_day".
	Reason string `json:"reason,omitempty"`

	// Err carries the error that aborted the run when Status is error.
	Err string `json:"error,omitempty"`

	Succeeded   int `json:"succeeded"`
	Failed      int `json:"failed"`
	Skipped     int `json:"skipped"`
	AlreadyPaid int `json:"already_paid"`
	NotFound    int `json:"not_found"`

	Results []Result `json:"results,omitempty"`
}

// Add appends a result and bumps the matching counter.
func (r *RunReport) Add(res Result) {
	r.Results = append(r.Results, res)
	switch res.Outcome {
	case OutcomeSuccess, OutcomeUpdated:
		r.Succeeded++
	case OutcomeError, OutcomeUpdateFailed:
		r.Failed++
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeAlreadyPaid:
		r.AlreadyPaid++
	case OutcomeNotFound:
		r.NotFound++
	}
}
