package harness

import (
	"github.com/roach88/fpadd/internal/adder"
	"github.com/roach88/fpadd/internal/fixed"
)

// TraceEvent is one adder call as observed by the harness.
type TraceEvent struct {
	Seq    int64        `json:"seq"`
	A      fixed.Amount `json:"a"`
	B      fixed.Amount `json:"b"`
	Sum    fixed.Amount `json:"sum"`
	Status adder.Status `json:"status"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expect clause and assertion held.
	Pass bool `json:"pass"`

	// RunID is the journal run the calls were written under.
	RunID string `json:"run_id"`

	// Policy is the overflow policy the scenario ran with.
	Policy adder.Policy `json:"policy"`

	// Trace contains every call in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a call to the trace.
func (r *Result) AddTrace(seq int64, a, b fixed.Amount, res adder.Result) {
	r.Trace = append(r.Trace, TraceEvent{
		Seq:    seq,
		A:      a,
		B:      b,
		Sum:    res.Sum,
		Status: res.Status,
	})
}
