package journal

import (
	"github.com/roach88/fpadd/internal/adder"
	"github.com/roach88/fpadd/internal/fixed"
)

// Run groups the calls made by one CLI invocation.
type Run struct {
	// ID is a UUIDv7 string (or a fixed token in tests).
	ID string `json:"id"`

	// Source names what produced the run, e.g. "cli:add" or "cli:call".
	Source string `json:"source"`

	// Policy is the overflow policy the run used.
	Policy adder.Policy `json:"policy"`
}

// Call is one journaled adder call.
type Call struct {
	ID     string       `json:"id"`
	RunID  string       `json:"run_id"`
	Seq    int64        `json:"seq"`
	A      fixed.Amount `json:"a"`
	B      fixed.Amount `json:"b"`
	Sum    fixed.Amount `json:"sum"`
	Status adder.Status `json:"status"`
}
