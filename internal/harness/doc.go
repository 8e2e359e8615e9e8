// Package harness provides conformance testing for the adder.
//
// A scenario lists adder calls with their expected outcomes, runs them
// against a fresh in-memory journal, and checks the resulting trace.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: sign_handling
//	description: "Negative plus positive"
//	policy: status          # optional: status | saturate | truncate
//	run_id: test-run-001    # optional fixed run ID
//	cases:
//	  - a: "-5.25"
//	    b: "3.10"
//	    expect:
//	      sum: "-2.15"
//	      status: 0
//	assertions:
//	  - type: all_ok
//	  - type: commutative
//
// Amounts may be quoted or bare; bare literals are read from the YAML
// source text, never through a float.
//
// Every file is checked against the CUE schema in schema.cue before it is
// decoded, then decoded strictly (unknown fields rejected).
//
// # Assertion Types
//
//   - all_ok: every case reported StatusOK
//   - status_count: exactly count cases reported status
//   - commutative: every case gives the same result with operands swapped
//   - journal_count: the journal holds exactly count calls for the run
//
// # Golden Files
//
// The trace is serialized by MarshalSnapshot and compared with
// testdata/scenarios/golden/<name>.golden via goldie, the same layout
// fpadd test reads. Regenerate with:
//
//	go test ./internal/harness -update
package harness
