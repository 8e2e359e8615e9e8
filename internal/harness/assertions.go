package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/fpadd/internal/adder"
	"github.com/roach88/fpadd/internal/journal"
)

// AssertionError is returned when an assertion fails.
// It includes the trace to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, ev := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s + %s = %s (status %d)\n", ev.Seq, ev.A, ev.B, ev.Sum, ev.Status)
		}
	}

	return buf.String()
}

// AssertionContext carries what assertions may consult beyond the trace.
type AssertionContext struct {
	Journal *journal.Journal
	RunID   string
	Adder   *adder.Adder
	Ctx     context.Context
}

// EvaluateAssertions runs every assertion and returns the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluateAssertion(result, a, actx); err != nil {
			errs = append(errs, fmt.Sprintf("assertion %d (%s): %v", i, a.Type, err))
		}
	}
	return errs
}

func evaluateAssertion(result *Result, a Assertion, actx *AssertionContext) error {
	switch a.Type {
	case AssertAllOK:
		return assertAllOK(result.Trace)
	case AssertStatusCount:
		return assertStatusCount(result.Trace, a)
	case AssertCommutative:
		return assertCommutative(result.Trace, actx.Adder)
	case AssertJournalCount:
		return assertJournalCount(actx, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertAllOK checks that every call reported StatusOK.
func assertAllOK(trace []TraceEvent) error {
	for _, ev := range trace {
		if !ev.Status.OK() {
			return &AssertionError{
				Type:     AssertAllOK,
				Expected: "every call reports status 0",
				Actual:   fmt.Sprintf("call %d reported status %d", ev.Seq, ev.Status),
				Trace:    trace,
			}
		}
	}
	return nil
}

// assertStatusCount checks that exactly Count calls reported Status.
func assertStatusCount(trace []TraceEvent, a Assertion) error {
	count := 0
	for _, ev := range trace {
		if int(ev.Status) == a.Status {
			count++
		}
	}

	if count != a.Count {
		return &AssertionError{
			Type:     AssertStatusCount,
			Expected: fmt.Sprintf("%d calls with status %d", a.Count, a.Status),
			Actual:   fmt.Sprintf("%d calls", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertCommutative re-adds every call with its operands swapped.
func assertCommutative(trace []TraceEvent, ad *adder.Adder) error {
	for _, ev := range trace {
		swapped := ad.Add(ev.B, ev.A)
		if swapped.Sum != ev.Sum || swapped.Status != ev.Status {
			return &AssertionError{
				Type:     AssertCommutative,
				Expected: fmt.Sprintf("%s + %s = (%s, %d)", ev.B, ev.A, ev.Sum, ev.Status),
				Actual:   fmt.Sprintf("(%s, %d)", swapped.Sum, swapped.Status),
				Trace:    trace,
			}
		}
	}
	return nil
}

// assertJournalCount checks the number of calls journaled for the run.
func assertJournalCount(actx *AssertionContext, a Assertion) error {
	n, err := actx.Journal.CountCalls(actx.Ctx, actx.RunID)
	if err != nil {
		return fmt.Errorf("count journal calls: %w", err)
	}
	if n != a.Count {
		return &AssertionError{
			Type:     AssertJournalCount,
			Expected: fmt.Sprintf("%d journaled calls", a.Count),
			Actual:   fmt.Sprintf("%d journaled calls", n),
		}
	}
	return nil
}
