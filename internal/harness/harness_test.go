package harness

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fpadd/internal/adder"
	"github.com/roach88/fpadd/internal/fixed"
	"github.com/roach88/fpadd/internal/testutil"
)

func intPtr(v int) *int { return &v }

func TestRun_PassingScenario(t *testing.T) {
	scenario := &Scenario{
		Name:        "passing",
		Description: "two exact sums",
		Cases: []Case{
			{A: "12.34", B: "0.66", Expect: &Expect{Sum: "13.00"}},
			{A: "-1", B: "1", Expect: &Expect{Sum: "0", Status: intPtr(0)}},
		},
		Assertions: []Assertion{
			{Type: AssertAllOK},
			{Type: AssertJournalCount, Count: 2},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Equal(t, testutil.DefaultRunID, result.RunID)
	assert.Equal(t, adder.PolicyStatus, result.Policy)

	require.Len(t, result.Trace, 2)
	assert.Equal(t, int64(1), result.Trace[0].Seq)
	assert.Equal(t, int64(2), result.Trace[1].Seq)
	assert.Equal(t, fixed.MustParse("13.00"), result.Trace[0].Sum)
}

func TestRun_ExpectationMismatch(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "wrong expected sum",
		Cases: []Case{
			{A: "1.00", B: "1.00", Expect: &Expect{Sum: "3.00"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected (3.00, 0), got (2.00, 0)")
}

func TestRun_StatusMismatch(t *testing.T) {
	scenario := &Scenario{
		Name:        "status",
		Description: "overflow expected to succeed",
		Cases: []Case{
			{A: "9999999.99", B: "0.01", Expect: &Expect{Sum: "0.00"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "got (0.00, 8)")
}

func TestRun_CasesWithoutExpectAreTraced(t *testing.T) {
	scenario := &Scenario{
		Name:        "trace_only",
		Description: "no expect clauses",
		Policy:      "saturate",
		Cases: []Case{
			{A: "9999999.99", B: "9999999.99"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass)
	require.Len(t, result.Trace, 1)
	assert.Equal(t, fixed.Max, result.Trace[0].Sum)
	assert.Equal(t, adder.StatusOK, result.Trace[0].Status)
}

func TestRun_InvalidPolicy(t *testing.T) {
	scenario := &Scenario{
		Name:        "policy",
		Description: "bad policy",
		Policy:      "round",
		Cases:       []Case{{A: "1", B: "1"}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid overflow policy")
}

func TestRun_InvalidLiteral(t *testing.T) {
	scenario := &Scenario{
		Name:        "literal",
		Description: "unparseable operand",
		Cases:       []Case{{A: "abc", B: "1"}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "case 0: a")
}

func TestRun_Isolation(t *testing.T) {
	// Each run gets its own journal, so seq restarts at 1 and counts do not leak.
	scenario := &Scenario{
		Name:        "isolated",
		Description: "run twice",
		Cases:       []Case{{A: "1", B: "1"}},
		Assertions:  []Assertion{{Type: AssertJournalCount, Count: 1}},
	}

	for i := 0; i < 2; i++ {
		result, err := Run(scenario)
		require.NoError(t, err)
		assert.True(t, result.Pass, "run %d errors: %v", i, result.Errors)
		assert.Equal(t, int64(1), result.Trace[0].Seq)
	}
}

func TestRun_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	scenario := &Scenario{
		Name:        "logged",
		Description: "logs to buffer",
		Cases:       []Case{{A: "1", B: "2"}},
	}

	_, err := Run(scenario, WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "scenario finished")
	assert.Contains(t, buf.String(), "scenario=logged")
}

func TestRun_TestdataScenarios(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)

	for _, f := range files {
		t.Run(filepath.Base(f), func(t *testing.T) {
			scenario, err := LoadScenario(f)
			require.NoError(t, err)

			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}
