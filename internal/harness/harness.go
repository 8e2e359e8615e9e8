package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/fpadd/internal/adder"
	"github.com/roach88/fpadd/internal/journal"
	"github.com/roach88/fpadd/internal/testutil"
)

// Harness is the scenario execution engine.
// It journals every call in a fresh in-memory database so that runs are
// isolated and reproducible.
type Harness struct {
	journal  *journal.Journal
	recorder *journal.Recorder
	adder    *adder.Adder
	logger   *slog.Logger
}

// Option configures a scenario run.
type Option func(*runConfig)

type runConfig struct {
	logger *slog.Logger
}

// WithLogger routes harness logs to logger. The default discards them.
func WithLogger(logger *slog.Logger) Option {
	return func(c *runConfig) {
		c.logger = logger
	}
}

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Create fresh in-memory journal
//  2. Start a run under the scenario's fixed run ID
//  3. Execute each case through the adder and journal it
//  4. Compare each case with its expect clause
//  5. Evaluate assertions
//
// A returned error means the scenario could not be executed; expectation
// and assertion failures are reported through Result.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := &runConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(cfg)
	}

	policy, err := adder.ParsePolicy(scenario.Policy)
	if err != nil {
		return nil, err
	}

	j, err := journal.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory journal: %w", err)
	}
	defer j.Close()

	ctx := context.Background()
	runGen := testutil.NewFixedRunIDGenerator(scenario.RunID)
	rec, err := j.StartRun(ctx, journal.Run{
		ID:     runGen.Generate(),
		Source: "harness:" + scenario.Name,
		Policy: policy,
	}, cfg.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to start run: %w", err)
	}

	h := &Harness{
		journal:  j,
		recorder: rec,
		adder:    adder.New(adder.WithPolicy(policy)),
		logger:   cfg.logger,
	}

	result := NewResult()
	result.RunID = rec.Run().ID
	result.Policy = policy

	if err := h.executeCases(ctx, scenario.Cases, result); err != nil {
		return nil, fmt.Errorf("failed to execute cases: %w", err)
	}

	actx := &AssertionContext{
		Journal: j,
		RunID:   result.RunID,
		Adder:   h.adder,
		Ctx:     ctx,
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	h.logger.Info("scenario finished",
		"scenario", scenario.Name,
		"pass", result.Pass,
		"cases", len(scenario.Cases),
	)
	return result, nil
}

// executeCases runs every case, journals it and checks its expect clause.
func (h *Harness) executeCases(ctx context.Context, cases []Case, result *Result) error {
	for i, c := range cases {
		a, err := c.A.Amount()
		if err != nil {
			return fmt.Errorf("case %d: a: %w", i, err)
		}
		b, err := c.B.Amount()
		if err != nil {
			return fmt.Errorf("case %d: b: %w", i, err)
		}

		res := h.adder.Add(a, b)
		call, err := h.recorder.Record(ctx, a, b, res)
		if err != nil {
			return fmt.Errorf("case %d: %w", i, err)
		}
		result.AddTrace(call.Seq, a, b, res)

		h.logger.Debug("case executed",
			"case", i,
			"a", a.String(),
			"b", b.String(),
			"sum", res.Sum.String(),
			"status", int(res.Status),
		)

		if c.Expect == nil {
			continue
		}

		wantSum, err := c.Expect.Sum.Amount()
		if err != nil {
			return fmt.Errorf("case %d: expect.sum: %w", i, err)
		}
		wantStatus := c.Expect.ExpectedStatus()

		if res.Sum != wantSum || res.Status != wantStatus {
			result.AddError(fmt.Sprintf("case %d: %s + %s: expected (%s, %d), got (%s, %d)",
				i, a, b, wantSum, wantStatus, res.Sum, res.Status))
		}
	}
	return nil
}
