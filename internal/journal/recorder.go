package journal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/fpadd/internal/adder"
	"github.com/roach88/fpadd/internal/fixed"
)

// Recorder journals the calls of a single run.
// It is safe for concurrent use; seq values come from an atomic Clock.
type Recorder struct {
	journal *Journal
	run     Run
	clock   *Clock
	logger  *slog.Logger
}

// StartRun writes a run record and returns a Recorder for its calls.
func (j *Journal) StartRun(ctx context.Context, run Run, logger *slog.Logger) (*Recorder, error) {
	if run.ID == "" {
		return nil, fmt.Errorf("start run: run ID is required")
	}
	if err := j.WriteRun(ctx, run); err != nil {
		return nil, fmt.Errorf("start run: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("journal run started", "run_id", run.ID, "source", run.Source, "policy", run.Policy)
	return &Recorder{journal: j, run: run, clock: NewClock(), logger: logger}, nil
}

// Run returns the run this recorder writes to.
func (r *Recorder) Run() Run {
	return r.run
}

// Record journals one call and returns the stored record.
func (r *Recorder) Record(ctx context.Context, a, b fixed.Amount, res adder.Result) (Call, error) {
	seq := r.clock.Next()
	id, err := CallID(r.run.ID, seq, a, b)
	if err != nil {
		return Call{}, fmt.Errorf("record call: %w", err)
	}

	c := Call{
		ID:     id,
		RunID:  r.run.ID,
		Seq:    seq,
		A:      a,
		B:      b,
		Sum:    res.Sum,
		Status: res.Status,
	}
	if err := r.journal.WriteCall(ctx, c); err != nil {
		return Call{}, fmt.Errorf("record call: %w", err)
	}

	r.logger.Debug("call journaled",
		"run_id", c.RunID,
		"seq", c.Seq,
		"status", int(c.Status),
	)
	return c, nil
}
