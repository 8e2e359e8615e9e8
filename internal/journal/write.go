package journal

import (
	"context"
	"fmt"
)

// WriteRun inserts a run record. Duplicate IDs are silently ignored.
func (j *Journal) WriteRun(ctx context.Context, run Run) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO runs (id, source, policy)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, run.ID, run.Source, string(run.Policy))
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// WriteCall inserts a call record.
// Uses ON CONFLICT(id) DO NOTHING for idempotency. A different call reusing
// an existing (run_id, seq) still fails on the unique index.
//
// The run referenced by RunID must exist (foreign key constraint).
func (j *Journal) WriteCall(ctx context.Context, c Call) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO calls (id, run_id, seq, a, b, sum, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		c.ID,
		c.RunID,
		c.Seq,
		c.A.Units(),
		c.B.Units(),
		c.Sum.Units(),
		int64(c.Status),
	)
	if err != nil {
		return fmt.Errorf("write call: %w", err)
	}
	return nil
}
