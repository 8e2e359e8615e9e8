package journal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/fpadd/internal/adder"
	"github.com/roach88/fpadd/internal/fixed"
)

// ReadRuns returns all runs ordered by ID.
// Returns an empty slice (not nil) if the journal is empty.
func (j *Journal) ReadRuns(ctx context.Context) ([]Run, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, source, policy
		FROM runs
		ORDER BY id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		var policy string
		if err := rows.Scan(&r.ID, &r.Source, &policy); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Policy = adder.Policy(policy)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRun returns a single run. Returns (Run{}, false, nil) if not found.
func (j *Journal) ReadRun(ctx context.Context, id string) (Run, bool, error) {
	var r Run
	var policy string
	err := j.db.QueryRowContext(ctx, `
		SELECT id, source, policy FROM runs WHERE id = ?
	`, id).Scan(&r.ID, &r.Source, &policy)
	if err == sql.ErrNoRows {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, fmt.Errorf("read run: %w", err)
	}
	r.Policy = adder.Policy(policy)
	return r, true, nil
}

// ReadCalls returns the calls of a run.
// Ordered deterministically: ORDER BY seq ASC, id ASC COLLATE BINARY.
// Returns an empty slice (not nil) if the run has no calls.
func (j *Journal) ReadCalls(ctx context.Context, runID string) ([]Call, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, run_id, seq, a, b, sum, status
		FROM calls
		WHERE run_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query calls: %w", err)
	}
	defer rows.Close()

	calls := []Call{}
	for rows.Next() {
		c, err := scanCall(rows)
		if err != nil {
			return nil, err
		}
		calls = append(calls, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calls: %w", err)
	}
	return calls, nil
}

// CountCalls returns the number of calls in a run.
func (j *Journal) CountCalls(ctx context.Context, runID string) (int, error) {
	var n int
	err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM calls WHERE run_id = ?`, runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count calls: %w", err)
	}
	return n, nil
}

func scanCall(rows *sql.Rows) (Call, error) {
	var c Call
	var a, b, sum, status int64
	if err := rows.Scan(&c.ID, &c.RunID, &c.Seq, &a, &b, &sum, &status); err != nil {
		return Call{}, fmt.Errorf("scan call: %w", err)
	}
	c.A = fixed.Amount(a)
	c.B = fixed.Amount(b)
	c.Sum = fixed.Amount(sum)
	c.Status = adder.Status(status)
	return c, nil
}
