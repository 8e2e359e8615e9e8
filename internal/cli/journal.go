package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/fpadd/internal/adder"
	"github.com/roach88/fpadd/internal/journal"
)

// JournalOptions holds flags for the journal command.
type JournalOptions struct {
	*RootOptions
	Database string
	RunID    string // optional - list the calls of one run
	Limit    int    // optional - cap the number of rows
}

// RunSummary is one row of the run listing.
type RunSummary struct {
	journal.Run
	Calls int `json:"calls"`
}

// JournalResult is the payload of the journal command.
// Exactly one of Runs and Calls is set.
type JournalResult struct {
	Runs  []RunSummary   `json:"runs,omitempty"`
	Run   *journal.Run   `json:"run,omitempty"`
	Calls []journal.Call `json:"calls,omitempty"`
}

// NewJournalCommand creates the journal command.
func NewJournalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &JournalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "List journaled runs and calls",
		Long: `List the runs recorded in a call journal, or the calls of one run.

Runs are listed oldest first. Calls are listed in seq order.

Examples:
  fpadd journal --db ./fpadd.db
  fpadd journal --db ./fpadd.db --run 01928c5e-... --limit 20
  fpadd journal --db ./fpadd.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournal(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "list the calls of this run")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum rows to show (0 = all)")

	return cmd
}

func runJournal(opts *JournalOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)

	if opts.Limit < 0 {
		return NewExitError(ExitCommandError, "--limit must be non-negative")
	}

	j, err := journal.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeJournal, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer j.Close()

	var result JournalResult
	if opts.RunID == "" {
		result.Runs, err = listRuns(ctx, j, opts.Limit)
	} else {
		result.Run, result.Calls, err = listCalls(ctx, j, opts.RunID, opts.Limit)
	}
	if err != nil {
		_ = formatter.Error(ErrCodeJournal, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return outputJournalText(cmd, opts, result)
}

func listRuns(ctx context.Context, j *journal.Journal, limit int) ([]RunSummary, error) {
	runs, err := j.ReadRuns(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}

	summaries := make([]RunSummary, 0, len(runs))
	for _, r := range runs {
		n, err := j.CountCalls(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, RunSummary{Run: r, Calls: n})
	}
	return summaries, nil
}

func listCalls(ctx context.Context, j *journal.Journal, runID string, limit int) (*journal.Run, []journal.Call, error) {
	run, ok, err := j.ReadRun(ctx, runID)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, fmt.Errorf("run not found: %s", runID)
	}

	calls, err := j.ReadCalls(ctx, runID)
	if err != nil {
		return nil, nil, err
	}
	if limit > 0 && len(calls) > limit {
		calls = calls[:limit]
	}
	return &run, calls, nil
}

func outputJournalText(cmd *cobra.Command, opts *JournalOptions, result JournalResult) error {
	w := cmd.OutOrStdout()

	if result.Run == nil {
		if len(result.Runs) == 0 {
			fmt.Fprintln(w, "No runs found.")
			return nil
		}
		for _, r := range result.Runs {
			fmt.Fprintf(w, "%s  %-10s %-8s %d call(s)\n", r.ID, r.Source, r.Policy, r.Calls)
		}
		return nil
	}

	fmt.Fprintf(w, "Run %s (%s, policy %s)\n", result.Run.ID, result.Run.Source, result.Run.Policy)
	if len(result.Calls) == 0 {
		fmt.Fprintln(w, "  No calls.")
		return nil
	}
	for _, c := range result.Calls {
		fmt.Fprintf(w, "  [%d] %s + %s = %s (status %d)\n",
			c.Seq, c.A.Format(), c.B.Format(), c.Sum.Format(), c.Status)
		if opts.Verbose {
			fmt.Fprintf(w, "      id: %s\n", c.ID)
		}
	}
	return nil
}

// startJournalRun opens the journal at path and starts a run. The caller
// closes the returned journal.
func startJournalRun(ctx context.Context, path, source string, policy adder.Policy, gen journal.RunIDGenerator, logger *slog.Logger) (*journal.Journal, *journal.Recorder, error) {
	if gen == nil {
		gen = journal.UUIDv7Generator{}
	}

	j, err := journal.Open(path)
	if err != nil {
		return nil, nil, err
	}

	rec, err := j.StartRun(ctx, journal.Run{
		ID:     gen.Generate(),
		Source: source,
		Policy: policy,
	}, logger)
	if err != nil {
		j.Close()
		return nil, nil, err
	}
	return j, rec, nil
}

// encodeIndented writes v as indented JSON.
func encodeIndented(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
