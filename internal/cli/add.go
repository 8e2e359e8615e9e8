package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/fpadd/internal/adder"
	"github.com/roach88/fpadd/internal/fixed"
	"github.com/roach88/fpadd/internal/journal"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Database string

	// RunIDs allows overriding the run ID generator (for testing).
	// If nil, defaults to journal.UUIDv7Generator.
	RunIDs journal.RunIDGenerator
}

// AddResult is the payload of a successful add.
type AddResult struct {
	A      fixed.Amount `json:"a"`
	B      fixed.Amount `json:"b"`
	Sum    fixed.Amount `json:"sum"`
	Status adder.Status `json:"status"`
	Policy adder.Policy `json:"policy"`
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <a> <b>",
		Short: "Add two decimal amounts",
		Long: `Add two decimal amounts and print the sum and status.

Amounts are decimal literals with at most two fractional digits and a
magnitude of at most 9999999.99. Put -- before negative operands so they
are not read as flags.

Exit codes:
  0 - Status 0
  1 - Non-zero status (size error)
  2 - Command error (invalid literal, journal failure)

Examples:
  fpadd add 12.34 0.66
  fpadd add -- -5.25 3.10
  fpadd add 9999999.99 0.01 --overflow saturate
  fpadd add 1 2 --db ./fpadd.db --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "journal the call to this SQLite database")

	return cmd
}

func runAdd(opts *AddOptions, litA, litB string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := formatter.Logger()

	ad, err := opts.newAdder()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --overflow", err)
	}

	a, err := fixed.Parse(litA)
	if err != nil {
		_ = formatter.Error(ErrCodeParse, fmt.Sprintf("operand a: %v", err), nil)
		return WrapExitError(ExitCommandError, "invalid operand a", err)
	}
	b, err := fixed.Parse(litB)
	if err != nil {
		_ = formatter.Error(ErrCodeParse, fmt.Sprintf("operand b: %v", err), nil)
		return WrapExitError(ExitCommandError, "invalid operand b", err)
	}

	res := ad.Add(a, b)
	logger.Debug("add", "a", a.String(), "b", b.String(), "sum", res.Sum.String(), "status", int(res.Status))

	var traceID string
	if opts.Database != "" {
		traceID, err = journalSingleCall(cmd.Context(), opts, a, b, ad.Policy(), res, logger)
		if err != nil {
			_ = formatter.Error(ErrCodeJournal, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to journal call", err)
		}
		logger.Debug("call journaled", "db", opts.Database, "run_id", traceID)
	}

	result := AddResult{A: a, B: b, Sum: res.Sum, Status: res.Status, Policy: ad.Policy()}

	if opts.Format == "json" {
		return outputAddJSON(cmd, result, traceID)
	}
	return outputAddText(cmd, result)
}

// journalSingleCall records one call under a new run and returns the run ID.
func journalSingleCall(ctx context.Context, opts *AddOptions, a, b fixed.Amount, policy adder.Policy, res adder.Result, logger *slog.Logger) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	j, rec, err := startJournalRun(ctx, opts.Database, "cli:add", policy, opts.RunIDs, logger)
	if err != nil {
		return "", err
	}
	defer j.Close()

	if _, err := rec.Record(ctx, a, b, res); err != nil {
		return "", err
	}
	return rec.Run().ID, nil
}

func outputAddJSON(cmd *cobra.Command, result AddResult, traceID string) error {
	response := CLIResponse{
		Status:  "ok",
		Data:    result,
		TraceID: traceID,
	}
	if !result.Status.OK() {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrCodeSizeError,
			Message: fmt.Sprintf("status %d (%s)", result.Status, result.Status),
		}
	}

	if err := encodeIndented(cmd, response); err != nil {
		return err
	}

	return statusExitError(result.Status)
}

func outputAddText(cmd *cobra.Command, result AddResult) error {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "sum:    %s\n", result.Sum.Format())
	fmt.Fprintf(w, "status: %d (%s)\n", result.Status, result.Status)
	return statusExitError(result.Status)
}

// statusExitError maps a non-zero status to ExitFailure.
func statusExitError(status adder.Status) error {
	if status.OK() {
		return nil
	}
	return NewExitError(ExitFailure, fmt.Sprintf("add returned status %d (%s)", status, status))
}
