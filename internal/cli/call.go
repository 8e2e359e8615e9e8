package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/fpadd/internal/adder"
	"github.com/roach88/fpadd/internal/journal"
	"github.com/roach88/fpadd/internal/linkage"
)

// CallOptions holds flags for the call command.
type CallOptions struct {
	*RootOptions
	Input    string
	Database string

	// RunIDs allows overriding the run ID generator (for testing).
	// If nil, defaults to journal.UUIDv7Generator.
	RunIDs journal.RunIDGenerator
}

// RecordFailure describes an input line that could not be processed.
type RecordFailure struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// CallResult holds the outcome of a call stream.
type CallResult struct {
	Records   []string        `json:"records"`
	Processed int             `json:"processed"`
	Failed    int             `json:"failed"`
	Failures  []RecordFailure `json:"failures,omitempty"`
}

// NewCallCommand creates the call command.
func NewCallCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CallOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "call",
		Short: "Process linkage records",
		Long: fmt.Sprintf(`Read linkage records, one per line, and write each record back with
the sum and status fields filled in.

A record is %d bytes of zoned decimal: a, b and sum (9 digits each) and
status (4 digits), signs overpunched on the last digit. Output fields on
input are ignored. Blank lines are skipped; lines longer than %d bytes
count as malformed records.

Exit codes:
  0 - Every record processed (inspect each status field)
  1 - One or more malformed records
  2 - Command error (unreadable input, journal failure)

Examples:
  fpadd call < records.txt
  fpadd call --input records.txt --db ./fpadd.db
  fpadd call --input records.txt --format json`, linkage.RecordLen, maxRecordLine),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "read records from file instead of stdin")
	cmd.Flags().StringVar(&opts.Database, "db", "", "journal every call to this SQLite database")

	return cmd
}

func runCall(opts *CallOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)
	logger := formatter.Logger()

	ad, err := opts.newAdder()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --overflow", err)
	}

	in := cmd.InOrStdin()
	if opts.Input != "" {
		f, err := os.Open(opts.Input)
		if err != nil {
			_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to open input", err)
		}
		defer f.Close()
		in = f
	}

	var rec *journal.Recorder
	if opts.Database != "" {
		j, r, err := startJournalRun(ctx, opts.Database, "cli:call", ad.Policy(), opts.RunIDs, logger)
		if err != nil {
			_ = formatter.Error(ErrCodeJournal, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer j.Close()
		rec = r
	}

	// Text output streams; JSON output is buffered into one envelope.
	var stream io.Writer
	if opts.Format != "json" {
		stream = cmd.OutOrStdout()
	}

	result, err := processRecords(ctx, ad, rec, in, stream, opts.Format == "json")
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to process records", err)
	}

	for _, f := range result.Failures {
		logger.Warn("malformed record", "line", f.Line, "error", f.Message)
	}
	logger.Debug("call stream finished", "processed", result.Processed, "failed", result.Failed)

	if opts.Format == "json" {
		var traceID string
		if rec != nil {
			traceID = rec.Run().ID
		}
		if err := formatter.SuccessWithTrace(result, traceID); err != nil {
			return err
		}
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d malformed record(s)", result.Failed))
	}
	return nil
}

// processRecords runs every record in r through ad. Processed records are
// written to stream as they are produced when stream is non-nil, and kept
// in the result when keep is set. Malformed records are counted, not fatal;
// a returned error means reading, writing or journaling failed.
func processRecords(ctx context.Context, ad *adder.Adder, rec *journal.Recorder, r io.Reader, stream io.Writer, keep bool) (CallResult, error) {
	result := CallResult{Records: []string{}}

	br := bufio.NewReaderSize(r, maxRecordLine)
	line := 0
	for {
		record, tooLong, err := readRecordLine(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, fmt.Errorf("read records: %w", err)
		}
		line++

		if tooLong {
			result.Failed++
			result.Failures = append(result.Failures, RecordFailure{
				Line:    line,
				Message: fmt.Sprintf("line exceeds %d bytes", maxRecordLine),
			})
			continue
		}
		record = bytes.TrimRight(record, "\r")
		if len(bytes.TrimSpace(record)) == 0 {
			continue
		}

		out, err := linkage.Process(ad, record)
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, RecordFailure{Line: line, Message: err.Error()})
			continue
		}
		result.Processed++

		if rec != nil {
			p, err := linkage.Decode(out)
			if err != nil {
				return result, fmt.Errorf("line %d: %w", line, err)
			}
			if _, err := rec.Record(ctx, p.A, p.B, adder.Result{Sum: p.Sum, Status: p.Status}); err != nil {
				return result, fmt.Errorf("line %d: %w", line, err)
			}
		}

		if stream != nil {
			if _, err := fmt.Fprintf(stream, "%s\n", out); err != nil {
				return result, err
			}
		}
		if keep {
			result.Records = append(result.Records, string(out))
		}
	}
	return result, nil
}

// maxRecordLine bounds one input line. Longer lines are drained and
// reported as malformed without buffering them.
const maxRecordLine = 4096

// readRecordLine returns the next line without its line ending. tooLong is
// set when the line did not fit in br's buffer; the rest of it is skipped.
// io.EOF is returned only when no further line exists.
func readRecordLine(br *bufio.Reader) (record []byte, tooLong bool, err error) {
	record, isPrefix, err := br.ReadLine()
	if err != nil {
		return nil, false, err
	}
	if !isPrefix {
		return record, false, nil
	}
	for isPrefix {
		if _, isPrefix, err = br.ReadLine(); err != nil {
			if err == io.EOF {
				return nil, true, nil
			}
			return nil, true, err
		}
	}
	return nil, true, nil
}
