package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/fpadd/internal/fixed"
	"github.com/roach88/fpadd/internal/harness"
)

// ScenarioError is one invalid scenario file.
type ScenarioError struct {
	File    string `json:"file"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool            `json:"valid"`
	Files  int             `json:"files"`
	Errors []ScenarioError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenarios-dir>",
		Short: "Validate scenario files without running them",
		Long: `Check every scenario file against the scenario schema.

Performs schema validation, strict field checking and amount literal
checks without running any case. Faster than test for editing feedback.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, scenariosDir string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if info, err := os.Stat(scenariosDir); err != nil || !info.IsDir() {
		msg := fmt.Sprintf("scenarios directory not found: %s", scenariosDir)
		_ = formatter.Error(ErrCodeNotFound, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	files, err := findScenarioFiles(scenariosDir, "")
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to find scenarios", err)
	}

	result := ValidationResult{Files: len(files)}
	for _, f := range files {
		formatter.VerboseLog("Validating %s", f)
		if _, err := harness.LoadScenario(f); err != nil {
			rel, relErr := filepath.Rel(scenariosDir, f)
			if relErr != nil {
				rel = f
			}
			result.Errors = append(result.Errors, ScenarioError{
				File:    rel,
				Code:    scenarioErrorCode(err),
				Message: err.Error(),
			})
		}
	}
	result.Valid = len(result.Errors) == 0

	if !result.Valid {
		return outputValidationErrors(formatter, result)
	}
	return outputValidateSuccess(formatter, result)
}

// scenarioErrorCode classifies a LoadScenario error.
func scenarioErrorCode(err error) string {
	var se *harness.SchemaError
	if errors.As(err, &se) {
		return ErrCodeSchema
	}
	var pe *fixed.ParseError
	if errors.As(err, &pe) {
		return ErrCodeParse
	}
	return ErrCodeGeneric
}

func outputValidationErrors(f *OutputFormatter, result ValidationResult) error {
	if f.Format == "json" {
		if err := f.Error(ErrCodeSchema,
			fmt.Sprintf("%d invalid scenario file(s)", len(result.Errors)), result); err != nil {
			return err
		}
	} else {
		for _, e := range result.Errors {
			fmt.Fprintf(f.Writer, "✗ %s [%s]: %s\n", e.File, e.Code, e.Message)
		}
		fmt.Fprintf(f.Writer, "\n%d of %d scenario file(s) invalid\n", len(result.Errors), result.Files)
	}
	return NewExitError(ExitFailure, "validation failed")
}

func outputValidateSuccess(f *OutputFormatter, result ValidationResult) error {
	if f.Format == "json" {
		return f.Success(result)
	}
	if result.Files == 0 {
		fmt.Fprintln(f.Writer, "No scenarios found.")
		return nil
	}
	fmt.Fprintf(f.Writer, "✓ %d scenario file(s) valid\n", result.Files)
	return nil
}
