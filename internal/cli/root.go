package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/fpadd/internal/adder"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Overflow string // "status" | "saturate" | "truncate"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the fpadd CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "fpadd",
		Short: "Fixed-point decimal adder",
		Long: `Add two signed fixed-point decimals (seven integer digits, two
fractional digits) and report the sum with a status code.

Status 0 means success. Status 8 means the sum does not fit the picture;
--overflow chooses whether that is reported, saturated or truncated.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if _, err := adder.ParsePolicy(opts.Overflow); err != nil {
				return WrapExitError(ExitCommandError, "invalid --overflow", err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Overflow, "overflow", string(adder.PolicyStatus),
		"overflow policy (status|saturate|truncate)")

	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewCallCommand(opts))
	cmd.AddCommand(NewJournalCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

// newAdder builds the adder selected by --overflow.
func (o *RootOptions) newAdder() (*adder.Adder, error) {
	policy, err := adder.ParsePolicy(o.Overflow)
	if err != nil {
		return nil, err
	}
	return adder.New(adder.WithPolicy(policy)), nil
}

// formatter builds the OutputFormatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
