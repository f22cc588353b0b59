// =============================================================================
// Employee Records - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The tool has a single
// command: every positional argument is an input file.
//
// COMMAND USAGE:
//   employees <filename>... [--report payout]
//
// FLAGS:
//   --report   : Report to attach to every record (only "payout" is defined)
//   --output   : Output file (default output.json, or output_path from config)
//   --config   : Optional YAML configuration file
//   --verbose  : Enable debug logging on standard error
//   --version  : Display the application version
//
// EXIT CODES:
//   0 : Success
//   1 : Runtime failure (configuration, output file)
//   2 : Usage error (no input file, unknown flag, missing flag value)
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// usageError marks errors caused by invalid command-line usage.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// options holds the flag values of one invocation.
type options struct {
	// report is the report name given with --report.
	report string

	// output overrides the configured output file.
	output string

	// cfgFile is the path to the optional configuration file.
	cfgFile string

	// verbose enables debug logging.
	verbose bool
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// newRootCmd builds the root command. Diagnostics go to stdout; logs, errors
// and usage go to stderr.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "employees <file.csv|file.xlsx>... [--report payout]",
		Short: "Collect employee CSV files into a JSON report",
		Long: `employees reads one or more CSV files of employee records and writes all
records, in argument order, to a single JSON file.

The first line of every CSV file holds the field names; each following line
holds one employee. Files ending in .xlsx are read from their first sheet.

With --report payout, every record gets a "payout" field: hours_worked
multiplied by the first field whose name contains hourly_rate, rate or salary.

Example Usage:
  employees data1.csv data2.csv                  # Merge into output.json
  employees data1.csv data2.csv --report payout  # Add payouts`,

		Version: Version,

		Args: requireFiles,

		SilenceErrors: true,
		SilenceUsage:  true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, args, stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate(versionTemplate)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	cmd.Flags().StringVar(
		&opts.report,
		"report",
		"",
		"Report name (payout)",
	)

	cmd.Flags().StringVarP(
		&opts.output,
		"output",
		"o",
		"",
		"Output JSON file (default output.json)",
	)

	cmd.Flags().StringVar(
		&opts.cfgFile,
		"config",
		"",
		"Path to an optional YAML configuration file",
	)

	cmd.Flags().BoolVarP(
		&opts.verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	return cmd
}

// requireFiles accepts one or more positional file paths.
func requireFiles(_ *cobra.Command, args []string) error {
	if len(args) < 1 {
		return &usageError{err: errors.New("the following arguments are required: filenames")}
	}
	return nil
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI with the process arguments and exits.
// This is called by main.main().
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the root command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return exitOK
	}

	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(stderr, cmd.UsageString())
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitFailure
}
