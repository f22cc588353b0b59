// =============================================================================
// Employee Records - Converter Module
// =============================================================================
//
// This module contains the driver pipeline. It turns a list of input files
// into one JSON file of employee records.
//
// CONVERSION PIPELINE:
//   1. Read every input file, in order, into one record collection
//      (CSV files line by line, .xlsx files from their first sheet)
//   2. Apply the requested report to every record (only "payout" exists)
//   3. Write the collection to the output file, if it holds any records
//
// An unreadable input file is reported on the diagnostic output and skipped;
// the remaining files are still read. A failure to write the output file is
// returned to the caller.
//
// =============================================================================

package converter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ginjaninja78/employee-records/internal/config"
	"github.com/ginjaninja78/employee-records/internal/csvparser"
	"github.com/ginjaninja78/employee-records/internal/jsonwriter"
	"github.com/ginjaninja78/employee-records/internal/payout"
	"github.com/ginjaninja78/employee-records/internal/types"
	"github.com/ginjaninja78/employee-records/internal/xlsxparser"
	"github.com/ginjaninja78/employee-records/pkg/utils"
	"go.uber.org/zap"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one run.
type Result struct {
	// OutputFile is the path the records were written to.
	// This is empty if nothing was written.
	OutputFile string

	// Records holds the collected records, in input order.
	Records []*types.Record

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// FilesRead is the number of input files read without a failure.
	FilesRead int

	// FilesFailed is the number of input files that could not be read.
	FilesFailed int

	// RecordsRead is the number of records collected from all files.
	RecordsRead int

	// PayoutsComputed is the number of payouts computed without a failure.
	PayoutsComputed int

	// ProcessingTime is the time taken by the run.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter runs the pipeline with a fixed configuration.
type Converter struct {
	// config is the application configuration.
	config *config.MainConfig

	// out receives the diagnostic lines.
	out io.Writer

	// logger is used for operational logging.
	logger *zap.Logger

	// parser reads CSV input files.
	parser *csvparser.Parser
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter instance.
//
// PARAMETERS:
//   - cfg: The application configuration. Nil means the defaults.
//   - out: The diagnostic output. Nil means standard output.
//   - logger: The logger. Nil disables logging.
func New(cfg *config.MainConfig, out io.Writer, logger *zap.Logger) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		config: cfg,
		out:    out,
		logger: logger,
		parser: csvparser.NewParser(out, logger),
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline.
//
// PARAMETERS:
//   - files: The input files, read in this order.
//   - report: The report to apply. "payout" attaches a payout field to every
//     record; any other value, including "", applies nothing.
//
// RETURNS:
//   - A Result describing the run.
//   - An error if the payout pattern is invalid or the output cannot be
//     written.
func (c *Converter) Run(files []string, report string) (Result, error) {
	startTime := time.Now()
	result := Result{Records: []*types.Record{}}

	// =========================================================================
	// STEP 1: READ INPUT FILES
	// =========================================================================

	for _, file := range files {
		records, err := c.readSource(file)
		if err != nil {
			c.logger.Debug("Input file not read", zap.String("path", file), zap.Error(err))
			fmt.Fprintln(c.out, csvparser.MsgUnreadable)
			result.Stats.FilesFailed++
		} else {
			result.Stats.FilesRead++
		}
		result.Records = append(result.Records, records...)
	}

	result.Stats.RecordsRead = len(result.Records)

	// =========================================================================
	// STEP 2: APPLY REPORT
	// =========================================================================

	switch report {
	case "":
	case payout.ReportName:
		calc, err := payout.NewCalculator(c.config.PayoutPattern, c.out, c.logger)
		if err != nil {
			return result, err
		}
		result.Stats.PayoutsComputed = calc.Apply(result.Records)
	default:
		c.logger.Warn("Unknown report ignored", zap.String("report", report))
	}

	// =========================================================================
	// STEP 3: WRITE OUTPUT
	// =========================================================================

	if len(result.Records) > 0 {
		outputPath := utils.GenerateOutputFileName(c.config.OutputPath, nil)
		if utils.FileExists(outputPath) {
			c.logger.Debug("Replacing existing output file", zap.String("path", outputPath))
		}

		options := jsonwriter.DefaultGenerateOptions()
		options.Indent = c.config.IndentWidth()

		if err := jsonwriter.Write(outputPath, result.Records, options); err != nil {
			return result, err
		}
		result.OutputFile = outputPath
	}

	result.Stats.ProcessingTime = time.Since(startTime)

	c.logger.Info("Run complete",
		zap.Int("files_read", result.Stats.FilesRead),
		zap.Int("files_failed", result.Stats.FilesFailed),
		zap.Int("records", result.Stats.RecordsRead),
		zap.Int("payouts", result.Stats.PayoutsComputed),
		zap.String("output", result.OutputFile),
		zap.Duration("elapsed", result.Stats.ProcessingTime))

	return result, nil
}

// readSource reads one input file, choosing the reader by file extension.
// A file that fails part way through contributes no records.
func (c *Converter) readSource(file string) ([]*types.Record, error) {
	var (
		data *csvparser.CSVData
		err  error
	)

	if xlsxparser.IsWorkbook(file) {
		data, err = xlsxparser.Parse(file)
	} else {
		data, err = c.parser.Read(file)
	}

	if err != nil {
		return nil, err
	}
	return data.Rows, nil
}
