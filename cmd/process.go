// =============================================================================
// Employee Records - Processing
// =============================================================================
//
// This file holds the work done by the root command once the arguments are
// valid. It wires the configuration, the logger and the converter together.
//
// PROCESSING PIPELINE:
//   1. Load the configuration (defaults, then --config file, then flags)
//   2. Build the logger (standard error, JSON, tagged with a run id)
//   3. Read every input file into one record collection
//   4. Apply the requested report
//   5. Write the collection to the output file
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"

	"github.com/ginjaninja78/employee-records/internal/config"
	"github.com/ginjaninja78/employee-records/internal/converter"
	"github.com/ginjaninja78/employee-records/pkg/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runConvert loads the configuration and runs the converter.
func runConvert(opts *options, files []string, stdout, stderr io.Writer) error {
	cfg, err := config.LoadMainConfig(opts.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.output != "" {
		cfg.OutputPath = opts.output
	}

	level := cfg.Level()
	if opts.verbose {
		level = zapcore.DebugLevel
	}
	logger := newLogger(stderr, level).With(zap.String("run_id", utils.NewRunID()))
	defer func() { _ = logger.Sync() }()

	logger.Debug("Starting run",
		zap.Strings("files", files),
		zap.String("report", opts.report),
		zap.String("output", cfg.OutputPath))

	conv := converter.New(cfg, stdout, logger)
	if _, err := conv.Run(files, opts.report); err != nil {
		logger.Error("Run failed", zap.Error(err))
		return err
	}

	return nil
}

// newLogger builds a logger from the zap production configuration, with its
// output redirected to w.
func newLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Sampling = nil

	logger, err := cfg.Build(zap.WrapCore(func(zapcore.Core) zapcore.Core {
		return zapcore.NewCore(zapcore.NewJSONEncoder(cfg.EncoderConfig), zapcore.AddSync(w), cfg.Level)
	}))
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
