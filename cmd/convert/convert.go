package convert

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/diagval/internal/diag"
	"github.com/scan-io-git/diagval/internal/fixer"
	"github.com/scan-io-git/diagval/internal/sarif"
	"github.com/scan-io-git/diagval/internal/validator"
	"github.com/scan-io-git/diagval/pkg/shared/config"
	"github.com/scan-io-git/diagval/pkg/shared/errors"
	"github.com/scan-io-git/diagval/pkg/shared/logger"
)

// RunOptionsConvert holds the arguments for the convert command.
type RunOptionsConvert struct {
	Input  string
	Output string
	Fix    bool
	Level  string
}

// Global variables for configuration and command arguments
var (
	AppConfig           *config.Config
	convertOptions      RunOptionsConvert
	exampleConvertUsage = `  # Converting a valid diagnostic document to SARIF
  diagval convert --input result.json --output result.sarif

  # Repairing an invalid document before conversion
  diagval convert --input broken.json --fix --level aggressive --output result.sarif`
)

// ConvertCmd represents the convert command.
var ConvertCmd = &cobra.Command{
	Use:                   "convert --input/-i {PATH|URL|-} [--fix] [--level basic|aggressive] [--output/-o PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleConvertUsage,
	Short:                 "Converts a diagnostic-result JSON document into a SARIF 2.1.0 report",
	RunE:                  runConvertCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runConvertCommand executes the convert command.
func runConvertCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "core-convert")

	if err := validateConvertArgs(&convertOptions, args); err != nil {
		logger.Error("invalid convert arguments", "error", err)
		return err
	}

	data, err := loadDocument(convertOptions.Input, logger)
	if err != nil {
		logger.Error("failed to load input document", "error", err)
		return errors.NewCommandError(err, errors.ExitFailure)
	}

	v := validator.New(validator.Options{}, logger)
	validation := v.Validate(data)

	if !validation.Valid {
		if !convertOptions.Fix {
			logger.Error("document is invalid; re-run with --fix to repair before conversion",
				"errors", len(validation.Errors))
			return errors.NewInvalidDocumentError(len(validation.Errors))
		}

		f := fixer.New(resolveFixLevel(&convertOptions, AppConfig), logger)
		fixResult := f.Fix(data, validation)
		revalidation := v.Validate(fixResult.Data)
		if !revalidation.Valid {
			logger.Error("document is still invalid after repair; refusing to convert",
				"applied", len(fixResult.AppliedFixes), "remaining", len(revalidation.Errors))
			return errors.NewInvalidDocumentError(len(revalidation.Errors))
		}
		logger.Info("document repaired before conversion", "fixes", len(fixResult.AppliedFixes))
		data = fixResult.Data
	}

	result, err := diag.Normalize(data)
	if err != nil {
		logger.Error("failed to normalize document", "error", err)
		return errors.NewCommandError(err, errors.ExitFailure)
	}

	report, err := sarif.NewConverter(logger).Convert(result)
	if err != nil {
		logger.Error("failed to convert document", "error", err)
		return errors.NewCommandError(err, errors.ExitFailure)
	}

	out := os.Stdout
	if convertOptions.Output != "" {
		file, err := os.Create(convertOptions.Output)
		if err != nil {
			logger.Error("failed to create output file", "error", err)
			return errors.NewCommandError(err, errors.ExitFailure)
		}
		defer file.Close()
		out = file
	}
	if err := report.PrettyWrite(out); err != nil {
		logger.Error("failed to write SARIF report", "error", err)
		return errors.NewCommandError(fmt.Errorf("failed to write SARIF report: %w", err), errors.ExitFailure)
	}

	logger.Info("convert command completed successfully", "diagnostics", len(result.Diagnostics))
	return nil
}

// Initialize flags for the convert command.
func init() {
	ConvertCmd.Flags().StringVarP(&convertOptions.Input, "input", "i", "", "Path to the JSON document, a URL, or '-' for stdin.")
	ConvertCmd.Flags().StringVarP(&convertOptions.Output, "output", "o", "", "Path to write the SARIF report to instead of stdout.")
	ConvertCmd.Flags().BoolVar(&convertOptions.Fix, "fix", false, "Repair an invalid document before converting it.")
	ConvertCmd.Flags().StringVarP(&convertOptions.Level, "level", "l", "", "Fix level used with --fix: basic or aggressive.")
}
