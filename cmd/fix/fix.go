package fix

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/diagval/internal/fixer"
	"github.com/scan-io-git/diagval/internal/render"
	"github.com/scan-io-git/diagval/internal/validator"
	"github.com/scan-io-git/diagval/pkg/shared/config"
	"github.com/scan-io-git/diagval/pkg/shared/errors"
	"github.com/scan-io-git/diagval/pkg/shared/files"
	"github.com/scan-io-git/diagval/pkg/shared/logger"
)

// RunOptionsFix holds the arguments for the fix command.
type RunOptionsFix struct {
	Input            string
	StrictMode       bool
	AllowExtraFields bool
	Level            string
	Format           string
	Output           string
}

// Global variables for configuration and command arguments
var (
	AppConfig       *config.Config
	fixOptions      RunOptionsFix
	exampleFixUsage = `  # Repairing an invalid document and writing the result next to it
  diagval fix --input broken.json --output fixed.json

  # Aggressive repairs (clamping out-of-range values, filling empty strings)
  diagval fix --input broken.json --level aggressive --output fixed.json

  # Emitting a machine-readable fix report including the repaired document
  diagval fix --input broken.json --format json`
)

// FixCmd represents the fix command.
var FixCmd = &cobra.Command{
	Use:                   "fix --input/-i {PATH|URL|-} [--level basic|aggressive] [--format text|json] [--output/-o PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleFixUsage,
	Short:                 "Validates a JSON document and repairs it with deterministic transformations",
	RunE:                  runFixCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runFixCommand executes the fix command.
func runFixCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "core-fix")

	if err := validateFixArgs(&fixOptions, args); err != nil {
		logger.Error("invalid fix arguments", "error", err)
		return err
	}

	data, err := loadDocument(fixOptions.Input, logger)
	if err != nil {
		logger.Error("failed to load input document", "error", err)
		return errors.NewCommandError(err, errors.ExitFailure)
	}

	v := validator.New(resolveValidatorOptions(&fixOptions, AppConfig), logger)
	validation := v.Validate(data)

	f := fixer.New(resolveFixLevel(&fixOptions, AppConfig), logger)
	fixResult := f.Fix(data, validation)
	revalidation := v.Validate(fixResult.Data)

	colorize := fixOptions.Format == render.FormatText
	renderer := render.New(os.Stdout, fixOptions.Format, colorize)
	if err := renderer.Fix(fixResult, revalidation); err != nil {
		logger.Error("failed to render report", "error", err)
		return errors.NewCommandError(err, errors.ExitFailure)
	}

	if fixOptions.Output != "" {
		encoded, err := json.MarshalIndent(fixResult.Data, "", "  ")
		if err != nil {
			logger.Error("failed to encode repaired document", "error", err)
			return errors.NewCommandError(err, errors.ExitFailure)
		}
		if err := files.WriteJsonFile(fixOptions.Output, append(encoded, '\n')); err != nil {
			logger.Error("failed to write repaired document", "error", err)
			return errors.NewCommandError(err, errors.ExitFailure)
		}
		logger.Info("repaired document written", "path", fixOptions.Output, "fixes", len(fixResult.AppliedFixes))
	}

	if !revalidation.Valid {
		return errors.NewCommandError(
			fmt.Errorf("document is still invalid after %d fix(es): %d error(s) remain",
				len(fixResult.AppliedFixes), len(revalidation.Errors)),
			errors.ExitFailure)
	}

	return nil
}

// Initialize flags for the fix command.
func init() {
	FixCmd.Flags().StringVarP(&fixOptions.Input, "input", "i", "", "Path to the JSON document, a URL, or '-' for stdin.")
	FixCmd.Flags().BoolVar(&fixOptions.StrictMode, "strict", false, "Report unknown properties as errors instead of warnings.")
	FixCmd.Flags().BoolVar(&fixOptions.AllowExtraFields, "allow-extra-fields", false, "Silently accept properties the schema does not declare.")
	FixCmd.Flags().StringVarP(&fixOptions.Level, "level", "l", "", "Fix level: basic (safe repairs) or aggressive (may alter semantics).")
	FixCmd.Flags().StringVarP(&fixOptions.Format, "format", "f", "text", "Report format: text or json.")
	FixCmd.Flags().StringVarP(&fixOptions.Output, "output", "o", "", "Path to write the repaired JSON document to.")
}
