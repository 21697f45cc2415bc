package validate

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/diagval/internal/render"
	"github.com/scan-io-git/diagval/internal/validator"
	"github.com/scan-io-git/diagval/pkg/shared/config"
	"github.com/scan-io-git/diagval/pkg/shared/errors"
	"github.com/scan-io-git/diagval/pkg/shared/logger"
)

// RunOptionsValidate holds the arguments for the validate command.
type RunOptionsValidate struct {
	Input            string
	StrictMode       bool
	AllowExtraFields bool
	Format           string
	Output           string
}

// Global variables for configuration and command arguments
var (
	AppConfig            *config.Config
	validateOptions      RunOptionsValidate
	exampleValidateUsage = `  # Validating a diagnostic document from a file
  diagval validate --input /path/to/result.json

  # Validating a document piped through stdin
  cat result.json | diagval validate --input -

  # Validating a remote document
  diagval validate --input https://ci.example.com/artifacts/result.json

  # Treating unknown properties as errors and emitting a JSON report
  diagval validate --input result.json --strict --format json`
)

// ValidateCmd represents the validate command.
var ValidateCmd = &cobra.Command{
	Use:                   "validate --input/-i {PATH|URL|-} [--strict] [--allow-extra-fields] [--format text|json] [--output/-o PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleValidateUsage,
	Short:                 "Validates a JSON document against the diagnostic-result format",
	RunE:                  runValidateCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runValidateCommand executes the validate command.
func runValidateCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "core-validate")

	if err := validateValidateArgs(&validateOptions, args); err != nil {
		logger.Error("invalid validate arguments", "error", err)
		return err
	}

	data, err := loadDocument(validateOptions.Input, logger)
	if err != nil {
		logger.Error("failed to load input document", "error", err)
		return errors.NewCommandError(err, errors.ExitFailure)
	}

	v := validator.New(resolveValidatorOptions(&validateOptions, AppConfig), logger)
	result := v.Validate(data)

	out, closeOut, err := openOutput(validateOptions.Output)
	if err != nil {
		logger.Error("failed to open output", "error", err)
		return errors.NewCommandError(err, errors.ExitFailure)
	}
	defer closeOut()

	colorize := validateOptions.Output == "" && validateOptions.Format == render.FormatText
	renderer := render.New(out, validateOptions.Format, colorize)
	if err := renderer.Validation(result); err != nil {
		logger.Error("failed to render report", "error", err)
		return errors.NewCommandError(err, errors.ExitFailure)
	}

	if !result.Valid {
		return errors.NewInvalidDocumentError(len(result.Errors))
	}

	logger.Debug("validate command completed", "warnings", len(result.Warnings))
	return nil
}

// openOutput returns the report writer: stdout by default, a file when
// requested.
func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return file, func() { file.Close() }, nil
}

// Initialize flags for the validate command.
func init() {
	ValidateCmd.Flags().StringVarP(&validateOptions.Input, "input", "i", "", "Path to the JSON document, a URL, or '-' for stdin.")
	ValidateCmd.Flags().BoolVar(&validateOptions.StrictMode, "strict", false, "Report unknown properties as errors instead of warnings.")
	ValidateCmd.Flags().BoolVar(&validateOptions.AllowExtraFields, "allow-extra-fields", false, "Silently accept properties the schema does not declare.")
	ValidateCmd.Flags().StringVarP(&validateOptions.Format, "format", "f", "text", "Report format: text or json.")
	ValidateCmd.Flags().StringVarP(&validateOptions.Output, "output", "o", "", "Path to write the report to instead of stdout.")
}
