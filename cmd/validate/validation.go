package validate

import (
	"fmt"

	"github.com/scan-io-git/diagval/internal/render"
)

// validateValidateArgs validates the arguments provided to the validate command.
func validateValidateArgs(options *RunOptionsValidate, args []string) error {
	if options.Input == "" && len(args) > 0 {
		options.Input = args[0]
	}
	if options.Input == "" {
		return fmt.Errorf("either the 'input' flag or a document path must be specified")
	}

	if options.StrictMode && options.AllowExtraFields {
		return fmt.Errorf("'strict' and 'allow-extra-fields' cannot be used together")
	}

	if options.Format != render.FormatText && options.Format != render.FormatJSON {
		return fmt.Errorf("the 'format' flag must be 'text' or 'json', got %q", options.Format)
	}

	return nil
}
