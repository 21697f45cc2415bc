package fix

import (
	"fmt"

	"github.com/scan-io-git/diagval/internal/fixer"
	"github.com/scan-io-git/diagval/internal/render"
)

// validateFixArgs validates the arguments provided to the fix command.
func validateFixArgs(options *RunOptionsFix, args []string) error {
	if options.Input == "" && len(args) > 0 {
		options.Input = args[0]
	}
	if options.Input == "" {
		return fmt.Errorf("either the 'input' flag or a document path must be specified")
	}

	switch fixer.Level(options.Level) {
	case "", fixer.LevelBasic, fixer.LevelAggressive:
	default:
		return fmt.Errorf("the 'level' flag must be 'basic' or 'aggressive', got %q", options.Level)
	}

	if options.Format != render.FormatText && options.Format != render.FormatJSON {
		return fmt.Errorf("the 'format' flag must be 'text' or 'json', got %q", options.Format)
	}

	return nil
}
