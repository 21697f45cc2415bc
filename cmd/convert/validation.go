package convert

import (
	"fmt"

	"github.com/scan-io-git/diagval/internal/fixer"
)

// validateConvertArgs validates the arguments provided to the convert command.
func validateConvertArgs(options *RunOptionsConvert, args []string) error {
	if options.Input == "" && len(args) > 0 {
		options.Input = args[0]
	}
	if options.Input == "" {
		return fmt.Errorf("either the 'input' flag or a document path must be specified")
	}

	if options.Level != "" && !options.Fix {
		return fmt.Errorf("the 'level' flag requires 'fix'")
	}

	switch fixer.Level(options.Level) {
	case "", fixer.LevelBasic, fixer.LevelAggressive:
	default:
		return fmt.Errorf("the 'level' flag must be 'basic' or 'aggressive', got %q", options.Level)
	}

	return nil
}
