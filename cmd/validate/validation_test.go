package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scan-io-git/diagval/internal/render"
)

func TestValidateValidateArgs(t *testing.T) {
	testCases := []struct {
		name    string
		options RunOptionsValidate
		args    []string
		wantErr bool
	}{
		{
			name:    "input flag",
			options: RunOptionsValidate{Input: "doc.json", Format: render.FormatText},
		},
		{
			name:    "positional argument",
			options: RunOptionsValidate{Format: render.FormatText},
			args:    []string{"doc.json"},
		},
		{
			name:    "stdin designator",
			options: RunOptionsValidate{Input: "-", Format: render.FormatJSON},
		},
		{
			name:    "missing input",
			options: RunOptionsValidate{Format: render.FormatText},
			wantErr: true,
		},
		{
			name:    "conflicting strictness flags",
			options: RunOptionsValidate{Input: "doc.json", StrictMode: true, AllowExtraFields: true, Format: render.FormatText},
			wantErr: true,
		},
		{
			name:    "unknown format",
			options: RunOptionsValidate{Input: "doc.json", Format: "yaml"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateValidateArgs(&tc.options, tc.args)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateValidateArgsAdoptsPositionalInput(t *testing.T) {
	options := RunOptionsValidate{Format: render.FormatText}
	if err := validateValidateArgs(&options, []string{"report.json"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if options.Input != "report.json" {
		t.Fatalf("expected positional argument to become the input, got %q", options.Input)
	}
}
