package fix

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scan-io-git/diagval/internal/render"
)

func TestValidateFixArgs(t *testing.T) {
	testCases := []struct {
		name    string
		options RunOptionsFix
		args    []string
		wantErr bool
	}{
		{
			name:    "input with default level",
			options: RunOptionsFix{Input: "doc.json", Format: render.FormatText},
		},
		{
			name:    "basic level",
			options: RunOptionsFix{Input: "doc.json", Level: "basic", Format: render.FormatText},
		},
		{
			name:    "aggressive level",
			options: RunOptionsFix{Input: "doc.json", Level: "aggressive", Format: render.FormatJSON},
		},
		{
			name:    "positional argument",
			options: RunOptionsFix{Format: render.FormatText},
			args:    []string{"doc.json"},
		},
		{
			name:    "missing input",
			options: RunOptionsFix{Format: render.FormatText},
			wantErr: true,
		},
		{
			name:    "unknown level",
			options: RunOptionsFix{Input: "doc.json", Level: "paranoid", Format: render.FormatText},
			wantErr: true,
		},
		{
			name:    "unknown format",
			options: RunOptionsFix{Input: "doc.json", Format: "yaml"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateFixArgs(&tc.options, tc.args)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
