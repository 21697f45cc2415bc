package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/scan-io-git/diagval/internal/fixer"
	"github.com/scan-io-git/diagval/internal/validator"
)

// Format selects the report rendering.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	warnLabel    = color.New(color.FgYellow)
	okLabel      = color.New(color.FgGreen, color.Bold)
	fixLabel     = color.New(color.FgCyan)
	pathSegment  = color.New(color.FgWhite, color.Bold)
	mutedSegment = color.New(color.Faint)
)

// Renderer writes human- or machine-readable reports for validation and fix
// outcomes.
type Renderer struct {
	out      io.Writer
	format   string
	colorize bool
}

// New creates a Renderer. Color codes are emitted only for text format with
// colorize enabled.
func New(out io.Writer, format string, colorize bool) *Renderer {
	if format == "" {
		format = FormatText
	}
	return &Renderer{out: out, format: format, colorize: colorize}
}

// ValidationReport is the JSON shape of a rendered validation outcome.
type ValidationReport struct {
	Valid    bool                        `json:"valid"`
	Errors   []validator.ValidationError `json:"errors"`
	Warnings []validator.Warning         `json:"warnings"`
}

// FixReport is the JSON shape of a rendered fix outcome. Data carries the
// repaired document.
type FixReport struct {
	Valid           bool                        `json:"valid"`
	AppliedFixes    []fixer.AppliedFix          `json:"applied_fixes"`
	RemainingErrors []validator.ValidationError `json:"remaining_errors"`
	Warnings        []validator.Warning         `json:"warnings"`
	Data            interface{}                 `json:"data,omitempty"`
}

// Validation writes a report for one validation result.
func (r *Renderer) Validation(result *validator.Result) error {
	if r.format == FormatJSON {
		return r.writeJSON(ValidationReport{
			Valid:    result.Valid,
			Errors:   result.Errors,
			Warnings: result.Warnings,
		})
	}

	if result.Valid {
		r.printf("%s document is valid\n", r.paint(okLabel, "OK"))
	} else {
		r.printf("%s document is invalid: %d error(s)\n", r.paint(errorLabel, "FAIL"), len(result.Errors))
	}
	for _, err := range result.Errors {
		r.printf("  %s %s %s %s\n",
			r.paint(errorLabel, "error"),
			r.paint(pathSegment, displayPath(err.Path)),
			r.paint(mutedSegment, string(err.Code)),
			err.Message)
	}
	for _, warning := range result.Warnings {
		r.printf("  %s %s %s %s\n",
			r.paint(warnLabel, "warning"),
			r.paint(pathSegment, displayPath(warning.Path)),
			r.paint(mutedSegment, string(warning.Code)),
			warning.Message)
	}
	return nil
}

// Fix writes a report for one repair outcome, including the re-validation of
// the repaired document.
func (r *Renderer) Fix(fixResult *fixer.Result, revalidation *validator.Result) error {
	if r.format == FormatJSON {
		return r.writeJSON(FixReport{
			Valid:           revalidation.Valid,
			AppliedFixes:    fixResult.AppliedFixes,
			RemainingErrors: fixResult.RemainingErrors,
			Warnings:        revalidation.Warnings,
			Data:            fixResult.Data,
		})
	}

	for _, fix := range fixResult.AppliedFixes {
		r.printf("  %s %s %s\n",
			r.paint(fixLabel, "fixed"),
			r.paint(pathSegment, displayPath(fix.Path)),
			fix.Message)
	}
	for _, err := range fixResult.RemainingErrors {
		r.printf("  %s %s %s %s\n",
			r.paint(errorLabel, "unfixed"),
			r.paint(pathSegment, displayPath(err.Path)),
			r.paint(mutedSegment, string(err.Code)),
			err.Message)
	}
	if revalidation.Valid {
		r.printf("%s repaired document is valid (%d fix(es) applied)\n",
			r.paint(okLabel, "OK"), len(fixResult.AppliedFixes))
	} else {
		r.printf("%s document is still invalid after %d fix(es): %d error(s) remain\n",
			r.paint(errorLabel, "FAIL"), len(fixResult.AppliedFixes), len(fixResult.RemainingErrors))
	}
	return nil
}

func (r *Renderer) writeJSON(report interface{}) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

func (r *Renderer) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *Renderer) paint(c *color.Color, s string) string {
	if !r.colorize {
		return s
	}
	return c.Sprint(s)
}

func displayPath(path string) string {
	if path == "" {
		return "$"
	}
	return path
}
