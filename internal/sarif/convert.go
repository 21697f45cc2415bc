package sarif

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/scan-io-git/diagval/internal/diag"
)

const (
	defaultToolName = "diagval"
	defaultRuleID   = "diagnostic"
)

// Converter turns normalized diagnostic results into SARIF 2.1.0 reports.
type Converter struct {
	logger hclog.Logger
}

// NewConverter creates a Converter.
func NewConverter(logger hclog.Logger) *Converter {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Converter{logger: logger}
}

// Convert builds a SARIF report from a diagnostic result. The tool driver is
// taken from the result-level source when present, falling back to the first
// diagnostic-level source and finally to a generic driver name.
func (c *Converter) Convert(result *diag.Result) (*sarif.Report, error) {
	if result == nil {
		return nil, fmt.Errorf("cannot convert a nil diagnostic result")
	}

	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	toolName, toolURL := toolIdentity(result)
	run := sarif.NewRunWithInformationURI(toolName, toolURL)
	run.Properties = sarif.Properties{
		"runId": uuid.New().String(),
	}

	seenRules := make(map[string]bool)
	for _, diagnostic := range result.Diagnostics {
		ruleID := defaultRuleID
		if diagnostic.Code != nil && diagnostic.Code.Value != "" {
			ruleID = diagnostic.Code.Value
		}
		if !seenRules[ruleID] {
			rule := run.AddRule(ruleID).WithDescription(ruleDescription(diagnostic))
			if diagnostic.Code != nil && diagnostic.Code.URL != "" {
				rule.WithHelpURI(diagnostic.Code.URL)
			}
			seenRules[ruleID] = true
		}

		severity := diagnostic.Severity
		if severity == "" {
			severity = result.Severity
		}

		sarifResult := sarif.NewRuleResult(ruleID).
			WithMessage(sarif.NewTextMessage(diagnostic.Message)).
			WithLevel(toSarifLevel(severity)).
			WithLocations([]*sarif.Location{toSarifLocation(diagnostic.Location)})
		if diagnostic.OriginalOutput != "" {
			sarifResult.Properties = sarif.Properties{
				"originalOutput": diagnostic.OriginalOutput,
			}
		}
		run.AddResult(sarifResult)
	}

	report.AddRun(run)
	c.logger.Debug("converted diagnostics to SARIF", "results", len(result.Diagnostics), "tool", toolName)
	return report, nil
}

// toolIdentity picks the driver name and information URI for the SARIF run.
func toolIdentity(result *diag.Result) (string, string) {
	if result.Source != nil && result.Source.Name != "" {
		return result.Source.Name, result.Source.URL
	}
	for _, diagnostic := range result.Diagnostics {
		if diagnostic.Source != nil && diagnostic.Source.Name != "" {
			return diagnostic.Source.Name, diagnostic.Source.URL
		}
	}
	return defaultToolName, ""
}

func ruleDescription(diagnostic diag.Diagnostic) string {
	if diagnostic.Code != nil && diagnostic.Code.Value != "" {
		return diagnostic.Code.Value
	}
	return diagnostic.Message
}

func toSarifLocation(location diag.Location) *sarif.Location {
	physical := sarif.NewPhysicalLocation().
		WithArtifactLocation(sarif.NewArtifactLocation().WithUri(location.Path))

	if location.Range != nil {
		region := sarif.NewRegion().WithStartLine(location.Range.Start.Line)
		if location.Range.Start.Column > 0 {
			region.WithStartColumn(location.Range.Start.Column)
		}
		if end := location.Range.End; end != nil {
			region.WithEndLine(end.Line)
			if end.Column > 0 {
				region.WithEndColumn(end.Column)
			}
		}
		physical.WithRegion(region)
	}

	return sarif.NewLocation().WithPhysicalLocation(physical)
}

// toSarifLevel maps a diagnostic severity onto a SARIF result level.
func toSarifLevel(severity string) string {
	switch strings.ToUpper(severity) {
	case "ERROR":
		return "error"
	case "WARNING":
		return "warning"
	case "INFO":
		return "note"
	default:
		return "none"
	}
}
