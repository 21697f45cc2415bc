package sarif

import (
	"testing"

	"github.com/scan-io-git/diagval/internal/diag"
)

func sampleResult() *diag.Result {
	return &diag.Result{
		Source:   &diag.Source{Name: "golint", URL: "https://example.com/golint"},
		Severity: "WARNING",
		Diagnostics: []diag.Diagnostic{
			{
				Message: "unused variable",
				Location: diag.Location{
					Path: "main.go",
					Range: &diag.Range{
						Start: diag.Position{Line: 3, Column: 5},
						End:   &diag.Position{Line: 3, Column: 12},
					},
				},
				Severity: "ERROR",
				Code:     &diag.Code{Value: "U100", URL: "https://example.com/U100"},
			},
			{
				Message:        "missing doc comment",
				Location:       diag.Location{Path: "util.go"},
				OriginalOutput: "util.go:1: missing doc comment",
			},
		},
	}
}

func TestConvertBuildsSingleRun(t *testing.T) {
	report, err := NewConverter(nil).Convert(sampleResult())
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if len(report.Runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(report.Runs))
	}

	run := report.Runs[0]
	if run.Tool.Driver.Name != "golint" {
		t.Fatalf("expected driver name golint, got %q", run.Tool.Driver.Name)
	}
	if len(run.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(run.Results))
	}
	if run.Properties["runId"] == nil || run.Properties["runId"] == "" {
		t.Fatalf("expected a run identifier in run properties")
	}
}

func TestConvertMapsSeverityLevels(t *testing.T) {
	report, err := NewConverter(nil).Convert(sampleResult())
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	results := report.Runs[0].Results
	if results[0].Level == nil || *results[0].Level != "error" {
		t.Fatalf("expected first result level error, got %v", results[0].Level)
	}
	// The second diagnostic has no severity of its own and inherits the
	// result-level WARNING.
	if results[1].Level == nil || *results[1].Level != "warning" {
		t.Fatalf("expected second result level warning, got %v", results[1].Level)
	}
}

func TestConvertCarriesRegion(t *testing.T) {
	report, err := NewConverter(nil).Convert(sampleResult())
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	location := report.Runs[0].Results[0].Locations[0]
	physical := location.PhysicalLocation
	if physical == nil || physical.ArtifactLocation == nil || physical.ArtifactLocation.URI == nil {
		t.Fatalf("expected a physical location with an artifact URI")
	}
	if *physical.ArtifactLocation.URI != "main.go" {
		t.Fatalf("expected artifact URI main.go, got %q", *physical.ArtifactLocation.URI)
	}

	region := physical.Region
	if region == nil || region.StartLine == nil || *region.StartLine != 3 {
		t.Fatalf("expected region start line 3, got %v", region)
	}
	if region.StartColumn == nil || *region.StartColumn != 5 {
		t.Fatalf("expected region start column 5")
	}
	if region.EndColumn == nil || *region.EndColumn != 12 {
		t.Fatalf("expected region end column 12")
	}
}

func TestConvertRuleFallbacks(t *testing.T) {
	report, err := NewConverter(nil).Convert(sampleResult())
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	results := report.Runs[0].Results
	if results[0].RuleID == nil || *results[0].RuleID != "U100" {
		t.Fatalf("expected first result rule U100, got %v", results[0].RuleID)
	}
	if results[1].RuleID == nil || *results[1].RuleID != defaultRuleID {
		t.Fatalf("expected second result to use the fallback rule, got %v", results[1].RuleID)
	}

	if results[1].Properties["originalOutput"] != "util.go:1: missing doc comment" {
		t.Fatalf("expected original output to be preserved in result properties")
	}
}

func TestConvertDriverNameFallbacks(t *testing.T) {
	perDiagnostic := &diag.Result{
		Diagnostics: []diag.Diagnostic{
			{
				Message:  "a",
				Location: diag.Location{Path: "a.go"},
				Source:   &diag.Source{Name: "vet"},
			},
		},
	}
	report, err := NewConverter(nil).Convert(perDiagnostic)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if report.Runs[0].Tool.Driver.Name != "vet" {
		t.Fatalf("expected driver vet, got %q", report.Runs[0].Tool.Driver.Name)
	}

	anonymous := &diag.Result{
		Diagnostics: []diag.Diagnostic{
			{Message: "a", Location: diag.Location{Path: "a.go"}},
		},
	}
	report, err = NewConverter(nil).Convert(anonymous)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if report.Runs[0].Tool.Driver.Name != defaultToolName {
		t.Fatalf("expected fallback driver name, got %q", report.Runs[0].Tool.Driver.Name)
	}
}

func TestConvertRejectsNilResult(t *testing.T) {
	if _, err := NewConverter(nil).Convert(nil); err == nil {
		t.Fatalf("expected conversion of nil result to fail")
	}
}
