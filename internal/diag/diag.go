package diag

import (
	"encoding/json"
	"fmt"
)

// Position is a 1-based line/column pair.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column,omitempty"`
}

// Range spans from a required start position to an optional end position.
type Range struct {
	Start Position  `json:"start"`
	End   *Position `json:"end,omitempty"`
}

// Location points into a file, optionally narrowed to a range.
type Location struct {
	Path  string `json:"path"`
	Range *Range `json:"range,omitempty"`
}

// Source identifies the tool that produced a diagnostic.
type Source struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Code is the rule identifier a diagnostic was raised under.
type Code struct {
	Value string `json:"value"`
	URL   string `json:"url,omitempty"`
}

// Suggestion is a proposed replacement for a range.
type Suggestion struct {
	Range Range  `json:"range"`
	Text  string `json:"text"`
}

// RelatedLocation points at supporting context for a diagnostic.
type RelatedLocation struct {
	Message  string   `json:"message,omitempty"`
	Location Location `json:"location"`
}

// Diagnostic is a single lint/analysis finding.
type Diagnostic struct {
	Message          string            `json:"message"`
	Location         Location          `json:"location"`
	Severity         string            `json:"severity,omitempty"`
	Source           *Source           `json:"source,omitempty"`
	Code             *Code             `json:"code,omitempty"`
	Suggestions      []Suggestion      `json:"suggestions,omitempty"`
	OriginalOutput   string            `json:"original_output,omitempty"`
	RelatedLocations []RelatedLocation `json:"related_locations,omitempty"`
}

// Result is the top-level wrapper around zero or more diagnostics.
type Result struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
	Source      *Source      `json:"source,omitempty"`
	Severity    string       `json:"severity,omitempty"`
}

// Normalize folds any of the three accepted top-level shapes (single
// diagnostic, array of diagnostics, result wrapper) of an already validated
// document into one Result.
func Normalize(data interface{}) (*Result, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode document: %w", err)
	}

	switch typed := data.(type) {
	case []interface{}:
		var diagnostics []Diagnostic
		if err := json.Unmarshal(raw, &diagnostics); err != nil {
			return nil, fmt.Errorf("failed to decode diagnostics array: %w", err)
		}
		return &Result{Diagnostics: diagnostics}, nil
	case map[string]interface{}:
		if _, ok := typed["diagnostics"]; ok {
			var result Result
			if err := json.Unmarshal(raw, &result); err != nil {
				return nil, fmt.Errorf("failed to decode diagnostic result: %w", err)
			}
			return &result, nil
		}
		var diagnostic Diagnostic
		if err := json.Unmarshal(raw, &diagnostic); err != nil {
			return nil, fmt.Errorf("failed to decode diagnostic: %w", err)
		}
		return &Result{Diagnostics: []Diagnostic{diagnostic}}, nil
	default:
		return nil, fmt.Errorf("document has unsupported top-level kind %T", data)
	}
}
