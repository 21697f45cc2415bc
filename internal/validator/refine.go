package validator

import (
	"fmt"
	"math"
	"strings"

	"github.com/scan-io-git/diagval/internal/schema"
)

// refine re-scans the document structurally and produces diagnostic-domain
// findings that supersede the generic schema findings at the same paths.
// It recognises two shapes: a node that looks like a single diagnostic (has
// any of message/location/severity/source and no diagnostics key) and a node
// that looks like a diagnostic result (has a diagnostics key).
func (v *Validator) refine(value interface{}, path string, col *collector) {
	switch typed := value.(type) {
	case map[string]interface{}:
		if _, hasDiagnostics := typed["diagnostics"]; hasDiagnostics {
			v.refineResult(typed, path, col)
			return
		}
		if looksLikeDiagnostic(typed) {
			v.refineDiagnostic(typed, path, col)
		}
	case []interface{}:
		for i, item := range typed {
			v.refine(item, indexPath(path, i), col)
		}
	}
}

func looksLikeDiagnostic(obj map[string]interface{}) bool {
	for _, key := range []string{"message", "location", "severity", "source"} {
		if _, ok := obj[key]; ok {
			return true
		}
	}
	return false
}

func (v *Validator) refineResult(obj map[string]interface{}, path string, col *collector) {
	// The node is a result wrapper; shape-level noise from alternatives that
	// expected a bare diagnostic here is dropped.
	col.suppress(path, categoryNumeric)
	col.suppress(joinPath(path, "message"), categoryRequired)
	col.suppress(joinPath(path, "location"), categoryRequired)

	diagnostics := obj["diagnostics"]
	items, isArray := diagnostics.([]interface{})
	if !isArray {
		col.addError(ValidationError{
			Path:     joinPath(path, "diagnostics"),
			Code:     CodeTypeMismatch,
			Message:  fmt.Sprintf("diagnostics at %q must be an array, got %s", displayPath(path), kindOf(diagnostics)),
			Value:    diagnostics,
			Expected: "array",
		})
		return
	}

	if len(items) == 0 {
		col.addWarning(Warning{
			Path:    joinPath(path, "diagnostics"),
			Code:    CodeEmptyArray,
			Message: fmt.Sprintf("result at %q contains no diagnostics; may be intentional", displayPath(path)),
		})
		return
	}

	for i, item := range items {
		if diagnostic, ok := item.(map[string]interface{}); ok {
			v.refineDiagnostic(diagnostic, indexPath(joinPath(path, "diagnostics"), i), col)
		}
	}
}

func (v *Validator) refineDiagnostic(obj map[string]interface{}, path string, col *collector) {
	// The node is a diagnostic; a generic "expected array, got object" finding
	// at its own path is noise once the real problems are named below.
	col.suppress(path, categoryNumeric)

	if _, ok := obj["message"]; !ok {
		col.addError(ValidationError{
			Path:     joinPath(path, "message"),
			Code:     CodeMissingMessage,
			Message:  fmt.Sprintf("diagnostic at %q has no message", displayPath(path)),
			Expected: "string",
		})
	}

	location, hasLocation := obj["location"]
	if !hasLocation {
		col.addError(ValidationError{
			Path:     joinPath(path, "location"),
			Code:     CodeMissingLocation,
			Message:  fmt.Sprintf("diagnostic at %q has no location", displayPath(path)),
			Expected: "object",
		})
	}

	if severity, ok := obj["severity"]; ok && !enumContains(schema.SeverityValues, severity) {
		col.addError(ValidationError{
			Path:     joinPath(path, "severity"),
			Code:     CodeInvalidSeverity,
			Message:  fmt.Sprintf("severity at %q must be one of [%s]", displayPath(path), strings.Join(schema.SeverityValues, ", ")),
			Value:    severity,
			Expected: strings.Join(schema.SeverityValues, ", "),
		})
	}

	if locationObj, ok := location.(map[string]interface{}); ok {
		v.refineLocation(locationObj, joinPath(path, "location"), col)
	}
}

func (v *Validator) refineLocation(obj map[string]interface{}, path string, col *collector) {
	rangeValue, ok := obj["range"]
	if !ok {
		return
	}
	rangeObj, ok := rangeValue.(map[string]interface{})
	if !ok {
		return
	}
	rangePath := joinPath(path, "range")

	if _, hasStart := rangeObj["start"]; !hasStart {
		col.addError(ValidationError{
			Path:     joinPath(rangePath, "start"),
			Code:     CodeInvalidRange,
			Message:  fmt.Sprintf("range at %q has no start position", displayPath(rangePath)),
			Expected: "object",
		})
	}

	for _, edge := range []string{"start", "end"} {
		if position, ok := rangeObj[edge].(map[string]interface{}); ok {
			v.refinePosition(position, joinPath(rangePath, edge), col)
		}
	}
}

func (v *Validator) refinePosition(obj map[string]interface{}, path string, col *collector) {
	for _, field := range []string{"line", "column"} {
		value, ok := obj[field]
		if !ok {
			continue
		}
		number, isNumber := value.(float64)
		if isNumber && number >= 1 && number == math.Trunc(number) {
			continue
		}
		col.addError(ValidationError{
			Path:     joinPath(path, field),
			Code:     CodeInvalidPosition,
			Message:  fmt.Sprintf("%s at %q must be an integer >= 1, got %v", field, displayPath(path), value),
			Value:    value,
			Expected: "integer >= 1",
			Minimum:  floatPtr(1),
		})
	}
}

// mergeRefined folds the domain-specific findings into the generic list.
// A refined finding claims the (path, category) slot of a generic finding:
// the generic one is replaced in place, so a path never carries both a
// generic and a specific code for the same concern. Suppressed slots lose
// their generic findings outright. Refined findings with no generic
// counterpart are appended.
func mergeRefined(generic, refined []ValidationError, suppressions []suppression) []ValidationError {
	overrides := make(map[suppression]ValidationError, len(refined))
	order := make([]suppression, 0, len(refined))
	for _, err := range refined {
		key := suppression{path: err.Path, category: codeCategory(err.Code)}
		if _, ok := overrides[key]; !ok {
			overrides[key] = err
			order = append(order, key)
		}
	}

	suppressed := make(map[suppression]bool, len(suppressions))
	for _, s := range suppressions {
		suppressed[s] = true
	}

	consumed := make(map[suppression]bool, len(overrides))
	merged := make([]ValidationError, 0, len(generic)+len(refined))
	for _, err := range generic {
		key := suppression{path: err.Path, category: codeCategory(err.Code)}
		if key.category == categoryNone {
			merged = append(merged, err)
			continue
		}
		if override, ok := overrides[key]; ok {
			if !consumed[key] {
				merged = append(merged, override)
				consumed[key] = true
			}
			continue
		}
		if suppressed[key] {
			continue
		}
		merged = append(merged, err)
	}

	for _, key := range order {
		if !consumed[key] {
			merged = append(merged, overrides[key])
		}
	}
	return merged
}

func floatPtr(v float64) *float64 { return &v }
