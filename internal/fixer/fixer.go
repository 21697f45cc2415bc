package fixer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/diagval/internal/validator"
)

// Level selects how invasive repairs may be.
type Level string

const (
	// LevelBasic applies only safe, narrow repairs.
	LevelBasic Level = "basic"
	// LevelAggressive additionally applies repairs that may alter semantics,
	// such as clamping out-of-range numbers.
	LevelAggressive Level = "aggressive"
)

// AppliedFix records one repair made to a document.
type AppliedFix struct {
	Path    string      `json:"path"`
	Message string      `json:"message"`
	Before  interface{} `json:"before"`
	After   interface{} `json:"after"`
}

// Result is the outcome of one repair pass.
type Result struct {
	Fixed           bool                        `json:"fixed"`
	Data            interface{}                 `json:"data"`
	AppliedFixes    []AppliedFix                `json:"applied_fixes"`
	RemainingErrors []validator.ValidationError `json:"remaining_errors"`
}

// Fixer repairs documents using the errors a prior validation reported.
type Fixer struct {
	level  Level
	logger hclog.Logger
}

// New creates a Fixer operating at the given level.
func New(level Level, logger hclog.Logger) *Fixer {
	if level == "" {
		level = LevelBasic
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Fixer{level: level, logger: logger}
}

// Level returns the configured fix level.
func (f *Fixer) Level() Level {
	return f.level
}

// Fix attempts one repair per reported error, in error order, against a deep
// copy of data. The input document is never mutated. Errors that could not be
// repaired are passed through unchanged in RemainingErrors.
func (f *Fixer) Fix(data interface{}, validation *validator.Result) *Result {
	doc := cloneValue(data)
	applied := []AppliedFix{}
	remaining := []validator.ValidationError{}

	if validation != nil {
		for _, err := range validation.Errors {
			fix, newDoc, ok := f.ApplyFix(doc, err)
			if !ok {
				remaining = append(remaining, err)
				continue
			}
			doc = newDoc
			applied = append(applied, fix)
			f.logger.Debug("applied fix", "path", fix.Path, "message", fix.Message)
		}
	}

	return &Result{
		Fixed:           len(applied) > 0,
		Data:            doc,
		AppliedFixes:    applied,
		RemainingErrors: remaining,
	}
}

// CanFix reports whether ApplyFix would repair the given error at the
// configured level.
func (f *Fixer) CanFix(err validator.ValidationError) bool {
	switch err.Code {
	case validator.CodeTypeMismatch:
		_, ok := coerceValue(err.Value, err.Expected)
		return ok
	case validator.CodeRequiredPropertyMissing:
		_, ok := defaultForProperty(lastSegment(err.Path), err.Expected)
		return ok
	case validator.CodeMissingMessage, validator.CodeMissingLocation, validator.CodeInvalidSeverity:
		return true
	case validator.CodeEmptyString, validator.CodeMinValueViolation, validator.CodeMaxValueViolation:
		return f.level == LevelAggressive
	case validator.CodeInvalidPosition:
		if f.level != LevelAggressive {
			return false
		}
		name := lastSegment(err.Path)
		if name != "line" && name != "column" {
			return false
		}
		_, ok := repairPosition(err.Value)
		return ok
	default:
		return false
	}
}

// ApplyFix repairs one error in doc, mutating it in place (callers operate on
// a clone; Fix handles that). It returns the record of the change and the
// possibly replaced document root, or ok=false when the error is not fixable.
func (f *Fixer) ApplyFix(doc interface{}, err validator.ValidationError) (AppliedFix, interface{}, bool) {
	if !f.CanFix(err) {
		return AppliedFix{}, doc, false
	}

	switch err.Code {
	case validator.CodeTypeMismatch:
		return f.fixTypeMismatch(doc, err)
	case validator.CodeRequiredPropertyMissing:
		return f.fixMissingProperty(doc, err)
	case validator.CodeMissingMessage:
		return f.setDefault(doc, err, "message", "Added placeholder message for diagnostic")
	case validator.CodeMissingLocation:
		return f.setDefault(doc, err, "location", "Added placeholder location for diagnostic")
	case validator.CodeInvalidSeverity:
		return f.fixSeverity(doc, err)
	case validator.CodeEmptyString:
		return f.fixEmptyString(doc, err)
	case validator.CodeMinValueViolation, validator.CodeMaxValueViolation:
		return f.fixBoundViolation(doc, err)
	case validator.CodeInvalidPosition:
		return f.fixPosition(doc, err)
	default:
		return AppliedFix{}, doc, false
	}
}

func (f *Fixer) fixTypeMismatch(doc interface{}, err validator.ValidationError) (AppliedFix, interface{}, bool) {
	before, found := getValueAtPath(doc, err.Path)
	if !found {
		before = err.Value
	}
	after, ok := coerceValue(before, err.Expected)
	if !ok {
		return AppliedFix{}, doc, false
	}
	newDoc, pathErr := setValueAtPath(doc, err.Path, after)
	if pathErr != nil {
		return AppliedFix{}, doc, false
	}
	return AppliedFix{
		Path:    err.Path,
		Message: fmt.Sprintf("Converted %s value '%v' to %s '%v'", kindName(before), before, err.Expected, after),
		Before:  before,
		After:   after,
	}, newDoc, true
}

func (f *Fixer) fixMissingProperty(doc interface{}, err validator.ValidationError) (AppliedFix, interface{}, bool) {
	name := lastSegment(err.Path)
	value, ok := defaultForProperty(name, err.Expected)
	if !ok {
		return AppliedFix{}, doc, false
	}
	newDoc, pathErr := setValueAtPath(doc, err.Path, value)
	if pathErr != nil {
		return AppliedFix{}, doc, false
	}
	return AppliedFix{
		Path:    err.Path,
		Message: fmt.Sprintf("Added default value for required property %q", name),
		Before:  nil,
		After:   value,
	}, newDoc, true
}

func (f *Fixer) setDefault(doc interface{}, err validator.ValidationError, property, message string) (AppliedFix, interface{}, bool) {
	value, _ := defaultForProperty(property, err.Expected)
	newDoc, pathErr := setValueAtPath(doc, err.Path, value)
	if pathErr != nil {
		return AppliedFix{}, doc, false
	}
	return AppliedFix{
		Path:    err.Path,
		Message: message,
		Before:  nil,
		After:   value,
	}, newDoc, true
}

func (f *Fixer) fixSeverity(doc interface{}, err validator.ValidationError) (AppliedFix, interface{}, bool) {
	before, found := getValueAtPath(doc, err.Path)
	if !found {
		before = err.Value
	}
	after := normalizeSeverity(before)
	newDoc, pathErr := setValueAtPath(doc, err.Path, after)
	if pathErr != nil {
		return AppliedFix{}, doc, false
	}
	return AppliedFix{
		Path:    err.Path,
		Message: fmt.Sprintf("Normalized severity from '%v' to '%v'", before, after),
		Before:  before,
		After:   after,
	}, newDoc, true
}

func (f *Fixer) fixEmptyString(doc interface{}, err validator.ValidationError) (AppliedFix, interface{}, bool) {
	before, found := getValueAtPath(doc, err.Path)
	if !found {
		before = err.Value
	}
	after := defaultForEmptyString(lastSegment(err.Path))
	newDoc, pathErr := setValueAtPath(doc, err.Path, after)
	if pathErr != nil {
		return AppliedFix{}, doc, false
	}
	return AppliedFix{
		Path:    err.Path,
		Message: fmt.Sprintf("Filled empty string with default value '%v'", after),
		Before:  before,
		After:   after,
	}, newDoc, true
}

func (f *Fixer) fixBoundViolation(doc interface{}, err validator.ValidationError) (AppliedFix, interface{}, bool) {
	current, found := getValueAtPath(doc, err.Path)
	if !found {
		current = err.Value
	}
	number, ok := current.(float64)
	if !ok {
		return AppliedFix{}, doc, false
	}

	var after float64
	if err.Code == validator.CodeMinValueViolation {
		bound := float64(1)
		if err.Minimum != nil {
			bound = *err.Minimum
		}
		after = number
		if bound > after {
			after = bound
		}
	} else {
		bound := float64(1000)
		if err.Maximum != nil {
			bound = *err.Maximum
		}
		after = number
		if bound < after {
			after = bound
		}
	}

	newDoc, pathErr := setValueAtPath(doc, err.Path, after)
	if pathErr != nil {
		return AppliedFix{}, doc, false
	}
	return AppliedFix{
		Path:    err.Path,
		Message: fmt.Sprintf("Clamped out-of-range value %v to %v", number, after),
		Before:  number,
		After:   after,
	}, newDoc, true
}

func (f *Fixer) fixPosition(doc interface{}, err validator.ValidationError) (AppliedFix, interface{}, bool) {
	before, found := getValueAtPath(doc, err.Path)
	if !found {
		before = err.Value
	}
	after, ok := repairPosition(before)
	if !ok {
		return AppliedFix{}, doc, false
	}
	newDoc, pathErr := setValueAtPath(doc, err.Path, after)
	if pathErr != nil {
		return AppliedFix{}, doc, false
	}
	return AppliedFix{
		Path:    err.Path,
		Message: fmt.Sprintf("Reset invalid position value '%v' to %v", before, after),
		Before:  before,
		After:   after,
	}, newDoc, true
}

// repairPosition returns the replacement for an invalid line/column value.
// Numeric values already >= 1 are left alone and reported unfixable.
func repairPosition(value interface{}) (float64, bool) {
	number, ok := value.(float64)
	if !ok || number < 1 {
		return 1, true
	}
	return 0, false
}

// coerceValue converts value to the named target type using standard textual
// conversions. It reports false when no sensible coercion exists.
func coerceValue(value interface{}, target string) (interface{}, bool) {
	switch target {
	case "string":
		switch typed := value.(type) {
		case nil:
			return "", true
		case float64:
			return strconv.FormatFloat(typed, 'f', -1, 64), true
		case bool:
			return strconv.FormatBool(typed), true
		default:
			return nil, false
		}
	case "number":
		switch typed := value.(type) {
		case string:
			number, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
			if err != nil {
				return nil, false
			}
			return number, true
		case bool:
			if typed {
				return float64(1), true
			}
			return float64(0), true
		default:
			return nil, false
		}
	case "boolean":
		switch typed := value.(type) {
		case string:
			parsed, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(typed)))
			if err != nil {
				return nil, false
			}
			return parsed, true
		case float64:
			return typed != 0, true
		default:
			return nil, false
		}
	case "array":
		switch value.(type) {
		case nil, []interface{}:
			return nil, false
		default:
			return []interface{}{value}, true
		}
	case "object":
		switch value.(type) {
		case map[string]interface{}:
			return nil, false
		default:
			return map[string]interface{}{}, true
		}
	default:
		return nil, false
	}
}

// kindName names the JSON runtime kind of a decoded value for fix messages.
func kindName(value interface{}) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	default:
		return "unknown"
	}
}
