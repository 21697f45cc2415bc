package validator

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/diagval/internal/schema"
)

// Options control how strictly documents are validated.
type Options struct {
	StrictMode       bool
	AllowExtraFields bool
}

// ValidationError describes one violation found in a document.
type ValidationError struct {
	Path     string      `json:"path"`
	Code     Code        `json:"code"`
	Message  string      `json:"message"`
	Value    interface{} `json:"value,omitempty"`
	Expected string      `json:"expected,omitempty"`

	// Numeric bounds are carried structurally so downstream repair logic
	// never has to recover them from message text.
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`
}

// Warning describes a non-fatal advisory that never makes a document invalid.
type Warning struct {
	Path    string `json:"path"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// Result is the outcome of one validation call.
type Result struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []Warning         `json:"warnings"`
}

// Validator validates decoded JSON documents against the diagnostic schema.
// It holds only its options between calls; updating options while another
// goroutine validates is not supported.
type Validator struct {
	options Options
	logger  hclog.Logger
}

// New creates a Validator with the given options.
func New(options Options, logger hclog.Logger) *Validator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Validator{options: options, logger: logger}
}

// SetOptions merges the given options into the current set, affecting
// subsequent calls only.
func (v *Validator) SetOptions(options Options) {
	v.options = options
}

// Options returns the current option set.
func (v *Validator) Options() Options {
	return v.options
}

// Schema returns the top-level document schema.
func (v *Validator) Schema() *schema.Node {
	return schema.Document()
}

// Validate checks a decoded JSON document against the diagnostic document
// schema. It never fails for well-formed input; invalid content is reported
// through the returned Result.
func (v *Validator) Validate(data interface{}) *Result {
	col := newCollector()

	switch value := data.(type) {
	case nil:
		col.addError(ValidationError{
			Path:    "",
			Code:    CodeNullInput,
			Message: "input is null; expected a diagnostic document",
		})
		return col.result()
	case string:
		if strings.TrimSpace(value) == "" {
			col.addError(ValidationError{
				Path:    "",
				Code:    CodeEmptyInput,
				Message: "input is an empty string; expected a diagnostic document",
				Value:   value,
			})
			return col.result()
		}
	case map[string]interface{}:
		if len(value) == 0 {
			col.addError(ValidationError{
				Path:    "",
				Code:    CodeEmptyInput,
				Message: "input is an empty object; expected a diagnostic document",
			})
			return col.result()
		}
	case []interface{}:
		if len(value) == 0 {
			col.addError(ValidationError{
				Path:    "",
				Code:    CodeEmptyArray,
				Message: "input is an empty array; expected at least one diagnostic",
			})
			return col.result()
		}
	}

	v.validateValue(data, schema.Document(), "", col)

	refined := newCollector()
	v.refine(data, "", refined)
	col.errors = mergeRefined(col.errors, refined.errors, refined.suppressions)
	col.warnings = append(col.warnings, refined.warnings...)

	v.logger.Debug("validation finished", "errors", len(col.errors), "warnings", len(col.warnings))
	return col.result()
}

// ValidateField checks one value against one explicit schema node, reporting
// findings under the given path.
func (v *Validator) ValidateField(path string, value interface{}, node *schema.Node) *Result {
	col := newCollector()
	v.validateValue(value, node, path, col)
	return col.result()
}

// collector accumulates findings during one validation pass. The refinement
// pass additionally records suppressions: (path, category) slots whose generic
// findings are dropped because the node was re-diagnosed domain-specifically.
type collector struct {
	errors       []ValidationError
	warnings     []Warning
	suppressions []suppression
}

type suppression struct {
	path     string
	category category
}

func newCollector() *collector {
	return &collector{}
}

func (c *collector) addError(err ValidationError) {
	c.errors = append(c.errors, err)
}

func (c *collector) addWarning(w Warning) {
	c.warnings = append(c.warnings, w)
}

func (c *collector) suppress(path string, cat category) {
	c.suppressions = append(c.suppressions, suppression{path: path, category: cat})
}

func (c *collector) result() *Result {
	errors := c.errors
	if errors == nil {
		errors = []ValidationError{}
	}
	warnings := c.warnings
	if warnings == nil {
		warnings = []Warning{}
	}
	return &Result{
		Valid:    len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
	}
}

// validateValue recursively checks value against node, appending findings to col.
func (v *Validator) validateValue(value interface{}, node *schema.Node, path string, col *collector) {
	if len(node.OneOf) > 0 {
		v.validateOneOf(value, node, path, col)
		return
	}

	if node.Type != "" && !typeMatches(value, node.Type) {
		col.addError(ValidationError{
			Path:     path,
			Code:     CodeTypeMismatch,
			Message:  fmt.Sprintf("expected %s but got %s at %q", node.Type, kindOf(value), displayPath(path)),
			Value:    value,
			Expected: string(node.Type),
		})
		return
	}

	if len(node.Enum) > 0 {
		if !enumContains(node.Enum, value) {
			col.addError(ValidationError{
				Path:     path,
				Code:     CodeEnumValidationFailed,
				Message:  fmt.Sprintf("value at %q must be one of [%s]", displayPath(path), strings.Join(node.Enum, ", ")),
				Value:    value,
				Expected: strings.Join(node.Enum, ", "),
			})
		}
		return
	}

	switch typed := value.(type) {
	case string:
		v.validateString(typed, node, path, col)
	case float64:
		v.validateNumber(typed, node, path, col)
	case map[string]interface{}:
		v.validateObject(typed, node, path, col)
	case []interface{}:
		v.validateArray(typed, node, path, col)
	}
}

// validateOneOf tries every alternative in likelihood order, accepting the
// first that matches cleanly. When none matches, only the findings of the
// best-scoring alternative are surfaced.
func (v *Validator) validateOneOf(value interface{}, node *schema.Node, path string, col *collector) {
	type attempt struct {
		node     *schema.Node
		findings *collector
	}

	candidates := orderByLikelihood(node.OneOf, value)

	attempts := make([]attempt, 0, len(candidates))
	for _, candidate := range candidates {
		scratch := newCollector()
		v.validateValue(value, candidate, path, scratch)
		if len(scratch.errors) == 0 {
			col.warnings = append(col.warnings, scratch.warnings...)
			return
		}
		attempts = append(attempts, attempt{node: candidate, findings: scratch})
	}

	best := attempts[0]
	bestScore := matchScore(best.node, value, best.findings.errors)
	for _, a := range attempts[1:] {
		if score := matchScore(a.node, value, a.findings.errors); score > bestScore {
			best, bestScore = a, score
		}
	}

	col.errors = append(col.errors, best.findings.errors...)
	col.warnings = append(col.warnings, best.findings.warnings...)
}

func (v *Validator) validateString(value string, node *schema.Node, path string, col *collector) {
	length := utf8.RuneCountInString(value)

	if node.MinLength != nil && length < *node.MinLength {
		if length == 0 {
			// An empty string is a more specific diagnosis than a length bound.
			col.addError(ValidationError{
				Path:     path,
				Code:     CodeEmptyString,
				Message:  fmt.Sprintf("value at %q must be a non-empty string", displayPath(path)),
				Value:    value,
				Expected: "non-empty string",
			})
		} else {
			col.addError(ValidationError{
				Path:     path,
				Code:     CodeMinLengthViolation,
				Message:  fmt.Sprintf("string at %q must be at least %d characters, got %d", displayPath(path), *node.MinLength, length),
				Value:    value,
				Expected: fmt.Sprintf("at least %d characters", *node.MinLength),
			})
		}
	}

	if node.MaxLength != nil && length > *node.MaxLength {
		col.addError(ValidationError{
			Path:     path,
			Code:     CodeMaxLengthViolation,
			Message:  fmt.Sprintf("string at %q must be at most %d characters, got %d", displayPath(path), *node.MaxLength, length),
			Value:    value,
			Expected: fmt.Sprintf("at most %d characters", *node.MaxLength),
		})
	}

	if node.Pattern != nil && !node.Pattern.MatchString(value) {
		col.addError(ValidationError{
			Path:     path,
			Code:     CodePatternMismatch,
			Message:  fmt.Sprintf("string at %q does not match pattern %q", displayPath(path), node.Pattern.String()),
			Value:    value,
			Expected: node.Pattern.String(),
		})
	}
}

func (v *Validator) validateNumber(value float64, node *schema.Node, path string, col *collector) {
	if node.Minimum != nil && value < *node.Minimum {
		col.addError(ValidationError{
			Path:     path,
			Code:     CodeMinValueViolation,
			Message:  fmt.Sprintf("number at %q must be at least %v, got %v", displayPath(path), *node.Minimum, value),
			Value:    value,
			Expected: fmt.Sprintf("at least %v", *node.Minimum),
			Minimum:  node.Minimum,
		})
	}
	if node.Maximum != nil && value > *node.Maximum {
		col.addError(ValidationError{
			Path:     path,
			Code:     CodeMaxValueViolation,
			Message:  fmt.Sprintf("number at %q must be at most %v, got %v", displayPath(path), *node.Maximum, value),
			Value:    value,
			Expected: fmt.Sprintf("at most %v", *node.Maximum),
			Maximum:  node.Maximum,
		})
	}
}

func (v *Validator) validateObject(value map[string]interface{}, node *schema.Node, path string, col *collector) {
	for _, name := range node.Required {
		if _, ok := value[name]; !ok {
			expected := ""
			if prop, ok := node.Properties[name]; ok && prop.Type != "" {
				expected = string(prop.Type)
			}
			col.addError(ValidationError{
				Path:     joinPath(path, name),
				Code:     CodeRequiredPropertyMissing,
				Message:  fmt.Sprintf("required property %q is missing at %q", name, displayPath(path)),
				Expected: expected,
			})
		}
	}

	for _, name := range sortedKeys(value) {
		child, declared := node.Properties[name]
		if declared {
			v.validateValue(value[name], child, joinPath(path, name), col)
			continue
		}
		if node.AllowsAdditional() && v.options.AllowExtraFields {
			continue
		}
		if v.options.StrictMode {
			col.addError(ValidationError{
				Path:    joinPath(path, name),
				Code:    CodeUnknownProperty,
				Message: fmt.Sprintf("unknown property %q at %q", name, displayPath(path)),
				Value:   value[name],
			})
		} else {
			col.addWarning(Warning{
				Path:    joinPath(path, name),
				Code:    CodeUnknownProperty,
				Message: fmt.Sprintf("unknown property %q at %q", name, displayPath(path)),
			})
		}
	}
}

func (v *Validator) validateArray(value []interface{}, node *schema.Node, path string, col *collector) {
	if node.Items == nil {
		return
	}
	for i, item := range value {
		v.validateValue(item, node.Items, indexPath(path, i), col)
	}
}

func enumContains(enum []string, value interface{}) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	for _, member := range enum {
		if member == s {
			return true
		}
	}
	return false
}

func typeMatches(value interface{}, t schema.Type) bool {
	switch t {
	case schema.TypeString:
		_, ok := value.(string)
		return ok
	case schema.TypeNumber:
		_, ok := value.(float64)
		return ok
	case schema.TypeBoolean:
		_, ok := value.(bool)
		return ok
	case schema.TypeObject:
		_, ok := value.(map[string]interface{})
		return ok
	case schema.TypeArray:
		_, ok := value.([]interface{})
		return ok
	case schema.TypeNull:
		return value == nil
	default:
		return false
	}
}

// kindOf names the JSON runtime kind of a decoded value.
func kindOf(value interface{}) string {
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

func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}

func indexPath(base string, i int) string {
	return fmt.Sprintf("%s[%d]", base, i)
}

// displayPath renders a path for messages, naming the document root explicitly.
func displayPath(path string) string {
	if path == "" {
		return "$"
	}
	return path
}

// sortedKeys returns map keys in lexical order so repeated validations of the
// same document produce identical finding lists.
func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
