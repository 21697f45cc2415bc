package fixer

import "strings"

// propertyDefaults maps well-known diagnostic property names to the value a
// repair inserts when the property is missing. New domain defaults are added
// here, not in branching logic.
var propertyDefaults = map[string]func() interface{}{
	"message":     func() interface{} { return "No message provided" },
	"location":    func() interface{} { return map[string]interface{}{"path": "unknown"} },
	"path":        func() interface{} { return "unknown" },
	"line":        func() interface{} { return float64(1) },
	"column":      func() interface{} { return float64(1) },
	"severity":    func() interface{} { return "UNKNOWN_SEVERITY" },
	"diagnostics": func() interface{} { return []interface{}{} },
	"name":        func() interface{} { return "unknown" },
}

// typeDefaults supplies a zero value for a basic type named by an error's
// expected text, used when no property-specific default applies.
var typeDefaults = map[string]func() interface{}{
	"string":  func() interface{} { return "" },
	"number":  func() interface{} { return float64(0) },
	"boolean": func() interface{} { return false },
	"array":   func() interface{} { return []interface{}{} },
	"object":  func() interface{} { return map[string]interface{}{} },
}

// severitySynonyms folds loose severity spellings into the canonical enum.
// Anything not listed normalises to UNKNOWN_SEVERITY.
var severitySynonyms = map[string]string{
	"error":       "ERROR",
	"err":         "ERROR",
	"fatal":       "ERROR",
	"warning":     "WARNING",
	"warn":        "WARNING",
	"caution":     "WARNING",
	"info":        "INFO",
	"information": "INFO",
	"note":        "INFO",
}

// defaultForProperty returns the repair value for a missing property, falling
// back to the zero value of the expected type.
func defaultForProperty(name, expected string) (interface{}, bool) {
	if builder, ok := propertyDefaults[name]; ok {
		return builder(), true
	}
	if builder, ok := typeDefaults[expected]; ok {
		return builder(), true
	}
	return nil, false
}

// defaultForEmptyString returns the replacement for an empty string at a
// named property. Properties without a string default get "unknown".
func defaultForEmptyString(name string) interface{} {
	switch name {
	case "message", "path", "name", "severity":
		value, _ := defaultForProperty(name, "string")
		return value
	default:
		return "unknown"
	}
}

// normalizeSeverity maps an arbitrary severity value onto the canonical enum.
func normalizeSeverity(value interface{}) string {
	s, ok := value.(string)
	if !ok {
		return "UNKNOWN_SEVERITY"
	}
	if canonical, ok := severitySynonyms[strings.ToLower(strings.TrimSpace(s))]; ok {
		return canonical
	}
	for _, member := range []string{"UNKNOWN_SEVERITY", "ERROR", "WARNING", "INFO"} {
		if strings.EqualFold(s, member) {
			return member
		}
	}
	return "UNKNOWN_SEVERITY"
}
