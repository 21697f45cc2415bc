package schema

// Severity values accepted by the diagnostic format.
var SeverityValues = []string{"UNKNOWN_SEVERITY", "ERROR", "WARNING", "INFO"}

// Logical schema names resolvable through Get.
const (
	NamePosition         = "position"
	NameRange            = "range"
	NameLocation         = "location"
	NameSource           = "source"
	NameCode             = "code"
	NameSuggestion       = "suggestion"
	NameRelatedLocation  = "relatedLocation"
	NameDiagnostic       = "diagnostic"
	NameDiagnosticResult = "diagnosticResult"
	NameDocument         = "document"
)

var (
	positionSchema = &Node{
		Type:     TypeObject,
		Required: []string{"line"},
		Properties: map[string]*Node{
			"line":   {Type: TypeNumber, Minimum: floatPtr(1)},
			"column": {Type: TypeNumber, Minimum: floatPtr(1)},
		},
	}

	rangeSchema = &Node{
		Type:     TypeObject,
		Required: []string{"start"},
		Properties: map[string]*Node{
			"start": positionSchema,
			"end":   positionSchema,
		},
	}

	locationSchema = &Node{
		Type:     TypeObject,
		Required: []string{"path"},
		Properties: map[string]*Node{
			"path":  {Type: TypeString, MinLength: intPtr(1)},
			"range": rangeSchema,
		},
	}

	sourceSchema = &Node{
		Type:     TypeObject,
		Required: []string{"name"},
		Properties: map[string]*Node{
			"name": {Type: TypeString, MinLength: intPtr(1)},
			"url":  {Type: TypeString},
		},
	}

	codeSchema = &Node{
		Type:     TypeObject,
		Required: []string{"value"},
		Properties: map[string]*Node{
			"value": {Type: TypeString, MinLength: intPtr(1)},
			"url":   {Type: TypeString},
		},
	}

	suggestionSchema = &Node{
		Type:     TypeObject,
		Required: []string{"range", "text"},
		Properties: map[string]*Node{
			"range": rangeSchema,
			"text":  {Type: TypeString},
		},
	}

	relatedLocationSchema = &Node{
		Type:     TypeObject,
		Required: []string{"location"},
		Properties: map[string]*Node{
			"message":  {Type: TypeString},
			"location": locationSchema,
		},
	}

	diagnosticSchema = &Node{
		Type:     TypeObject,
		Required: []string{"message", "location"},
		Properties: map[string]*Node{
			"message":           {Type: TypeString, MinLength: intPtr(1)},
			"location":          locationSchema,
			"severity":          {Type: TypeString, Enum: SeverityValues},
			"source":            sourceSchema,
			"code":              codeSchema,
			"suggestions":       {Type: TypeArray, Items: suggestionSchema},
			"original_output":   {Type: TypeString},
			"related_locations": {Type: TypeArray, Items: relatedLocationSchema},
		},
	}

	diagnosticResultSchema = &Node{
		Type:     TypeObject,
		Required: []string{"diagnostics"},
		Properties: map[string]*Node{
			"diagnostics": {Type: TypeArray, Items: diagnosticSchema},
			"source":      sourceSchema,
			"severity":    {Type: TypeString, Enum: SeverityValues},
		},
	}

	// documentSchema accepts the three top-level shapes: a single diagnostic,
	// an array of diagnostics, or a diagnostic result wrapper.
	documentSchema = &Node{
		OneOf: []*Node{
			diagnosticSchema,
			{Type: TypeArray, Items: diagnosticSchema},
			diagnosticResultSchema,
		},
	}

	registry = map[string]*Node{
		NamePosition:         positionSchema,
		NameRange:            rangeSchema,
		NameLocation:         locationSchema,
		NameSource:           sourceSchema,
		NameCode:             codeSchema,
		NameSuggestion:       suggestionSchema,
		NameRelatedLocation:  relatedLocationSchema,
		NameDiagnostic:       diagnosticSchema,
		NameDiagnosticResult: diagnosticResultSchema,
		NameDocument:         documentSchema,
	}
)

// Get looks up a schema node by its logical name.
func Get(name string) (*Node, bool) {
	node, ok := registry[name]
	return node, ok
}

// Document returns the top-level document schema.
func Document() *Node {
	return documentSchema
}

// Names returns the logical names of all registered schemas.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
