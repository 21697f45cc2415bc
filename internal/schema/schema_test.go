package schema

import "testing"

func TestGetKnowsEveryRegisteredName(t *testing.T) {
	names := []string{
		NamePosition, NameRange, NameLocation, NameSource, NameCode,
		NameSuggestion, NameRelatedLocation, NameDiagnostic,
		NameDiagnosticResult, NameDocument,
	}
	for _, name := range names {
		node, ok := Get(name)
		if !ok {
			t.Fatalf("expected schema %q to be registered", name)
		}
		if node == nil {
			t.Fatalf("expected schema %q to be non-nil", name)
		}
	}

	if _, ok := Get("nope"); ok {
		t.Fatalf("expected lookup of unknown schema to fail")
	}
}

func TestDocumentSchemaIsThreeWayOneOf(t *testing.T) {
	doc := Document()
	if doc.Type != "" {
		t.Fatalf("expected document schema to have no type discriminator, got %q", doc.Type)
	}
	if len(doc.OneOf) != 3 {
		t.Fatalf("expected 3 top-level alternatives, got %d", len(doc.OneOf))
	}

	single := doc.OneOf[0]
	if !single.Requires("message") || !single.Requires("location") {
		t.Fatalf("expected first alternative to be the single-diagnostic shape")
	}
	if doc.OneOf[1].Type != TypeArray || doc.OneOf[1].Items != single {
		t.Fatalf("expected second alternative to be an array of diagnostics")
	}
	if !doc.OneOf[2].Requires("diagnostics") {
		t.Fatalf("expected third alternative to be the result wrapper")
	}
}

func TestDiagnosticSchemaConstraints(t *testing.T) {
	diagnostic, _ := Get(NameDiagnostic)

	message := diagnostic.Properties["message"]
	if message.Type != TypeString || message.MinLength == nil || *message.MinLength != 1 {
		t.Fatalf("expected message to be a non-empty string")
	}

	severity := diagnostic.Properties["severity"]
	if len(severity.Enum) != 4 {
		t.Fatalf("expected 4 severity values, got %d", len(severity.Enum))
	}

	position, _ := Get(NamePosition)
	line := position.Properties["line"]
	if line.Type != TypeNumber || line.Minimum == nil || *line.Minimum != 1 {
		t.Fatalf("expected line to be a number with minimum 1")
	}
}

func TestIsValidSchema(t *testing.T) {
	testCases := []struct {
		name      string
		candidate interface{}
		expected  bool
	}{
		{name: "object with type", candidate: map[string]interface{}{"type": "string"}, expected: true},
		{name: "object with oneOf", candidate: map[string]interface{}{"oneOf": []interface{}{}}, expected: true},
		{name: "object with anyOf", candidate: map[string]interface{}{"anyOf": []interface{}{}}, expected: true},
		{name: "object with allOf", candidate: map[string]interface{}{"allOf": []interface{}{}}, expected: true},
		{name: "object with empty type", candidate: map[string]interface{}{"type": ""}, expected: false},
		{name: "object with non-string type", candidate: map[string]interface{}{"type": 1.0}, expected: false},
		{name: "plain object", candidate: map[string]interface{}{"foo": "bar"}, expected: false},
		{name: "string", candidate: "type", expected: false},
		{name: "nil", candidate: nil, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsValidSchema(tc.candidate); got != tc.expected {
				t.Fatalf("IsValidSchema(%v) = %v, want %v", tc.candidate, got, tc.expected)
			}
		})
	}
}
