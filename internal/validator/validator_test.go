package validator

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/diagval/internal/schema"
)

// mustDecode parses JSON the same way the input layer does, so numbers are
// float64 and objects are map[string]interface{}.
func mustDecode(t *testing.T, raw string) interface{} {
	t.Helper()
	var data interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		t.Fatalf("failed to decode test document: %v", err)
	}
	return data
}

func errorCodes(result *Result) []Code {
	codes := make([]Code, 0, len(result.Errors))
	for _, err := range result.Errors {
		codes = append(codes, err.Code)
	}
	return codes
}

func findError(result *Result, code Code) (ValidationError, bool) {
	for _, err := range result.Errors {
		if err.Code == code {
			return err, true
		}
	}
	return ValidationError{}, false
}

func TestValidateInputShapeErrors(t *testing.T) {
	testCases := []struct {
		name         string
		data         interface{}
		expectedCode Code
	}{
		{name: "null input", data: nil, expectedCode: CodeNullInput},
		{name: "empty string", data: "", expectedCode: CodeEmptyInput},
		{name: "whitespace string", data: "   \n\t", expectedCode: CodeEmptyInput},
		{name: "empty object", data: map[string]interface{}{}, expectedCode: CodeEmptyInput},
		{name: "empty array", data: []interface{}{}, expectedCode: CodeEmptyArray},
	}

	v := New(Options{}, nil)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := v.Validate(tc.data)
			require.False(t, result.Valid)
			require.Len(t, result.Errors, 1)
			assert.Equal(t, tc.expectedCode, result.Errors[0].Code)
			assert.Equal(t, "", result.Errors[0].Path)
		})
	}
}

func TestValidateAcceptsMinimalDiagnostic(t *testing.T) {
	v := New(Options{}, nil)
	result := v.Validate(mustDecode(t, `{"message":"x","location":{"path":"a.js"}}`))

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateAcceptsAllThreeTopLevelShapes(t *testing.T) {
	documents := []string{
		`{"message":"unused variable","location":{"path":"main.go","range":{"start":{"line":3,"column":5}}},"severity":"WARNING"}`,
		`[{"message":"a","location":{"path":"a.go"}},{"message":"b","location":{"path":"b.go"}}]`,
		`{"diagnostics":[{"message":"a","location":{"path":"a.go"}}],"source":{"name":"golint","url":"https://example.com"},"severity":"ERROR"}`,
	}

	v := New(Options{}, nil)
	for _, doc := range documents {
		result := v.Validate(mustDecode(t, doc))
		assert.True(t, result.Valid, "expected %s to be valid, errors: %v", doc, result.Errors)
	}
}

func TestValidateMissingLocationIsRefined(t *testing.T) {
	v := New(Options{}, nil)
	result := v.Validate(mustDecode(t, `{"message":"x"}`))

	require.False(t, result.Valid)

	missing, ok := findError(result, CodeMissingLocation)
	require.True(t, ok, "expected MISSING_DIAGNOSTIC_LOCATION, got %v", errorCodes(result))
	assert.Equal(t, "location", missing.Path)

	for _, err := range result.Errors {
		if err.Code == CodeRequiredPropertyMissing && err.Path == "location" {
			t.Fatalf("generic REQUIRED_PROPERTY_MISSING must be superseded at %q", err.Path)
		}
	}
}

func TestValidateCollectsIndependentErrors(t *testing.T) {
	v := New(Options{}, nil)
	result := v.Validate(mustDecode(t, `{"message":5,"severity":"bogus","location":{"path":"a.go"}}`))

	require.False(t, result.Valid)
	require.GreaterOrEqual(t, len(result.Errors), 2)

	mismatch, ok := findError(result, CodeTypeMismatch)
	require.True(t, ok, "expected TYPE_MISMATCH, got %v", errorCodes(result))
	assert.Equal(t, "message", mismatch.Path)
	assert.Equal(t, "string", mismatch.Expected)

	severity, ok := findError(result, CodeInvalidSeverity)
	require.True(t, ok, "expected INVALID_SEVERITY, got %v", errorCodes(result))
	assert.Equal(t, "severity", severity.Path)
}

func TestValidateEmptyDiagnosticsArrayWarns(t *testing.T) {
	v := New(Options{}, nil)
	result := v.Validate(mustDecode(t, `{"diagnostics":[]}`))

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, CodeEmptyArray, result.Warnings[0].Code)
	assert.Equal(t, "diagnostics", result.Warnings[0].Path)
}

func TestValidateUnknownPropertyModes(t *testing.T) {
	doc := `{"message":"x","location":{"path":"a.go"},"extra":1}`

	t.Run("permissive mode warns", func(t *testing.T) {
		v := New(Options{}, nil)
		result := v.Validate(mustDecode(t, doc))
		assert.True(t, result.Valid)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, CodeUnknownProperty, result.Warnings[0].Code)
		assert.Equal(t, "extra", result.Warnings[0].Path)
	})

	t.Run("strict mode rejects", func(t *testing.T) {
		v := New(Options{StrictMode: true}, nil)
		result := v.Validate(mustDecode(t, doc))
		require.False(t, result.Valid)
		unknown, ok := findError(result, CodeUnknownProperty)
		require.True(t, ok)
		assert.Equal(t, "extra", unknown.Path)
	})

	t.Run("allow-extra-fields silences", func(t *testing.T) {
		v := New(Options{AllowExtraFields: true}, nil)
		result := v.Validate(mustDecode(t, doc))
		assert.True(t, result.Valid)
		assert.Empty(t, result.Warnings)
	})
}

func TestValidateArrayElementErrorsCarryIndexedPaths(t *testing.T) {
	v := New(Options{}, nil)
	result := v.Validate(mustDecode(t, `[{"message":"x","location":{"path":"a.go"}},{"message":"y"}]`))

	require.False(t, result.Valid)
	missing, ok := findError(result, CodeMissingLocation)
	require.True(t, ok, "expected MISSING_DIAGNOSTIC_LOCATION, got %v", errorCodes(result))
	assert.Equal(t, "[1].location", missing.Path)
}

func TestValidateOneOfSurfacesSingleAlternative(t *testing.T) {
	// A document that matches no alternative must report errors from exactly
	// one of them, never a union: the bare diagnostic alternative is the
	// closest fit, so the array and wrapper alternatives stay silent.
	v := New(Options{}, nil)
	result := v.Validate(mustDecode(t, `{"message":"x","location":{"path":""}}`))

	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, CodeEmptyString, result.Errors[0].Code)
	assert.Equal(t, "location.path", result.Errors[0].Path)
}

func TestValidateIsDeterministic(t *testing.T) {
	// Multiple unknown keys exercise the sorted-key iteration.
	doc := mustDecode(t, `{"zeta":1,"alpha":2,"message":5,"severity":"nope","mid":3}`)

	v := New(Options{}, nil)
	first := v.Validate(doc)
	for i := 0; i < 5; i++ {
		again := v.Validate(doc)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("validation of the same document diverged on run %d:\nfirst: %+v\nagain: %+v", i, first, again)
		}
	}
}

func TestValidateFieldAgainstExplicitNode(t *testing.T) {
	v := New(Options{}, nil)
	node := &schema.Node{Type: schema.TypeNumber, Minimum: floatPtr(1)}

	result := v.ValidateField("line", "42", node)
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, CodeTypeMismatch, result.Errors[0].Code)
	assert.Equal(t, "line", result.Errors[0].Path)
	assert.Equal(t, "number", result.Errors[0].Expected)

	ok := v.ValidateField("line", float64(42), node)
	assert.True(t, ok.Valid)
}

func TestValidateNumberBoundsCarryStructuredLimits(t *testing.T) {
	v := New(Options{}, nil)
	node := &schema.Node{Type: schema.TypeNumber, Minimum: floatPtr(1), Maximum: floatPtr(10)}

	low := v.ValidateField("n", float64(0), node)
	require.Len(t, low.Errors, 1)
	assert.Equal(t, CodeMinValueViolation, low.Errors[0].Code)
	require.NotNil(t, low.Errors[0].Minimum)
	assert.Equal(t, float64(1), *low.Errors[0].Minimum)

	high := v.ValidateField("n", float64(11), node)
	require.Len(t, high.Errors, 1)
	assert.Equal(t, CodeMaxValueViolation, high.Errors[0].Code)
	require.NotNil(t, high.Errors[0].Maximum)
	assert.Equal(t, float64(10), *high.Errors[0].Maximum)
}

func TestSetOptionsAffectsSubsequentCalls(t *testing.T) {
	doc := mustDecode(t, `{"message":"x","location":{"path":"a.go"},"extra":1}`)

	v := New(Options{}, nil)
	require.True(t, v.Validate(doc).Valid)

	v.SetOptions(Options{StrictMode: true})
	assert.False(t, v.Validate(doc).Valid)
}

func TestValidateNeverPanicsOnHostileShapes(t *testing.T) {
	documents := []string{
		`{"message":{"nested":true},"location":[1,2],"severity":5}`,
		`{"diagnostics":{"not":"an array"}}`,
		`[[["deep"]]]`,
		`{"location":{"range":{"start":"not an object"}}}`,
		`123`,
		`true`,
	}

	v := New(Options{StrictMode: true}, nil)
	for _, doc := range documents {
		result := v.Validate(mustDecode(t, doc))
		assert.False(t, result.Valid, "expected %s to be invalid", doc)
	}
}
