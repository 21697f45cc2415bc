package diag

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, raw string) interface{} {
	t.Helper()
	var data interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		t.Fatalf("failed to decode test document: %v", err)
	}
	return data
}

func TestNormalizeSingleDiagnostic(t *testing.T) {
	doc := mustDecode(t, `{
		"message": "unused variable",
		"location": {"path": "main.go", "range": {"start": {"line": 3, "column": 5}}},
		"severity": "WARNING",
		"code": {"value": "U100", "url": "https://example.com/U100"}
	}`)

	result, err := Normalize(doc)
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)

	diagnostic := result.Diagnostics[0]
	assert.Equal(t, "unused variable", diagnostic.Message)
	assert.Equal(t, "main.go", diagnostic.Location.Path)
	require.NotNil(t, diagnostic.Location.Range)
	assert.Equal(t, 3, diagnostic.Location.Range.Start.Line)
	assert.Equal(t, 5, diagnostic.Location.Range.Start.Column)
	assert.Equal(t, "WARNING", diagnostic.Severity)
	require.NotNil(t, diagnostic.Code)
	assert.Equal(t, "U100", diagnostic.Code.Value)
}

func TestNormalizeDiagnosticArray(t *testing.T) {
	doc := mustDecode(t, `[
		{"message": "a", "location": {"path": "a.go"}},
		{"message": "b", "location": {"path": "b.go"}}
	]`)

	result, err := Normalize(doc)
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 2)
	assert.Equal(t, "a", result.Diagnostics[0].Message)
	assert.Equal(t, "b.go", result.Diagnostics[1].Location.Path)
	assert.Nil(t, result.Source)
}

func TestNormalizeResultWrapper(t *testing.T) {
	doc := mustDecode(t, `{
		"diagnostics": [{"message": "a", "location": {"path": "a.go"}}],
		"source": {"name": "golint", "url": "https://example.com"},
		"severity": "ERROR"
	}`)

	result, err := Normalize(doc)
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)
	require.NotNil(t, result.Source)
	assert.Equal(t, "golint", result.Source.Name)
	assert.Equal(t, "ERROR", result.Severity)
}

func TestNormalizeRejectsScalars(t *testing.T) {
	for _, data := range []interface{}{nil, "text", float64(3), true} {
		_, err := Normalize(data)
		assert.Error(t, err, "expected %v to be rejected", data)
	}
}
