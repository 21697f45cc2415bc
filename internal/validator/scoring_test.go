package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/diagval/internal/schema"
)

func documentAlternatives(t *testing.T) (single, array, wrapper *schema.Node) {
	t.Helper()
	doc := schema.Document()
	require.Len(t, doc.OneOf, 3)
	return doc.OneOf[0], doc.OneOf[1], doc.OneOf[2]
}

func TestOrderByLikelihoodPrefersDiagnosticShape(t *testing.T) {
	single, _, _ := documentAlternatives(t)
	value := map[string]interface{}{
		"message":  "x",
		"location": map[string]interface{}{"path": "a.go"},
	}

	ordered := orderByLikelihood(schema.Document().OneOf, value)
	assert.Same(t, single, ordered[0])
}

func TestOrderByLikelihoodPrefersWrapperShape(t *testing.T) {
	_, _, wrapper := documentAlternatives(t)
	value := map[string]interface{}{
		"diagnostics": []interface{}{},
	}

	ordered := orderByLikelihood(schema.Document().OneOf, value)
	assert.Same(t, wrapper, ordered[0])
}

func TestOrderByLikelihoodPrefersArrayShape(t *testing.T) {
	_, array, _ := documentAlternatives(t)
	value := []interface{}{
		map[string]interface{}{"message": "x"},
	}

	ordered := orderByLikelihood(schema.Document().OneOf, value)
	assert.Same(t, array, ordered[0])
}

func TestLikelihoodScoreZeroOnTypeMismatch(t *testing.T) {
	node := &schema.Node{Type: schema.TypeArray}
	assert.Equal(t, 0, likelihoodScore(node, map[string]interface{}{}))
	assert.Equal(t, 0, likelihoodScore(node, "text"))
	assert.NotZero(t, likelihoodScore(node, []interface{}{}))
}

func TestLikelihoodScorePenalizesWrapperForDiagnosticKeys(t *testing.T) {
	single, _, wrapper := documentAlternatives(t)
	value := map[string]interface{}{
		"message":  "x",
		"severity": "ERROR",
	}

	// A node carrying diagnostic keys but no diagnostics array should rank
	// the bare-diagnostic alternative above the wrapper.
	assert.Greater(t, likelihoodScore(single, value), likelihoodScore(wrapper, value))
}

func TestMatchScoreRanksClosestShapeHighest(t *testing.T) {
	single, array, wrapper := documentAlternatives(t)
	value := map[string]interface{}{"message": "x"}

	singleErrors := []ValidationError{
		{Path: "location", Code: CodeRequiredPropertyMissing},
	}
	arrayErrors := []ValidationError{
		{Path: "", Code: CodeTypeMismatch},
	}
	wrapperErrors := []ValidationError{
		{Path: "diagnostics", Code: CodeRequiredPropertyMissing},
	}

	singleScore := matchScore(single, value, singleErrors)
	arrayScore := matchScore(array, value, arrayErrors)
	wrapperScore := matchScore(wrapper, value, wrapperErrors)

	assert.Greater(t, singleScore, arrayScore)
	assert.Greater(t, singleScore, wrapperScore)
}

func TestMatchScoreRewardsDetailErrorsOverShapeErrors(t *testing.T) {
	node := &schema.Node{Type: schema.TypeObject}
	value := map[string]interface{}{}

	detail := matchScore(node, value, []ValidationError{{Code: CodeEmptyString}})
	shape := matchScore(node, value, []ValidationError{{Code: CodeTypeMismatch}})

	assert.Greater(t, detail, shape)
}
