package validator

import (
	"sort"

	"github.com/scan-io-git/diagval/internal/schema"
)

// Likelihood weights rank oneOf alternatives before any of them is tried.
// Structural signals (runtime type, required properties) dominate superficial
// key-count signals.
const (
	likelihoodTypeMatch          = 10
	likelihoodAllRequiredPresent = 50
	likelihoodRequiredPresent    = 5
	likelihoodRequiredMissing    = -20
	likelihoodDeclaredPresent    = 2
	likelihoodRecognizedKeyScale = 10
	likelihoodDiagnosticShape    = 30
	likelihoodWrapperMismatch    = -25
)

// Match-score weights rank failed alternatives after the fact, so the errors
// of the closest shape are the ones surfaced.
const (
	matchBase              = 100
	matchPerError          = -5
	matchTypeMismatch      = -50
	matchRequiredMissing   = -30
	matchStructuralError   = 2
	matchHasMessage        = 10
	matchHasLocation       = 10
	matchMissingWrapperKey = -20
)

// orderByLikelihood returns the oneOf alternatives sorted by descending
// likelihood of matching value. Ties keep declaration order.
func orderByLikelihood(alternatives []*schema.Node, value interface{}) []*schema.Node {
	type ranked struct {
		node  *schema.Node
		score int
		index int
	}

	rankings := make([]ranked, len(alternatives))
	for i, alt := range alternatives {
		rankings[i] = ranked{node: alt, score: likelihoodScore(alt, value), index: i}
	}
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].score > rankings[j].score
	})

	ordered := make([]*schema.Node, len(rankings))
	for i, r := range rankings {
		ordered[i] = r.node
	}
	return ordered
}

// likelihoodScore estimates how likely value is to conform to node before
// validating it. A candidate whose type does not match scores zero.
func likelihoodScore(node *schema.Node, value interface{}) int {
	if node.Type != "" && !typeMatches(value, node.Type) {
		return 0
	}

	score := likelihoodTypeMatch

	obj, isObject := value.(map[string]interface{})
	if node.Type != schema.TypeObject || !isObject {
		return score
	}

	present := 0
	for _, name := range node.Required {
		if _, ok := obj[name]; ok {
			present++
		}
	}
	if missing := len(node.Required) - present; missing == 0 && len(node.Required) > 0 {
		score += likelihoodAllRequiredPresent
	} else {
		score += present*likelihoodRequiredPresent + missing*likelihoodRequiredMissing
	}

	recognized := 0
	for name := range node.Properties {
		if _, ok := obj[name]; ok {
			recognized++
		}
	}
	score += recognized * likelihoodDeclaredPresent
	if len(obj) > 0 {
		score += likelihoodRecognizedKeyScale * recognized / len(obj)
	}

	_, hasMessage := obj["message"]
	_, hasLocation := obj["location"]
	if hasMessage && hasLocation && node.Requires("message") && node.Requires("location") {
		score += likelihoodDiagnosticShape
	}
	if node.Requires("diagnostics") && (hasMessage || hasLocation) {
		score += likelihoodWrapperMismatch
	}

	return score
}

// matchScore ranks a failed alternative by how close value came to matching
// it, judged from the errors that alternative produced. Errors that indicate
// "right shape, wrong detail" raise the score; shape-level errors sink it.
func matchScore(node *schema.Node, value interface{}, errors []ValidationError) int {
	score := matchBase

	for _, err := range errors {
		score += matchPerError
		switch err.Code {
		case CodeTypeMismatch:
			score += matchTypeMismatch
		case CodeRequiredPropertyMissing, CodeMissingMessage, CodeMissingLocation:
			score += matchRequiredMissing
		case CodeMinLengthViolation, CodeMaxLengthViolation, CodePatternMismatch,
			CodeEmptyString, CodeMinValueViolation, CodeMaxValueViolation,
			CodeEnumValidationFailed, CodeInvalidSeverity, CodeInvalidRange, CodeInvalidPosition:
			score += matchStructuralError
		}
	}

	if obj, ok := value.(map[string]interface{}); ok {
		if _, has := obj["message"]; has && node.Requires("message") {
			score += matchHasMessage
		}
		if _, has := obj["location"]; has && node.Requires("location") {
			score += matchHasLocation
		}
		if _, has := obj["diagnostics"]; !has && node.Requires("diagnostics") {
			score += matchMissingWrapperKey
		}
	}

	return score
}
