package validator

// Code classifies a validation finding.
type Code string

const (
	CodeNullInput               Code = "NULL_INPUT"
	CodeEmptyInput              Code = "EMPTY_INPUT"
	CodeInvalidJSON             Code = "INVALID_JSON"
	CodeTypeMismatch            Code = "TYPE_MISMATCH"
	CodeOneOfValidationFailed   Code = "ONEOF_VALIDATION_FAILED"
	CodeEnumValidationFailed    Code = "ENUM_VALIDATION_FAILED"
	CodeMinLengthViolation      Code = "MIN_LENGTH_VIOLATION"
	CodeMaxLengthViolation      Code = "MAX_LENGTH_VIOLATION"
	CodePatternMismatch         Code = "PATTERN_MISMATCH"
	CodeEmptyString             Code = "EMPTY_STRING"
	CodeMinValueViolation       Code = "MIN_VALUE_VIOLATION"
	CodeMaxValueViolation       Code = "MAX_VALUE_VIOLATION"
	CodeInvalidNumber           Code = "INVALID_NUMBER"
	CodeRequiredPropertyMissing Code = "REQUIRED_PROPERTY_MISSING"
	CodeUnknownProperty         Code = "UNKNOWN_PROPERTY"
	CodeInvalidObjectStructure  Code = "INVALID_OBJECT_STRUCTURE"
	CodeInvalidArrayItem        Code = "INVALID_ARRAY_ITEM"
	CodeEmptyArray              Code = "EMPTY_ARRAY"
	CodeInvalidSeverity         Code = "INVALID_SEVERITY"
	CodeInvalidLocation         Code = "INVALID_LOCATION"
	CodeInvalidRange            Code = "INVALID_RANGE"
	CodeInvalidPosition         Code = "INVALID_POSITION"
	CodeMissingMessage          Code = "MISSING_DIAGNOSTIC_MESSAGE"
	CodeMissingLocation         Code = "MISSING_DIAGNOSTIC_LOCATION"
)

// category groups codes that diagnose the same concern at a path, so the
// domain refinement pass can override a generic finding with a specific one
// without reporting both.
type category int

const (
	categoryNone category = iota
	categoryRequired
	categoryEnum
	categoryNumeric
)

func codeCategory(code Code) category {
	switch code {
	case CodeRequiredPropertyMissing, CodeMissingMessage, CodeMissingLocation, CodeInvalidRange:
		return categoryRequired
	case CodeEnumValidationFailed, CodeInvalidSeverity:
		return categoryEnum
	case CodeTypeMismatch, CodeMinValueViolation, CodeMaxValueViolation, CodeInvalidNumber, CodeInvalidPosition:
		return categoryNumeric
	default:
		return categoryNone
	}
}
