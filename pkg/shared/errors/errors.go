package errors

import "fmt"

// Exit codes used by the CLI facade.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// CommandError represents a command failure carrying the process exit code.
type CommandError struct {
	ExitCode    int
	CommonError string
}

// Error implements the error interface, returning the message from the common error.
func (e *CommandError) Error() string {
	return e.CommonError
}

// NewCommandError creates a new CommandError wrapping err with an exit code.
func NewCommandError(err error, code int) *CommandError {
	return &CommandError{
		ExitCode:    code,
		CommonError: err.Error(),
	}
}

// NewInvalidDocumentError signals that a document failed validation; the
// message is informational, the report itself was already rendered.
func NewInvalidDocumentError(errorCount int) *CommandError {
	return &CommandError{
		ExitCode:    ExitFailure,
		CommonError: fmt.Sprintf("document is invalid: %d error(s)", errorCount),
	}
}

// ParseError represents malformed JSON input, surfaced by the parsing
// boundary before validation is attempted.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid JSON at line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("invalid JSON: %v", e.Err)
}

// Unwrap exposes the underlying decode error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a ParseError with a position inside the raw input.
func NewParseError(err error, line, column int) *ParseError {
	return &ParseError{Line: line, Column: column, Err: err}
}
