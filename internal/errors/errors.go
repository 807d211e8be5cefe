// Package errors defines the structured error model shared by every phase
// of the Axiom pipeline. Each error carries the phase that produced it
// (syntax, type, runtime), an optional machine-readable code, and position
// information for terminal rendering.
package errors

import (
	"encoding/json"
	"fmt"
)

// Kind identifies the pipeline phase an error originated from.
// The three kinds are disjoint: a rule that fails to lex or parse reports
// Syntax, a rule that fails checking reports Type, and a checked rule can
// only fail with Runtime during execution.
type Kind int

const (
	Syntax Kind = iota
	Type
	Runtime
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case Syntax:
		return "Syntax"
	case Type:
		return "Type"
	case Runtime:
		return "Runtime"
	default:
		return "Unknown"
	}
}

// MarshalJSON implements json.Marshaler for Kind.
func (k Kind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// Code classifies runtime errors so callers can react to specific
// conditions without matching on message text. has(...) relies on this:
// it converts CodeUndefinedVariable and CodeMissingProperty to false and
// propagates everything else.
type Code int

const (
	CodeNone Code = iota
	CodeUndefinedVariable
	CodeMissingProperty
	CodeDivisionByZero
	CodeBadTimestamp
	CodeNotAList
	CodeNotAnObject
	CodeBadContext
)

// Error is the structured error surfaced by the core. Line is 1-based and
// zero when no position applies (type and runtime errors generally carry
// none). Filename is attached with WithFilename when known (Compile does so
// for syntax errors, the contract loader for contract errors).
type Error struct {
	Message  string
	Filename string
	Kind     Kind
	Code     Code
	Line     int
}

// NewSyntax creates a syntax error anchored to a source line.
func NewSyntax(line int, format string, args ...any) *Error {
	return &Error{Kind: Syntax, Line: line, Message: fmt.Sprintf(format, args...)}
}

// NewType creates a type-check error.
func NewType(format string, args ...any) *Error {
	return &Error{Kind: Type, Message: fmt.Sprintf(format, args...)}
}

// NewRuntime creates a runtime error with a classification code.
func NewRuntime(code Code, format string, args ...any) *Error {
	return &Error{Kind: Runtime, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Line > 0 {
		if e.Filename != "" {
			return fmt.Sprintf("%s error in %s at line %d: %s", e.Kind, e.Filename, e.Line, e.Message)
		}
		return fmt.Sprintf("%s error at line %d: %s", e.Kind, e.Line, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// WithFilename returns a copy of the error tagged with the source filename.
func (e *Error) WithFilename(name string) *Error {
	clone := *e
	clone.Filename = name
	return &clone
}

// MarshalJSON renders the wire shape {kind, message, line?, filename?}.
func (e *Error) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"kind":    e.Kind.String(),
		"message": e.Message,
	}
	if e.Line > 0 {
		out["line"] = e.Line
	}
	if e.Filename != "" {
		out["filename"] = e.Filename
	}
	return json.Marshal(out)
}

// IsCode reports whether err is an *Error carrying the given code.
func IsCode(err error, code Code) bool {
	if ax, ok := err.(*Error); ok {
		return ax.Code == code
	}
	return false
}
