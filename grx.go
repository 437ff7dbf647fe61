/*
Package grx is a grammar-matching engine built from composable rule elements.

Consists of subpackages:
  - stream: defines input stream, consumption predicates, and leases over consumed spans;
  - tree: types and functions to build, traverse, and release match trees;
  - grammar: defines rule elements, named rules, and the matching protocol.

A grammar is a set of named rules, each rule an ordered sequence of rule
elements (literal text, character ranges, references to other rules,
sequences, ordered alternation, bounded repetition). Matching walks the
rule-element tree against a stream and produces a tree of matched spans.

Every successful consumption claims a lease over the consumed span.
A failed match attempt releases every lease it acquired, at every level,
so the stream cursor returns to its exact pre-attempt position. This
release protocol is what makes backtracking through alternation and
repetition correct: a lease is disposed exactly once, either released
back to the stream or retained inside a match-tree node.

Typical usage is:

1. Build rules with grammar.NewRule and collect them in a grammar.RuleMap.
All rules must be registered before matching starts, references between
rules are resolved by name at match time.

2. Optionally call RuleMap.Validate to reject dangling rule references
before any input is matched.

3. Create a stream.Stream over the input and call Rule.Match on the entry
rule. The result is a match tree tagged with rule names, or nil if the
input does not match.
*/
package grx

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	GrammarErrors = 1   // used by grammar for defects in the grammar itself
	MatchErrors   = 101 // used by grammar for aborted match attempts
)

// Error is the error type used by grx subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source or 0.
	Line int

	// Col contains column number in source or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// stream.Lease implements this interface.
type SourcePos interface {
	// SourceName returns source name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}
