package book

import (
	"errors"
	"fmt"
)

// Category classifies a load failure for callers that branch on failure mode.
type Category string

const (
	// CategoryMalformedInput: the raw text is not valid YAML or not the
	// expected document shape.
	CategoryMalformedInput Category = "malformed_input"
	// CategorySchemaViolation: a node's field combination matches no valid
	// kind, or a required field for its inferred kind is missing.
	CategorySchemaViolation Category = "schema_violation"
	// CategoryCyclicInclude: include resolution revisited a reference
	// already on the resolution stack.
	CategoryCyclicInclude Category = "cyclic_include"
	// CategoryUnresolvedInclude: the resolver could not supply a fragment
	// for a referenced path.
	CategoryUnresolvedInclude Category = "unresolved_include"
)

// LoadError is a structured loader failure carrying the failure category and
// the position of the offending node within the tree.
type LoadError struct {
	Category Category
	Message  string
	Position string
	Cause    error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Category, e.Message)
	if e.Position != "" {
		msg += fmt.Sprintf(" (at %s)", e.Position)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

// Unwrap supports errors.Is/errors.As chains.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// IsCategory reports whether err is a LoadError of the given category.
func IsCategory(err error, cat Category) bool {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Category == cat
	}
	return false
}

func malformed(position, format string, args ...any) *LoadError {
	return &LoadError{
		Category: CategoryMalformedInput,
		Message:  fmt.Sprintf(format, args...),
		Position: position,
	}
}

func malformedWrap(err error, position, message string) *LoadError {
	return &LoadError{
		Category: CategoryMalformedInput,
		Message:  message,
		Position: position,
		Cause:    err,
	}
}

func schemaViolation(position, format string, args ...any) *LoadError {
	return &LoadError{
		Category: CategorySchemaViolation,
		Message:  fmt.Sprintf(format, args...),
		Position: position,
	}
}

func cyclicInclude(position, ref string, chain []string) *LoadError {
	return &LoadError{
		Category: CategoryCyclicInclude,
		Message:  fmt.Sprintf("include %q already on resolution stack %v", ref, chain),
		Position: position,
	}
}

func unresolvedInclude(err error, position, ref string) *LoadError {
	return &LoadError{
		Category: CategoryUnresolvedInclude,
		Message:  fmt.Sprintf("no fragment for include %q", ref),
		Position: position,
		Cause:    err,
	}
}
