package filter

import (
	"fmt"
)

// Error types for filter operations
type (
	// CompilationError indicates a filter expression could not be compiled
	CompilationError struct {
		Expression string
		Reason     string
		Err        error
	}

	// EvaluationError indicates a filter could not be evaluated against an item
	EvaluationError struct {
		Expression string
		Subject    string
		Err        error
	}
)

func (e *CompilationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compilation error in '%s': %s: %v", e.Expression, e.Reason, e.Err)
	}
	return fmt.Sprintf("compilation error in '%s': %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

func (e *EvaluationError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("evaluation error for filter '%s': %v", e.Expression, e.Err)
	}
	return fmt.Sprintf("evaluation error for filter '%s' on '%s': %v", e.Expression, e.Subject, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
