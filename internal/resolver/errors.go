package resolver

import (
	"fmt"
	"strings"
)

// Violation is one rejected answer: the offending option key and a
// human-readable reason.
type Violation struct {
	Option string
	Reason string
}

// ValidationError reports every violation found in one resolution pass.
//
// Aggregation over fail-fast is a deliberate, documented choice: the
// contract only constrains accept/reject, and reporting all problems at
// once lets a user fix their answers file in one edit.
type ValidationError struct {
	Violations []Violation
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = fmt.Sprintf("option %q: %s", v.Option, v.Reason)
	}
	return "invalid answers:\n- " + strings.Join(msgs, "\n- ")
}

// ErrorKind identifies the error taxonomy entry for CLI exit-code mapping.
func (e *ValidationError) ErrorKind() string { return "validation_error" }

func (e *ValidationError) add(option, format string, args ...any) {
	e.Violations = append(e.Violations, Violation{Option: option, Reason: fmt.Sprintf(format, args...)})
}
