package blueprint

import (
	"fmt"
	"strings"
)

// Problem codes reported inside a ConsistencyError.
const (
	ProblemDuplicateOption       = "duplicate_option"
	ProblemDuplicateDerived      = "duplicate_derived"
	ProblemDuplicateGroup        = "duplicate_group"
	ProblemUnknownGroup          = "unknown_group"
	ProblemBadOptionType         = "bad_option_type"
	ProblemBadDefault            = "bad_default"
	ProblemBadChoices            = "bad_choices"
	ProblemBadArtifactBody       = "bad_artifact_body"
	ProblemBadArtifactKind       = "bad_artifact_kind"
	ProblemBadArtifactPath       = "bad_artifact_path"
	ProblemConflictingPaths      = "conflicting_paths"
	ProblemMissingParent         = "missing_parent"
	ProblemZeroOrMultipleMembers = "zero_or_multiple_members"
	ProblemBadPredicate          = "bad_predicate"
)

// Problem is a single defect found in a blueprint or a composition plan.
type Problem struct {
	Code   string
	Detail string
}

// ConsistencyError reports defects in the blueprint itself or in the plan it
// produces. It is never attributable to user input: it means the blueprint
// author shipped a broken artifact index, so generation must abort rather
// than repair.
type ConsistencyError struct {
	Problems []Problem
}

// Error implements the error interface.
func (e *ConsistencyError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = fmt.Sprintf("%s: %s", p.Code, p.Detail)
	}
	return "blueprint consistency check failed:\n- " + strings.Join(msgs, "\n- ")
}

// ErrorKind identifies the error taxonomy entry for CLI exit-code mapping.
func (e *ConsistencyError) ErrorKind() string { return "consistency_error" }

// Add appends a problem and returns the receiver for chaining during checks.
func (e *ConsistencyError) Add(code, format string, args ...any) *ConsistencyError {
	e.Problems = append(e.Problems, Problem{Code: code, Detail: fmt.Sprintf(format, args...)})
	return e
}

// HasProblems reports whether any defect was recorded.
func (e *ConsistencyError) HasProblems() bool { return len(e.Problems) > 0 }
