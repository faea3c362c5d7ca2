package hclutil

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Functions is the fixed function table available to every blueprint
// expression: validators, visibility rules, derivations, inclusion
// predicates and template bodies all see the same set.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"length":    stdlib.LengthFunc,
		"strlen":    stdlib.StrlenFunc,
		"contains":  stdlib.ContainsFunc,
		"lower":     stdlib.LowerFunc,
		"upper":     stdlib.UpperFunc,
		"trimspace": stdlib.TrimSpaceFunc,
		"join":      stdlib.JoinFunc,
		"split":     stdlib.SplitFunc,
		"format":    stdlib.FormatFunc,
		"coalesce":  stdlib.CoalesceFunc,
	}
}

// EvalContext builds an hcl.EvalContext binding the given variables together
// with the shared function table.
func EvalContext(vars map[string]cty.Value) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: vars,
		Functions: Functions(),
	}
}

// EvalBool evaluates a boolean expression against vars.
//
// Absent options are bound as typed nulls. A clause that errors on, or
// evaluates to null because of, a null-bound reference yields false rather
// than an error: the absence of a feature implies the absence of anything
// predicated on it. Errors that do not involve a null reference are real
// blueprint defects and are surfaced.
func EvalBool(expr hcl.Expression, vars map[string]cty.Value) (bool, error) {
	if expr == nil {
		return true, nil
	}

	val, diags := expr.Value(EvalContext(vars))
	if diags.HasErrors() || val.IsNull() {
		if referencesNull(expr, vars) {
			return false, nil
		}
		if diags.HasErrors() {
			return false, diags
		}
		return false, fmt.Errorf("expression at %s evaluated to null", expr.Range())
	}

	if val.Type() != cty.Bool {
		return false, fmt.Errorf("expression at %s must be boolean, got %s", expr.Range(), val.Type().FriendlyName())
	}
	return val.True(), nil
}

// referencesNull reports whether any variable referenced by expr is bound to
// a null value (or not bound at all) in vars.
func referencesNull(expr hcl.Expression, vars map[string]cty.Value) bool {
	for _, name := range References(expr) {
		val, ok := vars[name]
		if !ok || val.IsNull() {
			return true
		}
	}
	return false
}
