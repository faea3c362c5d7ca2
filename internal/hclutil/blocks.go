// Package hclutil provides small helpers shared by the blueprint loader and
// the evaluation stages: keyword decoding, the expression function table,
// and null-tolerant predicate evaluation.
package hclutil

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
)

// KeywordForExpr decodes an expression that must be a bare keyword (e.g. the
// `string` in `type = string`) into its name. It returns a diagnostic error
// for anything more complex than a single identifier.
func KeywordForExpr(expr hcl.Expression) (string, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	traversal, hclDiags := hcl.AbsTraversalForExpr(expr)
	if hclDiags.HasErrors() || len(traversal) != 1 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid keyword",
			Detail:   "Expected a bare keyword such as 'string', 'bool', 'number', 'choice' or 'multichoice', not a complex expression.",
			Subject:  expr.Range().Ptr(),
		})
		return "", diags
	}

	return traversal.RootName(), diags
}

// References returns the sorted, de-duplicated root names of every variable
// referenced by the given expressions.
func References(exprs ...hcl.Expression) []string {
	seen := map[string]struct{}{}
	var names []string
	for _, expr := range exprs {
		if expr == nil {
			continue
		}
		for _, traversal := range expr.Variables() {
			name := traversal.RootName()
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
