package blueprint

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Kind enumerates the option types a blueprint may declare.
type Kind string

const (
	KindString      Kind = "string"
	KindBool        Kind = "bool"
	KindNumber      Kind = "number"
	KindChoice      Kind = "choice"
	KindMultiChoice Kind = "multichoice"
)

// ValidKind reports whether s names a declared option kind.
func ValidKind(s string) bool {
	switch Kind(s) {
	case KindString, KindBool, KindNumber, KindChoice, KindMultiChoice:
		return true
	}
	return false
}

// CtyType returns the cty value type carried by options of this kind.
func (k Kind) CtyType() cty.Type {
	switch k {
	case KindBool:
		return cty.Bool
	case KindNumber:
		return cty.Number
	case KindMultiChoice:
		return cty.List(cty.String)
	default:
		// string and choice are both plain strings on the wire.
		return cty.String
	}
}

// Option is one user-configurable field of the blueprint.
type Option struct {
	Key         string
	Kind        Kind
	Prompt      string
	Description string

	// Default is nil when the option has no default and therefore requires
	// an answer whenever it is visible.
	Default *cty.Value

	// Choices is non-empty only for choice and multichoice options.
	Choices []string

	// Validator sees `value` plus every previously resolved option.
	Validator hcl.Expression

	// VisibleWhen sees previously resolved options only. Nil means always
	// visible.
	VisibleWhen hcl.Expression
}

// HasChoice reports whether s is a member of the option's choice list.
func (o *Option) HasChoice(s string) bool {
	for _, c := range o.Choices {
		if c == s {
			return true
		}
	}
	return false
}

// Derived is one row of the blueprint's derivation table.
type Derived struct {
	Name  string
	Value hcl.Expression
}
