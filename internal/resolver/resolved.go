package resolver

import (
	"github.com/zclconf/go-cty/cty"
)

// Resolved is the immutable, fully-validated, fully-derived configuration
// for one generation run. Invisible options are bound as typed nulls so that
// downstream predicates referencing them evaluate to false instead of
// failing.
type Resolved struct {
	env     map[string]cty.Value
	visible []string
	derived []string
}

// Env returns a copy of the complete binding environment: every visible
// option and derived value by name, plus typed nulls for invisible options.
func (r *Resolved) Env() map[string]cty.Value {
	env := make(map[string]cty.Value, len(r.env))
	for k, v := range r.env {
		env[k] = v
	}
	return env
}

// Value returns the resolved value for a visible option or derived name.
// The second result is false for invisible or unknown names.
func (r *Resolved) Value(name string) (cty.Value, bool) {
	v, ok := r.env[name]
	if !ok || v.IsNull() {
		return cty.NilVal, false
	}
	return v, true
}

// IsVisible reports whether the option resolved to a concrete value under
// this answer set.
func (r *Resolved) IsVisible(key string) bool {
	_, ok := r.Value(key)
	return ok && contains(r.visible, key)
}

// VisibleKeys returns the visible option keys in declaration order.
func (r *Resolved) VisibleKeys() []string {
	out := make([]string, len(r.visible))
	copy(out, r.visible)
	return out
}

// DerivedNames returns the derived value names in declaration order.
func (r *Resolved) DerivedNames() []string {
	out := make([]string, len(r.derived))
	copy(out, r.derived)
	return out
}

func contains(s []string, v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}
