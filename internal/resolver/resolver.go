// Package resolver turns a raw answer document into the immutable Resolved
// configuration: visibility is decided, defaults applied, choices and
// validators enforced, and the derivation table computed.
package resolver

import (
	"context"

	"github.com/vk/scaffgo/internal/answers"
	"github.com/vk/scaffgo/internal/blueprint"
	"github.com/vk/scaffgo/internal/ctxlog"
	"github.com/vk/scaffgo/internal/hclutil"
	"github.com/zclconf/go-cty/cty"
)

// Resolve evaluates the blueprint's options in declaration order against the
// supplied answers.
//
// Visibility is decided from already-resolved prior answers; invisible
// options are excluded from the resolved set (bound as typed nulls) and any
// raw answer supplied for them is ignored, as are unknown keys. Validators
// run in a second pass so they can see the full visible answer set, and the
// derivation table is computed last. Resolve is pure: same inputs, same
// Resolved.
func Resolve(ctx context.Context, bp *blueprint.Blueprint, doc *answers.Document) (*Resolved, error) {
	logger := ctxlog.FromContext(ctx)
	verr := &ValidationError{}

	// Every option starts null; visible ones are overwritten as resolved.
	env := make(map[string]cty.Value, len(bp.Options)+len(bp.Deriveds))
	for _, opt := range bp.Options {
		env[opt.Key] = cty.NullVal(opt.Kind.CtyType())
	}

	var visible []string

	// Pass 1: visibility, value selection, type and choice checks.
	for _, opt := range bp.Options {
		isVisible, err := hclutil.EvalBool(opt.VisibleWhen, env)
		if err != nil {
			return nil, (&blueprint.ConsistencyError{}).
				Add(blueprint.ProblemBadPredicate, "option %q: visible_when: %s", opt.Key, err)
		}
		if !isVisible {
			logger.Debug("Option not visible under current answers, skipping.", "option", opt.Key)
			continue
		}

		val, ok := resolveValue(opt, doc, verr)
		if !ok {
			continue
		}
		env[opt.Key] = val
		visible = append(visible, opt.Key)
	}

	// Pass 2: validators, against the full visible set plus the candidate
	// value bound as `value`.
	for _, key := range visible {
		opt := bp.Option(key)
		if opt.Validator == nil {
			continue
		}
		vars := make(map[string]cty.Value, len(env)+1)
		for k, v := range env {
			vars[k] = v
		}
		vars["value"] = env[key]

		ok, err := hclutil.EvalBool(opt.Validator, vars)
		if err != nil {
			return nil, (&blueprint.ConsistencyError{}).
				Add(blueprint.ProblemBadPredicate, "option %q: validator: %s", opt.Key, err)
		}
		if !ok {
			verr.add(opt.Key, "value does not satisfy the option's validator")
		}
	}

	if len(verr.Violations) > 0 {
		return nil, verr
	}

	// Pass 3: the derivation table, from the complete resolved visible set.
	var derivedNames []string
	for _, d := range bp.Deriveds {
		val, diags := d.Value.Value(hclutil.EvalContext(env))
		if diags.HasErrors() {
			return nil, (&blueprint.ConsistencyError{}).
				Add(blueprint.ProblemBadPredicate, "derived %q: %s", d.Name, diags.Error())
		}
		env[d.Name] = val
		derivedNames = append(derivedNames, d.Name)
	}

	logger.Debug("Answers resolved.", "visible", len(visible), "derived", len(derivedNames))
	return &Resolved{env: env, visible: visible, derived: derivedNames}, nil
}

// resolveValue picks the concrete value for a visible option: the supplied
// answer when present, the default otherwise. Type and choice-membership
// failures are recorded as violations.
func resolveValue(opt *blueprint.Option, doc *answers.Document, verr *ValidationError) (cty.Value, bool) {
	if doc.Has(opt.Key) {
		val, err := doc.Coerce(opt)
		if err != nil {
			verr.add(opt.Key, "%s", err)
			return cty.NilVal, false
		}
		if !withinChoices(opt, val) {
			verr.add(opt.Key, "value is not one of the declared choices %v", opt.Choices)
			return cty.NilVal, false
		}
		return val, true
	}

	if opt.Default != nil {
		return *opt.Default, true
	}

	verr.add(opt.Key, "no value supplied and the option has no default")
	return cty.NilVal, false
}

// withinChoices enforces choice-list membership for supplied values.
func withinChoices(opt *blueprint.Option, val cty.Value) bool {
	switch opt.Kind {
	case blueprint.KindChoice:
		return opt.HasChoice(val.AsString())
	case blueprint.KindMultiChoice:
		for it := val.ElementIterator(); it.Next(); {
			_, el := it.Element()
			if !opt.HasChoice(el.AsString()) {
				return false
			}
		}
	}
	return true
}
