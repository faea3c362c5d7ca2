package hclload

import (
	"path"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/scaffgo/internal/blueprint"
	"github.com/vk/scaffgo/internal/hclutil"
	"github.com/vk/scaffgo/internal/schema"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// translate converts decoded schema files into the blueprint model,
// collecting every structural defect instead of stopping at the first.
func translate(files []*schema.File) (*blueprint.Blueprint, error) {
	cerr := &blueprint.ConsistencyError{}

	var options []*blueprint.Option
	var deriveds []*blueprint.Derived
	var groups []*blueprint.Group
	var artifacts []*blueprint.Artifact

	seenNames := map[string]string{} // option/derived name -> origin
	seenGroups := map[string]struct{}{}

	for _, f := range files {
		for _, o := range f.Options {
			if origin, ok := seenNames[o.Key]; ok {
				cerr.Add(blueprint.ProblemDuplicateOption, "option %q already declared as %s", o.Key, origin)
				continue
			}
			seenNames[o.Key] = "an option"
			if opt := translateOption(o, cerr); opt != nil {
				options = append(options, opt)
			}
		}
		for _, d := range f.Deriveds {
			if origin, ok := seenNames[d.Name]; ok {
				cerr.Add(blueprint.ProblemDuplicateDerived, "derived %q collides with %s of the same name", d.Name, origin)
				continue
			}
			seenNames[d.Name] = "a derived value"
			deriveds = append(deriveds, &blueprint.Derived{Name: d.Name, Value: d.Value})
		}
		for _, g := range f.ExclusiveGroups {
			if _, ok := seenGroups[g.Name]; ok {
				cerr.Add(blueprint.ProblemDuplicateGroup, "exclusive_group %q declared twice", g.Name)
				continue
			}
			seenGroups[g.Name] = struct{}{}
			groups = append(groups, &blueprint.Group{Name: g.Name, Description: g.Description})
		}
		for _, a := range f.Artifacts {
			if art := translateArtifact(a, cerr); art != nil {
				artifacts = append(artifacts, art)
			}
		}
	}

	// Cross-checks that need the full set.
	for _, a := range artifacts {
		if a.Group != "" {
			if _, ok := seenGroups[a.Group]; !ok {
				cerr.Add(blueprint.ProblemUnknownGroup, "artifact %q references undeclared exclusive_group %q", a.Path, a.Group)
			}
		}
	}
	checkUnconditionalDuplicates(artifacts, cerr)

	if cerr.HasProblems() {
		return nil, cerr
	}
	return blueprint.New(options, deriveds, groups, artifacts), nil
}

// translateOption converts a raw option block, evaluating its constant
// attributes (type keyword, choices, default) up front.
func translateOption(o *schema.Option, cerr *blueprint.ConsistencyError) *blueprint.Option {
	kindName, diags := hclutil.KeywordForExpr(o.Type)
	if diags.HasErrors() || !blueprint.ValidKind(kindName) {
		cerr.Add(blueprint.ProblemBadOptionType, "option %q: type must be one of string, bool, number, choice, multichoice", o.Key)
		return nil
	}
	kind := blueprint.Kind(kindName)

	opt := &blueprint.Option{
		Key:         o.Key,
		Kind:        kind,
		Prompt:      o.Prompt,
		Description: o.Description,
		Validator:   o.Validator,
		VisibleWhen: o.VisibleWhen,
	}

	needsChoices := kind == blueprint.KindChoice || kind == blueprint.KindMultiChoice
	if o.Choices != nil && !needsChoices {
		cerr.Add(blueprint.ProblemBadChoices, "option %q: choices are only valid for choice and multichoice options", o.Key)
		return nil
	}
	if needsChoices {
		choices, ok := evalChoices(o.Choices)
		if !ok || len(choices) == 0 {
			cerr.Add(blueprint.ProblemBadChoices, "option %q: choices must be a non-empty list of strings", o.Key)
			return nil
		}
		opt.Choices = choices
	}

	if o.Default != nil {
		val, diags := o.Default.Value(hclutil.EvalContext(nil))
		if diags.HasErrors() {
			cerr.Add(blueprint.ProblemBadDefault, "option %q: default is not a constant value: %s", o.Key, diags.Error())
			return nil
		}
		converted, err := convert.Convert(val, kind.CtyType())
		if err != nil {
			cerr.Add(blueprint.ProblemBadDefault, "option %q: default does not fit type %s: %s", o.Key, kind, err)
			return nil
		}
		if !defaultWithinChoices(opt, converted) {
			cerr.Add(blueprint.ProblemBadDefault, "option %q: default is not a member of choices", o.Key)
			return nil
		}
		opt.Default = &converted
	}

	return opt
}

// evalChoices evaluates the constant choices attribute to a string slice.
func evalChoices(expr hcl.Expression) ([]string, bool) {
	if expr == nil {
		return nil, false
	}
	val, diags := expr.Value(hclutil.EvalContext(nil))
	if diags.HasErrors() {
		return nil, false
	}
	listVal, err := convert.Convert(val, cty.List(cty.String))
	if err != nil || listVal.IsNull() {
		return nil, false
	}
	var choices []string
	for it := listVal.ElementIterator(); it.Next(); {
		_, el := it.Element()
		if el.IsNull() {
			return nil, false
		}
		choices = append(choices, el.AsString())
	}
	return choices, true
}

// defaultWithinChoices verifies choice membership of a non-null default.
func defaultWithinChoices(opt *blueprint.Option, val cty.Value) bool {
	if len(opt.Choices) == 0 || val.IsNull() {
		return true
	}
	switch opt.Kind {
	case blueprint.KindChoice:
		return opt.HasChoice(val.AsString())
	case blueprint.KindMultiChoice:
		for it := val.ElementIterator(); it.Next(); {
			_, el := it.Element()
			if el.IsNull() || !opt.HasChoice(el.AsString()) {
				return false
			}
		}
	}
	return true
}

// translateArtifact converts a raw artifact block and validates its shape.
func translateArtifact(a *schema.Artifact, cerr *blueprint.ConsistencyError) *blueprint.Artifact {
	cleaned, ok := cleanArtifactPath(a.Path)
	if !ok {
		cerr.Add(blueprint.ProblemBadArtifactPath, "artifact %q: path must be relative and must not escape the output root", a.Path)
		return nil
	}

	kind := blueprint.ArtifactKind(a.Kind)
	if a.Kind == "" {
		kind = blueprint.ArtifactFile
	}
	switch kind {
	case blueprint.ArtifactFile:
		if (a.Source == "") == (a.Content == nil) {
			cerr.Add(blueprint.ProblemBadArtifactBody, "artifact %q: file artifacts need exactly one of source or content", a.Path)
			return nil
		}
	case blueprint.ArtifactDirectory:
		if a.Source != "" || a.Content != nil {
			cerr.Add(blueprint.ProblemBadArtifactBody, "artifact %q: directory artifacts cannot carry a body", a.Path)
			return nil
		}
	default:
		cerr.Add(blueprint.ProblemBadArtifactKind, "artifact %q: kind must be \"file\" or \"directory\"", a.Path)
		return nil
	}

	return &blueprint.Artifact{
		Path:      cleaned,
		Kind:      kind,
		Source:    a.Source,
		Content:   a.Content,
		IncludeIf: a.IncludeIf,
		Group:     a.Group,
	}
}

// cleanArtifactPath normalizes an artifact path to clean slash form and
// rejects absolute paths and parent traversal.
func cleanArtifactPath(p string) (string, bool) {
	if p == "" || strings.HasPrefix(p, "/") {
		return "", false
	}
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", false
	}
	return cleaned, true
}

// checkUnconditionalDuplicates flags two artifacts sharing a path when both
// are unconditionally included. Conditional overlaps can only be judged
// against a concrete answer set, so the planner re-checks per run.
func checkUnconditionalDuplicates(artifacts []*blueprint.Artifact, cerr *blueprint.ConsistencyError) {
	unconditional := map[string]struct{}{}
	for _, a := range artifacts {
		if a.IncludeIf != nil {
			continue
		}
		if _, ok := unconditional[a.Path]; ok {
			cerr.Add(blueprint.ProblemConflictingPaths, "artifact path %q is declared twice without conditions", a.Path)
			continue
		}
		unconditional[a.Path] = struct{}{}
	}
}
