// Package planner evaluates artifact inclusion predicates against a resolved
// answer set and produces the composition plan: the concrete, ordered set of
// artifacts to emit for one generation run.
package planner

import (
	"context"
	"path"
	"sort"

	"github.com/vk/scaffgo/internal/blueprint"
	"github.com/vk/scaffgo/internal/ctxlog"
	"github.com/vk/scaffgo/internal/hclutil"
	"github.com/vk/scaffgo/internal/resolver"
)

// Item is one included artifact. Content is nil until the renderer has
// expanded the artifact's template body; directories never carry content.
type Item struct {
	Artifact *blueprint.Artifact
	Content  []byte
}

// Plan is the composition plan for one run. Items preserve the artifact
// index declaration order so that identical inputs always produce identical
// plans, and Dirs lists every directory the write-out step must create,
// parents before children.
type Plan struct {
	Items []*Item
	Dirs  []string
}

// Files returns the included file items, in plan order.
func (p *Plan) Files() []*Item {
	var files []*Item
	for _, item := range p.Items {
		if item.Artifact.Kind == blueprint.ArtifactFile {
			files = append(files, item)
		}
	}
	return files
}

// Build evaluates every inclusion predicate and runs the cross-artifact
// consistency checks. A predicate clause depending on an invisible option
// evaluates to false, never errors. Any defect found aborts the run with a
// ConsistencyError: plans are never silently repaired.
func Build(ctx context.Context, bp *blueprint.Blueprint, res *resolver.Resolved) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)
	env := res.Env()

	plan := &Plan{}
	for _, artifact := range bp.Artifacts {
		included, err := hclutil.EvalBool(artifact.IncludeIf, env)
		if err != nil {
			return nil, (&blueprint.ConsistencyError{}).
				Add(blueprint.ProblemBadPredicate, "artifact %q: include_if: %s", artifact.Path, err)
		}
		if !included {
			continue
		}
		plan.Items = append(plan.Items, &Item{Artifact: artifact})
	}

	if cerr := check(bp, plan); cerr.HasProblems() {
		return nil, cerr
	}

	plan.Dirs = impliedDirs(plan)
	logger.Debug("Composition plan built.",
		"candidates", len(bp.Artifacts),
		"included", len(plan.Items),
		"directories", len(plan.Dirs),
	)
	return plan, nil
}

// check verifies the plan's internal consistency: unique paths, no file
// standing in for a parent directory, no excluded directory artifact under
// an included file, and exactly one member per exclusive group.
func check(bp *blueprint.Blueprint, plan *Plan) *blueprint.ConsistencyError {
	cerr := &blueprint.ConsistencyError{}

	includedByPath := map[string]*blueprint.Artifact{}
	for _, item := range plan.Items {
		a := item.Artifact
		if prev, ok := includedByPath[a.Path]; ok {
			cerr.Add(blueprint.ProblemConflictingPaths,
				"path %q is produced by two included artifacts (%s and %s)", a.Path, prev.Kind, a.Kind)
			continue
		}
		includedByPath[a.Path] = a
	}

	// Directory artifacts that were declared but excluded must not be
	// required as parents of included files.
	excludedDirs := map[string]struct{}{}
	for _, a := range bp.Artifacts {
		if a.Kind != blueprint.ArtifactDirectory {
			continue
		}
		if _, ok := includedByPath[a.Path]; !ok {
			excludedDirs[a.Path] = struct{}{}
		}
	}

	for _, item := range plan.Items {
		for parent := path.Dir(item.Artifact.Path); parent != "."; parent = path.Dir(parent) {
			if a, ok := includedByPath[parent]; ok && a.Kind == blueprint.ArtifactFile {
				cerr.Add(blueprint.ProblemConflictingPaths,
					"artifact %q needs parent directory %q, which an included artifact produces as a file",
					item.Artifact.Path, parent)
			}
			if _, ok := excludedDirs[parent]; ok {
				cerr.Add(blueprint.ProblemMissingParent,
					"artifact %q needs parent directory %q, which is declared but excluded under this answer set",
					item.Artifact.Path, parent)
			}
		}
	}

	// Exactly one included member per declared exclusive group.
	members := map[string][]string{}
	for _, item := range plan.Items {
		if g := item.Artifact.Group; g != "" {
			members[g] = append(members[g], item.Artifact.Path)
		}
	}
	for _, group := range bp.Groups {
		switch got := members[group.Name]; len(got) {
		case 1:
		case 0:
			cerr.Add(blueprint.ProblemZeroOrMultipleMembers,
				"exclusive_group %q has no included member under this answer set", group.Name)
		default:
			cerr.Add(blueprint.ProblemZeroOrMultipleMembers,
				"exclusive_group %q has %d included members: %v", group.Name, len(got), got)
		}
	}

	return cerr
}

// impliedDirs unions the included directory artifacts with every parent
// directory implied by included file paths, sorted so parents precede
// children. This makes the plan's directory set internally complete: the
// write-out step never has to invent a path.
func impliedDirs(plan *Plan) []string {
	dirs := map[string]struct{}{}
	for _, item := range plan.Items {
		if item.Artifact.Kind == blueprint.ArtifactDirectory {
			dirs[item.Artifact.Path] = struct{}{}
		}
		for parent := path.Dir(item.Artifact.Path); parent != "."; parent = path.Dir(parent) {
			dirs[parent] = struct{}{}
		}
	}

	out := make([]string, 0, len(dirs))
	for d := range dirs {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
