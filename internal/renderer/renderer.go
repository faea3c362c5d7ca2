// Package renderer expands the template body of every file in a composition
// plan using the resolved answers as the binding environment. Expansion is
// pure: template sources are read up front, and the render pool itself
// touches nothing but the immutable plan and environment.
package renderer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/scaffgo/internal/blueprint"
	"github.com/vk/scaffgo/internal/ctxlog"
	"github.com/vk/scaffgo/internal/hclutil"
	"github.com/vk/scaffgo/internal/planner"
	"github.com/vk/scaffgo/internal/resolver"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Render fills in the byte content of every file item in the plan. Work is
// spread across a bounded pool of workers; artifact independence makes this
// safe, and the plan's declaration order is untouched because each worker
// writes only its own item. The first failure cancels outstanding work.
func Render(ctx context.Context, plan *planner.Plan, res *resolver.Resolved, templateRoot string, workers int) error {
	logger := ctxlog.FromContext(ctx)
	if workers < 1 {
		workers = 1
	}

	files := plan.Files()
	sources, err := preloadSources(files, templateRoot)
	if err != nil {
		return err
	}

	env := res.Env()
	pool := newPool(workers)
	renderErr := pool.run(ctx, files, func(item *planner.Item) error {
		content, err := expand(item.Artifact, sources[item.Artifact.Source], env)
		if err != nil {
			return err
		}
		item.Content = content
		return nil
	})
	if renderErr != nil {
		return renderErr
	}

	logger.Debug("All artifacts rendered.", "files", len(files), "workers", workers)
	return nil
}

// preloadSources reads every referenced template file once, before the pool
// starts, keeping the expansion step free of filesystem access.
func preloadSources(files []*planner.Item, templateRoot string) (map[string][]byte, error) {
	sources := map[string][]byte{}
	for _, item := range files {
		a := item.Artifact
		if a.Inline() {
			continue
		}
		if _, ok := sources[a.Source]; ok {
			continue
		}
		body, err := os.ReadFile(filepath.Join(templateRoot, filepath.FromSlash(a.Source)))
		if err != nil {
			return nil, &RenderError{
				ArtifactPath: a.Path,
				Detail:       "template source " + a.Source + " cannot be read: " + err.Error(),
			}
		}
		sources[a.Source] = body
	}
	return sources, nil
}

// expand evaluates one artifact body against the binding environment.
func expand(a *blueprint.Artifact, source []byte, env map[string]cty.Value) ([]byte, error) {
	var expr hcl.Expression
	if a.Inline() {
		expr = a.Content
	} else {
		parsed, diags := hclsyntax.ParseTemplate(source, a.Source, hcl.InitialPos)
		if diags.HasErrors() {
			return nil, &RenderError{ArtifactPath: a.Path, Detail: "template parse failed: " + diags.Error()}
		}
		expr = parsed
	}

	val, diags := expr.Value(hclutil.EvalContext(env))
	if diags.HasErrors() || val.IsNull() {
		if key := missingKey(expr, env); key != "" {
			return nil, &RenderError{ArtifactPath: a.Path, MissingKey: key}
		}
		if diags.HasErrors() {
			return nil, &RenderError{ArtifactPath: a.Path, Detail: "template evaluation failed: " + diags.Error()}
		}
		return nil, &RenderError{ArtifactPath: a.Path, Detail: "template evaluated to null"}
	}

	strVal, err := convert.Convert(val, cty.String)
	if err != nil {
		return nil, &RenderError{ArtifactPath: a.Path, Detail: "template result is not text: " + err.Error()}
	}
	return []byte(strVal.AsString()), nil
}

// missingKey returns the first variable referenced by the template that is
// absent (unknown name or invisible option) in the environment.
func missingKey(expr hcl.Expression, env map[string]cty.Value) string {
	for _, name := range hclutil.References(expr) {
		val, ok := env[name]
		if !ok || val.IsNull() {
			return name
		}
	}
	return ""
}
