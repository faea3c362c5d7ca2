package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vk/scaffgo/internal/answers"
	"github.com/vk/scaffgo/internal/blueprint"
	"github.com/vk/scaffgo/internal/ctxlog"
	"github.com/vk/scaffgo/internal/fsutil"
	"github.com/vk/scaffgo/internal/planner"
	"github.com/vk/scaffgo/internal/renderer"
	"github.com/vk/scaffgo/internal/resolver"
	"github.com/vk/scaffgo/internal/writer"
)

// Generate executes a single generation run: load, resolve, plan, render,
// write. Nothing touches the output path until every artifact has rendered
// successfully, so a rejected answer set performs zero filesystem writes.
func (a *App) Generate(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("Generation run started.",
		"blueprint", a.config.BlueprintPath,
		"templates", a.config.TemplateRoot,
		"out", a.config.OutputPath,
	)

	bp, err := a.loader.Load(ctx, a.config.BlueprintPath)
	if err != nil {
		return fmt.Errorf("failed to load blueprint: %w", err)
	}

	doc, err := a.loadAnswers()
	if err != nil {
		return err
	}

	resolved, err := resolver.Resolve(ctx, bp, doc)
	if err != nil {
		return fmt.Errorf("failed to resolve answers: %w", err)
	}
	a.logger.Info("Answers resolved.", "visible_options", len(resolved.VisibleKeys()))

	plan, err := planner.Build(ctx, bp, resolved)
	if err != nil {
		return fmt.Errorf("failed to build composition plan: %w", err)
	}
	a.logger.Info("Composition plan built.", "artifacts", len(plan.Items))

	a.auditTemplates(ctx, bp)

	if err := renderer.Render(ctx, plan, resolved, a.config.TemplateRoot, a.config.Workers); err != nil {
		return fmt.Errorf("failed to render artifacts: %w", err)
	}

	if err := writer.Write(ctx, plan, a.config.OutputPath); err != nil {
		return fmt.Errorf("failed to write project: %w", err)
	}

	a.logger.Info("Generation finished.", "path", a.config.OutputPath)
	return nil
}

// loadAnswers reads the answers document (if any) and applies -set
// overrides on top.
func (a *App) loadAnswers() (*answers.Document, error) {
	doc := answers.Empty()
	if a.config.AnswersPath != "" {
		loaded, err := answers.Load(a.config.AnswersPath)
		if err != nil {
			return nil, err
		}
		doc = loaded
	}
	if err := doc.ApplySet(a.config.SetPairs); err != nil {
		return nil, err
	}
	return doc, nil
}

// auditTemplates warns about template files no artifact references, which
// usually means an artifact block was removed without its body. Paths
// matching the template root's ignore file are exempt.
func (a *App) auditTemplates(ctx context.Context, bp *blueprint.Blueprint) {
	logger := ctxlog.FromContext(ctx)

	referenced := map[string]struct{}{}
	for _, artifact := range bp.Artifacts {
		if artifact.Source != "" {
			referenced[artifact.Source] = struct{}{}
		}
	}

	patterns, err := fsutil.LoadIgnorePatterns(a.config.TemplateRoot)
	if err != nil {
		logger.Warn("Could not read template ignore file.", "error", err)
	}

	files, err := fsutil.FindFilesByExtension(a.config.TemplateRoot, ".tmpl")
	if err != nil {
		logger.Warn("Could not scan template root.", "error", err)
		return
	}
	for _, file := range files {
		rel, err := filepath.Rel(a.config.TemplateRoot, file)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		if _, ok := referenced[rel]; ok || fsutil.Ignored(rel, patterns) {
			continue
		}
		logger.Warn("Template file is not referenced by any artifact.", "template", rel)
	}
}
