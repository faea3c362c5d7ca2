// Package hclload parses blueprint HCL files and translates them into the
// blueprint model. It is the only package that touches the HCL parser;
// everything downstream sees the model plus retained predicate expressions.
package hclload

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/scaffgo/internal/blueprint"
	"github.com/vk/scaffgo/internal/ctxlog"
	"github.com/vk/scaffgo/internal/fsutil"
	"github.com/vk/scaffgo/internal/schema"
)

// Loader reads blueprint directories into blueprint.Blueprint values.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new blueprint loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load finds every .hcl file under blueprintPath (sorted for a stable
// declaration order), decodes them, and translates the result into a
// validated Blueprint. Structural defects are reported as a
// *blueprint.ConsistencyError aggregating every problem found.
func (l *Loader) Load(ctx context.Context, blueprintPath string) (*blueprint.Blueprint, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading blueprint.", "path", blueprintPath)

	files, err := fsutil.FindFilesByExtension(blueprintPath, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find blueprint files in %s: %w", blueprintPath, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl blueprint files found in %s", blueprintPath)
	}

	var decoded []*schema.File
	for _, file := range files {
		hclFile, diags := l.parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse blueprint file %s: %w", file, diags)
		}

		var parsed schema.File
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &parsed); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode blueprint file %s: %w", file, diags)
		}
		decoded = append(decoded, &parsed)
	}

	bp, err := translate(decoded)
	if err != nil {
		return nil, err
	}

	logger.Debug("Blueprint loaded.",
		"files", len(files),
		"options", len(bp.Options),
		"derived", len(bp.Deriveds),
		"artifacts", len(bp.Artifacts),
	)
	return bp, nil
}
