package integrationtests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/scaffgo/internal/fsutil"
	"github.com/vk/scaffgo/internal/testutil"
)

func snapshotTree(t *testing.T, root string) map[string]string {
	t.Helper()
	tree := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, rerr := filepath.Rel(root, path)
		if rerr != nil {
			return rerr
		}
		if d.IsDir() {
			tree[filepath.ToSlash(rel)] = "<dir>"
			return nil
		}
		content, rerr := os.ReadFile(path)
		if rerr != nil {
			return rerr
		}
		tree[filepath.ToSlash(rel)] = string(content)
		return nil
	})
	require.NoError(t, err)
	return tree
}

// Two runs with identical inputs produce byte-identical trees.
func TestGenerationIsDeterministic(t *testing.T) {
	sets := []string{
		"database=postgresql",
		"cache=redis",
		"background_tasks=celery",
		"use_stripe=true",
		"deployment_targets=render,flyio,docker",
	}

	first := generateDjango(t, sets...)
	require.NoError(t, first.Err)
	second := generateDjango(t, sets...)
	require.NoError(t, second.Err)

	assert.Equal(t, snapshotTree(t, first.OutputDir), snapshotTree(t, second.OutputDir))
}

func TestFullFeatureTreeShape(t *testing.T) {
	result := generateDjango(t,
		"database=postgresql",
		"cache=redis",
		"background_tasks=celery",
		"use_channels=true",
		"use_stripe=true",
		"use_2fa=true",
		"deployment_targets=render,flyio,docker",
	)
	require.NoError(t, result.Err)

	for _, path := range []string{
		"manage.py",
		"requirements.txt",
		"config/settings/base.py",
		"config/asgi.py",
		"config/celery.py",
		"apps/billing/models.py",
		"render.yaml",
		"deploy/render/build.sh",
		"fly.toml",
		"Dockerfile",
	} {
		assert.True(t, result.OutputExists(path), "expected %s in output", path)
	}

	// Declared directory artifacts are materialized even when empty.
	info, err := os.Stat(filepath.Join(result.OutputDir, "static"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	info, err = os.Stat(filepath.Join(result.OutputDir, "deploy", "flyio"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.False(t, result.OutputExists("config/wsgi.py"))
}

func TestInlineContentInterpolates(t *testing.T) {
	result := generateDjango(t)
	require.NoError(t, result.Err)
	assert.Equal(t, "#!/usr/bin/env python\n# Test Project\n", result.ReadOutput(t, "manage.py"))
}

// A template file no artifact references is reported, and the ignore file
// silences the report.
func TestUnreferencedTemplateAudit(t *testing.T) {
	files := djangoFiles()
	files["templates/orphan.tmpl"] = "never used\n"

	result := testutil.RunGeneration(t, testutil.GenerationInput{
		Files:    files,
		SetPairs: []string{"project_name=Demo"},
	})
	require.NoError(t, result.Err)
	assert.Contains(t, result.LogOutput, "orphan.tmpl")

	files["templates/"+fsutil.IgnoreFileName] = "orphan.tmpl\n"
	silenced := testutil.RunGeneration(t, testutil.GenerationInput{
		Files:    files,
		SetPairs: []string{"project_name=Demo"},
	})
	require.NoError(t, silenced.Err)
	assert.NotContains(t, silenced.LogOutput, "orphan.tmpl")
}
