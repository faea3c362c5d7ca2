package answers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/scaffgo/internal/blueprint"
	"github.com/zclconf/go-cty/cty"
)

func writeAnswers(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAMLDocument(t *testing.T) {
	path := writeAnswers(t, "answers.yml", `
project_name: Test Project
use_channels: true
workers: 4
deployment_targets:
  - render
  - flyio
`)

	doc, err := Load(path)
	require.NoError(t, err)
	assert.True(t, doc.Has("project_name"))
	assert.True(t, doc.Has("deployment_targets"))
	assert.False(t, doc.Has("database"))
}

func TestLoadJSONDocument(t *testing.T) {
	path := writeAnswers(t, "answers.json", `{"database": "postgresql", "use_2fa": false}`)

	doc, err := Load(path)
	require.NoError(t, err)
	assert.True(t, doc.Has("database"))
	assert.True(t, doc.Has("use_2fa"))
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestApplySetOverrides(t *testing.T) {
	doc := Empty()
	require.NoError(t, doc.ApplySet([]string{"use_channels=true", "database=sqlite"}))
	assert.True(t, doc.Has("use_channels"))
	assert.True(t, doc.Has("database"))

	assert.Error(t, doc.ApplySet([]string{"no-equals-sign"}))
	assert.Error(t, doc.ApplySet([]string{"=value"}))
}

func TestCoercePerKind(t *testing.T) {
	doc := Empty()
	require.NoError(t, doc.ApplySet([]string{
		"name=hello",
		"enabled=true",
		"count=3",
		"targets=render, flyio",
		"none_selected=",
	}))

	name, err := doc.Coerce(&blueprint.Option{Key: "name", Kind: blueprint.KindString})
	require.NoError(t, err)
	assert.Equal(t, cty.StringVal("hello"), name)

	enabled, err := doc.Coerce(&blueprint.Option{Key: "enabled", Kind: blueprint.KindBool})
	require.NoError(t, err)
	assert.Equal(t, cty.BoolVal(true), enabled)

	count, err := doc.Coerce(&blueprint.Option{Key: "count", Kind: blueprint.KindNumber})
	require.NoError(t, err)
	assert.True(t, count.RawEquals(cty.NumberFloatVal(3)))

	targets, err := doc.Coerce(&blueprint.Option{Key: "targets", Kind: blueprint.KindMultiChoice})
	require.NoError(t, err)
	assert.Equal(t, cty.ListVal([]cty.Value{cty.StringVal("render"), cty.StringVal("flyio")}), targets)

	empty, err := doc.Coerce(&blueprint.Option{Key: "none_selected", Kind: blueprint.KindMultiChoice})
	require.NoError(t, err)
	assert.Equal(t, cty.ListValEmpty(cty.String), empty)
}

func TestCoerceRejectsWrongShapes(t *testing.T) {
	doc := Empty()
	require.NoError(t, doc.ApplySet([]string{"enabled=not-a-bool", "count=many"}))

	_, err := doc.Coerce(&blueprint.Option{Key: "enabled", Kind: blueprint.KindBool})
	assert.Error(t, err)

	_, err = doc.Coerce(&blueprint.Option{Key: "count", Kind: blueprint.KindNumber})
	assert.Error(t, err)
}
